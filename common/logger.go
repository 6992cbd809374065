package common

import (
	"log"
	"os"
)

// Logger holds several logger instances with different prefixes, one per
// severity, so call sites never have to think about level filtering.
type Logger struct {
	Warn *log.Logger
	Info *log.Logger
	Err  *log.Logger
}

// NewLogger creates an instance of all needed loggers, all writing to
// stderr so stdout stays free for the CLI's own output.
func NewLogger() *Logger {
	return &Logger{
		Warn: log.New(os.Stderr, "[ Warn ] ", log.LstdFlags|log.Lshortfile),
		Info: log.New(os.Stderr, "[ Info ] ", log.LstdFlags|log.Lshortfile),
		Err:  log.New(os.Stderr, "[ Error ] ", log.LstdFlags|log.Lshortfile),
	}
}
