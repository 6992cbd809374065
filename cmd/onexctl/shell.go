// Package main implements onexctl, the interactive command shell (C8) for
// loading, grouping and querying time-series datasets held in a session
// registry.
//
// Grounded on original_source/cli/OnexCLI.cpp for the verb table and
// timing behavior; on cobra usage in
// nvandessel-feedback-loop/cmd/floop/main.go for the Go idiom a subcommand
// tree is expressed in.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/engine"
	"github.com/gasparian/onex-go/progress"
	"github.com/gasparian/onex-go/registry"
)

// shell holds every piece of state a command needs: the session registry,
// structured loggers, and the timer toggle from the original CLI's `timer`
// command.
type shell struct {
	reg          *registry.Registry
	logger       *common.Logger
	cfg          *common.Config
	timerEnabled bool
	out          io.Writer
}

func newShell(cfg *common.Config, out io.Writer) *shell {
	var mirror *registry.PureKVMirror
	if cfg.Registry.Backend == "purekv" {
		m, err := registry.NewPureKVMirror(cfg.Registry.PureKVAddress, cfg.Registry.PureKVTimeout)
		if err == nil {
			mirror = m
		}
	}
	return &shell{
		reg:          registry.New(mirror),
		logger:       common.NewLogger(),
		cfg:          cfg,
		timerEnabled: true,
		out:          out,
	}
}

// timed runs fn, printing its elapsed wall-clock time if the timer is on.
// Mirrors the TIME_COMMAND macro's behavior, applied to the group and match
// commands.
func (s *shell) timed(fn func() error) error {
	start := time.Now()
	err := fn()
	if s.timerEnabled {
		fmt.Fprintf(s.out, "Command executed in %.4fs\n", time.Since(start).Seconds())
	}
	return err
}

func (s *shell) printError(err error) {
	fmt.Fprintf(s.out, "Error! %s\n", err.Error())
}

// runRepl reads one command per line from r until EOF or "exit"/"quit",
// dispatching each through a freshly-parsed cobra command tree.
func (s *shell) runRepl(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, "onex> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		args := strings.Fields(line)
		root := s.newRootCommand()
		root.SetArgs(args)
		root.SetOut(s.out)
		root.SetErr(s.out)
		if err := root.Execute(); err != nil {
			s.printError(err)
		}
	}
}

func datasetInfoLine(prefix string, info engine.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", prefix)
	fmt.Fprintf(&b, "  Name:        %s\n", info.FilePath)
	fmt.Fprintf(&b, "  Item count:  %d\n", info.ItemCount)
	fmt.Fprintf(&b, "  Item length: %d\n", info.ItemLength)
	return b.String()
}

func progressReporter(interactive bool, total int) progress.Reporter {
	if !interactive || total <= 0 {
		return progress.Noop{}
	}
	return progress.NewBar(total)
}
