package group

import (
	"bufio"
	"io"
	"math"
	"strconv"

	"github.com/gasparian/onex-go/common"
)

func inf[T common.DataT]() T {
	return T(math.Inf(1))
}

// TokenScanner reads whitespace-separated tokens off an io.Reader, used to
// parse the group-space index file format one field at a time. A single
// scanner is meant to be shared across nested decoders (GlobalGroupSpace
// down through LocalLengthGroupSpace down through Group) reading the same
// underlying stream in sequence.
type TokenScanner struct {
	sc *bufio.Scanner
}

// NewTokenScanner wraps r for word-at-a-time decoding.
func NewTokenScanner(r io.Reader) *TokenScanner {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &TokenScanner{sc: sc}
}

func (t *TokenScanner) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", common.Wrap(common.KindIoError, "reading index file", err)
		}
		return "", common.NewError(common.KindIoError, "unexpected end of index file")
	}
	return t.sc.Text(), nil
}

// NextInt reads and parses the next token as an integer.
func (t *TokenScanner) NextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, common.NewError(common.KindUnparsable, "expected integer, got "+tok)
	}
	return v, nil
}

// NextFloat reads and parses the next token as a float.
func (t *TokenScanner) NextFloat() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, common.NewError(common.KindUnparsable, "expected float, got "+tok)
	}
	return v, nil
}

// NextString reads the next raw token without parsing it.
func (t *TokenScanner) NextString() (string, error) {
	return t.next()
}
