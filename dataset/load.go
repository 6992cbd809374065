package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/gasparian/onex-go/common"
)

// Load reads a whitespace/separator-delimited text table into a Matrix. The
// number of columns is fixed by the first row; every later row must match.
// Columns before startCol are dropped. If maxRows <= 0, every line is read.
func Load[T common.DataT](path string, maxRows, startCol int, separators string) (*Matrix[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.Wrap(common.KindIoError, "opening dataset file", err)
	}
	defer f.Close()

	if separators == "" {
		separators = " "
	}
	isSep := func(r rune) bool {
		return strings.ContainsRune(separators, r)
	}

	var rowsData [][]T
	length := -1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if maxRows > 0 && len(rowsData) >= maxRows {
			break
		}
		line := scanner.Text()
		tokens := strings.FieldsFunc(line, isSep)

		if length == -1 {
			length = len(tokens)
		} else if len(tokens) != length {
			return nil, common.NewError(common.KindInconsistentRow, "row length differs from first row")
		}

		row := make([]T, length-startCol)
		for col, tok := range tokens {
			if col < startCol {
				continue
			}
			val, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
					return nil, common.NewError(common.KindOutOfRange, "value out of range: "+tok)
				}
				return nil, common.NewError(common.KindUnparsable, "unparsable token: "+tok)
			}
			row[col-startCol] = T(val)
		}
		rowsData = append(rowsData, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.Wrap(common.KindIoError, "reading dataset file", err)
	}

	itemLength := 0
	if length >= 0 {
		itemLength = length - startCol
	}
	buf := make([]T, len(rowsData)*itemLength)
	for i, row := range rowsData {
		copy(buf[i*itemLength:(i+1)*itemLength], row)
	}

	return &Matrix[T]{rows: len(rowsData), cols: itemLength, data: buf}, nil
}

// Save writes one row per line, values separated by the given byte.
func (m *Matrix[T]) Save(path string, separator byte) error {
	f, err := os.Create(path)
	if err != nil {
		return common.Wrap(common.KindIoError, "creating dataset file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	sep := string(separator)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, v := range row {
			if j > 0 {
				w.WriteString(sep)
			}
			w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
		}
		w.WriteString("\n")
	}
	if err := w.Flush(); err != nil {
		return common.Wrap(common.KindIoError, "writing dataset file", err)
	}
	return nil
}
