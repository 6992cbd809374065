// Package dataset owns the dense N×M numeric buffer (C3): tabular and HDF5
// loaders, min-max normalization, PAA down-sampling, and sub-sequence view
// extraction.
//
// Grounded on original_source/src/TimeSeriesSet.cpp.
package dataset

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/distance"
	"github.com/gasparian/onex-go/tsview"
)

// Matrix owns a contiguous N*M buffer of rows of equal length.
type Matrix[T common.DataT] struct {
	rows       int
	cols       int
	data       []T
	normalized bool
}

// NewMatrix wraps an existing row-major buffer without copying, after
// checking that its length is rows*cols.
func NewMatrix[T common.DataT](rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, common.NewError(common.KindShapeMismatch, "buffer length does not match rows*cols")
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data}, nil
}

// ItemCount returns N, the number of rows.
func (m *Matrix[T]) ItemCount() int {
	return m.rows
}

// ItemLength returns M, the length of each row.
func (m *Matrix[T]) ItemLength() int {
	return m.cols
}

// IsLoaded reports whether the matrix currently holds data.
func (m *Matrix[T]) IsLoaded() bool {
	return m != nil && m.data != nil
}

// Normalized reports whether Normalize has been applied.
func (m *Matrix[T]) Normalized() bool {
	return m.normalized
}

// TimeSeries returns a borrowing view over row index, [start, end). Passing
// start<0 and end<0 returns the whole row.
func (m *Matrix[T]) TimeSeries(index, start, end int) (tsview.View[T], error) {
	if index < 0 || index >= m.rows {
		return tsview.View[T]{}, common.NewError(common.KindIndexOutOfRange, "invalid row index")
	}
	row := m.data[index*m.cols : (index+1)*m.cols]
	if start < 0 && end < 0 {
		return tsview.NewWindow(row, index, 0, m.cols)
	}
	return tsview.NewWindow(row, index, start, end)
}

// DistanceBetween is a convenience wrapper looking up a kernel by name and
// invoking it with an infinite dropout.
func (m *Matrix[T]) DistanceBetween(index, start, length int, other tsview.View[T], name string, bandRatio float64) (T, error) {
	pairwise, err := distance.Lookup[T](name, bandRatio)
	if err != nil {
		var zero T
		return zero, err
	}
	self, err := m.TimeSeries(index, start, start+length)
	if err != nil {
		var zero T
		return zero, err
	}
	return pairwise(self, other, T(math.Inf(1)))
}
