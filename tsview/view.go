// Package tsview implements the non-owning sub-sequence window (C1) that
// every other core package builds on: a half-open [start, end) slice of a
// dataset row, plus its Keogh envelope cache.
package tsview

import (
	"fmt"

	"github.com/gasparian/onex-go/common"
)

// View is a window (buffer, index, start, end) over a row of numeric data.
// It never copies data on construction; NewOwned is the one exception,
// used for centroids and other values with no backing dataset row.
type View[T common.DataT] struct {
	data  []T
	index int
	start int
	end   int

	keoghValid bool
	keoghBand  int
	keoghLower []T
	keoghUpper []T
}

// NewWindow returns a view borrowing rowData, restricted to [start, end).
func NewWindow[T common.DataT](rowData []T, index, start, end int) (View[T], error) {
	if start < 0 || start >= end || end > len(rowData) {
		return View[T]{}, common.NewError(common.KindIndexOutOfRange, "invalid sub-sequence bounds")
	}
	return View[T]{data: rowData, index: index, start: start, end: end}, nil
}

// NewOwned allocates a zero-filled view of the given length that owns its
// own backing slice; used for the initial centroid of a new group.
func NewOwned[T common.DataT](length int) View[T] {
	return View[T]{data: make([]T, length), index: 0, start: 0, end: length}
}

// FromSlice wraps an existing, fully-owned slice as a View without copying.
// Used when the caller has already materialized values it wants to hand off.
func FromSlice[T common.DataT](values []T) View[T] {
	return View[T]{data: values, index: 0, start: 0, end: len(values)}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int {
	return v.end - v.start
}

// Index returns the owning row index (0 for owned/free-standing views).
func (v View[T]) Index() int {
	return v.index
}

// Start returns the window's start offset in the owning row.
func (v View[T]) Start() int {
	return v.start
}

// End returns the window's end offset (exclusive) in the owning row.
func (v View[T]) End() int {
	return v.end
}

// Get returns the i-th element, 0 <= i < Len().
func (v View[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, common.NewError(common.KindIndexOutOfRange, "view index out of range")
	}
	return v.data[v.start+i], nil
}

// At is a panic-on-error convenience for hot loops that have already
// bounds-checked their range (e.g. iterating 0..Len()).
func (v View[T]) At(i int) T {
	return v.data[v.start+i]
}

// Set writes the i-th element and invalidates the Keogh cache.
func (v *View[T]) Set(i int, val T) error {
	if i < 0 || i >= v.Len() {
		return common.NewError(common.KindIndexOutOfRange, "view index out of range")
	}
	v.data[v.start+i] = val
	v.keoghValid = false
	return nil
}

// Accumulate adds other pointwise into v; both must have equal length.
func (v *View[T]) Accumulate(other View[T]) error {
	if v.Len() != other.Len() {
		return common.NewError(common.KindShapeMismatch, "views must have equal length to accumulate")
	}
	for i := 0; i < v.Len(); i++ {
		v.data[v.start+i] += other.At(i)
	}
	v.keoghValid = false
	return nil
}

// Values copies out the view's elements as a plain slice.
func (v View[T]) Values() []T {
	out := make([]T, v.Len())
	copy(out, v.data[v.start:v.end])
	return out
}

// KeoghLower returns the cached lower Lemire envelope for the given band,
// recomputing it (and the upper envelope) if the cache is stale or the band
// changed. The effective band is min(band, Len()-1).
func (v *View[T]) KeoghLower(band int) []T {
	v.ensureKeogh(band)
	return v.keoghLower
}

// KeoghUpper mirrors KeoghLower for the upper envelope.
func (v *View[T]) KeoghUpper(band int) []T {
	v.ensureKeogh(band)
	return v.keoghUpper
}

func (v *View[T]) ensureKeogh(band int) {
	effective := band
	if effective > v.Len()-1 {
		effective = v.Len() - 1
	}
	if v.keoghValid && v.keoghBand == effective {
		return
	}
	v.keoghLower, v.keoghUpper = lemireEnvelopes(v.Values(), effective)
	v.keoghBand = effective
	v.keoghValid = true
}

// Identifier returns a textual identifier "<index> [<start>, <end>]".
func (v View[T]) Identifier() string {
	return fmt.Sprintf("%d [%d, %d]", v.index, v.start, v.end)
}
