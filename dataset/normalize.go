package dataset

import (
	"math"

	"github.com/gasparian/onex-go/common"
)

// Normalize linearly rescales the whole matrix to [0, 1], returning the
// observed (min, max). If the range is empty, the buffer becomes all zeros
// unless the common value is itself zero, in which case it is left as-is.
func (m *Matrix[T]) Normalize() (T, T, error) {
	length := m.rows * m.cols
	if length == 0 {
		var zero T
		return zero, zero, common.NewError(common.KindEmptyDataset, "no data to normalize")
	}

	minVal := T(math.Inf(1))
	maxVal := T(math.Inf(-1))
	for _, v := range m.data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	diff := maxVal - minVal
	if diff == 0 {
		if maxVal != 0 {
			for i := range m.data {
				m.data[i] = 0
			}
		}
	} else {
		for i := range m.data {
			m.data[i] = (m.data[i] - minVal) / diff
		}
	}
	m.normalized = true
	return minVal, maxVal, nil
}
