package dataset

import "github.com/gasparian/onex-go/common"

func paaLength(srcLength, block int) int {
	return (srcLength-1)/block + 1
}

// PAA (Piecewise Aggregate Approximation) replaces every row with the
// averages of consecutive blocks of up to `block` source values; the final
// block of a row may be shorter and is averaged by its actual count.
func (m *Matrix[T]) PAA(block int) error {
	if block <= 0 {
		return common.NewError(common.KindInvalidArgument, "block size must be positive")
	}
	newLen := paaLength(m.cols, block)
	newData := make([]T, m.rows*newLen)

	for row := 0; row < m.rows; row++ {
		src := m.data[row*m.cols : (row+1)*m.cols]
		dst := newData[row*newLen : (row+1)*newLen]

		var sum T
		count := 0
		for i := 0; i < m.cols; i++ {
			count++
			sum += src[i]
			if count == block || i == m.cols-1 {
				dst[i/block] = sum / T(count)
				sum = 0
				count = 0
			}
		}
	}

	m.data = newData
	m.cols = newLen
	return nil
}
