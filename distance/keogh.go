package distance

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/tsview"
)

// KeoghLowerBound uses a's cached Lemire envelopes to lower-bound the DTW
// distance to b without ever computing a DTW cell.
func KeoghLowerBound[T common.DataT](a, b *tsview.View[T], dropout T, bandRatio float64) T {
	length := minInt(a.Len(), b.Len())
	maxLen := maxInt(a.Len(), b.Len())
	band := BandSize(maxLen, bandRatio)

	lower := a.KeoghLower(band)
	upper := a.KeoghUpper(band)

	internalDropout := dropout * T(2*maxLen)
	internalDropout *= internalDropout

	var lb T
	for i := 0; i < length && lb < internalDropout; i++ {
		bi := b.At(i)
		if bi > upper[i] {
			d := bi - upper[i]
			lb += d * d
		} else if bi < lower[i] {
			d := bi - lower[i]
			lb += d * d
		}
	}
	return T(math.Sqrt(float64(lb))) / T(2*maxLen)
}

// CrossKeoghLowerBound restores symmetry by taking the max of Keogh(a,b)
// and Keogh(b,a), abandoning as soon as either exceeds dropout.
func CrossKeoghLowerBound[T common.DataT](a, b *tsview.View[T], dropout T, bandRatio float64) T {
	lb := KeoghLowerBound(a, b, dropout, bandRatio)
	if lb > dropout {
		return T(math.Inf(1))
	}
	other := KeoghLowerBound(b, a, dropout, bandRatio)
	if other > lb {
		return other
	}
	return lb
}
