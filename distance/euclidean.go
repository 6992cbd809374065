package distance

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/tsview"
)

// Euclidean is the pairwise (length-equal) distance. dropout is an
// early-abandon bound in the normalized output domain; it is squared and
// scaled to the kernel's internal cumulative-sum domain before comparison.
func Euclidean[T common.DataT](a, b tsview.View[T], dropout T) (T, error) {
	if a.Len() != b.Len() {
		var zero T
		return zero, common.NewError(common.KindShapeMismatch, "euclidean requires equal-length sequences")
	}
	maxLen := T(maxInt(a.Len(), b.Len()))
	internalDropout := dropout * dropout * maxLen

	var total T
	for i := 0; i < a.Len(); i++ {
		d := a.At(i) - b.At(i)
		total += d * d
		if total > internalDropout {
			return T(math.Inf(1)), nil
		}
	}
	return T(math.Sqrt(float64(total / maxLen))), nil
}
