package distance

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/tsview"
)

// CascadeDistance is the "warped distance" used everywhere the index is
// queried: cross-Keogh prunes cheaply, and only survivors pay for a full
// DTW computation.
func CascadeDistance[T common.DataT](a, b *tsview.View[T], dropout T, bandRatio float64) T {
	lb := CrossKeoghLowerBound(a, b, dropout, bandRatio)
	if lb > dropout {
		return T(math.Inf(1))
	}
	return Warped(*a, *b, dropout, bandRatio)
}

// Pairwise is the signature shared by the length-equal build-time kernel.
type Pairwise[T common.DataT] func(a, b tsview.View[T], dropout T) (T, error)

// Cascade is the signature shared by the query-time warped kernel.
type Cascade[T common.DataT] func(a, b *tsview.View[T], dropout T, bandRatio float64) T

// Lookup resolves the pairwise (build-time) kernel selected by name.
// "euclidean" builds groups with the plain length-equal Euclidean kernel;
// "euclidean_dtw" builds groups with the raw (uncascaded) warped-DTW kernel
// instead, matching getDistance in the original source, where the name
// picks the *build-time* comparison and the query-time kernel is always the
// cascade (see CascadeDistance, always used by index.GlobalGroupSpace
// regardless of name). The set of names is closed and known at compile
// time, matching the "closed enum" re-architecture called for over the
// original's function-pointer dispatch.
func Lookup[T common.DataT](name string, bandRatio float64) (Pairwise[T], error) {
	switch name {
	case "euclidean":
		return Euclidean[T], nil
	case "euclidean_dtw":
		return func(a, b tsview.View[T], dropout T) (T, error) {
			return Warped(a, b, dropout, bandRatio), nil
		}, nil
	default:
		return nil, common.NewError(common.KindInvalidArgument, "unknown distance name: "+name)
	}
}
