package distance

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/tsview"
)

// Warped computes the constrained DTW distance between a and b under the
// process-configured Sakoe-Chiba band. dropout is an early-abandon bound in
// the normalized output domain.
func Warped[T common.DataT](a, b tsview.View[T], dropout T, bandRatio float64) T {
	m, n := a.Len(), b.Len()
	maxLen := maxInt(m, n)
	r := BandSize(maxLen, bandRatio)
	inf := T(math.Inf(1))

	internalDropout := dropout * dropout * T(2*maxLen) * T(2*maxLen)

	if m == 1 && n == 1 {
		d := a.At(0) - b.At(0)
		if d < 0 {
			d = -d
		}
		return d / 2
	}

	cost := make([][]T, m)
	for i := range cost {
		cost[i] = make([]T, n)
	}

	sq := func(x T) T { return x * x }

	// Preset in case this cell is never reached due to the band constraint.
	cost[m-1][n-1] = inf
	cost[0][0] = sq(a.At(0) - b.At(0))
	for i := 1; i < minInt(2*r+1, m); i++ {
		cost[i][0] = cost[i-1][0] + sq(a.At(i)-b.At(0))
	}
	for j := 1; j < minInt(2*r+1, n); j++ {
		cost[0][j] = cost[0][j-1] + sq(a.At(0)-b.At(j))
	}

	dropped := false
	for i := 1; i < m; i++ {
		bestSoFar := inf
		lo := maxInt(i-r, 1)
		hi := minInt(i+r, n-1)
		for j := lo; j <= hi; j++ {
			var ij1, i1j T = inf, inf
			if i-r <= j-1 && j-1 <= i+r {
				ij1 = cost[i][j-1]
			}
			i1j1 := cost[i-1][j-1]
			if j-r <= i-1 && i-1 <= j+r {
				i1j = cost[i-1][j]
			}
			minPrev := cost[i-1][j]
			if i1j1 < ij1 && i1j1 < i1j {
				minPrev = cost[i-1][j-1]
			} else if ij1 < i1j {
				minPrev = cost[i][j-1]
			}
			cost[i][j] = minPrev + sq(a.At(i)-b.At(j))
			if cost[i][j] < bestSoFar {
				bestSoFar = cost[i][j]
			}
		}
		if bestSoFar > internalDropout {
			dropped = true
			break
		}
	}

	if dropped {
		return inf
	}
	result := cost[m-1][n-1]
	return T(math.Sqrt(float64(result))) / T(2*maxLen)
}
