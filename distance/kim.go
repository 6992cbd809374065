package distance

import (
	"math"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/tsview"
)

// KimLowerBound is a constant-time boundary lower bound using the first/last
// 1, 2 and 3 points of each sequence. It is not wired into CascadeDistance
// (see the open questions in SPEC_FULL.md §9) but is kept fully implemented and tested,
// matching the original source's commented-out call site. Like the source
// it is grounded on, it assumes both sequences have length >= 4 once l != 4
// short-circuits; it is never called from the cascade so this does not
// affect any exported search path.
func KimLowerBound[T common.DataT](a, b tsview.View[T], dropout T) T {
	al, bl := a.Len(), b.Len()
	l := minInt(al, bl)
	inf := T(math.Inf(1))

	sq := func(x T) T { return x * x }

	if l == 0 {
		return 0
	}
	if l == 1 {
		return sq(a.At(0) - b.At(0))
	}

	var lb T
	lb += sq(a.At(0) - b.At(0))
	lb += sq(a.At(al-1) - b.At(bl-1))
	if lb > dropout {
		return inf
	}

	min3 := func(x, y, z T) T {
		m := x
		if y < m {
			m = y
		}
		if z < m {
			m = z
		}
		return m
	}

	lb += min3(sq(a.At(0)-b.At(1)), sq(a.At(1)-b.At(1)), sq(a.At(1)-b.At(0)))
	if lb > dropout {
		return inf
	}

	lb += min3(sq(a.At(al-1)-b.At(bl-2)), sq(a.At(al-2)-b.At(bl-2)), sq(a.At(al-2)-b.At(bl-1)))
	if lb >= dropout {
		return inf
	}

	if l == 4 {
		return lb
	}

	min5 := func(vals ...T) T {
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m
	}

	lb += min5(
		sq(a.At(0)-b.At(2)), sq(a.At(1)-b.At(2)),
		sq(a.At(2)-b.At(2)), sq(a.At(2)-b.At(1)),
		sq(a.At(2)-b.At(0)),
	)
	if lb > dropout {
		return inf
	}

	lb += min5(
		sq(a.At(al-1)-b.At(bl-3)), sq(a.At(al-2)-b.At(bl-3)),
		sq(a.At(al-3)-b.At(bl-3)), sq(a.At(al-3)-b.At(bl-2)),
		sq(a.At(al-3)-b.At(bl-1)),
	)
	return lb
}
