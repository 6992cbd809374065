package group

import (
	"bufio"
	"fmt"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/distance"
	"github.com/gasparian/onex-go/tsview"
)

// LocalLengthGroupSpace holds every group formed from sub-sequences of one
// fixed length, for one dataset.
type LocalLengthGroupSpace[T common.DataT] struct {
	dataset            RowSource[T]
	length             int
	itemCount          int
	subTimeSeriesCount int
	groups             []*Group[T]
	memberMap          []membership
}

// NewLocalLengthGroupSpace allocates the shared membership arena sized for
// every (row, start) coordinate at this length.
func NewLocalLengthGroupSpace[T common.DataT](dataset RowSource[T], itemCount, itemLength, length int) *LocalLengthGroupSpace[T] {
	subTimeSeriesCount := itemLength - length + 1
	return &LocalLengthGroupSpace[T]{
		dataset:            dataset,
		length:             length,
		itemCount:          itemCount,
		subTimeSeriesCount: subTimeSeriesCount,
		memberMap:          make([]membership, itemCount*subTimeSeriesCount),
	}
}

// Length returns the sub-sequence length this space groups.
func (s *LocalLengthGroupSpace[T]) Length() int {
	return s.length
}

// NumberOfGroups returns how many groups have been formed.
func (s *LocalLengthGroupSpace[T]) NumberOfGroups() int {
	return len(s.groups)
}

// Group returns the group at idx, or an error if out of range.
func (s *LocalLengthGroupSpace[T]) Group(idx int) (*Group[T], error) {
	if idx < 0 || idx >= len(s.groups) {
		return nil, common.NewError(common.KindIndexOutOfRange, "group index is out of range")
	}
	return s.groups[idx], nil
}

// Reset discards every group, but keeps the membership arena allocated.
func (s *LocalLengthGroupSpace[T]) Reset() {
	s.groups = nil
	for i := range s.memberMap {
		s.memberMap[i] = membership{}
	}
}

// GenerateGroups performs online greedy clustering over every sub-sequence
// of this length: for each candidate, find the closest existing centroid;
// if the closest distance exceeds half the threshold (or no group exists
// yet), start a new group seeded on the candidate; otherwise join the
// closest group. Traversal order is by start offset outermost, row index
// innermost; the membership arena itself is addressed row-major
// (index*subTimeSeriesCount + start).
func (s *LocalLengthGroupSpace[T]) GenerateGroups(pairwise distance.Pairwise[T], threshold T, onProgress func(delta int)) (int, error) {
	for start := 0; start < s.subTimeSeriesCount; start++ {
		for idx := 0; idx < s.itemCount; idx++ {
			query, err := s.dataset.TimeSeries(idx, start, start+s.length)
			if err != nil {
				return 0, err
			}

			bestSoFar := T(inf[T]())
			bestSoFarIndex := -1
			for i, g := range s.groups {
				dist, err := g.DistanceFromCentroid(query, pairwise, bestSoFar)
				if err != nil {
					return 0, err
				}
				if dist < bestSoFar {
					bestSoFar = dist
					bestSoFarIndex = i
				}
			}

			if bestSoFar > threshold/2 || len(s.groups) == 0 {
				bestSoFarIndex = len(s.groups)
				g := NewGroup[T](bestSoFarIndex, s.length, s.subTimeSeriesCount, s.dataset, s.memberMap)
				if err := g.SetCentroid(idx, start); err != nil {
					return 0, err
				}
				s.groups = append(s.groups, g)
			}

			s.groups[bestSoFarIndex].AddMember(idx, start)
			if onProgress != nil {
				onProgress(1)
			}
		}
	}
	return len(s.groups), nil
}

// BestGroup returns the group whose centroid is closest to query, using the
// pairwise kernel and a dropout ceiling, or ok=false if none beats dropout.
func (s *LocalLengthGroupSpace[T]) BestGroup(query tsview.View[T], pairwise distance.Pairwise[T], dropout T) (*Group[T], T, bool, error) {
	bestDist := dropout
	var best *Group[T]
	for _, g := range s.groups {
		dist, err := g.DistanceFromCentroid(query, pairwise, bestDist)
		if err != nil {
			return nil, bestDist, false, err
		}
		if dist < bestDist {
			bestDist = dist
			best = g
		}
	}
	return best, bestDist, best != nil, nil
}

// BestGroupCascade is BestGroup's query-time counterpart: it screens
// centroids through the cascade kernel (cross-Keogh pruning ahead of DTW)
// instead of a plain pairwise kernel, via each group's
// DistanceFromCentroidCascade.
func (s *LocalLengthGroupSpace[T]) BestGroupCascade(query *tsview.View[T], cascade distance.Cascade[T], bandRatio float64, dropout T) (*Group[T], T, bool) {
	bestDist := dropout
	var best *Group[T]
	for _, g := range s.groups {
		dist := g.DistanceFromCentroidCascade(query, cascade, bestDist, bandRatio)
		if dist < bestDist {
			bestDist = dist
			best = g
		}
	}
	return best, bestDist, best != nil
}

// SaveGroups writes the group count, followed by either just each group's
// member count (groupSizeOnly) or the full centroid+member serialization.
func (s *LocalLengthGroupSpace[T]) SaveGroups(w *bufio.Writer, groupSizeOnly bool) error {
	if _, err := fmt.Fprintln(w, len(s.groups)); err != nil {
		return common.Wrap(common.KindIoError, "writing group count", err)
	}
	if groupSizeOnly {
		for i, g := range s.groups {
			if i > 0 {
				w.WriteString(" ")
			}
			fmt.Fprint(w, g.Count())
		}
		w.WriteString("\n")
		return nil
	}
	for _, g := range s.groups {
		if err := g.Save(w); err != nil {
			return err
		}
	}
	return nil
}

// LoadGroups replaces the current groups with those decoded from scanner,
// which must be positioned at the start of this length's group count in the
// full centroid+member serialization form.
func (s *LocalLengthGroupSpace[T]) LoadGroups(scanner *TokenScanner) (int, error) {
	s.Reset()
	numberOfGroups, err := scanner.NextInt()
	if err != nil {
		return 0, err
	}
	for i := 0; i < numberOfGroups; i++ {
		g := NewGroup[T](i, s.length, s.subTimeSeriesCount, s.dataset, s.memberMap)
		if err := g.Load(scanner); err != nil {
			return 0, err
		}
		s.groups = append(s.groups, g)
	}
	return numberOfGroups, nil
}
