package group

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/distance"
	"github.com/gasparian/onex-go/tsview"
)

// RowSource is the read-only view a Group needs of its owning dataset: just
// enough to reconstruct a member's sub-sequence view on demand. Groups
// never own dataset storage, only this borrowed accessor.
type RowSource[T common.DataT] interface {
	TimeSeries(index, start, end int) (tsview.View[T], error)
}

// Group is a similarity cluster of same-length sub-sequences.
type Group[T common.DataT] struct {
	dataset RowSource[T]
	// memberMap is shared by every group of the same length; it is owned
	// by the enclosing LocalLengthGroupSpace, never by the Group itself.
	memberMap []membership

	groupIndex         int
	memberLength       int
	subTimeSeriesCount int
	count              int
	lastMember         coord
	centroid           tsview.View[T]
}

// NewGroup constructs an empty group; its centroid is set via SetCentroid.
func NewGroup[T common.DataT](groupIndex, memberLength, subTimeSeriesCount int, dataset RowSource[T], memberMap []membership) *Group[T] {
	return &Group[T]{
		dataset:            dataset,
		memberMap:          memberMap,
		groupIndex:         groupIndex,
		memberLength:       memberLength,
		subTimeSeriesCount: subTimeSeriesCount,
		lastMember:         sentinel,
		centroid:           tsview.NewOwned[T](memberLength),
	}
}

// GroupIndex returns this group's position within its length's group list.
func (g *Group[T]) GroupIndex() int {
	return g.groupIndex
}

// Count returns the number of members currently in the group.
func (g *Group[T]) Count() int {
	return g.count
}

// Centroid returns the group's representative sub-sequence.
func (g *Group[T]) Centroid() tsview.View[T] {
	return g.centroid
}

// SetCentroid copies the sub-sequence at (index, start) into the centroid.
func (g *Group[T]) SetCentroid(index, start int) error {
	view, err := g.dataset.TimeSeries(index, start, start+g.memberLength)
	if err != nil {
		return err
	}
	g.centroid = tsview.FromSlice(view.Values())
	return nil
}

// AddMember appends (index, start) to the group's member chain in O(1).
func (g *Group[T]) AddMember(index, start int) {
	g.count++
	slot := index*g.subTimeSeriesCount + start
	g.memberMap[slot] = membership{GroupIndex: g.groupIndex, Prev: g.lastMember}
	g.lastMember = coord{Index: index, Start: start}
}

// DistanceFromCentroid returns distance(centroid, query, dropout) using the
// given pairwise kernel.
func (g *Group[T]) DistanceFromCentroid(query tsview.View[T], pairwise distance.Pairwise[T], dropout T) (T, error) {
	return pairwise(g.centroid, query, dropout)
}

// DistanceFromCentroidCascade is the query-time analogue of
// DistanceFromCentroid, used by index.GlobalGroupSpace with the cascade
// kernel (which needs pointer receivers for the Keogh envelope cache).
func (g *Group[T]) DistanceFromCentroidCascade(query *tsview.View[T], cascade distance.Cascade[T], dropout T, bandRatio float64) T {
	return cascade(&g.centroid, query, dropout, bandRatio)
}

// BestMatch walks the member chain from newest to oldest, computing the
// cascade distance to query at each step, and returns the closest member.
func (g *Group[T]) BestMatch(query *tsview.View[T], cascade distance.Cascade[T], bandRatio float64) (tsview.View[T], T, error) {
	current := g.lastMember
	bestDist := T(inf[T]())
	best := sentinel

	for current != sentinel {
		member, err := g.dataset.TimeSeries(current.Index, current.Start, current.Start+g.memberLength)
		if err != nil {
			return tsview.View[T]{}, bestDist, err
		}
		d := cascade(query, &member, bestDist, bandRatio)
		if d < bestDist {
			bestDist = d
			best = current
		}
		current = g.memberMap[current.Index*g.subTimeSeriesCount+current.Start].Prev
	}

	if best == sentinel {
		return tsview.View[T]{}, bestDist, common.NewError(common.KindEmptyDataset, "group has no members")
	}
	bestView, err := g.dataset.TimeSeries(best.Index, best.Start, best.Start+g.memberLength)
	if err != nil {
		return tsview.View[T]{}, bestDist, err
	}
	return bestView, bestDist, nil
}

// Save writes the centroid values, the member count, and every (index,
// start) pair, newest first.
func (g *Group[T]) Save(w *bufio.Writer) error {
	values := g.centroid.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 64)
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
		return common.Wrap(common.KindIoError, "writing group centroid", err)
	}

	coords := make([]string, 0, g.count*2+1)
	coords = append(coords, strconv.Itoa(g.count))
	current := g.lastMember
	for current != sentinel {
		coords = append(coords, strconv.Itoa(current.Index), strconv.Itoa(current.Start))
		current = g.memberMap[current.Index*g.subTimeSeriesCount+current.Start].Prev
	}
	if _, err := fmt.Fprintln(w, strings.Join(coords, " ")); err != nil {
		return common.Wrap(common.KindIoError, "writing group members", err)
	}
	return nil
}

// Load reconstructs the centroid and replays AddMember for every stored
// member coordinate, in the order they were stored.
func (g *Group[T]) Load(scanner *TokenScanner) error {
	values := make([]T, g.memberLength)
	for i := range values {
		v, err := scanner.NextFloat()
		if err != nil {
			return err
		}
		values[i] = T(v)
	}
	g.centroid = tsview.FromSlice(values)

	cnt, err := scanner.NextInt()
	if err != nil {
		return err
	}
	for i := 0; i < cnt; i++ {
		idx, err := scanner.NextInt()
		if err != nil {
			return err
		}
		start, err := scanner.NextInt()
		if err != nil {
			return err
		}
		g.AddMember(idx, start)
	}
	return nil
}
