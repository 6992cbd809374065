// Package index implements the global group space (C5): the full clustering
// index over every sub-sequence length of a dataset, and the length-traversal
// search that answers best-match queries.
//
// Grounded on original_source/src/GlobalGroupSpace.cpp.
package index

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/distance"
	"github.com/gasparian/onex-go/group"
	"github.com/gasparian/onex-go/tsview"
)

// GlobalGroupSpace owns one LocalLengthGroupSpace per sub-sequence length
// from 2 up to the dataset's item length.
type GlobalGroupSpace[T common.DataT] struct {
	dataset      group.RowSource[T]
	itemCount    int
	itemLength   int
	spaces       []*group.LocalLengthGroupSpace[T] // index 0..itemLength, 0/1 unused
	distanceName string
	bandRatio    float64
	threshold    T
}

// NewGlobalGroupSpace prepares an ungrouped index over the dataset's
// declared shape.
func NewGlobalGroupSpace[T common.DataT](dataset group.RowSource[T], itemCount, itemLength int) *GlobalGroupSpace[T] {
	return &GlobalGroupSpace[T]{
		dataset:    dataset,
		itemCount:  itemCount,
		itemLength: itemLength,
	}
}

// Grouped reports whether Build (or LoadGroups) has populated the index.
func (idx *GlobalGroupSpace[T]) Grouped() bool {
	return len(idx.spaces) > 0
}

// DistanceName returns the pairwise-kernel name the index was built or
// loaded with.
func (idx *GlobalGroupSpace[T]) DistanceName() string {
	return idx.distanceName
}

// Reset discards every length's groups.
func (idx *GlobalGroupSpace[T]) Reset() {
	idx.spaces = nil
}

// Build clusters every sub-sequence length of the dataset using the named
// pairwise kernel and similarity threshold, reporting progress in units of
// one sub-sequence processed. bandRatio controls both the DTW warping band
// used by the query-time cascade kernel and the traversal order.
func (idx *GlobalGroupSpace[T]) Build(distanceName string, threshold T, bandRatio float64, onProgress func(delta int)) (int, error) {
	idx.Reset()
	pairwise, err := distance.Lookup[T](distanceName, bandRatio)
	if err != nil {
		return 0, err
	}
	idx.distanceName = distanceName
	idx.bandRatio = bandRatio
	idx.threshold = threshold

	idx.spaces = make([]*group.LocalLengthGroupSpace[T], idx.itemLength+1)
	numberOfGroups := 0
	for length := 2; length <= idx.itemLength; length++ {
		ls := group.NewLocalLengthGroupSpace[T](idx.dataset, idx.itemCount, idx.itemLength, length)
		n, err := ls.GenerateGroups(pairwise, threshold, onProgress)
		if err != nil {
			return 0, err
		}
		idx.spaces[length] = ls
		numberOfGroups += n
	}
	return numberOfGroups, nil
}

// BestMatch finds the sub-sequence across the whole index closest to query,
// using the cascade kernel over the length-traversal order.
func (idx *GlobalGroupSpace[T]) BestMatch(query tsview.View[T]) (tsview.View[T], T, error) {
	var zero T
	if !idx.Grouped() {
		return tsview.View[T]{}, zero, common.NewError(common.KindNotIndexed, "index has not been built")
	}
	if query.Len() <= 1 {
		return tsview.View[T]{}, zero, common.NewError(common.KindInvalidQuery, "length of query must be larger than 1")
	}

	var cascade distance.Cascade[T] = distance.CascadeDistance[T]
	bestDist := T(math.Inf(1))
	var bestGroup *group.Group[T]

	order := TraverseOrder(query.Len(), len(idx.spaces)-1, idx.bandRatio)
	for _, length := range order {
		if length < 0 || length >= len(idx.spaces) || idx.spaces[length] == nil {
			continue
		}
		candidate, dist, ok := idx.spaces[length].BestGroupCascade(&query, cascade, idx.bandRatio, bestDist)
		if ok && dist < bestDist {
			bestDist = dist
			bestGroup = candidate
		}
	}

	if bestGroup == nil {
		return tsview.View[T]{}, zero, common.NewError(common.KindEmptyDataset, "index contains no groups")
	}
	return bestGroup.BestMatch(&query, cascade, idx.bandRatio)
}

// SaveGroups writes the length range and distance name, followed by each
// length's groups in order.
func (idx *GlobalGroupSpace[T]) SaveGroups(w io.Writer, groupSizeOnly bool) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", 2, len(idx.spaces)); err != nil {
		return common.Wrap(common.KindIoError, "writing index header", err)
	}
	if _, err := fmt.Fprintln(bw, idx.distanceName); err != nil {
		return common.Wrap(common.KindIoError, "writing distance name", err)
	}
	for length := 2; length < len(idx.spaces); length++ {
		ls := idx.spaces[length]
		if ls == nil {
			continue
		}
		if err := ls.SaveGroups(bw, groupSizeOnly); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadGroups replaces the current index with one decoded from r. The
// encoded length range is rejected if it extends past the dataset's actual
// item length; a shorter range is accepted, and lengths outside it are left
// without groups.
func (idx *GlobalGroupSpace[T]) LoadGroups(r io.Reader, bandRatio float64) (int, error) {
	idx.Reset()
	scanner := group.NewTokenScanner(r)

	lenFrom, err := scanner.NextInt()
	if err != nil {
		return 0, err
	}
	lenTo, err := scanner.NextInt()
	if err != nil {
		return 0, err
	}
	distanceNameRaw, err := scanner.NextString()
	if err != nil {
		return 0, err
	}
	distanceName := strings.TrimSpace(distanceNameRaw)

	maxLen := idx.itemLength + 1
	if lenTo > maxLen {
		return 0, common.NewError(common.KindShapeMismatch, "index file declares a length range larger than the dataset's item length")
	}

	idx.distanceName = distanceName
	idx.bandRatio = bandRatio
	idx.spaces = make([]*group.LocalLengthGroupSpace[T], maxLen)

	numberOfGroups := 0
	for length := lenFrom; length < lenTo; length++ {
		ls := group.NewLocalLengthGroupSpace[T](idx.dataset, idx.itemCount, idx.itemLength, length)
		n, err := ls.LoadGroups(scanner)
		if err != nil {
			return 0, err
		}
		idx.spaces[length] = ls
		numberOfGroups += n
	}
	return numberOfGroups, nil
}
