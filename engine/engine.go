// Package engine composes a dataset (C3) with its clustering index (C5)
// into the unit of work a session actually loads, groups, and queries (C6).
//
// Grounded on original_source/src/GroupableTimeSeriesSet.cpp and
// original_source/src/OnexAPI.cpp.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/dataset"
	"github.com/gasparian/onex-go/index"
	"github.com/gasparian/onex-go/tsview"
)

// groupFileVersion guards the on-disk index format; loading a file written
// by a different version is rejected rather than silently misparsed.
const groupFileVersion = 1

// buildDistanceName is the pairwise kernel every index is built with. The
// cascade kernel used at query time is always CascadeDistance regardless of
// this value; see distance.Lookup.
const buildDistanceName = "euclidean"

// Dataset is one loaded, optionally grouped, in-memory dataset.
type Dataset[T common.DataT] struct {
	FilePath string

	matrix *dataset.Matrix[T]
	idx    *index.GlobalGroupSpace[T]

	threshold T
	bandRatio float64
}

// Info summarizes a Dataset for listing and status reporting.
type Info struct {
	FilePath     string
	ItemCount    int
	ItemLength   int
	IsGrouped    bool
	IsNormalized bool
}

// LoadFromFile reads a delimited text dataset from disk.
func LoadFromFile[T common.DataT](filePath string, maxRows, startCol int, separators string) (*Dataset[T], error) {
	m, err := dataset.Load[T](filePath, maxRows, startCol, separators)
	if err != nil {
		return nil, err
	}
	return &Dataset[T]{FilePath: filePath, matrix: m}, nil
}

// LoadFromHDF5 reads a named dataset out of an HDF5 file.
func LoadFromHDF5[T common.DataT](filePath, datasetName string) (*Dataset[T], error) {
	m, err := dataset.LoadHDF5[T](filePath, datasetName)
	if err != nil {
		return nil, err
	}
	return &Dataset[T]{FilePath: filePath, matrix: m}, nil
}

// SaveDataset writes the raw values back out as delimited text.
func (d *Dataset[T]) SaveDataset(filePath string, separator byte) error {
	return d.matrix.Save(filePath, separator)
}

// Info reports the dataset's current shape and state.
func (d *Dataset[T]) Info() Info {
	return Info{
		FilePath:     d.FilePath,
		ItemCount:    d.matrix.ItemCount(),
		ItemLength:   d.matrix.ItemLength(),
		IsGrouped:    d.IsGrouped(),
		IsNormalized: d.matrix.Normalized(),
	}
}

// IsGrouped reports whether BuildIndex (or LoadIndex) has run successfully.
func (d *Dataset[T]) IsGrouped() bool {
	return d.idx != nil && d.idx.Grouped()
}

// Normalize rescales every value in place to [0, 1] and returns the
// pre-normalization (min, max).
func (d *Dataset[T]) Normalize() (T, T, error) {
	return d.matrix.Normalize()
}

// PAA replaces every row with block-averaged values, invalidating any
// existing index (the shape it was built against no longer exists).
func (d *Dataset[T]) PAA(block int) error {
	if err := d.matrix.PAA(block); err != nil {
		return err
	}
	d.idx = nil
	return nil
}

// TimeSeries extracts a sub-sequence view; start==-1 && end==-1 selects the
// whole row.
func (d *Dataset[T]) TimeSeries(index, start, end int) (tsview.View[T], error) {
	return d.matrix.TimeSeries(index, start, end)
}

// BuildIndex clusters every sub-sequence length of the dataset. The build
// always uses the plain Euclidean pairwise kernel to select initial
// centroids; queries against the resulting index always use the
// cross-Keogh/DTW cascade regardless.
func (d *Dataset[T]) BuildIndex(threshold T, bandRatio float64, onProgress func(delta int)) (int, error) {
	if !d.matrix.IsLoaded() {
		return 0, common.NewError(common.KindEmptyDataset, "no data to group")
	}
	d.idx = index.NewGlobalGroupSpace[T](d.matrix, d.matrix.ItemCount(), d.matrix.ItemLength())
	d.threshold = threshold
	d.bandRatio = bandRatio
	return d.idx.Build(buildDistanceName, threshold, bandRatio, onProgress)
}

// BestMatch finds the closest sub-sequence in this dataset to query.
func (d *Dataset[T]) BestMatch(query tsview.View[T]) (tsview.View[T], T, error) {
	var zero T
	if d.idx == nil {
		return tsview.View[T]{}, zero, common.NewError(common.KindNotIndexed, "dataset is not grouped")
	}
	return d.idx.BestMatch(query)
}

// SaveIndex writes the group file to disk, preceded by the version,
// threshold, and shape header that LoadIndex validates against.
func (d *Dataset[T]) SaveIndex(filePath string, groupSizeOnly bool) error {
	f, err := os.Create(filePath)
	if err != nil {
		return common.Wrap(common.KindIoError, "creating index file", err)
	}
	defer f.Close()
	return d.SaveIndexTo(f, groupSizeOnly)
}

// SaveIndexTo writes the group file to an arbitrary sink, letting callers
// route it through a registry mirror cache instead of the filesystem.
func (d *Dataset[T]) SaveIndexTo(w io.Writer, groupSizeOnly bool) error {
	if !d.IsGrouped() {
		return common.NewError(common.KindNotIndexed, "no group found")
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%v %v %d %d\n", groupFileVersion, d.threshold, d.matrix.ItemCount(), d.matrix.ItemLength()); err != nil {
		return common.Wrap(common.KindIoError, "writing index header", err)
	}
	if err := bw.Flush(); err != nil {
		return common.Wrap(common.KindIoError, "writing index header", err)
	}
	return d.idx.SaveGroups(w, groupSizeOnly)
}

// LoadIndex reads a group file previously written by SaveIndex, rejecting
// it if the format version, item count, or item length don't match this
// dataset.
func (d *Dataset[T]) LoadIndex(filePath string, bandRatio float64) (int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, common.Wrap(common.KindIoError, "opening index file", err)
	}
	defer f.Close()
	return d.LoadIndexFrom(f, bandRatio)
}

// LoadIndexFrom reads a group file from an arbitrary source.
func (d *Dataset[T]) LoadIndexFrom(r io.Reader, bandRatio float64) (int, error) {
	br := bufio.NewReader(r)

	var version int
	var threshold float64
	var itemCount, itemLength int
	if _, err := fmt.Fscan(br, &version, &threshold, &itemCount, &itemLength); err != nil {
		return 0, common.Wrap(common.KindIoError, "reading index header", err)
	}
	if version != groupFileVersion {
		return 0, common.NewError(common.KindVersionMismatch, "incompatible index file version")
	}
	if itemCount != d.matrix.ItemCount() {
		return 0, common.NewError(common.KindShapeMismatch, "incompatible item count")
	}
	if itemLength != d.matrix.ItemLength() {
		return 0, common.NewError(common.KindShapeMismatch, "incompatible item length")
	}

	d.threshold = T(threshold)
	d.bandRatio = bandRatio
	d.idx = index.NewGlobalGroupSpace[T](d.matrix, d.matrix.ItemCount(), d.matrix.ItemLength())
	return d.idx.LoadGroups(br, bandRatio)
}
