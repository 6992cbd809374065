package dataset

import (
	"github.com/gasparian/onex-go/common"
	"gonum.org/v1/hdf5"
)

// LoadHDF5 reads a named dataset out of an HDF5 file and reshapes its
// flattened row-major values into an N×M matrix using the dataset's own
// declared extent (extent[0] rows, extent[1] columns). Grounded on
// annbench.GetVectorsFromHDF5 in the teacher's benchmark harness, which
// reads the same ann-benchmarks-style corpora.
func LoadHDF5[T common.DataT](path, datasetName string) (*Matrix[T], error) {
	file, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, common.Wrap(common.KindIoError, "opening hdf5 file", err)
	}
	defer file.Close()

	ds, err := file.OpenDataset(datasetName)
	if err != nil {
		return nil, common.Wrap(common.KindIoError, "opening hdf5 dataset "+datasetName, err)
	}
	defer ds.Close()

	space := ds.Space()
	extent, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, common.Wrap(common.KindIoError, "reading hdf5 dataset extent", err)
	}
	if len(extent) != 2 {
		return nil, common.NewError(common.KindShapeMismatch, "expected a rank-2 hdf5 dataset")
	}
	rows := int(extent[0])
	cols := int(extent[1])

	raw := make([]float64, rows*cols)
	if err := ds.Read(&raw); err != nil {
		return nil, common.Wrap(common.KindIoError, "reading hdf5 dataset values", err)
	}

	data := make([]T, len(raw))
	for i, v := range raw {
		data[i] = T(v)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: data}, nil
}
