package index

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/group"
	"github.com/gasparian/onex-go/tsview"
)

func TestTraverseOrderWorkedExample(t *testing.T) {
	got := TraverseOrder(3, 7, 0.4)
	want := []int{3, 2, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TraverseOrder(3, 7, 0.4) = %v, want %v", got, want)
	}
}

func TestTraverseOrderAlwaysStartsAtQueryLength(t *testing.T) {
	got := TraverseOrder(5, 10, 0.1)
	if len(got) == 0 || got[0] != 5 {
		t.Errorf("TraverseOrder()[0] = %v, want 5 (the query length itself)", got)
	}
}

func TestTraverseOrderRespectsBoundaries(t *testing.T) {
	got := TraverseOrder(2, 4, 0.4)
	for _, l := range got {
		if l < 2 || l > 4 {
			t.Errorf("TraverseOrder returned out-of-range length %d", l)
		}
	}
}

// fakeRowSource mirrors the fake used by the group package's own tests, kept
// local because declarations in group's _test.go files are not visible to
// other packages.
type fakeRowSource struct {
	rows [][]float64
}

func (f *fakeRowSource) TimeSeries(index, start, end int) (tsview.View[float64], error) {
	return tsview.NewWindow(f.rows[index], index, start, end)
}

func TestGlobalGroupSpaceBuildAndSelfMatch(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		{11, 10, 9, 8, 7, 6, 5, 4, 3, 2},
	}}
	idx := NewGlobalGroupSpace[float64](rs, 3, 10)
	if _, err := idx.Build("euclidean", 0.5, 0.1, nil); err != nil {
		t.Fatal(err)
	}
	if !idx.Grouped() {
		t.Fatal("index should be grouped after Build")
	}

	query, err := rs.TimeSeries(0, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, dist, err := idx.BestMatch(query)
	if err != nil {
		t.Fatal(err)
	}
	if dist != 0 {
		t.Errorf("BestMatch(row 0) distance = %v, want 0", dist)
	}
}

func TestGlobalGroupSpaceBestMatchRejectsShortQuery(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{{1, 2, 3}}}
	idx := NewGlobalGroupSpace[float64](rs, 1, 3)
	if _, err := idx.Build("euclidean", 0.5, 0.1, nil); err != nil {
		t.Fatal(err)
	}
	query, err := rs.TimeSeries(0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := idx.BestMatch(query); common.KindOf(err) != common.KindInvalidQuery {
		t.Errorf("expected KindInvalidQuery, got %v", err)
	}
}

func TestGlobalGroupSpaceBestMatchRejectsUngrouped(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{{1, 2, 3, 4}}}
	idx := NewGlobalGroupSpace[float64](rs, 1, 4)
	query, err := rs.TimeSeries(0, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := idx.BestMatch(query); common.KindOf(err) != common.KindNotIndexed {
		t.Errorf("expected KindNotIndexed, got %v", err)
	}
}

func TestGlobalGroupSpaceSaveLoadRoundTrip(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
	}}
	idx := NewGlobalGroupSpace[float64](rs, 2, 5)
	if _, err := idx.Build("euclidean", 0.5, 0.2, nil); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := idx.SaveGroups(&buf, false); err != nil {
		t.Fatal(err)
	}

	reloaded := NewGlobalGroupSpace[float64](rs, 2, 5)
	if _, err := reloaded.LoadGroups(&buf, 0.2); err != nil {
		t.Fatal(err)
	}
	if !reloaded.Grouped() {
		t.Fatal("reloaded index should be grouped")
	}

	query, err := rs.TimeSeries(0, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	want, wantDist, err := idx.BestMatch(query)
	if err != nil {
		t.Fatal(err)
	}
	got, gotDist, err := reloaded.BestMatch(query)
	if err != nil {
		t.Fatal(err)
	}
	if wantDist != gotDist || want.Index() != got.Index() || want.Start() != got.Start() {
		t.Errorf("reloaded BestMatch = (%d, %d, %v), want (%d, %d, %v)",
			got.Index(), got.Start(), gotDist, want.Index(), want.Start(), wantDist)
	}
}

func TestGlobalGroupSpaceLoadRejectsOversizedLengthRange(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{{1, 2, 3}}}
	idx := NewGlobalGroupSpace[float64](rs, 1, 3)
	buf := bytes.NewBufferString("2 10\neuclidean\n")
	if _, err := idx.LoadGroups(buf, 0.1); common.KindOf(err) != common.KindShapeMismatch {
		t.Errorf("expected KindShapeMismatch, got %v", err)
	}
}

func TestGlobalGroupSpaceResetDiscardsGroups(t *testing.T) {
	rs := &fakeRowSource{rows: [][]float64{{1, 2, 3, 4}}}
	idx := NewGlobalGroupSpace[float64](rs, 1, 4)
	if _, err := idx.Build("euclidean", 0.5, 0.1, nil); err != nil {
		t.Fatal(err)
	}
	idx.Reset()
	if idx.Grouped() {
		t.Error("index should not be grouped after Reset")
	}
}

var _ group.RowSource[float64] = &fakeRowSource{}
