package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gasparian/onex-go/common"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesRowsAndColumns(t *testing.T) {
	path := writeTempFile(t, "1 2 3 4\n5 6 7 8\n9 10 11 12\n")
	m, err := Load[float64](path, 0, 0, " ")
	if err != nil {
		t.Fatal(err)
	}
	if m.ItemCount() != 3 || m.ItemLength() != 4 {
		t.Fatalf("shape = (%d, %d), want (3, 4)", m.ItemCount(), m.ItemLength())
	}
	v, err := m.TimeSeries(1, -1, -1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{5, 6, 7, 8}
	for i, w := range want {
		if got := v.At(i); got != w {
			t.Errorf("row 1[%d] = %v, want %v", i, got, w)
		}
	}
}

func TestLoadHonorsMaxRowsAndStartCol(t *testing.T) {
	path := writeTempFile(t, "id1 1 2 3\nid2 4 5 6\nid3 7 8 9\n")
	m, err := Load[float64](path, 2, 1, " ")
	if err != nil {
		t.Fatal(err)
	}
	if m.ItemCount() != 2 || m.ItemLength() != 3 {
		t.Fatalf("shape = (%d, %d), want (2, 3)", m.ItemCount(), m.ItemLength())
	}
}

func TestLoadRejectsInconsistentRowLength(t *testing.T) {
	path := writeTempFile(t, "1 2 3\n4 5\n")
	if _, err := Load[float64](path, 0, 0, " "); common.KindOf(err) != common.KindInconsistentRow {
		t.Errorf("expected KindInconsistentRow, got %v", err)
	}
}

func TestLoadRejectsUnparsableToken(t *testing.T) {
	path := writeTempFile(t, "1 2 x\n")
	if _, err := Load[float64](path, 0, 0, " "); common.KindOf(err) != common.KindUnparsable {
		t.Errorf("expected KindUnparsable, got %v", err)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := writeTempFile(t, "1 2 3\n4 5 6\n")
	m, err := Load[float64](path, 0, 0, " ")
	if err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(t.TempDir(), "out.txt")
	if err := m.Save(outPath, ' '); err != nil {
		t.Fatal(err)
	}
	reloaded, err := Load[float64](outPath, 0, 0, " ")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ItemCount() != m.ItemCount() || reloaded.ItemLength() != m.ItemLength() {
		t.Fatalf("round-tripped shape mismatch: got (%d,%d) want (%d,%d)",
			reloaded.ItemCount(), reloaded.ItemLength(), m.ItemCount(), m.ItemLength())
	}
	for i := 0; i < m.ItemCount(); i++ {
		a, _ := m.TimeSeries(i, -1, -1)
		b, _ := reloaded.TimeSeries(i, -1, -1)
		for j := 0; j < a.Len(); j++ {
			if a.At(j) != b.At(j) {
				t.Errorf("row %d[%d]: got %v, want %v", i, j, b.At(j), a.At(j))
			}
		}
	}
}

func TestNormalizeRescalesToUnitRange(t *testing.T) {
	m, err := NewMatrix[float64](1, 11, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	if err != nil {
		t.Fatal(err)
	}
	minVal, maxVal, err := m.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if minVal != 1 || maxVal != 11 {
		t.Errorf("Normalize() returned (%v, %v), want (1, 11)", minVal, maxVal)
	}
	v, _ := m.TimeSeries(0, -1, -1)
	for i := 0; i < v.Len(); i++ {
		want := float64(i) / 10
		if math.Abs(v.At(i)-want) > 1e-9 {
			t.Errorf("normalized[%d] = %v, want %v", i, v.At(i), want)
		}
	}
}

func TestNormalizeConstantRowBecomesZero(t *testing.T) {
	m, err := NewMatrix[float64](1, 3, []float64{5, 5, 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Normalize(); err != nil {
		t.Fatal(err)
	}
	v, _ := m.TimeSeries(0, -1, -1)
	for i := 0; i < v.Len(); i++ {
		if v.At(i) != 0 {
			t.Errorf("constant row element %d = %v, want 0", i, v.At(i))
		}
	}
}

func TestNormalizeEmptyDataset(t *testing.T) {
	m, err := NewMatrix[float64](0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Normalize(); common.KindOf(err) != common.KindEmptyDataset {
		t.Errorf("expected KindEmptyDataset, got %v", err)
	}
}

func TestPAABlockAveraging(t *testing.T) {
	m, err := NewMatrix[float64](1, 11, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.PAA(3); err != nil {
		t.Fatal(err)
	}
	if m.ItemLength() != 4 {
		t.Fatalf("ItemLength() = %d, want 4", m.ItemLength())
	}
	v, _ := m.TimeSeries(0, -1, -1)
	want := []float64{2, 5, 8, 10.5}
	for i, w := range want {
		if math.Abs(v.At(i)-w) > 1e-9 {
			t.Errorf("PAA(3)[%d] = %v, want %v", i, v.At(i), w)
		}
	}
}

func TestPAAOneIsIdentity(t *testing.T) {
	m, err := NewMatrix[float64](1, 5, []float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.PAA(1); err != nil {
		t.Fatal(err)
	}
	v, _ := m.TimeSeries(0, -1, -1)
	want := []float64{1, 2, 3, 4, 5}
	for i, w := range want {
		if v.At(i) != w {
			t.Errorf("PAA(1)[%d] = %v, want %v", i, v.At(i), w)
		}
	}
}

func TestPAARejectsNonPositiveBlock(t *testing.T) {
	m, err := NewMatrix[float64](1, 3, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.PAA(0); common.KindOf(err) != common.KindInvalidArgument {
		t.Errorf("expected KindInvalidArgument, got %v", err)
	}
}

func TestNewMatrixRejectsShapeMismatch(t *testing.T) {
	if _, err := NewMatrix[float64](2, 3, []float64{1, 2, 3}); common.KindOf(err) != common.KindShapeMismatch {
		t.Errorf("expected KindShapeMismatch, got %v", err)
	}
}

func TestTimeSeriesRejectsOutOfRangeIndex(t *testing.T) {
	m, err := NewMatrix[float64](2, 2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.TimeSeries(5, -1, -1); common.KindOf(err) != common.KindIndexOutOfRange {
		t.Errorf("expected KindIndexOutOfRange, got %v", err)
	}
}
