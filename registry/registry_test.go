package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/engine"
)

func loadTestDataset(t *testing.T) *engine.Dataset[float64] {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("1 2 3\n4 5 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := engine.LoadFromFile[float64](path, 0, 0, " ")
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestLoadAssignsDistinctHandles(t *testing.T) {
	r := New(nil)
	h0 := r.Load(loadTestDataset(t))
	h1 := r.Load(loadTestDataset(t))
	if h0 == h1 {
		t.Errorf("two Load calls returned the same handle: %d", h0)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}

func TestUnloadThenGetFailsWithNotFound(t *testing.T) {
	r := New(nil)
	h := r.Load(loadTestDataset(t))
	if err := r.Unload(h); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(h); common.KindOf(err) != common.KindNotFound {
		t.Errorf("Get() after Unload: expected KindNotFound, got %v", err)
	}
}

func TestUnloadReusesLowestFreeSlot(t *testing.T) {
	r := New(nil)
	h0 := r.Load(loadTestDataset(t))
	h1 := r.Load(loadTestDataset(t))
	_ = h1
	if err := r.Unload(h0); err != nil {
		t.Fatal(err)
	}
	h2 := r.Load(loadTestDataset(t))
	if h2 != h0 {
		t.Errorf("Load after freeing slot %d returned %d, want the reused slot", h0, h2)
	}
}

func TestUnloadUnknownHandleErrors(t *testing.T) {
	r := New(nil)
	if err := r.Unload(42); common.KindOf(err) != common.KindNotFound {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestListReturnsEveryLoadedHandle(t *testing.T) {
	r := New(nil)
	r.Load(loadTestDataset(t))
	r.Load(loadTestDataset(t))
	infos := r.List()
	if len(infos) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(infos))
	}
}

func TestLoadStampsDistinctLabels(t *testing.T) {
	r := New(nil)
	h0 := r.Load(loadTestDataset(t))
	h1 := r.Load(loadTestDataset(t))
	l0, err := r.Label(h0)
	if err != nil {
		t.Fatal(err)
	}
	l1, err := r.Label(h1)
	if err != nil {
		t.Fatal(err)
	}
	if l0 == "" || l1 == "" || l0 == l1 {
		t.Errorf("expected distinct non-empty labels, got %q and %q", l0, l1)
	}
}

func TestLabelUnknownHandleErrors(t *testing.T) {
	r := New(nil)
	if _, err := r.Label(42); common.KindOf(err) != common.KindNotFound {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestUnloadAllClearsRegistry(t *testing.T) {
	r := New(nil)
	r.Load(loadTestDataset(t))
	r.Load(loadTestDataset(t))
	r.UnloadAll()
	if r.Count() != 0 {
		t.Errorf("Count() after UnloadAll = %d, want 0", r.Count())
	}
}
