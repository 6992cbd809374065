// Package registry implements the session registry (C7): an in-memory,
// handle-indexed table of loaded datasets, mirroring the interactive
// session state a command shell operates on.
//
// Grounded on store/kv.KVStore for the sync.RWMutex-guarded map shape and
// on original_source/src/OnexAPI.cpp for the handle-reuse and
// dataset_info_t bookkeeping (lowest free slot reused, count tracked
// separately from slice length).
package registry

import (
	"errors"
	"sync"

	"github.com/gasparian/onex-go/common"
	"github.com/gasparian/onex-go/engine"
	"github.com/google/uuid"
)

var errNoDataset = errors.New("there is no dataset with given handle")

// Registry holds every dataset currently loaded in a session.
type Registry struct {
	mx     sync.RWMutex
	slots  []*engine.Dataset[float64]
	labels []string
	count  int
	mirror *PureKVMirror
}

// New creates an empty registry. mirror may be nil to disable the
// pure-kv-go-backed status cache.
func New(mirror *PureKVMirror) *Registry {
	return &Registry{mirror: mirror}
}

// Load assigns a handle to ds, reusing the lowest free slot if one exists.
// The handle stays the primary key; a fresh UUID label is stamped alongside
// it so two datasets loaded from the same path in the same run can still be
// told apart in logs even after a handle is reused.
func (r *Registry) Load(ds *engine.Dataset[float64]) int {
	r.mx.Lock()
	defer r.mx.Unlock()

	handle := -1
	for i, slot := range r.slots {
		if slot == nil {
			handle = i
			break
		}
	}
	if handle < 0 {
		handle = len(r.slots)
		r.slots = append(r.slots, nil)
		r.labels = append(r.labels, "")
	}
	r.slots[handle] = ds
	r.labels[handle] = uuid.NewString()
	r.count++

	if r.mirror != nil {
		r.mirror.SetStatus(handle, ds.Info())
	}
	return handle
}

// Label returns the UUID stamped on handle at load time.
func (r *Registry) Label(handle int) (string, error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if handle < 0 || handle >= len(r.slots) || r.slots[handle] == nil {
		return "", common.Wrap(common.KindNotFound, "dataset handle not found", errNoDataset)
	}
	return r.labels[handle], nil
}

// Get returns the dataset at handle, or an error if it isn't loaded.
func (r *Registry) Get(handle int) (*engine.Dataset[float64], error) {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if handle < 0 || handle >= len(r.slots) || r.slots[handle] == nil {
		return nil, common.Wrap(common.KindNotFound, "dataset handle not found", errNoDataset)
	}
	return r.slots[handle], nil
}

// Unload discards the dataset at handle, freeing its slot for reuse.
func (r *Registry) Unload(handle int) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	if handle < 0 || handle >= len(r.slots) || r.slots[handle] == nil {
		return common.Wrap(common.KindNotFound, "dataset handle not found", errNoDataset)
	}
	r.slots[handle] = nil
	r.labels[handle] = ""
	r.count--
	if handle == len(r.slots)-1 {
		r.slots = r.slots[:handle]
		r.labels = r.labels[:handle]
	}
	if r.mirror != nil {
		r.mirror.Clear(handle)
	}
	return nil
}

// UnloadAll discards every loaded dataset.
func (r *Registry) UnloadAll() {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.slots = nil
	r.labels = nil
	r.count = 0
	if r.mirror != nil {
		r.mirror.ClearAll()
	}
}

// Count returns the number of currently loaded datasets.
func (r *Registry) Count() int {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.count
}

// HandleInfo pairs a dataset's handle with its summary and external label.
type HandleInfo struct {
	Handle int
	Label  string
	Info   engine.Info
}

// List returns info for every currently loaded dataset, in handle order.
func (r *Registry) List() []HandleInfo {
	r.mx.RLock()
	defer r.mx.RUnlock()
	out := make([]HandleInfo, 0, r.count)
	for i, slot := range r.slots {
		if slot != nil {
			out = append(out, HandleInfo{Handle: i, Label: r.labels[i], Info: slot.Info()})
		}
	}
	return out
}

// SetBuildStatus updates the mirror cache's grouped/normalized flags for
// handle without touching the dataset itself; used by long-running build
// commands to publish progress-adjacent state to an external observer.
func (r *Registry) SetBuildStatus(handle int) error {
	ds, err := r.Get(handle)
	if err != nil {
		return err
	}
	if r.mirror != nil {
		r.mirror.SetStatus(handle, ds.Info())
	}
	return nil
}
