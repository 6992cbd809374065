package registry

import (
	"strconv"

	"github.com/gasparian/onex-go/engine"
	pkv "github.com/gasparian/pure-kv-go/client"
)

// PureKVMirror publishes each handle's Info to an external pure-kv-go
// store, so a status dashboard or another process can observe session
// state without going through the in-process Registry. Every write is
// best-effort: mirror failures never fail the registry operation that
// triggered them.
//
// Grounded on store/purekv.PureKvStore.
type PureKVMirror struct {
	client *pkv.Client
}

// NewPureKVMirror connects to a pure-kv-go server at address and creates
// the "status" bucket it stores handle summaries in.
func NewPureKVMirror(address string, timeout int) (*PureKVMirror, error) {
	client := pkv.New(address, timeout)
	if err := client.Open(); err != nil {
		return nil, err
	}
	if err := client.Create("status"); err != nil {
		return nil, err
	}
	return &PureKVMirror{client: client}, nil
}

// Close releases the underlying connection.
func (m *PureKVMirror) Close() {
	m.client.Close()
}

// SetStatus mirrors handle's current Info.
func (m *PureKVMirror) SetStatus(handle int, info engine.Info) {
	_ = m.client.Set("status", strconv.Itoa(handle), info)
}

// Clear removes the mirrored status for a single unloaded handle.
func (m *PureKVMirror) Clear(handle int) {
	_ = m.client.Set("status", strconv.Itoa(handle), nil)
}

// ClearAll wipes every mirrored bucket.
func (m *PureKVMirror) ClearAll() {
	m.client.DestroyAll()
}

// Status returns the last mirrored Info for handle, if present.
func (m *PureKVMirror) Status(handle int) (engine.Info, bool) {
	val, ok := m.client.Get("status", strconv.Itoa(handle))
	if !ok {
		return engine.Info{}, false
	}
	info, ok := val.(engine.Info)
	return info, ok
}
