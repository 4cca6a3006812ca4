package monitor

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"trafficmon/internal/probe"
	"trafficmon/internal/store"
)

// newTestStore opens a real on-disk store in a temp directory.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"), StoreSchema())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// fakeStore is an in-memory store used to inject failures and count writes.
// It is safe for concurrent use so the daemon tests can poke at it.
type fakeStore struct {
	mu        sync.Mutex
	values    map[string]store.Value
	getErr    map[string]error
	setErr    error
	setCalls  int
	lastEntry []store.Entry
}

var _ store.Interface = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		values: make(map[string]store.Value),
		getErr: make(map[string]error),
	}
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}

func (f *fakeStore) Get(path ...string) (store.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := joinPath(path)
	if err, ok := f.getErr[key]; ok {
		return store.Value{}, err
	}
	v, ok := f.values[key]
	if !ok {
		return store.Value{}, fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	return v, nil
}

func (f *fakeStore) Set(value store.Value, path ...string) error {
	return f.SetMany([]store.Entry{{Path: path, Value: value}})
}

func (f *fakeStore) SetMany(entries []store.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	for _, entry := range entries {
		f.values[joinPath(entry.Path)] = entry.Value
	}
	f.lastEntry = entries
	return nil
}

func (f *fakeStore) writeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

func (f *fakeStore) mustUint(t *testing.T, path ...string) uint64 {
	t.Helper()

	v, err := f.Get(path...)
	require.NoError(t, err)
	return v.Uint
}

// fakeProbe returns a canned report or a canned error.
type fakeProbe struct {
	report probe.Report
	err    error
}

var _ probe.Reader = (*fakeProbe)(nil)

func (f *fakeProbe) Read() (probe.Report, error) {
	if f.err != nil {
		return probe.Report{}, f.err
	}
	return f.report, nil
}

func probeWith(iface string, received, transmitted uint64) *fakeProbe {
	return &fakeProbe{
		report: probe.Report{
			Interfaces: []probe.InterfaceCounters{
				{Name: "lo", Sample: probe.Sample{Received: 1, Transmitted: 1}},
				{Name: iface, Sample: probe.Sample{Received: received, Transmitted: transmitted}},
			},
		},
	}
}
