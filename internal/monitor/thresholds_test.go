package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficmon/internal/store"
)

func TestLoadThresholds_AllAbsent(t *testing.T) {
	thresholds := LoadThresholds(newTestStore(t))
	assert.Equal(t, Thresholds{}, thresholds)
}

func TestLoadThresholds_PartiallyConfigured(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Set(store.UintValue(100), "net", "thresholds", "rx_warn"))
	require.NoError(t, st.Set(store.UintValue(1000), "net", "thresholds", "rx_crit"))

	thresholds := LoadThresholds(st)
	assert.Equal(t, Thresholds{RxWarn: 100, RxCrit: 1000}, thresholds)
}

func TestLoadThresholds_FullyConfigured(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SetMany([]store.Entry{
		{Path: []string{"net", "thresholds", "rx_warn"}, Value: store.UintValue(100)},
		{Path: []string{"net", "thresholds", "tx_warn"}, Value: store.UintValue(200)},
		{Path: []string{"net", "thresholds", "rx_crit"}, Value: store.UintValue(1000)},
		{Path: []string{"net", "thresholds", "tx_crit"}, Value: store.UintValue(2000)},
	}))

	thresholds := LoadThresholds(st)
	assert.Equal(t, Thresholds{RxWarn: 100, TxWarn: 200, RxCrit: 1000, TxCrit: 2000}, thresholds)
}

func TestLoadThresholds_NeverFails(t *testing.T) {
	// Even a broken store read degrades to a zero threshold instead of
	// failing the load.
	st := newFakeStore()
	st.getErr["net.thresholds.tx_warn"] = errors.New("disk unplugged")
	st.values["net.thresholds.rx_warn"] = store.UintValue(100)

	thresholds := LoadThresholds(st)
	assert.Equal(t, Thresholds{RxWarn: 100}, thresholds)
}
