// Package monitor implements the traffic accumulation and threshold
// evaluation engine: it turns instantaneous interface byte counters into
// persistent running totals and derives boolean alert flags from them.
package monitor

import "trafficmon/internal/store"

// Key paths used by the monitor inside the store.
var (
	keyTrafficRx = []string{"net", "traffic", "rx"}
	keyTrafficTx = []string{"net", "traffic", "tx"}

	keyThresholdRxWarn = []string{"net", "thresholds", "rx_warn"}
	keyThresholdTxWarn = []string{"net", "thresholds", "tx_warn"}
	keyThresholdRxCrit = []string{"net", "thresholds", "rx_crit"}
	keyThresholdTxCrit = []string{"net", "thresholds", "tx_crit"}

	keyAlertRxWarn = []string{"net", "alerts", "rx_warn_alert"}
	keyAlertTxWarn = []string{"net", "alerts", "tx_warn_alert"}
	keyAlertRxCrit = []string{"net", "alerts", "rx_crit_alert"}
	keyAlertTxCrit = []string{"net", "alerts", "tx_crit_alert"}
)

// StoreSchema returns the store schema covering the monitor's namespace.
func StoreSchema() store.Schema {
	return store.Schema{
		"net": {"traffic", "thresholds", "alerts"},
	}
}
