package monitor

import "trafficmon/internal/store"

// Thresholds are the operator-configured alert thresholds in bytes. A zero
// threshold means any positive traffic alerts immediately.
type Thresholds struct {
	RxWarn uint64 `json:"rx_warn"`
	TxWarn uint64 `json:"tx_warn"`
	RxCrit uint64 `json:"rx_crit"`
	TxCrit uint64 `json:"tx_crit"`
}

// LoadThresholds reads the four threshold keys. Absence is valid input, not
// an error: every unreadable key counts as zero, so loading never fails.
func LoadThresholds(st store.Reader) Thresholds {
	return Thresholds{
		RxWarn: loadUintOrZero(st, keyThresholdRxWarn),
		TxWarn: loadUintOrZero(st, keyThresholdTxWarn),
		RxCrit: loadUintOrZero(st, keyThresholdRxCrit),
		TxCrit: loadUintOrZero(st, keyThresholdTxCrit),
	}
}

// loadUintOrZero reads a counter and falls back to zero on any failure.
func loadUintOrZero(st store.Reader, path []string) uint64 {
	v, err := st.Get(path...)
	if err != nil {
		return 0
	}
	return v.Uint
}
