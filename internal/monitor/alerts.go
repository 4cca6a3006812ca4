package monitor

import (
	"fmt"

	"trafficmon/internal/store"
)

// AlertFlags are the four derived alert booleans. They are recomputed in
// full on every evaluation, with no latching or hysteresis.
type AlertFlags struct {
	RxWarn bool `json:"rx_warn_alert"`
	TxWarn bool `json:"tx_warn_alert"`
	RxCrit bool `json:"rx_crit_alert"`
	TxCrit bool `json:"tx_crit_alert"`
}

// ComputeFlags compares totals against thresholds. Each flag is an
// independent strict greater-than comparison: a total exactly equal to its
// threshold does not alert.
func ComputeFlags(totals Totals, thresholds Thresholds) AlertFlags {
	return AlertFlags{
		RxWarn: totals.Rx > thresholds.RxWarn,
		TxWarn: totals.Tx > thresholds.TxWarn,
		RxCrit: totals.Rx > thresholds.RxCrit,
		TxCrit: totals.Tx > thresholds.TxCrit,
	}
}

// Evaluator derives alert flags from the stored totals and persists them.
type Evaluator struct {
	store store.Interface
}

// NewEvaluator creates an evaluator over the given store.
func NewEvaluator(st store.Interface) *Evaluator {
	return &Evaluator{store: st}
}

// Evaluate loads the current totals (absent keys count as zero), computes
// the four flags against the given thresholds and overwrites all four in
// one transaction.
func (e *Evaluator) Evaluate(thresholds Thresholds) (AlertFlags, error) {
	totals, err := LoadTotals(e.store)
	if err != nil {
		return AlertFlags{}, fmt.Errorf("failed to load stored totals: %w", err)
	}

	flags := ComputeFlags(totals, thresholds)

	err = e.store.SetMany([]store.Entry{
		{Path: keyAlertRxWarn, Value: store.BoolValue(flags.RxWarn)},
		{Path: keyAlertTxWarn, Value: store.BoolValue(flags.TxWarn)},
		{Path: keyAlertRxCrit, Value: store.BoolValue(flags.RxCrit)},
		{Path: keyAlertTxCrit, Value: store.BoolValue(flags.TxCrit)},
	})
	if err != nil {
		return AlertFlags{}, fmt.Errorf("failed to persist alert flags: %w", err)
	}

	return flags, nil
}
