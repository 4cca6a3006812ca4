package monitor

import (
	"errors"
	"fmt"

	"trafficmon/internal/probe"
	"trafficmon/internal/store"
)

// Totals are the persisted cumulative traffic counters in bytes.
type Totals struct {
	Rx uint64 `json:"rx"`
	Tx uint64 `json:"tx"`
}

// LoadTotals reads the stored totals. Keys that have never been written
// count as zero; any other store failure is propagated.
func LoadTotals(st store.Reader) (Totals, error) {
	rx, err := loadUint(st, keyTrafficRx)
	if err != nil {
		return Totals{}, err
	}
	tx, err := loadUint(st, keyTrafficTx)
	if err != nil {
		return Totals{}, err
	}
	return Totals{Rx: rx, Tx: tx}, nil
}

// loadUint reads a single unsigned counter, defaulting to zero when the key
// is absent.
func loadUint(st store.Reader, path []string) (uint64, error) {
	v, err := st.Get(path...)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v.Uint, nil
}

// Accumulator folds probe samples into the persisted traffic totals.
type Accumulator struct {
	store store.Interface
	probe probe.Reader
}

// NewAccumulator creates an accumulator over the given store and probe.
func NewAccumulator(st store.Interface, rd probe.Reader) *Accumulator {
	return &Accumulator{store: st, probe: rd}
}

// Accumulate adds the current probe reading for the named interface to the
// stored totals and persists the result. The probe reports counters that are
// cumulative since the OS reset them, and each call adds the full reading on
// top of the stored totals, so repeated calls double-count: the caller must
// invoke Accumulate at most once per accounting window.
//
// Both totals are written in one transaction; a failed probe or lookup
// leaves the store untouched.
func (a *Accumulator) Accumulate(iface string) (Totals, error) {
	totals, err := LoadTotals(a.store)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to load stored totals: %w", err)
	}

	report, err := a.probe.Read()
	if err != nil {
		return Totals{}, err
	}
	sample, err := report.Lookup(iface)
	if err != nil {
		return Totals{}, err
	}

	updated := Totals{
		Rx: totals.Rx + sample.Received,
		Tx: totals.Tx + sample.Transmitted,
	}

	err = a.store.SetMany([]store.Entry{
		{Path: keyTrafficRx, Value: store.UintValue(updated.Rx)},
		{Path: keyTrafficTx, Value: store.UintValue(updated.Tx)},
	})
	if err != nil {
		return Totals{}, fmt.Errorf("failed to persist totals: %w", err)
	}

	return updated, nil
}
