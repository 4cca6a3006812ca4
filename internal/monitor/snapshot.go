package monitor

import (
	"errors"
	"fmt"
	"strings"

	"trafficmon/internal/store"
)

// Snapshot is a read-only aggregation of everything the monitor persists.
// It backs both the --list report and the daemon's status API.
type Snapshot struct {
	Interface  string     `json:"interface"`
	Traffic    Totals     `json:"traffic"`
	Thresholds Thresholds `json:"thresholds"`
	Alerts     AlertFlags `json:"alerts"`
}

// LoadSnapshot reads totals, thresholds and alert flags from the store.
// Keys that have never been written take their zero values.
func LoadSnapshot(st store.Reader, iface string) (Snapshot, error) {
	totals, err := LoadTotals(st)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load stored totals: %w", err)
	}

	flags, err := loadFlags(st)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load alert flags: %w", err)
	}

	return Snapshot{
		Interface:  iface,
		Traffic:    totals,
		Thresholds: LoadThresholds(st),
		Alerts:     flags,
	}, nil
}

// loadFlags reads the four alert flags, defaulting absent keys to false.
func loadFlags(st store.Reader) (AlertFlags, error) {
	var flags AlertFlags
	for _, f := range []struct {
		path []string
		dst  *bool
	}{
		{keyAlertRxWarn, &flags.RxWarn},
		{keyAlertTxWarn, &flags.TxWarn},
		{keyAlertRxCrit, &flags.RxCrit},
		{keyAlertTxCrit, &flags.TxCrit},
	} {
		v, err := st.Get(f.path...)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return AlertFlags{}, err
		}
		*f.dst = v.Bool
	}
	return flags, nil
}

// Render returns a human-readable report of the snapshot for CLI output.
func (s Snapshot) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "interface: %s\n", s.Interface)
	fmt.Fprintf(&b, "traffic:\n")
	fmt.Fprintf(&b, "  rx: %s (%d bytes)\n", FormatBytes(s.Traffic.Rx), s.Traffic.Rx)
	fmt.Fprintf(&b, "  tx: %s (%d bytes)\n", FormatBytes(s.Traffic.Tx), s.Traffic.Tx)
	fmt.Fprintf(&b, "thresholds:\n")
	fmt.Fprintf(&b, "  rx_warn: %s\n", FormatBytes(s.Thresholds.RxWarn))
	fmt.Fprintf(&b, "  tx_warn: %s\n", FormatBytes(s.Thresholds.TxWarn))
	fmt.Fprintf(&b, "  rx_crit: %s\n", FormatBytes(s.Thresholds.RxCrit))
	fmt.Fprintf(&b, "  tx_crit: %s\n", FormatBytes(s.Thresholds.TxCrit))
	fmt.Fprintf(&b, "alerts:\n")
	fmt.Fprintf(&b, "  rx_warn_alert: %t\n", s.Alerts.RxWarn)
	fmt.Fprintf(&b, "  tx_warn_alert: %t\n", s.Alerts.TxWarn)
	fmt.Fprintf(&b, "  rx_crit_alert: %t\n", s.Alerts.RxCrit)
	fmt.Fprintf(&b, "  tx_crit_alert: %t\n", s.Alerts.TxCrit)

	return b.String()
}
