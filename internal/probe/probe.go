// Package probe reads instantaneous network-interface traffic counters.
package probe

import (
	"errors"
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// ErrInterfaceNotFound is returned when the requested interface does not
// appear in the probe's report.
var ErrInterfaceNotFound = errors.New("network interface not found")

// Sample holds the byte counters of one interface at the moment of query.
// The counters are cumulative since the OS reset them (typically boot).
type Sample struct {
	// Received is the total bytes received on the interface.
	Received uint64
	// Transmitted is the total bytes transmitted on the interface.
	Transmitted uint64
}

// InterfaceCounters pairs an interface name with its current sample.
type InterfaceCounters struct {
	Name   string
	Sample Sample
}

// Report is one probe reading covering all interfaces, in the order the OS
// reported them.
type Report struct {
	Interfaces []InterfaceCounters
}

// Lookup returns the sample for the named interface, or ErrInterfaceNotFound
// when the report contains no matching entry.
func (r Report) Lookup(name string) (Sample, error) {
	for _, iface := range r.Interfaces {
		if iface.Name == name {
			return iface.Sample, nil
		}
	}
	return Sample{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// Reader produces a fresh traffic report on every call.
type Reader interface {
	Read() (Report, error)
}

// Compile-time check that SystemReader implements Reader.
var _ Reader = (*SystemReader)(nil)

// SystemReader reads per-interface counters from the OS via gopsutil.
type SystemReader struct{}

// NewSystemReader creates a probe backed by the OS network statistics.
func NewSystemReader() *SystemReader {
	return &SystemReader{}
}

// Read returns the current per-interface byte counters.
func (r *SystemReader) Read() (Report, error) {
	counters, err := psnet.IOCounters(true)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read network statistics: %w", err)
	}

	report := Report{Interfaces: make([]InterfaceCounters, 0, len(counters))}
	for _, c := range counters {
		report.Interfaces = append(report.Interfaces, InterfaceCounters{
			Name: c.Name,
			Sample: Sample{
				Received:    c.BytesRecv,
				Transmitted: c.BytesSent,
			},
		})
	}
	return report, nil
}
