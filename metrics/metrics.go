// Package metrics defines the minimal instrument surface recorded by the
// scheduler and cache, with a no-op default and a basic in-memory provider.
package metrics

// Provider constructs instruments by name. Requesting the same name twice
// returns the same instrument. Implementations must be safe for concurrent
// use.
type Provider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
	Histogram(name string) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move up and down, such as currently
// active slots.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, such as task
// durations in seconds.
type Histogram interface {
	Record(v float64)
}

// NoopProvider returns instruments that discard all measurements. It is the
// default provider.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string) Counter             { return noopInstrument{} }
func (NoopProvider) UpDownCounter(string) UpDownCounter { return noopInstrument{} }
func (NoopProvider) Histogram(string) Histogram         { return noopInstrument{} }

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}
