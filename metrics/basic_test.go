package metrics

import (
	"sync"
	"testing"
)

func TestBasicProvider_InstrumentsByName(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("hits")
	c2 := p.Counter("hits")
	if c1 != c2 {
		t.Fatal("same name must return the same counter")
	}

	c1.Add(2)
	c2.Add(3)
	if got := p.CounterValue("hits"); got != 5 {
		t.Fatalf("CounterValue(hits) = %d, want 5", got)
	}
	if got := p.CounterValue("never-requested"); got != 0 {
		t.Fatalf("CounterValue(never-requested) = %d, want 0", got)
	}

	u := p.UpDownCounter("active")
	u.Add(3)
	u.Add(-1)
	if got := p.UpDownValue("active"); got != 2 {
		t.Fatalf("UpDownValue(active) = %d, want 2", got)
	}
}

func TestBasicHistogram_Snapshot(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram("durations").(*BasicHistogram)

	for _, v := range []float64{1, 3, 2} {
		h.Record(v)
	}

	s := h.Snapshot()
	if s.Count != 3 || s.Sum != 6 || s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
}

func TestBasicProvider_ConcurrentUse(t *testing.T) {
	p := NewBasicProvider()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				p.Counter("c").Add(1)
				p.UpDownCounter("u").Add(1)
				p.Histogram("h").Record(1)
			}
		}()
	}
	wg.Wait()

	if got := p.CounterValue("c"); got != 1000 {
		t.Fatalf("CounterValue(c) = %d, want 1000", got)
	}
	if got := p.Histogram("h").(*BasicHistogram).Snapshot().Count; got != 1000 {
		t.Fatalf("histogram count = %d, want 1000", got)
	}
}

func TestNoopProvider_Discards(t *testing.T) {
	p := NewNoopProvider()

	// must not panic and must not accumulate anything
	p.Counter("c").Add(1)
	p.UpDownCounter("u").Add(-1)
	p.Histogram("h").Record(0.5)
}
