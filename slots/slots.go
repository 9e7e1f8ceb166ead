// Package slots provides a fixed-capacity slot set used to cap the number
// of concurrently executing tasks.
package slots

// Fixed caps the number of simultaneously held slots at a fixed capacity.
// Acquisition is non-blocking; the dispatcher polls rather than waits.
// Safe for concurrent use.
type Fixed struct {
	held chan struct{}
}

// NewFixed creates a slot set with the given capacity. Capacity zero is
// clamped to one so that Get can always make progress.
func NewFixed(capacity uint) *Fixed {
	if capacity == 0 {
		capacity = 1
	}
	return &Fixed{held: make(chan struct{}, capacity)}
}

// TryAcquire takes a slot if one is free and reports whether it did.
func (f *Fixed) TryAcquire() bool {
	select {
	case f.held <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release returns a previously acquired slot. Calling Release without a
// matching TryAcquire corrupts the accounting; callers pair them.
func (f *Fixed) Release() {
	<-f.held
}

// Active returns the number of currently held slots.
func (f *Fixed) Active() int { return len(f.held) }

// Capacity returns the maximum number of simultaneously held slots.
func (f *Fixed) Capacity() int { return cap(f.held) }
