package memopool

import (
	"testing"
)

func TestFingerprint_Deterministic(t *testing.T) {
	type input struct {
		Name  string
		Count int
		Tags  map[string]string
	}

	a := input{Name: "n", Count: 3, Tags: map[string]string{"x": "1", "y": "2", "z": "3"}}
	b := input{Name: "n", Count: 3, Tags: map[string]string{"z": "3", "y": "2", "x": "1"}}

	// map insertion order must not matter: the canonical encoding sorts keys
	for i := 0; i < 100; i++ {
		if got, want := Fingerprint("task", a), Fingerprint("task", b); got != want {
			t.Fatalf("fingerprints diverged for structurally equal inputs: %s vs %s", got, want)
		}
	}
}

func TestFingerprint_DistinguishesIdentityAndInput(t *testing.T) {
	tests := []struct {
		name        string
		idA, idB    string
		inA, inB    any
		expectEqual bool
	}{
		{"same identity, same input", "t", "t", 42, 42, true},
		{"same identity, different input", "t", "t", 42, 43, false},
		{"different identity, same input", "t1", "t2", 42, 42, false},
		{"identity/input boundary shift", "ab", "a", "c", "bc", false},
		{"nil vs zero input", "t", "t", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fpA := Fingerprint(tt.idA, tt.inA)
			fpB := Fingerprint(tt.idB, tt.inB)
			if (fpA == fpB) != tt.expectEqual {
				t.Fatalf("Fingerprint(%q, %v)=%s, Fingerprint(%q, %v)=%s, expectEqual=%v",
					tt.idA, tt.inA, fpA, tt.idB, tt.inB, fpB, tt.expectEqual)
			}
		})
	}
}

func TestFingerprint_UnencodableInputDoesNotPanic(t *testing.T) {
	ch := make(chan int)
	defer close(ch)

	// channels cannot be JSON-encoded; the fallback rendering must still
	// produce a stable key within a process
	if Fingerprint("t", ch) != Fingerprint("t", ch) {
		t.Fatal("fallback encoding is not stable for the same value")
	}
}
