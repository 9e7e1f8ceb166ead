package memopool

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint derives the cache key for a (task identity, input) pair.
//
// The computation is deterministic: equal identity and structurally equal
// input always yield the same key (encoding/json sorts map keys, so the
// canonical encoding is stable). Distinct (identity, input) pairs must not
// collide in normal operation; the identity is separated from the input
// encoding by a NUL byte so that boundary shifts cannot alias.
func Fingerprint(taskID string, input any) string {
	h := xxhash.New()
	_, _ = h.WriteString(taskID)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(encodeInput(input))
	return strconv.FormatUint(h.Sum64(), 16)
}

// encodeInput produces a canonical byte rendering of the input value.
// Values that cannot be JSON-encoded (channels, funcs) fall back to their
// Go-syntax representation.
func encodeInput(input any) []byte {
	enc, err := json.Marshal(input)
	if err != nil {
		return []byte(fmt.Sprintf("%#v", input))
	}
	return enc
}
