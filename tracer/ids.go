package tracer

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// maxID keeps generated identifiers inside the positive int64 range so they
// survive round trips through consumers that parse them as signed integers.
const maxID = 1<<63 - 1

// generateID returns a random, non-zero identifier for traces and spans.
// Zero is reserved to mean "absent" (for example a root span's parent id).
func generateID() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand is effectively infallible on supported platforms;
		// fall back to the clock rather than failing the trace.
		return uint64(time.Now().UnixNano()) & maxID
	}
	id := binary.BigEndian.Uint64(b[:]) & maxID
	if id == 0 {
		id = 1
	}
	return id
}
