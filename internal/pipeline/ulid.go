package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULID-style job IDs: 26 Crockford Base32 characters, 48-bit millisecond
// timestamp prefix, random tail. Monotonic within one process via a
// per-millisecond sequence.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu   sync.Mutex
	idLast uint64
	idSeq  uint16
)

// NewID returns a fresh job identifier.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == idLast {
		idSeq++
	} else {
		idLast = ts
		idSeq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], idSeq)

	return encodeCrockford(b)
}

// encodeCrockford maps 128 bits to 26 base32 characters. The buffer is
// left-padded to a byte boundary so each character is a plain 5-bit window.
func encodeCrockford(b [16]byte) string {
	var buf [17]byte
	copy(buf[1:], b[:])

	var out [26]byte
	for i := range out {
		start := 6 + i*5 // skip the 6 pad bits
		byteIdx := start / 8
		shift := start % 8
		window := int(buf[byteIdx]) << 8
		if byteIdx+1 < len(buf) {
			window |= int(buf[byteIdx+1])
		}
		out[i] = crockford[(window>>(11-shift))&31]
	}
	return string(out[:])
}
