package checkpoint

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - cp/{location}/o/{id_be8}  (offsets entry for one cycle)
// - cp/{location}/c/{id_be8}  (commit entry for one cycle)
//
// Big-endian cycle ids make "latest" a bounded reverse seek.

var (
	cpPrefix   = []byte("cp/")
	offsetsSeg = []byte("/o/")
	commitsSeg = []byte("/c/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyOffsets builds the offsets entry key for one cycle.
func KeyOffsets(location string, id BatchID) []byte {
	k := make([]byte, 0, len(location)+16)
	k = append(k, cpPrefix...)
	k = append(k, location...)
	k = append(k, offsetsSeg...)
	k = appendBE8(k, uint64(id))
	return k
}

// KeyCommit builds the commit entry key for one cycle.
func KeyCommit(location string, id BatchID) []byte {
	k := make([]byte, 0, len(location)+16)
	k = append(k, cpPrefix...)
	k = append(k, location...)
	k = append(k, commitsSeg...)
	k = appendBE8(k, uint64(id))
	return k
}

// offsetsBounds returns the [low, high) iterator bounds covering every
// offsets entry under location.
func offsetsBounds(location string) (low, hi []byte) {
	low = KeyOffsets(location, 0)
	hi = append(KeyOffsets(location, BatchID(^uint64(0))), 0x00)
	return low, hi
}

// commitsBounds returns the [low, high) iterator bounds covering every
// commit entry under location.
func commitsBounds(location string) (low, hi []byte) {
	low = KeyCommit(location, 0)
	hi = append(KeyCommit(location, BatchID(^uint64(0))), 0x00)
	return low, hi
}
