package logstore

import (
	"encoding/binary"
	"hash/crc32"
)

// Record encoding: varint keyLen | key | value | crc32c(key|value)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeRecord frames a key/value pair for storage.
func EncodeRecord(key, value []byte) []byte {
	out := make([]byte, 0, 10+len(key)+len(value)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(key)))
	out = append(out, tmp[:n]...)
	out = append(out, key...)
	out = append(out, value...)

	crc := crc32.Update(0, castagnoli, key)
	crc = crc32.Update(crc, castagnoli, value)
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out
}

// Decoded is a record read back from storage.
type Decoded struct {
	Key   []byte
	Value []byte
}

// DecodeRecord unframes a stored record and verifies its checksum.
func DecodeRecord(b []byte) (Decoded, bool) {
	if len(b) < 1+4 {
		return Decoded{}, false
	}
	klen, n := binary.Uvarint(b)
	if n <= 0 {
		return Decoded{}, false
	}
	if int(n)+int(klen)+4 > len(b) {
		return Decoded{}, false
	}
	key := b[n : n+int(klen)]
	value := b[n+int(klen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, key)
	crc = crc32.Update(crc, castagnoli, value)
	if crc != expect {
		return Decoded{}, false
	}
	return Decoded{Key: append([]byte(nil), key...), Value: append([]byte(nil), value...)}, true
}
