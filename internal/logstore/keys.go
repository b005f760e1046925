package logstore

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - tp/{topic}/m                    (topic metadata: partition count)
// - tp/{topic}/p/{part_be4}/m       (partition metadata: end offset)
// - tp/{topic}/p/{part_be4}/e/{off_be8}

var (
	sep         = byte('/')
	topicPrefix = []byte("tp/")
	partSeg     = []byte("/p/")
	metaSuffix  = []byte("/m")
	entrySeg    = []byte("/e/")
)

func appendBE4(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyTopicMeta builds the topic metadata key.
func KeyTopicMeta(topic string) []byte {
	k := make([]byte, 0, len(topic)+8)
	k = append(k, topicPrefix...)
	k = append(k, topic...)
	k = append(k, metaSuffix...)
	return k
}

// KeyPartitionMeta builds the partition metadata key.
func KeyPartitionMeta(topic string, partition uint32) []byte {
	k := make([]byte, 0, len(topic)+16)
	k = append(k, topicPrefix...)
	k = append(k, topic...)
	k = append(k, partSeg...)
	k = appendBE4(k, partition)
	k = append(k, metaSuffix...)
	return k
}

// KeyEntry builds the entry key with a big-endian offset for proper ordering.
func KeyEntry(topic string, partition uint32, offset uint64) []byte {
	k := make([]byte, 0, len(topic)+24)
	k = append(k, topicPrefix...)
	k = append(k, topic...)
	k = append(k, partSeg...)
	k = appendBE4(k, partition)
	k = append(k, entrySeg...)
	k = appendBE8(k, offset)
	return k
}
