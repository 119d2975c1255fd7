package chash

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to a bucket index in [0, capacity). It must be
// deterministic. Distribution only affects performance.
type HashFunc func(key, capacity int) int

// ModuloHash uses the key's non-negative remainder as the index.
func ModuloHash(key, capacity int) int {
	idx := key % capacity
	if idx < 0 {
		idx += capacity
	}
	return idx
}

const (
	offset32 = 2166136261
	prime32  = 16777619
)

// FNVHash computes a 32-bit FNV-1a hash of the key's big-endian bytes.
func FNVHash(key, capacity int) int {
	buf := keyBytes(key)
	return int(uint64(fnv1a(buf[:])) % uint64(capacity))
}

// XXHash computes xxhash64 of the key's big-endian bytes. It is the default.
func XXHash(key, capacity int) int {
	buf := keyBytes(key)
	return int(xxhash.Sum64(buf[:]) % uint64(capacity))
}

func keyBytes(key int) [8]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(key))
	return buf
}

func fnv1a(b []byte) uint32 {
	hash := uint32(offset32)
	for _, c := range b {
		hash ^= uint32(c)
		hash *= prime32
	}
	return hash
}

// bucketIndex applies h and enforces its range contract.
func bucketIndex(h HashFunc, key, capacity int) int {
	idx := h(key, capacity)
	if idx < 0 || idx >= capacity {
		panic(fmt.Sprintf("chash: hash function returned index %d for key %d, want [0, %d)", idx, key, capacity))
	}
	return idx
}
