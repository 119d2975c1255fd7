package chash

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

type entry struct {
	key   int
	value int
}

// ChainingTable is a hash table resolving collisions by keeping every entry
// of a bucket in a slice. It is not safe for concurrent use.
type ChainingTable struct {
	cfg      config
	buckets  [][]entry
	capacity int
	size     int
	resizing bool
}

// NewChaining creates an empty table with capacity buckets.
func NewChaining(capacity int, opts ...Option) (*ChainingTable, error) {
	cfg, err := newConfig(capacity, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create chaining table: %w", err)
	}
	return newChaining(cfg, capacity), nil
}

// NewChainingDefault creates an empty table with DefaultCapacity buckets.
func NewChainingDefault(opts ...Option) *ChainingTable {
	t, _ := NewChaining(DefaultCapacity, opts...)
	return t
}

func newChaining(cfg config, capacity int) *ChainingTable {
	return &ChainingTable{
		cfg:      cfg,
		buckets:  make([][]entry, capacity),
		capacity: capacity,
	}
}

// Insert adds or updates a key-value pair. The table grows before a new
// entry would push the load factor above MaxLoadFactor. It always succeeds.
func (c *ChainingTable) Insert(key, value int) bool {
	idx := bucketIndex(c.cfg.hash, key, c.capacity)
	bucket := c.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return true
		}
	}

	if float64(c.size+1)/float64(c.capacity) > MaxLoadFactor {
		c.cfg.tracef("Resize triggered at load factor %.2f (%d/%d buckets)\n",
			float64(c.size+1)/float64(c.capacity), c.size+1, c.capacity)
		c.resize()
		idx = bucketIndex(c.cfg.hash, key, c.capacity)
	}

	c.buckets[idx] = append(c.buckets[idx], entry{key: key, value: value})
	c.size++
	return true
}

// resize doubles the bucket count and re-inserts every entry into a fresh
// table, which replaces the current storage once it is fully populated.
func (c *ChainingTable) resize() {
	if c.resizing {
		panic("chash: resize triggered while rehashing")
	}

	next := newChaining(config{hash: c.cfg.hash}, c.capacity*2)
	next.resizing = true
	for _, bucket := range c.buckets {
		for _, e := range bucket {
			next.Insert(e.key, e.value)
		}
	}

	c.buckets = next.buckets
	c.capacity = next.capacity
	c.size = next.size

	c.cfg.tracef("Resize complete: new buckets=%d, size=%d\n", c.capacity, c.size)
}

// Remove deletes key. The last entry of the bucket takes its place.
func (c *ChainingTable) Remove(key int) bool {
	idx := bucketIndex(c.cfg.hash, key, c.capacity)
	bucket := c.buckets[idx]
	for i := range bucket {
		if bucket[i].key != key {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		c.buckets[idx] = bucket[:last]
		c.size--
		return true
	}
	return false
}

// Find returns the value stored for key.
func (c *ChainingTable) Find(key int) (int, bool) {
	for _, e := range c.buckets[bucketIndex(c.cfg.hash, key, c.capacity)] {
		if e.key == key {
			return e.value, true
		}
	}
	return 0, false
}

func (c *ChainingTable) Size() int { return c.size }

func (c *ChainingTable) Capacity() int { return c.capacity }

// LoadFactor returns size/capacity.
func (c *ChainingTable) LoadFactor() float64 {
	return float64(c.size) / float64(c.capacity)
}

// Clear empties every bucket in place. Capacity is kept.
func (c *ChainingTable) Clear() {
	for i := range c.buckets {
		c.buckets[i] = c.buckets[i][:0]
	}
	c.size = 0
}

// Display writes the bucket listing to standard output.
func (c *ChainingTable) Display() {
	_ = c.Dump(os.Stdout)
}

// Dump writes every bucket followed by the size/capacity ratio to w.
func (c *ChainingTable) Dump(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "=== %s ===\n", c.Name())
	for i, bucket := range c.buckets {
		fmt.Fprintf(&buf, "Bucket %d: ", i)
		for _, e := range bucket {
			fmt.Fprintf(&buf, "(%d,%d) ", e.key, e.value)
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "Size: %d/%d\n", c.size, c.capacity)

	_, err := buf.WriteTo(w)
	return err
}

func (c *ChainingTable) Name() string {
	return "Chaining Hash Table (Vector)"
}
