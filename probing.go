package chash

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const (
	slotEmpty byte = iota
	slotOccupied
	slotDeleted
)

const maxInsertRetries = 3

type slot struct {
	state byte
	key   int
	value int
}

// ProbingTable is an open addressing hash table using linear probing.
// Removed entries leave a tombstone that later inserts may reuse; resizing
// drops all tombstones. It is not safe for concurrent use.
type ProbingTable struct {
	cfg      config
	slots    []slot
	size     int
	deleted  int
	resizing bool
}

// NewProbing creates an empty table with capacity slots.
func NewProbing(capacity int, opts ...Option) (*ProbingTable, error) {
	cfg, err := newConfig(capacity, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create probing table: %w", err)
	}
	return &ProbingTable{cfg: cfg, slots: make([]slot, capacity)}, nil
}

// Insert adds or updates a key-value pair in the table.
func (p *ProbingTable) Insert(key, value int) bool {
	return p.insertWithRetry(key, value, 0)
}

// insertWithRetry probes for key, retrying after a resize.
func (p *ProbingTable) insertWithRetry(key, value, retryCount int) bool {
	if retryCount > maxInsertRetries {
		return false
	}

	numSlots := len(p.slots)
	idx := bucketIndex(p.cfg.hash, key, numSlots)
	tombstone := -1

	for i := 0; i < numSlots; i++ {
		cur := (idx + i) % numSlots
		s := &p.slots[cur]

		switch s.state {
		case slotEmpty:
			if tombstone >= 0 {
				p.claim(tombstone, key, value)
				return true
			}

			loadFactor := float64(p.size+p.deleted+1) / float64(numSlots)
			if loadFactor > ProbingMaxLoadFactor {
				p.cfg.tracef("Resize triggered at load factor %.2f (%d/%d slots used)\n",
					loadFactor, p.size+p.deleted+1, numSlots)
				p.resize()
				return p.insertWithRetry(key, value, retryCount+1)
			}

			*s = slot{state: slotOccupied, key: key, value: value}
			p.size++
			return true

		case slotOccupied:
			if s.key == key {
				s.value = value
				return true
			}

		case slotDeleted:
			if tombstone < 0 {
				tombstone = cur
			}
		}
	}

	if tombstone >= 0 {
		p.claim(tombstone, key, value)
		return true
	}

	p.resize()
	return p.insertWithRetry(key, value, retryCount+1)
}

func (p *ProbingTable) claim(idx, key, value int) {
	p.slots[idx] = slot{state: slotOccupied, key: key, value: value}
	p.deleted--
	p.size++
}

// lookup returns the slot holding key, or -1.
func (p *ProbingTable) lookup(key int) int {
	numSlots := len(p.slots)
	idx := bucketIndex(p.cfg.hash, key, numSlots)

	for i := 0; i < numSlots; i++ {
		cur := (idx + i) % numSlots
		switch p.slots[cur].state {
		case slotEmpty:
			return -1
		case slotOccupied:
			if p.slots[cur].key == key {
				return cur
			}
		}
	}
	return -1
}

// Find returns the value stored for key.
func (p *ProbingTable) Find(key int) (int, bool) {
	idx := p.lookup(key)
	if idx < 0 {
		return 0, false
	}
	return p.slots[idx].value, true
}

// Remove replaces the entry for key with a tombstone.
func (p *ProbingTable) Remove(key int) bool {
	idx := p.lookup(key)
	if idx < 0 {
		return false
	}
	p.slots[idx] = slot{state: slotDeleted}
	p.size--
	p.deleted++
	return true
}

func (p *ProbingTable) resize() {
	if p.resizing {
		panic("chash: resize triggered while rehashing")
	}

	next := &ProbingTable{
		cfg:      config{hash: p.cfg.hash},
		slots:    make([]slot, len(p.slots)*2),
		resizing: true,
	}
	for _, s := range p.slots {
		if s.state == slotOccupied {
			next.Insert(s.key, s.value)
		}
	}

	p.slots = next.slots
	p.size = next.size
	p.deleted = 0

	p.cfg.tracef("Resize complete: new slots=%d, used=%d\n", len(p.slots), p.size)
}

func (p *ProbingTable) Size() int { return p.size }

func (p *ProbingTable) Capacity() int { return len(p.slots) }

// Clear marks every slot empty. Capacity is kept.
func (p *ProbingTable) Clear() {
	for i := range p.slots {
		p.slots[i] = slot{}
	}
	p.size = 0
	p.deleted = 0
}

// Display writes the slot listing to standard output.
func (p *ProbingTable) Display() {
	_ = p.Dump(os.Stdout)
}

// Dump writes every slot followed by the size/capacity ratio to w.
func (p *ProbingTable) Dump(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "=== %s ===\n", p.Name())
	for i, s := range p.slots {
		fmt.Fprintf(&buf, "Slot %d: ", i)
		switch s.state {
		case slotOccupied:
			fmt.Fprintf(&buf, "(%d,%d) ", s.key, s.value)
		case slotDeleted:
			buf.WriteString("<deleted> ")
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "Size: %d/%d\n", p.size, len(p.slots))

	_, err := buf.WriteTo(w)
	return err
}

func (p *ProbingTable) Name() string {
	return "Linear Probing Hash Table"
}
