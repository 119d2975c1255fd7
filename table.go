package chash

import (
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultCapacity is the bucket count used by the *Default constructors.
	DefaultCapacity = 16

	// MaxLoadFactor is the size/capacity ratio a ChainingTable never exceeds
	// after an insert.
	MaxLoadFactor = 0.75

	// ProbingMaxLoadFactor bounds occupied plus deleted slots in a ProbingTable.
	ProbingMaxLoadFactor = 0.7
)

// ErrInvalidCapacity is returned by constructors given a capacity below 1.
var ErrInvalidCapacity = errors.New("capacity must be positive")

// Table is the capability set shared by every hash table variant in this
// package, so that strategies can be exercised side by side.
type Table interface {
	// Insert adds key or overwrites its value. It reports success.
	Insert(key, value int) bool
	// Remove deletes key and reports whether it was present.
	Remove(key int) bool
	// Find returns the value stored for key.
	Find(key int) (int, bool)
	Size() int
	Capacity() int
	// Clear drops every entry but keeps the current capacity.
	Clear()
	// Display writes a debug dump to standard output.
	Display()
	Dump(w io.Writer) error
	Name() string
}

var (
	_ Table = (*ChainingTable)(nil)
	_ Table = (*ProbingTable)(nil)
)

// Option configures a table at construction time.
type Option func(*config)

type config struct {
	hash  HashFunc
	trace io.Writer
}

// WithHashFunc replaces the default XXHash bucket selection.
func WithHashFunc(h HashFunc) Option {
	return func(c *config) {
		if h != nil {
			c.hash = h
		}
	}
}

// WithTrace makes the table report resizes to w.
func WithTrace(w io.Writer) Option {
	return func(c *config) {
		c.trace = w
	}
}

func newConfig(capacity int, opts []Option) (config, error) {
	cfg := config{hash: XXHash}
	if capacity <= 0 {
		return cfg, fmt.Errorf("invalid capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

func (c config) tracef(format string, args ...interface{}) {
	if c.trace == nil {
		return
	}
	fmt.Fprintf(c.trace, format, args...)
}
