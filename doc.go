/*
Package chash provides in-memory hash tables mapping int keys to int values.

ChainingTable is the primary implementation. Each bucket holds a slice of
entries that hashed to it, and the bucket count doubles whenever a new entry
would push the load factor above 0.75. Every entry is then re-inserted into
a fresh set of buckets which replaces the old one once complete.

Basic usage:

	import "github.com/theflywheel/chash"

	t, err := chash.NewChaining(16)
	if err != nil {
		log.Fatal(err)
	}

	t.Insert(1, 100)
	t.Insert(1, 300) // overwrites, Size stays 1

	if v, ok := t.Find(1); ok {
		fmt.Println("Value:", v)
	}

	t.Remove(1)

ProbingTable implements the same Table interface with open addressing, so
the two strategies can be compared under one workload.

Features:

  - Fixed int keys and values
  - Pluggable bucket selection through HashFunc (XXHash by default, FNVHash
    and ModuloHash provided)
  - Automatic doubling, capacity never shrinks (Clear keeps it)
  - Optional resize trace via WithTrace
  - Debug dump of every bucket via Display or Dump

Implementation Details:

A HashFunc must return an index in [0, capacity) for every key. Tables panic
when that contract is broken. Correctness does not depend on distribution:
a HashFunc that sends every key to bucket 0 yields a slow but correct table.

Tables are not safe for concurrent use.
*/
package chash
