// Package valuestore holds the last computed value of every plug of a
// running session in one flat array indexed by plug slot.
//
// # Concurrency Model
//
// A Store is not safe for concurrent use. It belongs to the session loop
// goroutine, which is the only writer and the only reader; input events and
// snapshot requests are funnelled through that goroutine instead of taking
// a lock here.
package valuestore

import "fmt"

// Store is a fixed-size array of plug values.
type Store struct {
	values []float64
}

// New creates a store with size zeroed slots.
func New(size int) *Store {
	if size < 0 {
		panic(fmt.Sprintf("valuestore: negative size %d", size))
	}
	return &Store{values: make([]float64, size)}
}

// Len returns the number of slots.
func (s *Store) Len() int { return len(s.values) }

// Get returns the value in slot.
func (s *Store) Get(slot int) float64 { return s.values[slot] }

// Set overwrites the value in slot.
func (s *Store) Set(slot int, v float64) { s.values[slot] = v }

// Add accumulates delta into slot.
func (s *Store) Add(slot int, delta float64) { s.values[slot] += delta }

// Sum returns the total of the given slots, 0 for none.
func (s *Store) Sum(slots []int) float64 {
	var total float64
	for _, slot := range slots {
		total += s.values[slot]
	}
	return total
}

// Zero clears the given slots.
func (s *Store) Zero(slots ...int) {
	for _, slot := range slots {
		s.values[slot] = 0
	}
}

// Snapshot returns a copy of every slot.
func (s *Store) Snapshot() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
