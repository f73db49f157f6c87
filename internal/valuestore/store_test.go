package valuestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetGetAdd(t *testing.T) {
	// --- Arrange ---
	s := New(4)

	// --- Act ---
	s.Set(0, 5)
	s.Add(1, 2)
	s.Add(1, 3)
	s.Set(3, -1)

	// --- Assert ---
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 5.0, s.Get(0))
	assert.Equal(t, 5.0, s.Get(1))
	assert.Equal(t, 0.0, s.Get(2))
	assert.Equal(t, -1.0, s.Get(3))
}

func TestStore_Sum(t *testing.T) {
	s := New(3)
	s.Set(0, 1.5)
	s.Set(1, 2.5)
	s.Set(2, 4)

	assert.Equal(t, 0.0, s.Sum(nil), "an unwired jack reads as zero")
	assert.Equal(t, 4.0, s.Sum([]int{2}))
	assert.Equal(t, 8.0, s.Sum([]int{0, 1, 2}))
	assert.Equal(t, 8.0, s.Sum([]int{2, 2}), "a plug wired twice counts twice")
}

func TestStore_ZeroAndSnapshot(t *testing.T) {
	s := New(3)
	s.Set(0, 1)
	s.Set(1, 2)
	s.Set(2, 3)

	snap := s.Snapshot()
	s.Zero(0, 2)

	assert.Equal(t, []float64{0, 2, 0}, s.Snapshot())
	assert.Equal(t, []float64{1, 2, 3}, snap, "snapshots are copies")
}

func TestNew_PanicsOnNegativeSize(t *testing.T) {
	assert.Panics(t, func() { New(-1) })
}
