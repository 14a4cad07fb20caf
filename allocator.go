package qtoken

import "fmt"

// QubitRange is the half-open interval of qubit indices [Start, Start+Count).
type QubitRange struct {
	Start int `msgpack:"start"`
	Count int `msgpack:"count"`
}

// NewQubitRange returns the range [start, start+count).
func NewQubitRange(start, count int) QubitRange {
	return QubitRange{Start: start, Count: count}
}

func (r QubitRange) Len() int {
	return r.Count
}

// End is the first index past the range.
func (r QubitRange) End() int {
	return r.Start + r.Count
}

// At returns the i-th qubit index of the range. The caller keeps i within [0, Len()).
func (r QubitRange) At(i int) int {
	return r.Start + i
}

func (r QubitRange) Contains(qubit int) bool {
	return qubit >= r.Start && qubit < r.End()
}

// Overlaps reports whether the two ranges share any qubit index.
func (r QubitRange) Overlaps(other QubitRange) bool {
	if r.Count == 0 || other.Count == 0 {
		return false
	}

	return r.Start < other.End() && other.Start < r.End()
}

// Indices expands the range into its qubit indices, in ascending order.
func (r QubitRange) Indices() []int {
	indices := make([]int, r.Count)

	for i := range indices {
		indices[i] = r.Start + i
	}

	return indices
}

func (r QubitRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

/*
Allocator hands out contiguous qubit ranges from a fixed capacity. The cursor
only ever moves forward: granted ranges are permanent and never overlap.
*/
type Allocator struct {
	capacity int
	cursor   int
}

func NewAllocator(capacity int) *Allocator {
	return &Allocator{capacity: capacity}
}

/*
Allocate reserves the next n qubits. A request that would take the cursor past
the capacity fails with ErrCapacityExceeded and leaves the allocator unchanged.
*/
func (a *Allocator) Allocate(n int) (QubitRange, error) {
	if n < 0 {
		return QubitRange{}, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	if a.cursor+n > a.capacity {
		return QubitRange{}, fmt.Errorf(
			"%w: requested %d, %d of %d in use",
			ErrCapacityExceeded, n, a.cursor, a.capacity,
		)
	}

	r := NewQubitRange(a.cursor, n)
	a.cursor += n

	return r, nil
}

func (a *Allocator) Capacity() int {
	return a.capacity
}

// Allocated is the number of qubits granted so far.
func (a *Allocator) Allocated() int {
	return a.cursor
}

func (a *Allocator) Remaining() int {
	return a.capacity - a.cursor
}
