package qtoken

import (
	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
Circuit is the main register every token system and subsystem is carved out
of. It owns the allocator for its qubits and collects operations in the order
they are appended. Nothing is executed here: the frozen Program is what a
Backend consumes.
*/
type Circuit struct {
	allocator *Allocator
	ops       []GateOp
}

func NewCircuit(capacity int) *Circuit {
	return &Circuit{
		allocator: NewAllocator(capacity),
		ops:       make([]GateOp, 0),
	}
}

// Allocate reserves the next n qubits of the circuit.
func (c *Circuit) Allocate(n int) (QubitRange, error) {
	return c.allocator.Allocate(n)
}

func (c *Circuit) Allocator() *Allocator {
	return c.allocator
}

// Append adds operations to the end of the circuit.
func (c *Circuit) Append(ops ...GateOp) {
	c.ops = append(c.ops, ops...)
}

func (c *Circuit) Len() int {
	return len(c.ops)
}

/*
Program freezes the current operations into a Program sized to the allocated
qubits, widened to cover any operation addressing a qubit past them. Later
appends do not affect programs already returned.
*/
func (c *Circuit) Program() *Program {
	ops := make([]GateOp, len(c.ops))
	copy(ops, c.ops)

	program := &Program{
		ID:        uuid.NewString(),
		NumQubits: width(c.allocator.Allocated(), ops),
		NumClbits: countClbits(ops),
		Ops:       ops,
	}

	errnie.Info(
		"Circuit.Program - id %s, qubits %d/%d, ops %d",
		program.ID, program.NumQubits, c.allocator.Capacity(), len(ops),
	)

	return program
}

/*
Program is the ordered operation list handed across the backend boundary.
*/
type Program struct {
	ID        string   `msgpack:"id"`
	NumQubits int      `msgpack:"num_qubits"`
	NumClbits int      `msgpack:"num_clbits"`
	Ops       []GateOp `msgpack:"ops"`
}

// HasMeasurements reports whether any operation reads into a classical bit.
func (p *Program) HasMeasurements() bool {
	for _, op := range p.Ops {
		if op.Kind == KindMeasure {
			return true
		}
	}

	return false
}

func countClbits(ops []GateOp) int {
	n := 0

	for _, op := range ops {
		if op.Kind == KindMeasure && op.Clbit+1 > n {
			n = op.Clbit + 1
		}
	}

	return n
}

func width(allocated int, ops []GateOp) int {
	n := allocated

	for _, op := range ops {
		for _, qubit := range op.Qubits() {
			n = max(n, qubit+1)
		}
	}

	return n
}
