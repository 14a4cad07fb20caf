package qtoken

import "fmt"

// DefaultEntangleSpan is how many subsystem qubits each token half is wired to.
const DefaultEntangleSpan = 10

/*
Interconnect entangles the token register with the subsystem registers.

For every subsystem, in the order given, the first half of the token register
and then the second half are wired onto the subsystem's leading qubits:

	for i in 0..span-1:
	    cx token[i]      -> sub[i]
	    cx token[span+i] -> sub[i]

The span is fixed and does not follow the subsystem's size.
*/
type Interconnect struct {
	span int
}

func NewInterconnect() *Interconnect {
	return &Interconnect{span: DefaultEntangleSpan}
}

// Span returns the number of qubits wired per subsystem.
func (ic *Interconnect) Span() int {
	return ic.span
}

/*
Entangle emits the controlled-NOT operations linking token to every subsystem.
With at least one subsystem, the token range needs 2*span qubits and each
subsystem span qubits; an undersized range fails with ErrIndexOutOfRange
before anything is emitted. No subsystems means no operations.
*/
func (ic *Interconnect) Entangle(token QubitRange, subsystems []QubitRange) ([]GateOp, error) {
	if len(subsystems) > 0 && token.Len() < 2*ic.span {
		return nil, fmt.Errorf(
			"%w: token range %s has %d qubits, entangling needs %d",
			ErrIndexOutOfRange, token, token.Len(), 2*ic.span,
		)
	}

	for n, sub := range subsystems {
		if sub.Len() < ic.span {
			return nil, fmt.Errorf(
				"%w: subsystem %d range %s has %d qubits, entangling needs %d",
				ErrIndexOutOfRange, n, sub, sub.Len(), ic.span,
			)
		}
	}

	ops := make([]GateOp, 0, 2*ic.span*len(subsystems))

	for _, sub := range subsystems {
		for i := 0; i < ic.span; i++ {
			ops = append(ops,
				ControlledNot(token.At(i), sub.At(i)),
				ControlledNot(token.At(ic.span+i), sub.At(i)),
			)
		}
	}

	return ops, nil
}
