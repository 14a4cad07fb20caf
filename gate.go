package qtoken

import (
	"fmt"
	"strconv"
)

// GateKind identifies the operation a GateOp performs.
type GateKind uint8

const (
	KindPhase GateKind = iota
	KindHadamard
	KindControlledNot
	KindMeasure
)

func (kind GateKind) String() string {
	switch kind {
	case KindPhase:
		return "p"
	case KindHadamard:
		return "h"
	case KindControlledNot:
		return "cx"
	case KindMeasure:
		return "measure"
	default:
		return "unknown(" + strconv.Itoa(int(kind)) + ")"
	}
}

/*
GateOp is one abstract operation handed to a backend. Single-qubit operations
address Target and carry Control == -1. Clbit is only meaningful for
measurements and is -1 otherwise.
*/
type GateOp struct {
	Kind    GateKind `msgpack:"kind"`
	Angle   float64  `msgpack:"angle,omitempty"`
	Control int      `msgpack:"control"`
	Target  int      `msgpack:"target"`
	Clbit   int      `msgpack:"clbit"`
}

// Phase rotates the phase of qubit by angle radians.
func Phase(angle float64, qubit int) GateOp {
	return GateOp{Kind: KindPhase, Angle: angle, Control: -1, Target: qubit, Clbit: -1}
}

func Hadamard(qubit int) GateOp {
	return GateOp{Kind: KindHadamard, Control: -1, Target: qubit, Clbit: -1}
}

// ControlledNot flips target when control is set.
func ControlledNot(control, target int) GateOp {
	return GateOp{Kind: KindControlledNot, Control: control, Target: target, Clbit: -1}
}

// Measure reads qubit into classical bit clbit.
func Measure(qubit, clbit int) GateOp {
	return GateOp{Kind: KindMeasure, Control: -1, Target: qubit, Clbit: clbit}
}

// Qubits lists the qubit indices the operation touches, control first.
func (op GateOp) Qubits() []int {
	if op.Kind == KindControlledNot {
		return []int{op.Control, op.Target}
	}

	return []int{op.Target}
}

func (op GateOp) String() string {
	switch op.Kind {
	case KindPhase:
		return fmt.Sprintf("p(%s) q[%d]", formatAngle(op.Angle), op.Target)
	case KindControlledNot:
		return fmt.Sprintf("cx q[%d],q[%d]", op.Control, op.Target)
	case KindMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d]", op.Target, op.Clbit)
	default:
		return fmt.Sprintf("%s q[%d]", op.Kind, op.Target)
	}
}

func formatAngle(angle float64) string {
	return strconv.FormatFloat(angle, 'g', -1, 64)
}
