package qtoken

import "math"

const angleEpsilon = 1e-12

/*
Transpile returns a copy of the program with runs of phase gates fused. Two
phase gates on the same qubit merge when nothing else touches that qubit in
between. Every phase angle is reduced into [0, 2π) and phases that reduce to
zero are dropped. Operations on different qubits keep their relative order.
*/
func Transpile(p *Program) *Program {
	fused := make([]GateOp, 0, len(p.Ops))
	last := make(map[int]int)

	for _, op := range p.Ops {
		if op.Kind == KindPhase {
			if at, ok := last[op.Target]; ok && fused[at].Kind == KindPhase {
				fused[at].Angle += op.Angle
				continue
			}
		}

		fused = append(fused, op)

		for _, qubit := range op.Qubits() {
			last[qubit] = len(fused) - 1
		}
	}

	ops := make([]GateOp, 0, len(fused))

	for _, op := range fused {
		if op.Kind == KindPhase {
			op.Angle = reduceAngle(op.Angle)

			if op.Angle == 0 {
				continue
			}
		}

		ops = append(ops, op)
	}

	return &Program{
		ID:        p.ID,
		NumQubits: p.NumQubits,
		NumClbits: p.NumClbits,
		Ops:       ops,
	}
}

func reduceAngle(angle float64) float64 {
	reduced := math.Mod(angle, 2*math.Pi)
	if reduced < 0 {
		reduced += 2 * math.Pi
	}

	if reduced < angleEpsilon || 2*math.Pi-reduced < angleEpsilon {
		return 0
	}

	return reduced
}
