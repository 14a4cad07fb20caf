package qtoken

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCircuit(t *testing.T) {
	Convey("Given a circuit with room to spare", t, func() {
		circuit := NewCircuit(50)
		_, err := circuit.Allocate(3)
		So(err, ShouldBeNil)

		Convey("The program should be sized to the allocated qubits", func() {
			So(circuit.Program().NumQubits, ShouldEqual, 3)
			So(circuit.Program().QASM(), ShouldContainSubstring, "qreg q[3];")
		})

		Convey("An operation past the allocation should widen the program", func() {
			circuit.Append(Hadamard(7))
			So(circuit.Program().NumQubits, ShouldEqual, 8)
		})
	})

	Convey("Given a circuit with two qubits", t, func() {
		circuit := NewCircuit(2)

		r, err := circuit.Allocate(2)
		So(err, ShouldBeNil)
		So(r, ShouldResemble, NewQubitRange(0, 2))

		Convey("Allocating past the capacity should fail", func() {
			_, err := circuit.Allocate(1)
			So(errors.Is(err, ErrCapacityExceeded), ShouldBeTrue)
		})

		Convey("When operations are appended and the circuit is frozen", func() {
			circuit.Append(Hadamard(0), ControlledNot(0, 1), Phase(0.5, 1))
			circuit.Append(NewMeasurement().MeasureRange(r)...)

			program := circuit.Program()

			Convey("The program should carry the operations in order", func() {
				So(program.ID, ShouldNotBeEmpty)
				So(program.NumQubits, ShouldEqual, 2)
				So(program.NumClbits, ShouldEqual, 2)
				So(program.HasMeasurements(), ShouldBeTrue)
				So(program.Ops, ShouldResemble, []GateOp{
					Hadamard(0), ControlledNot(0, 1), Phase(0.5, 1), Measure(0, 0), Measure(1, 1),
				})
			})

			Convey("Later appends should not change it", func() {
				circuit.Append(Hadamard(1))

				So(len(program.Ops), ShouldEqual, 5)
				So(circuit.Len(), ShouldEqual, 6)
				So(circuit.Program().ID, ShouldNotEqual, program.ID)
			})

			Convey("It should render as OpenQASM 2.0", func() {
				So(program.QASM(), ShouldEqual, strings.Join([]string{
					"OPENQASM 2.0;",
					`include "qelib1.inc";`,
					"",
					"qreg q[2];",
					"creg c[2];",
					"",
					"h q[0];",
					"cx q[0],q[1];",
					"p(0.5) q[1];",
					"measure q[0] -> c[0];",
					"measure q[1] -> c[1];",
					"",
				}, "\n"))
			})
		})

		Convey("A program without measurements should not declare a classical register", func() {
			circuit.Append(Hadamard(1))
			qasm := circuit.Program().QASM()

			So(qasm, ShouldNotContainSubstring, "creg")
			So(qasm, ShouldContainSubstring, "h q[1];\n")
		})
	})
}

func TestGateOp(t *testing.T) {
	Convey("Given gate operations of every kind", t, func() {
		Convey("Single-qubit operations should touch only their target", func() {
			So(Phase(1, 3).Qubits(), ShouldResemble, []int{3})
			So(Hadamard(4).Qubits(), ShouldResemble, []int{4})
			So(Measure(5, 0).Qubits(), ShouldResemble, []int{5})
			So(Hadamard(4).Control, ShouldEqual, -1)
			So(Hadamard(4).Clbit, ShouldEqual, -1)
		})

		Convey("Controlled-NOT should touch control then target", func() {
			So(ControlledNot(1, 2).Qubits(), ShouldResemble, []int{1, 2})
		})

		Convey("Kinds should print their gate names", func() {
			So(KindPhase.String(), ShouldEqual, "p")
			So(KindHadamard.String(), ShouldEqual, "h")
			So(KindControlledNot.String(), ShouldEqual, "cx")
			So(KindMeasure.String(), ShouldEqual, "measure")
			So(GateKind(9).String(), ShouldEqual, "unknown(9)")
		})
	})
}
