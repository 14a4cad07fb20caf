package qtoken

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateVector(t *testing.T) {
	Convey("Given a one-qubit register", t, func() {
		sv, err := NewStateVector(1)
		So(err, ShouldBeNil)

		So(sv.NumQubits(), ShouldEqual, 1)
		So(sv.Amplitude(0), ShouldEqual, complex(1, 0))

		Convey("A Hadamard should create an equal superposition", func() {
			sv.ApplyHadamard(0)
			probs := sv.Probabilities()

			So(probs[0], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[1], ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("H P(π) H should flip the qubit", func() {
			sv.ApplyHadamard(0)
			sv.ApplyPhase(math.Pi, 0)
			sv.ApplyHadamard(0)
			probs := sv.Probabilities()

			So(probs[0], ShouldAlmostEqual, 0, 1e-12)
			So(probs[1], ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given a two-qubit register with qubit 0 set", t, func() {
		sv, err := NewStateVector(2)
		So(err, ShouldBeNil)

		sv.ApplyHadamard(0)
		sv.ApplyPhase(math.Pi, 0)
		sv.ApplyHadamard(0)

		Convey("A controlled-NOT should set the target", func() {
			sv.ApplyControlledNot(0, 1)
			So(sv.Probabilities()[3], ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A controlled-NOT from the clear qubit should do nothing", func() {
			sv.ApplyControlledNot(1, 0)
			So(sv.Probabilities()[1], ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given register sizes that cannot be addressed", t, func() {
		_, err := NewStateVector(-1)
		So(errors.Is(err, ErrInvalidCount), ShouldBeTrue)

		_, err = NewStateVector(64)
		So(errors.Is(err, ErrTooManyQubits), ShouldBeTrue)
	})
}

func TestSimulator(t *testing.T) {
	Convey("Given a seeded simulator", t, func() {
		ctx := context.Background()
		sim := NewSimulator(7, 0)

		So(sim.Name(), ShouldEqual, BackendSimulator)

		build := func(qubits int, ops ...GateOp) *Program {
			circuit := NewCircuit(qubits)
			_, err := circuit.Allocate(qubits)
			So(err, ShouldBeNil)

			circuit.Append(ops...)
			return circuit.Program()
		}

		Convey("When measuring a qubit in superposition", func() {
			program := build(1, Hadamard(0), Measure(0, 0))
			result, err := sim.Run(ctx, program, 1000)
			So(err, ShouldBeNil)

			Convey("Both outcomes should appear and sum to the shots", func() {
				So(result.ProgramID, ShouldEqual, program.ID)
				So(result.Shots, ShouldEqual, 1000)
				So(result.Total(), ShouldEqual, 1000)
				So(len(result.Counts), ShouldEqual, 2)
				So(result.Counts["0"], ShouldBeBetween, 400, 600)
				So(result.Counts["1"], ShouldBeBetween, 400, 600)
			})
		})

		Convey("When measuring a Bell pair", func() {
			program := build(2, Hadamard(0), ControlledNot(0, 1), Measure(0, 0), Measure(1, 1))
			result, err := sim.Run(ctx, program, 500)
			So(err, ShouldBeNil)

			Convey("Only correlated outcomes should appear", func() {
				So(result.Total(), ShouldEqual, 500)

				for outcome := range result.Counts {
					So(outcome, ShouldBeIn, "00", "11")
				}
			})
		})

		Convey("When measuring a flipped qubit onto a higher classical bit", func() {
			program := build(2, Hadamard(0), Phase(math.Pi, 0), Hadamard(0), Measure(0, 1))
			result, err := sim.Run(ctx, program, 100)
			So(err, ShouldBeNil)

			Convey("Classical bit 0 should be the rightmost character", func() {
				So(result.Counts, ShouldResemble, map[string]int{"10": 100})
			})
		})

		Convey("When the program has no measurements", func() {
			program := build(2, Hadamard(1))
			result, err := sim.Run(ctx, program, 200)
			So(err, ShouldBeNil)

			Convey("Every qubit should be read onto its own classical bit", func() {
				for outcome := range result.Counts {
					So(outcome, ShouldBeIn, "00", "10")
				}
				So(result.Total(), ShouldEqual, 200)
			})
		})

		Convey("When two simulators share a seed", func() {
			program := build(3, Hadamard(0), Hadamard(1), Hadamard(2))
			a, err := NewSimulator(11, 0).Run(ctx, program, 300)
			So(err, ShouldBeNil)
			b, err := NewSimulator(11, 0).Run(ctx, program, 300)
			So(err, ShouldBeNil)

			So(a.Counts, ShouldResemble, b.Counts)
		})

		Convey("When the program is wider than the simulator", func() {
			_, err := NewSimulator(1, 4).Run(ctx, build(5, Hadamard(0)), 10)
			So(errors.Is(err, ErrTooManyQubits), ShouldBeTrue)
		})

		Convey("When the limit is above the hard ceiling", func() {
			wide := NewSimulator(1, 64)

			_, err := wide.Run(ctx, build(64, Hadamard(0)), 1)
			So(errors.Is(err, ErrTooManyQubits), ShouldBeTrue)

			_, err = wide.Run(ctx, build(MaxSimulatorQubits+1), 1)
			So(errors.Is(err, ErrTooManyQubits), ShouldBeTrue)
		})

		Convey("When only part of the capacity is allocated", func() {
			circuit := NewCircuit(50)
			r, err := circuit.Allocate(2)
			So(err, ShouldBeNil)

			circuit.Append(Hadamard(r.At(0)), ControlledNot(r.At(0), r.At(1)))
			program := circuit.Program()

			result, err := sim.Run(ctx, program, 100)
			So(err, ShouldBeNil)

			So(program.NumQubits, ShouldEqual, 2)
			So(result.Total(), ShouldEqual, 100)
		})

		Convey("When a gate follows a measurement on the same qubit", func() {
			_, err := sim.Run(ctx, build(1, Measure(0, 0), Hadamard(0)), 10)
			So(errors.Is(err, ErrMidCircuitMeasurement), ShouldBeTrue)
		})

		Convey("When an operation addresses a missing qubit", func() {
			program := &Program{ID: "bad", NumQubits: 1, Ops: []GateOp{Hadamard(3)}}
			_, err := sim.Run(ctx, program, 10)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})

		Convey("When the shot count is not positive", func() {
			_, err := sim.Run(ctx, build(1, Hadamard(0)), 0)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := sim.Run(cancelled, build(1, Hadamard(0)), 10)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given an encoded word that fits the simulator", t, func() {
		config := NewConfig()
		config.Capacity = 20
		config.Subsystems = 0
		config.Measure = true

		encoding, err := NewEncoder(config).Encode("HELLOQUANTUM")
		So(err, ShouldBeNil)

		result, err := NewSimulator(config.Seed, config.SimulatorQubits).Run(context.Background(), encoding.Program, 64)
		So(err, ShouldBeNil)

		Convey("Every outcome should span the token register", func() {
			So(result.Total(), ShouldEqual, 64)

			for outcome := range result.Counts {
				So(len(outcome), ShouldEqual, 20)
			}
		})
	})
}
