package qtoken

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

func TestLayerSequencer(t *testing.T) {
	Convey("Given a two-qubit range starting at qubit 5", t, func() {
		r := NewQubitRange(5, 2)

		Convey("When sequencing a token layer", func() {
			train := mat.NewDense(3, 2, []float64{
				0.1, 0.2,
				0.3, 0.4,
				0.5, 0.6,
			})
			input := mat.NewDense(3, 2, []float64{
				1.1, 1.2,
				1.3, 1.4,
				1.5, 1.6,
			})

			ops, err := NewLayerSequencer(TokenMode).Sequence(r, train, input)
			So(err, ShouldBeNil)

			Convey("Each qubit should get P P H P P H P P in slot order", func() {
				So(ops, ShouldResemble, []GateOp{
					Phase(0.1, 5), Phase(1.1, 5), Hadamard(5),
					Phase(0.3, 5), Phase(1.3, 5), Hadamard(5),
					Phase(0.5, 5), Phase(1.5, 5),
					Phase(0.2, 6), Phase(1.2, 6), Hadamard(6),
					Phase(0.4, 6), Phase(1.4, 6), Hadamard(6),
					Phase(0.6, 6), Phase(1.6, 6),
				})
			})
		})

		Convey("When sequencing a subsystem layer", func() {
			phases := mat.NewDense(2, 3, []float64{
				0.1, 0.2, 0.3,
				0.4, 0.5, 0.6,
			})

			ops, err := NewLayerSequencer(SubsystemMode).Sequence(r, phases)
			So(err, ShouldBeNil)

			Convey("Each qubit should get P H P H P from its row", func() {
				So(ops, ShouldResemble, []GateOp{
					Phase(0.1, 5), Hadamard(5), Phase(0.2, 5), Hadamard(5), Phase(0.3, 5),
					Phase(0.4, 6), Hadamard(6), Phase(0.5, 6), Hadamard(6), Phase(0.6, 6),
				})
			})
		})

		Convey("When the token matrices are too narrow", func() {
			narrow := mat.NewDense(3, 1, nil)
			ops, err := NewLayerSequencer(TokenMode).Sequence(r, narrow, mat.NewDense(3, 2, nil))

			So(ops, ShouldBeNil)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})

		Convey("When the subsystem matrix has the token shape", func() {
			_, err := NewLayerSequencer(SubsystemMode).Sequence(r, mat.NewDense(1, 2, nil))

			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})

		Convey("When a layer is given the wrong number of matrices", func() {
			m := mat.NewDense(3, 3, nil)

			_, err := NewLayerSequencer(TokenMode).Sequence(r, m)
			So(errors.Is(err, ErrLayerInputs), ShouldBeTrue)

			_, err = NewLayerSequencer(SubsystemMode).Sequence(r, m, m)
			So(errors.Is(err, ErrLayerInputs), ShouldBeTrue)
		})
	})

	Convey("Given a 20-qubit token register and random input phases", t, func() {
		r := NewQubitRange(0, 20)
		token := NewTokenizer().Tokenize("HELLOQUANTUM")
		input := RandomPhaseMatrix(NewAngleSource(42), 3, 20)

		ops, err := NewLayerSequencer(TokenMode).Sequence(r, token.Matrix(), input)
		So(err, ShouldBeNil)

		Convey("There should be 6 phases and 2 Hadamards per qubit", func() {
			stats := Stats(&Program{NumQubits: 20, Ops: ops})

			if stats.Phase != 120 {
				t.Log(spew.Sdump(ops[:8]))
			}

			So(stats.Phase, ShouldEqual, 120)
			So(stats.Hadamard, ShouldEqual, 40)
			So(ops[0], ShouldResemble, Phase(token[0].ASCII, 0))
			So(ops[1], ShouldResemble, Phase(input.At(0, 0), 0))
			So(ops[3], ShouldResemble, Phase(token[0].Position, 0))
			So(ops[6], ShouldResemble, Phase(token[0].Context, 0))
		})
	})
}

func TestAngleSource(t *testing.T) {
	Convey("Given two angle sources with the same seed", t, func() {
		a, b := NewAngleSource(7), NewAngleSource(7)

		Convey("They should produce the same angles in [0, 2π)", func() {
			for i := 0; i < 100; i++ {
				angle := a.Angle()
				So(angle, ShouldEqual, b.Angle())
				So(angle, ShouldBeGreaterThanOrEqualTo, 0)
				So(angle, ShouldBeLessThan, 6.283185307179587)
			}
		})

		Convey("Random phase matrices should be filled row by row", func() {
			m := RandomPhaseMatrix(a, 2, 3)

			So(m.At(0, 0), ShouldEqual, b.Angle())
			So(m.At(0, 1), ShouldEqual, b.Angle())
			So(m.At(0, 2), ShouldEqual, b.Angle())
			So(m.At(1, 0), ShouldEqual, b.Angle())
		})
	})

	Convey("Given a fixed angle source", t, func() {
		src := NewFixedAngles(1, 2)

		So(src.Angle(), ShouldEqual, 1.0)
		So(src.Angle(), ShouldEqual, 2.0)
		So(src.Angle(), ShouldEqual, 1.0)
		So(NewFixedAngles().Angle(), ShouldEqual, 0.0)
	})
}
