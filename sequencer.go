package qtoken

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// phasesPerQubit is the number of phase angles a layer consumes per qubit slot.
const phasesPerQubit = 3

// LayerMode selects the gate pattern a LayerSequencer emits.
type LayerMode uint8

const (
	/*
		TokenMode takes a training matrix and an input matrix, both shaped
		(3, N). Per qubit slot it emits P(train) P(input) H, twice, then a
		final P(train) P(input) without the Hadamard.
	*/
	TokenMode LayerMode = iota

	/*
		SubsystemMode takes one matrix shaped (N, 3). Per qubit slot it emits
		P H P H P.
	*/
	SubsystemMode
)

func (mode LayerMode) String() string {
	switch mode {
	case TokenMode:
		return "token"
	case SubsystemMode:
		return "subsystem"
	default:
		return fmt.Sprintf("LayerMode(%d)", uint8(mode))
	}
}

// LayerSequencer turns phase matrices into per-qubit gate sequences over a range.
type LayerSequencer struct {
	Mode LayerMode
}

func NewLayerSequencer(mode LayerMode) *LayerSequencer {
	return &LayerSequencer{Mode: mode}
}

/*
Sequence emits the layer's operations for every qubit slot of r, slot 0 first.
TokenMode needs exactly two matrices, SubsystemMode exactly one. A matrix too
small for the range fails with ErrIndexOutOfRange and no operations are returned.
*/
func (ls *LayerSequencer) Sequence(r QubitRange, matrices ...mat.Matrix) ([]GateOp, error) {
	switch ls.Mode {
	case TokenMode:
		if len(matrices) != 2 {
			return nil, fmt.Errorf("%w: %s layer takes 2, got %d", ErrLayerInputs, ls.Mode, len(matrices))
		}

		return ls.tokenLayer(r, matrices[0], matrices[1])
	case SubsystemMode:
		if len(matrices) != 1 {
			return nil, fmt.Errorf("%w: %s layer takes 1, got %d", ErrLayerInputs, ls.Mode, len(matrices))
		}

		return ls.subsystemLayer(r, matrices[0])
	default:
		return nil, fmt.Errorf("%w: unknown mode %s", ErrLayerInputs, ls.Mode)
	}
}

func (ls *LayerSequencer) tokenLayer(r QubitRange, train, input mat.Matrix) ([]GateOp, error) {
	for _, in := range []struct {
		name string
		m    mat.Matrix
	}{{"training", train}, {"input", input}} {
		if rows, cols := in.m.Dims(); rows < phasesPerQubit || cols < r.Len() {
			return nil, fmt.Errorf(
				"%w: %s matrix is %dx%d, range %s needs %dx%d",
				ErrIndexOutOfRange, in.name, rows, cols, r, phasesPerQubit, r.Len(),
			)
		}
	}

	ops := make([]GateOp, 0, r.Len()*(2*phasesPerQubit+phasesPerQubit-1))

	for slot := 0; slot < r.Len(); slot++ {
		qubit := r.At(slot)

		for j := 0; j < phasesPerQubit; j++ {
			ops = append(ops,
				Phase(train.At(j, slot), qubit),
				Phase(input.At(j, slot), qubit),
			)

			if j < phasesPerQubit-1 {
				ops = append(ops, Hadamard(qubit))
			}
		}
	}

	return ops, nil
}

func (ls *LayerSequencer) subsystemLayer(r QubitRange, phases mat.Matrix) ([]GateOp, error) {
	if rows, cols := phases.Dims(); rows < r.Len() || cols < phasesPerQubit {
		return nil, fmt.Errorf(
			"%w: phase matrix is %dx%d, range %s needs %dx%d",
			ErrIndexOutOfRange, rows, cols, r, r.Len(), phasesPerQubit,
		)
	}

	ops := make([]GateOp, 0, r.Len()*(2*phasesPerQubit-1))

	for slot := 0; slot < r.Len(); slot++ {
		qubit := r.At(slot)

		for j := 0; j < phasesPerQubit; j++ {
			ops = append(ops, Phase(phases.At(slot, j), qubit))

			if j < phasesPerQubit-1 {
				ops = append(ops, Hadamard(qubit))
			}
		}
	}

	return ops, nil
}
