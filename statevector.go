package qtoken

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"math/rand"
	"sort"
)

/*
StateVector holds the amplitudes of an n-qubit register. Basis index bit k is
the value of qubit k, so qubit 0 is the least significant bit.
*/
type StateVector struct {
	numQubits int
	amps      []complex128
}

/*
NewStateVector returns the register initialised to |0...0⟩. The amplitude
count must fit in an int, so registers of bits.UintSize-1 qubits or more
fail with ErrTooManyQubits.
*/
func NewStateVector(numQubits int) (*StateVector, error) {
	if numQubits < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, numQubits)
	}

	if numQubits >= bits.UintSize-1 {
		return nil, fmt.Errorf("%w: %d qubits cannot be addressed", ErrTooManyQubits, numQubits)
	}

	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1

	return &StateVector{numQubits: numQubits, amps: amps}, nil
}

func (sv *StateVector) NumQubits() int {
	return sv.numQubits
}

// Amplitude returns the amplitude of basis state index.
func (sv *StateVector) Amplitude(index int) complex128 {
	return sv.amps[index]
}

// ApplyPhase multiplies every amplitude where qubit is |1⟩ by e^{iθ}.
func (sv *StateVector) ApplyPhase(angle float64, qubit int) {
	rotation := cmplx.Exp(complex(0, angle))
	mask := 1 << qubit

	for i := range sv.amps {
		if i&mask != 0 {
			sv.amps[i] *= rotation
		}
	}
}

func (sv *StateVector) ApplyHadamard(qubit int) {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	norm := complex(1/math.Sqrt2, 0)
	mask := 1 << qubit

	for i := range sv.amps {
		if i&mask != 0 {
			continue
		}

		alpha, beta := sv.amps[i], sv.amps[i|mask]
		sv.amps[i] = (alpha + beta) * norm
		sv.amps[i|mask] = (alpha - beta) * norm
	}
}

// ApplyControlledNot swaps the target's amplitudes wherever control is |1⟩.
func (sv *StateVector) ApplyControlledNot(control, target int) {
	cmask, tmask := 1<<control, 1<<target

	for i := range sv.amps {
		if i&cmask != 0 && i&tmask == 0 {
			sv.amps[i], sv.amps[i|tmask] = sv.amps[i|tmask], sv.amps[i]
		}
	}
}

// Probabilities returns |amplitude|² for every basis state.
func (sv *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv.amps))

	for i, amplitude := range sv.amps {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob
	}

	return probs
}

/*
Sample draws shots basis states from the register's distribution without
collapsing it.
*/
func (sv *StateVector) Sample(rng *rand.Rand, shots int) []int {
	probs := sv.Probabilities()
	cumulative := make([]float64, len(probs))

	total := 0.0
	for i, prob := range probs {
		total += prob
		cumulative[i] = total
	}

	samples := make([]int, shots)

	for shot := range samples {
		r := rng.Float64() * total

		measured := sort.SearchFloat64s(cumulative, r)
		if measured >= len(cumulative) {
			measured = len(cumulative) - 1
		}

		// Skip zero-probability states that share a cumulative value.
		for measured < len(probs)-1 && probs[measured] == 0 {
			measured++
		}

		samples[shot] = measured
	}

	return samples
}
