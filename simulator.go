package qtoken

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

const (
	// DefaultSimulatorQubits bounds the state vector at 2^20 amplitudes.
	DefaultSimulatorQubits = 20

	// MaxSimulatorQubits is the hard ceiling: 2^30 amplitudes take 16 GiB.
	MaxSimulatorQubits = 30
)

/*
Simulator is a local state-vector backend for small programs. Measurements are
treated as terminal: the unitary part is applied once and the measured qubits
are sampled for every shot. A program without measurements is read out on
every qubit, qubit k into classical bit k.
*/
type Simulator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	maxQubits int
}

func NewSimulator(seed int64, maxQubits int) *Simulator {
	if maxQubits <= 0 {
		maxQubits = DefaultSimulatorQubits
	}

	maxQubits = min(maxQubits, MaxSimulatorQubits)

	return &Simulator{
		rng:       rand.New(rand.NewSource(seed)),
		maxQubits: maxQubits,
	}
}

func (sim *Simulator) Name() string {
	return BackendSimulator
}

type readout struct {
	qubit int
	clbit int
}

func (sim *Simulator) Run(ctx context.Context, program *Program, shots int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if shots <= 0 {
		return nil, fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidConfig, shots)
	}

	if program.NumQubits > sim.maxQubits {
		return nil, fmt.Errorf(
			"%w: %d qubits, limit is %d",
			ErrTooManyQubits, program.NumQubits, sim.maxQubits,
		)
	}

	errnie.Info(
		"Simulator.Run - program %s, qubits %d, ops %d, shots %d",
		program.ID, program.NumQubits, len(program.Ops), shots,
	)

	start := time.Now()

	state, readouts, err := sim.evolve(program)
	if err != nil {
		return nil, err
	}

	numClbits := program.NumClbits
	if len(readouts) == 0 {
		numClbits = program.NumQubits

		for qubit := 0; qubit < program.NumQubits; qubit++ {
			readouts = append(readouts, readout{qubit: qubit, clbit: qubit})
		}
	}

	sim.mu.Lock()
	samples := state.Sample(sim.rng, shots)
	sim.mu.Unlock()

	counts := make(map[string]int)
	for _, sample := range samples {
		counts[bitstring(sample, readouts, numClbits)]++
	}

	return &Result{
		ProgramID: program.ID,
		Backend:   sim.Name(),
		Shots:     shots,
		Counts:    counts,
		Duration:  time.Since(start),
	}, nil
}

func (sim *Simulator) evolve(program *Program) (*StateVector, []readout, error) {
	state, err := NewStateVector(program.NumQubits)
	if err != nil {
		return nil, nil, err
	}

	measured := make(map[int]bool)

	var readouts []readout

	for n, op := range program.Ops {
		for _, qubit := range op.Qubits() {
			if qubit < 0 || qubit >= program.NumQubits {
				return nil, nil, fmt.Errorf(
					"%w: op %d (%s) addresses qubit %d of %d",
					ErrIndexOutOfRange, n, op, qubit, program.NumQubits,
				)
			}

			if op.Kind != KindMeasure && measured[qubit] {
				return nil, nil, fmt.Errorf("%w: op %d (%s)", ErrMidCircuitMeasurement, n, op)
			}
		}

		switch op.Kind {
		case KindPhase:
			state.ApplyPhase(op.Angle, op.Target)
		case KindHadamard:
			state.ApplyHadamard(op.Target)
		case KindControlledNot:
			state.ApplyControlledNot(op.Control, op.Target)
		case KindMeasure:
			if op.Clbit < 0 || op.Clbit >= program.NumClbits {
				return nil, nil, fmt.Errorf(
					"%w: op %d (%s) writes clbit %d of %d",
					ErrIndexOutOfRange, n, op, op.Clbit, program.NumClbits,
				)
			}

			measured[op.Target] = true
			readouts = append(readouts, readout{qubit: op.Target, clbit: op.Clbit})
		default:
			return nil, nil, fmt.Errorf("unsupported op %d: %s", n, op.Kind)
		}
	}

	return state, readouts, nil
}

// bitstring renders one sampled basis state through the readout map.
func bitstring(sample int, readouts []readout, numClbits int) string {
	bits := make([]byte, numClbits)
	for i := range bits {
		bits[i] = '0'
	}

	for _, ro := range readouts {
		bit := byte('0')
		if sample&(1<<ro.qubit) != 0 {
			bit = '1'
		}

		bits[numClbits-1-ro.clbit] = bit
	}

	return string(bits)
}
