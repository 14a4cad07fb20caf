package qtoken

import (
	"fmt"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

/*
Encoding is everything produced while encoding one word: the token, the phase
matrices fed to every layer, the ranges they were applied to and the frozen
program.
*/
type Encoding struct {
	Word              string
	Prepared          string
	Token             Token
	TokenRange        QubitRange
	TokenMatrix       mat.Matrix
	InputMatrix       *mat.Dense
	SubsystemRanges   []QubitRange
	SubsystemMatrices []*mat.Dense
	Program           *Program
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithAngleSource replaces the seeded source used for input and subsystem phases.
func WithAngleSource(src AngleSource) EncoderOption {
	return func(e *Encoder) {
		e.angles = src
	}
}

func WithTokenizer(tokenizer *Tokenizer) EncoderOption {
	return func(e *Encoder) {
		e.tokenizer = tokenizer
	}
}

/*
Encoder wires the tokenizer, allocator, layers and interconnect into one
circuit per word:

 1. tokenize the word
 2. allocate the token register and apply the token layer, using the
    transposed token as training phases and random input phases
 3. allocate each subsystem and apply its layer with random phases
 4. entangle the token register with every subsystem
 5. optionally measure the token register followed by every subsystem
*/
type Encoder struct {
	config       *Config
	tokenizer    *Tokenizer
	angles       AngleSource
	interconnect *Interconnect
	measurement  *Measurement
}

func NewEncoder(config *Config, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		config:       config,
		tokenizer:    NewTokenizer(),
		angles:       NewAngleSource(config.Seed),
		interconnect: NewInterconnect(),
		measurement:  NewMeasurement(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode builds the circuit for word. Allocation and sizing errors are returned as is.
func (e *Encoder) Encode(word string) (*Encoding, error) {
	errnie.Info(
		"Encoder.Encode - word %q, capacity %d, token qubits %d, subsystems %dx%d",
		word, e.config.Capacity, e.config.TokenQubits, e.config.Subsystems, e.config.SubsystemQubits,
	)

	circuit := NewCircuit(e.config.Capacity)

	encoding := &Encoding{
		Word:     word,
		Prepared: e.tokenizer.Prepare(word),
		Token:    e.tokenizer.Tokenize(word),
	}

	if err := e.tokenSystem(circuit, encoding); err != nil {
		return nil, err
	}

	for n := 0; n < e.config.Subsystems; n++ {
		if err := e.subsystem(circuit, encoding); err != nil {
			return nil, fmt.Errorf("subsystem %d: %w", n, err)
		}
	}

	ops, err := e.interconnect.Entangle(encoding.TokenRange, encoding.SubsystemRanges)
	if err != nil {
		return nil, fmt.Errorf("interconnect: %w", err)
	}
	circuit.Append(ops...)

	if e.config.Measure {
		ranges := append([]QubitRange{encoding.TokenRange}, encoding.SubsystemRanges...)
		circuit.Append(e.measurement.MeasureRanges(ranges...)...)
	}

	encoding.Program = circuit.Program()

	return encoding, nil
}

func (e *Encoder) tokenSystem(circuit *Circuit, encoding *Encoding) error {
	r, err := circuit.Allocate(e.config.TokenQubits)
	if err != nil {
		return fmt.Errorf("token system: %w", err)
	}

	if r.Len() > len(encoding.Token) {
		return fmt.Errorf(
			"token system: %w: %d qubits but token length is %d",
			ErrIndexOutOfRange, r.Len(), len(encoding.Token),
		)
	}

	train := encoding.Token.Matrix().Slice(0, phasesPerQubit, 0, max(r.Len(), 1))
	input := RandomPhaseMatrix(e.angles, phasesPerQubit, max(r.Len(), 1))

	ops, err := NewLayerSequencer(TokenMode).Sequence(r, train, input)
	if err != nil {
		return fmt.Errorf("token system: %w", err)
	}
	circuit.Append(ops...)

	encoding.TokenRange = r
	encoding.TokenMatrix = train
	encoding.InputMatrix = input

	return nil
}

func (e *Encoder) subsystem(circuit *Circuit, encoding *Encoding) error {
	r, err := circuit.Allocate(e.config.SubsystemQubits)
	if err != nil {
		return err
	}

	phases := RandomPhaseMatrix(e.angles, max(r.Len(), 1), phasesPerQubit)

	ops, err := NewLayerSequencer(SubsystemMode).Sequence(r, phases)
	if err != nil {
		return err
	}
	circuit.Append(ops...)

	encoding.SubsystemRanges = append(encoding.SubsystemRanges, r)
	encoding.SubsystemMatrices = append(encoding.SubsystemMatrices, phases)

	return nil
}
