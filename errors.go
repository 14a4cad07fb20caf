package qtoken

import "errors"

var (
	// ErrCapacityExceeded is returned when an allocation would run past the
	// circuit's total qubit capacity.
	ErrCapacityExceeded = errors.New("qubit capacity exceeded")

	// ErrIndexOutOfRange is returned when a range or phase matrix is too small
	// for the layer or entangling pattern applied to it.
	ErrIndexOutOfRange = errors.New("index out of range")

	ErrInvalidCount = errors.New("invalid qubit count")
	ErrLayerInputs  = errors.New("wrong number of phase matrices for layer")

	ErrTooManyQubits         = errors.New("program exceeds simulator qubit limit")
	ErrMidCircuitMeasurement = errors.New("gate applied after measurement")
	ErrUnknownBackend        = errors.New("unknown backend")
	ErrBackendUnavailable    = errors.New("backend unavailable")
	ErrInvalidConfig         = errors.New("invalid configuration")
)
