package qtoken

// Measurement builds measurement operations over allocated ranges.
type Measurement struct{}

func NewMeasurement() *Measurement {
	return &Measurement{}
}

// MeasureRange reads every qubit of r into classical bits 0..r.Len()-1.
func (m *Measurement) MeasureRange(r QubitRange) []GateOp {
	return m.MeasureRanges(r)
}

/*
MeasureEntanglement reads the token qubits followed by the subsystem qubits
into one contiguous block of classical bits starting at 0.
*/
func (m *Measurement) MeasureEntanglement(token, subsystem QubitRange) []GateOp {
	return m.MeasureRanges(token, subsystem)
}

// MeasureRanges reads the ranges in order onto consecutive classical bits from 0.
func (m *Measurement) MeasureRanges(ranges ...QubitRange) []GateOp {
	var ops []GateOp

	clbit := 0
	for _, r := range ranges {
		for i := 0; i < r.Len(); i++ {
			ops = append(ops, Measure(r.At(i), clbit))
			clbit++
		}
	}

	return ops
}
