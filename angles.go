package qtoken

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// AngleSource supplies phase angles in radians.
type AngleSource interface {
	Angle() float64
}

// UniformAngles draws angles uniformly from [0, 2π) with a seeded generator,
// so two sources with the same seed yield the same sequence.
type UniformAngles struct {
	rng *rand.Rand
}

func NewAngleSource(seed int64) *UniformAngles {
	return &UniformAngles{rng: rand.New(rand.NewSource(seed))}
}

func (ua *UniformAngles) Angle() float64 {
	return ua.rng.Float64() * 2 * math.Pi
}

// FixedAngles replays a list of angles, wrapping around when exhausted.
type FixedAngles struct {
	angles []float64
	next   int
}

func NewFixedAngles(angles ...float64) *FixedAngles {
	return &FixedAngles{angles: angles}
}

func (fa *FixedAngles) Angle() float64 {
	if len(fa.angles) == 0 {
		return 0
	}

	angle := fa.angles[fa.next%len(fa.angles)]
	fa.next++

	return angle
}

/*
RandomPhaseMatrix fills a rows x cols matrix from src in row-major order.
*/
func RandomPhaseMatrix(src AngleSource, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)

	for i := range data {
		data[i] = src.Angle()
	}

	return mat.NewDense(rows, cols, data)
}
