package qtoken

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ProgramStats summarises the shape of a single program.
type ProgramStats struct {
	Phase         int
	Hadamard      int
	ControlledNot int
	Measure       int
	Depth         int
}

/*
Stats counts the operations by kind and computes the circuit depth, the
length of the longest chain of operations that share a qubit.
*/
func Stats(p *Program) ProgramStats {
	var stats ProgramStats

	layer := make(map[int]int)

	for _, op := range p.Ops {
		switch op.Kind {
		case KindPhase:
			stats.Phase++
		case KindHadamard:
			stats.Hadamard++
		case KindControlledNot:
			stats.ControlledNot++
		case KindMeasure:
			stats.Measure++
		}

		depth := 0
		for _, qubit := range op.Qubits() {
			depth = max(depth, layer[qubit])
		}
		depth++

		for _, qubit := range op.Qubits() {
			layer[qubit] = depth
		}

		stats.Depth = max(stats.Depth, depth)
	}

	return stats
}

type timeWindow struct {
	duration time.Duration
	count    int
}

/*
Metrics accumulates program and backend run statistics. It is safe for
concurrent use.
*/
type Metrics struct {
	mu sync.RWMutex

	ProgramCount   int64
	GateCounts     map[GateKind]int64
	MaxDepth       int
	RunCount       int64
	FailedRuns     int64
	ShotCount      int64
	TotalRunTime   time.Duration
	RunSuccessRate float64

	AverageRunLatency time.Duration
	P95RunLatency     time.Duration
	P99RunLatency     time.Duration

	latencyWindows []timeWindow
	windowSize     int
}

func NewMetrics() *Metrics {
	return &Metrics{
		GateCounts:     make(map[GateKind]int64),
		latencyWindows: make([]timeWindow, 0, 1000), // Store last 1000 measurements
		windowSize:     1000,
	}
}

// ObserveProgram records the gate counts and depth of p.
func (m *Metrics) ObserveProgram(p *Program) ProgramStats {
	stats := Stats(p)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ProgramCount++
	m.GateCounts[KindPhase] += int64(stats.Phase)
	m.GateCounts[KindHadamard] += int64(stats.Hadamard)
	m.GateCounts[KindControlledNot] += int64(stats.ControlledNot)
	m.GateCounts[KindMeasure] += int64(stats.Measure)
	m.MaxDepth = max(m.MaxDepth, stats.Depth)

	return stats
}

func (m *Metrics) recordRun(startTime time.Time, shots int, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunCount++
	m.TotalRunTime += duration

	if success {
		m.ShotCount += int64(shots)
	} else {
		m.FailedRuns++
	}

	m.RunSuccessRate = float64(m.RunCount-m.FailedRuns) / float64(m.RunCount)
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageRunLatency = (m.AverageRunLatency*time.Duration(m.RunCount-1) + duration) / time.Duration(m.RunCount)

	m.latencyWindows = append(m.latencyWindows, timeWindow{
		duration: duration,
		count:    1,
	})

	if len(m.latencyWindows) > m.windowSize {
		m.latencyWindows = m.latencyWindows[1:]
	}

	sorted := make([]time.Duration, 0, len(m.latencyWindows))
	for _, w := range m.latencyWindows {
		for i := 0; i < w.count; i++ {
			sorted = append(sorted, w.duration)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) > 0 {
		p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
		p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

		m.P95RunLatency = sorted[p95Index]
		m.P99RunLatency = sorted[p99Index]
	}
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"programs":       m.ProgramCount,
		"phase_gates":    m.GateCounts[KindPhase],
		"hadamard_gates": m.GateCounts[KindHadamard],
		"cx_gates":       m.GateCounts[KindControlledNot],
		"measurements":   m.GateCounts[KindMeasure],
		"max_depth":      m.MaxDepth,
		"runs":           m.RunCount,
		"failed_runs":    m.FailedRuns,
		"shots":          m.ShotCount,
		"success_rate":   m.RunSuccessRate,
		"avg_latency":    m.AverageRunLatency.Milliseconds(),
		"p95_latency":    m.P95RunLatency.Milliseconds(),
		"p99_latency":    m.P99RunLatency.Milliseconds(),
	}
}

// instrumented records every run of the wrapped backend.
type instrumented struct {
	Backend
	metrics *Metrics
}

// Instrument wraps backend so each Run is recorded in metrics.
func Instrument(backend Backend, metrics *Metrics) Backend {
	return &instrumented{Backend: backend, metrics: metrics}
}

func (in *instrumented) Run(ctx context.Context, program *Program, shots int) (*Result, error) {
	start := time.Now()

	result, err := in.Backend.Run(ctx, program, shots)
	in.metrics.recordRun(start, shots, err == nil)

	return result, err
}
