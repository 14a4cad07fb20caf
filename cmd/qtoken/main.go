package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/theapemachine/qtoken"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintln(os.Stderr, "qtoken:", err)
		os.Exit(1)
	}
}

/*
run encodes the configured word, writes the requested artifacts to stdout and
logs a report to stderr. With --run the program is also executed on the
configured backend and the counts are printed.
*/
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("qtoken", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (yaml, json or toml)")
	emitQASM := fs.Bool("qasm", false, "print the program as OpenQASM 2.0")
	transpile := fs.Bool("transpile", false, "fuse adjacent phase gates before output and execution")
	execute := fs.Bool("run", false, "run the program on the configured backend")
	verbose := fs.Bool("verbose", false, "log at debug level")
	qtoken.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).With().Timestamp().Str("component", "qtoken").Logger()

	config, err := qtoken.LoadConfig(*configPath, fs)
	if err != nil {
		return err
	}

	encoding, err := qtoken.NewEncoder(config).Encode(config.Word)
	if err != nil {
		return fmt.Errorf("encode %q: %w", config.Word, err)
	}

	program := encoding.Program
	if *transpile {
		program = qtoken.Transpile(program)
	}

	metrics := qtoken.NewMetrics()
	stats := metrics.ObserveProgram(program)

	log.Info().
		Str("word", encoding.Word).
		Str("prepared", encoding.Prepared).
		Str("program", program.ID).
		Str("token_range", encoding.TokenRange.String()).
		Int("subsystems", len(encoding.SubsystemRanges)).
		Int("phase", stats.Phase).
		Int("hadamard", stats.Hadamard).
		Int("cx", stats.ControlledNot).
		Int("measure", stats.Measure).
		Int("depth", stats.Depth).
		Msg("encoded")

	for i, triple := range encoding.Token {
		log.Debug().
			Int("index", i).
			Float64("ascii", triple.ASCII).
			Float64("position", triple.Position).
			Float64("context", triple.Context).
			Msg("token")
	}

	if *emitQASM {
		if _, err := io.WriteString(stdout, program.QASM()); err != nil {
			return err
		}
	}

	if !*execute {
		return nil
	}

	backend, err := qtoken.NewBackend(config)
	if err != nil {
		return err
	}

	result, err := qtoken.Instrument(backend, metrics).Run(ctx, program, config.Shots)
	if errors.Is(err, qtoken.ErrTooManyQubits) {
		return fmt.Errorf(
			"run on %s: %w (allocate fewer qubits or use --backend remote)",
			backend.Name(), err,
		)
	}

	if err != nil {
		return fmt.Errorf("run on %s: %w", backend.Name(), err)
	}

	log.Info().
		Str("backend", result.Backend).
		Int("shots", result.Shots).
		Int("outcomes", len(result.Counts)).
		Dur("duration", result.Duration).
		Fields(metrics.ExportMetrics()).
		Msg("executed")

	return writeCounts(stdout, result.Counts)
}

// writeCounts prints the frequency table, most frequent outcome first.
func writeCounts(w io.Writer, counts map[string]int) error {
	outcomes := make([]string, 0, len(counts))
	for outcome := range counts {
		outcomes = append(outcomes, outcome)
	}

	sort.Slice(outcomes, func(i, j int) bool {
		if counts[outcomes[i]] != counts[outcomes[j]] {
			return counts[outcomes[i]] > counts[outcomes[j]]
		}

		return outcomes[i] < outcomes[j]
	})

	for _, outcome := range outcomes {
		if _, err := fmt.Fprintf(w, "%s %d\n", outcome, counts[outcome]); err != nil {
			return err
		}
	}

	return nil
}
