package qtoken

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyCapacity        = "capacity"
	KeyTokenQubits     = "token-qubits"
	KeySubsystemQubits = "subsystem-qubits"
	KeySubsystems      = "subsystems"
	KeyShots           = "shots"
	KeyWord            = "word"
	KeySeed            = "seed"
	KeyMeasure         = "measure"
	KeyBackend         = "backend"
	KeyRemoteURL       = "remote-url"
	KeyRemoteAttempts  = "remote-attempts"
	KeyRemoteBackoff   = "remote-backoff"
	KeySimulatorQubits = "simulator-qubits"

	envPrefix = "QTOKEN"
)

type Config struct {
	Capacity        int
	TokenQubits     int
	SubsystemQubits int
	Subsystems      int
	Shots           int
	Word            string
	Seed            int64
	Measure         bool
	Backend         string
	RemoteURL       string
	RemoteAttempts  int
	RemoteBackoff   time.Duration
	SimulatorQubits int
}

func NewConfig() *Config {
	return &Config{
		Capacity:        50,
		TokenQubits:     DefaultTokenLength,
		SubsystemQubits: DefaultEntangleSpan,
		Subsystems:      3,
		Shots:           1024,
		Word:            "HELLOQUANTUM",
		Seed:            1,
		Backend:         BackendSimulator,
		RemoteAttempts:  3,
		RemoteBackoff:   100 * time.Millisecond,
		SimulatorQubits: DefaultSimulatorQubits,
	}
}

/*
RegisterFlags defines one flag per configuration key on flags, defaulting to the
values of NewConfig.
*/
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := NewConfig()

	flags.Int(KeyCapacity, defaults.Capacity, "total qubit capacity of the circuit")
	flags.Int(KeyTokenQubits, defaults.TokenQubits, "qubits allocated to the token system")
	flags.Int(KeySubsystemQubits, defaults.SubsystemQubits, "qubits allocated to each subsystem")
	flags.Int(KeySubsystems, defaults.Subsystems, "number of subsystems")
	flags.Int(KeyShots, defaults.Shots, "shots per backend run")
	flags.String(KeyWord, defaults.Word, "word to encode")
	flags.Int64(KeySeed, defaults.Seed, "seed for random phases and sampling")
	flags.Bool(KeyMeasure, defaults.Measure, "measure every allocated qubit")
	flags.String(KeyBackend, defaults.Backend, "backend to run on: simulator or remote")
	flags.String(KeyRemoteURL, defaults.RemoteURL, "url of the remote backend")
	flags.Int(KeyRemoteAttempts, defaults.RemoteAttempts, "attempts per remote run")
	flags.Duration(KeyRemoteBackoff, defaults.RemoteBackoff, "initial delay between remote attempts")
	flags.Int(KeySimulatorQubits, defaults.SimulatorQubits, "largest program the local simulator accepts")
}

/*
LoadConfig layers, lowest precedence first: the defaults of NewConfig, the
config file at path (skipped when empty), QTOKEN_* environment variables
(a .env file in the working directory is loaded first) and flags that were
set on flags (skipped when nil). A missing .env file is fine, a malformed one
is an error.
*/
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	config := &Config{
		Capacity:        v.GetInt(KeyCapacity),
		TokenQubits:     v.GetInt(KeyTokenQubits),
		SubsystemQubits: v.GetInt(KeySubsystemQubits),
		Subsystems:      v.GetInt(KeySubsystems),
		Shots:           v.GetInt(KeyShots),
		Word:            v.GetString(KeyWord),
		Seed:            v.GetInt64(KeySeed),
		Measure:         v.GetBool(KeyMeasure),
		Backend:         v.GetString(KeyBackend),
		RemoteURL:       v.GetString(KeyRemoteURL),
		RemoteAttempts:  v.GetInt(KeyRemoteAttempts),
		RemoteBackoff:   v.GetDuration(KeyRemoteBackoff),
		SimulatorQubits: v.GetInt(KeySimulatorQubits),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper, config *Config) {
	v.SetDefault(KeyCapacity, config.Capacity)
	v.SetDefault(KeyTokenQubits, config.TokenQubits)
	v.SetDefault(KeySubsystemQubits, config.SubsystemQubits)
	v.SetDefault(KeySubsystems, config.Subsystems)
	v.SetDefault(KeyShots, config.Shots)
	v.SetDefault(KeyWord, config.Word)
	v.SetDefault(KeySeed, config.Seed)
	v.SetDefault(KeyMeasure, config.Measure)
	v.SetDefault(KeyBackend, config.Backend)
	v.SetDefault(KeyRemoteURL, config.RemoteURL)
	v.SetDefault(KeyRemoteAttempts, config.RemoteAttempts)
	v.SetDefault(KeyRemoteBackoff, config.RemoteBackoff)
	v.SetDefault(KeySimulatorQubits, config.SimulatorQubits)
}

/*
Validate rejects settings no run could use. Whether the registers fit in the
capacity is left to the allocator.
*/
func (c *Config) Validate() error {
	for _, setting := range []struct {
		key   string
		value int
	}{
		{KeyCapacity, c.Capacity},
		{KeyTokenQubits, c.TokenQubits},
		{KeySubsystemQubits, c.SubsystemQubits},
		{KeyShots, c.Shots},
	} {
		if setting.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, setting.key, setting.value)
		}
	}

	if c.Subsystems < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, KeySubsystems, c.Subsystems)
	}

	if c.SimulatorQubits > MaxSimulatorQubits {
		return fmt.Errorf(
			"%w: %s must be at most %d, got %d",
			ErrInvalidConfig, KeySimulatorQubits, MaxSimulatorQubits, c.SimulatorQubits,
		)
	}

	if c.Backend == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyBackend)
	}

	return nil
}
