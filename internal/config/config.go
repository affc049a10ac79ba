// Package config handles experiment configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rbwo1o/Cryptography/myattacks"
	"github.com/rbwo1o/Cryptography/mydigest"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvBits        = "HASHATTACK_BITS"
	EnvTrials      = "HASHATTACK_TRIALS"
	EnvLength      = "HASHATTACK_LENGTH"
	EnvSeed        = "HASHATTACK_SEED"
	EnvMaxAttempts = "HASHATTACK_MAX_ATTEMPTS"
	EnvDigest      = "HASHATTACK_DIGEST"
	EnvLogLevel    = "HASHATTACK_LOG_LEVEL"
)

// Config holds all experiment configuration.
type Config struct {
	// Truncation widths swept by the sweep command
	Bits []int

	// Attack parameters shared by every run
	Attack myattacks.Config

	// PRNG seed, 0 seeds from crypto/rand
	Seed uint64

	// Digest algorithm name, see mydigest.Algorithms
	Digest string

	// logrus level name
	LogLevel string

	// Directory for plots, empty disables plotting
	PlotDir string
}

// Load reads configuration from environment variables on top of the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvBits); v != "" {
		bits, err := ParseBits(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvBits, err)
		}
		cfg.Bits = bits
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvTrials, &cfg.Attack.Trials},
		{EnvLength, &cfg.Attack.InputLength},
		{EnvMaxAttempts, &cfg.Attack.MaxAttempts},
	}
	for _, e := range ints {
		if v := os.Getenv(e.env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, e.env, v)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not an unsigned integer", ErrInvalidConfig, EnvSeed, v)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv(EnvDigest); v != "" {
		cfg.Digest = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// ParseBits parses a comma separated list of widths, e.g. "8,10,12".
func ParseBits(s string) ([]int, error) {
	var bits []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: width %q is not an integer", ErrInvalidConfig, part)
		}
		bits = append(bits, n)
	}
	if len(bits) == 0 {
		return nil, fmt.Errorf("%w: empty width list", ErrInvalidConfig)
	}
	return bits, nil
}

// Validate checks the configuration against the selected digest.
func (c *Config) Validate() error {
	if len(c.Bits) == 0 {
		return fmt.Errorf("%w: no widths configured", ErrInvalidConfig)
	}
	if c.Attack.Trials < 1 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Attack.Trials)
	}
	if c.Attack.InputLength < 1 {
		return fmt.Errorf("%w: input length must be positive, got %d", ErrInvalidConfig, c.Attack.InputLength)
	}
	if c.Attack.MaxAttempts < 0 {
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidConfig, c.Attack.MaxAttempts)
	}
	if c.Attack.DistinguishedBits < 0 {
		return fmt.Errorf("%w: distinguished bits must not be negative, got %d", ErrInvalidConfig, c.Attack.DistinguishedBits)
	}

	tr, err := mydigest.New(c.Digest)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, b := range c.Bits {
		if err := tr.CheckWidth(b); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
