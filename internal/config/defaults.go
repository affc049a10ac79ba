package config

import (
	"github.com/rbwo1o/Cryptography/myattacks"
	"github.com/rbwo1o/Cryptography/mydigest"
)

// OutBitsList is the default sweep of truncation widths.
var OutBitsList = []int{8, 10, 12, 14, 16, 18, 20, 22}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Bits:     append([]int(nil), OutBitsList...),
		Attack:   myattacks.DefaultConfig(),
		Seed:     0, // Fresh entropy every run
		Digest:   mydigest.SHA1,
		LogLevel: "info",
	}
}
