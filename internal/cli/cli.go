// Package cli provides the command-line interface for hashattack.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rbwo1o/Cryptography/internal/config"
	"github.com/rbwo1o/Cryptography/myattacks"
	"github.com/rbwo1o/Cryptography/mydigest"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// options mirrors the command-line flags. Only flags the user set override
// the environment-derived config.
type options struct {
	bits        int
	bitsList    string
	trials      int
	length      int
	seed        uint64
	maxAttempts int
	digest      string
	distBits    int
	logLevel    string
	quiet       bool
	progress    bool
	plotDir     string
	attacks     []string
}

type app struct {
	opts options
	cfg  *config.Config
	log  *logrus.Logger
	bar  *progressbar.ProgressBar // last progress bar, nil without --progress
}

func newRootCmd() *cobra.Command {
	root, _ := newApp()
	return root
}

func newApp() (*cobra.Command, *app) {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:   "hashattack",
		Short: "Measure preimage and collision cost of truncated hashes",
		Long: `Measure preimage and collision cost of truncated hashes

Every run draws random 52-letter inputs, truncates their digest to the low
N bits and counts attempts until the attack succeeds. One line per trial is
printed to stdout.

Truncation models an ideal N-bit random function. The numbers say nothing
about the strength of the untruncated digest.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&a.opts.trials, "trials", myattacks.NumTrials, "independent trials per run")
	pf.IntVar(&a.opts.length, "length", myattacks.InputLen, "length of random inputs")
	pf.Uint64Var(&a.opts.seed, "seed", 0, "PRNG seed, 0 seeds from crypto/rand")
	pf.IntVar(&a.opts.maxAttempts, "max-attempts", 0, "per-trial attempt cutoff, 0 is unbounded")
	pf.StringVar(&a.opts.digest, "digest", mydigest.SHA1, "digest: "+strings.Join(mydigest.Algorithms(), ", "))
	pf.IntVar(&a.opts.distBits, "distinguished-bits", myattacks.DistBits, "zero low bits marking a distinguished point (rho)")
	pf.StringVar(&a.opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVarP(&a.opts.quiet, "quiet", "q", false, "do not print per-trial attempt counts")
	pf.BoolVar(&a.opts.progress, "progress", false, "show a progress bar on stderr")

	for _, attack := range []string{myattacks.Preimage, myattacks.Collision, myattacks.Rho} {
		root.AddCommand(a.newAttackCmd(attack))
	}
	root.AddCommand(a.newSweepCmd())
	return root, a
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, newRootCmd(), fang.WithVersion(Version))
}

// resolve loads the environment config, applies changed flags and validates.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("trials") {
		cfg.Attack.Trials = a.opts.trials
	}
	if flags.Changed("length") {
		cfg.Attack.InputLength = a.opts.length
	}
	if flags.Changed("seed") {
		cfg.Seed = a.opts.seed
	}
	if flags.Changed("max-attempts") {
		cfg.Attack.MaxAttempts = a.opts.maxAttempts
	}
	if flags.Changed("digest") {
		cfg.Digest = strings.ToLower(a.opts.digest)
	}
	if flags.Changed("distinguished-bits") {
		cfg.Attack.DistinguishedBits = a.opts.distBits
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.opts.logLevel
	}
	// single-attack commands use only --bits, not the sweep list
	if flags.Lookup("bits") != nil {
		cfg.Bits = []int{a.opts.bits}
	}
	if flags.Changed("bits-list") {
		bits, err := config.ParseBits(a.opts.bitsList)
		if err != nil {
			return err
		}
		cfg.Bits = bits
	}
	if flags.Changed("plot") {
		cfg.PlotDir = a.opts.plotDir
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.log.SetLevel(level)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
