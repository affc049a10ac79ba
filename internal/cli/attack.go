package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rbwo1o/Cryptography/internal/config"
	"github.com/rbwo1o/Cryptography/myattacks"
	"github.com/rbwo1o/Cryptography/mydigest"
)

func (a *app) newAttackCmd(attack string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   attack,
		Short: fmt.Sprintf("Run one %s attack for a single width", attack),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), []string{attack}, a.cfg.Bits, false)
			return err
		},
	}
	cmd.Flags().IntVarP(&a.opts.bits, "bits", "b", 8, "truncated output width in bits")
	return cmd
}

// newAttacker builds an attacker for the resolved config.
func (a *app) newAttacker(observer myattacks.Observer) (*myattacks.Attacker, error) {
	tr, err := mydigest.New(a.cfg.Digest)
	if err != nil {
		return nil, err
	}
	return myattacks.NewAttacker(a.cfg.Attack, tr, myattacks.NewRand(a.cfg.Seed), observer)
}

func checkAttack(attack string) error {
	switch attack {
	case myattacks.Preimage, myattacks.Collision, myattacks.Rho:
		return nil
	default:
		return fmt.Errorf("unknown attack %q", attack)
	}
}

// checkWidths rejects widths the selected attacks cannot run.
func checkWidths(attacks []string, bitsList []int) error {
	for _, attack := range attacks {
		if attack != myattacks.Rho {
			continue
		}
		for _, bits := range bitsList {
			if bits < myattacks.MinRhoBits {
				return fmt.Errorf("%w: %w: rho needs at least %d bits, got %d",
					config.ErrInvalidConfig, mydigest.ErrInvalidWidth, myattacks.MinRhoBits, bits)
			}
		}
	}
	return nil
}

func attackFunc(att *myattacks.Attacker, attack string) (func(context.Context, int) (myattacks.Run, error), error) {
	switch attack {
	case myattacks.Preimage:
		return att.PreimageAttackContext, nil
	case myattacks.Collision:
		return att.CollisionAttackContext, nil
	case myattacks.Rho:
		return att.RhoCollisionAttackContext, nil
	default:
		return nil, fmt.Errorf("unknown attack %q", attack)
	}
}

// execute runs every attack for every width with one attacker, so a fixed seed
// reproduces the whole sequence.
func (a *app) execute(ctx context.Context, out, errOut io.Writer, attacks []string, bitsList []int, headers bool) ([]myattacks.Run, error) {
	a.bar = nil
	observers := []myattacks.Observer{myattacks.LogObserver(a.log)}
	if !a.opts.quiet {
		observers = append(observers, myattacks.PrintObserver(out))
	}
	if a.opts.progress {
		bar := progressbar.NewOptions(len(attacks)*len(bitsList)*a.cfg.Attack.Trials,
			progressbar.OptionSetWriter(errOut),
			progressbar.OptionSetDescription("trials"),
			progressbar.OptionClearOnFinish(),
		)
		observers = append(observers, myattacks.ObserverFunc(func(myattacks.TrialEvent) {
			_ = bar.Add(1)
		}))
		defer func() { _ = bar.Finish() }()
		a.bar = bar
	}

	att, err := a.newAttacker(myattacks.MultiObserver(observers...))
	if err != nil {
		return nil, err
	}

	var runs []myattacks.Run
	for _, bits := range bitsList {
		if headers && !a.opts.quiet {
			fmt.Fprintf(out, "\n=== Experiment for truncated output = %d bits ===\n", bits)
		}
		for _, attack := range attacks {
			run, err := a.runAttack(ctx, att, attack, bits)
			if err != nil {
				return runs, err
			}
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (a *app) runAttack(ctx context.Context, att *myattacks.Attacker, attack string, bits int) (myattacks.Run, error) {
	fn, err := attackFunc(att, attack)
	if err != nil {
		return myattacks.Run{}, err
	}
	run, err := fn(ctx, bits)
	if err != nil {
		return myattacks.Run{}, fmt.Errorf("%s attack (%d-bit): %w", attack, bits, err)
	}
	a.log.WithFields(logrus.Fields{
		"attack":    run.Attack,
		"bits":      run.Bits,
		"trials":    len(run.Trials),
		"exhausted": run.Exhausted(),
		"elapsed":   run.Elapsed,
		"digest":    a.cfg.Digest,
	}).Info("attack run finished")
	return run, nil
}
