package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbwo1o/Cryptography/myattacks"
	"github.com/rbwo1o/Cryptography/myplot"
)

func (a *app) newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the selected attacks over every configured width",
		Long: `Run the selected attacks over every configured width.

Widths come from --bits-list, HASHATTACK_BITS or the default 8,10,...,22.
With --plot each attack gets a scatter plot of log2(attempts) per trial
next to the theoretical 2^N or 1.25*2^(N/2) curve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, attack := range a.opts.attacks {
				if err := checkAttack(attack); err != nil {
					return err
				}
			}
			if err := checkWidths(a.opts.attacks, a.cfg.Bits); err != nil {
				return err
			}
			runs, err := a.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a.opts.attacks, a.cfg.Bits, true)
			if err != nil {
				return err
			}
			if a.cfg.PlotDir == "" {
				return nil
			}
			files, err := myplot.SaveRuns(a.cfg.PlotDir, runs)
			if err != nil {
				return fmt.Errorf("save plots: %w", err)
			}
			for _, f := range files {
				a.log.WithField("file", f).Info("plot saved")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.opts.bitsList, "bits-list", "", "comma separated widths, e.g. 8,10,12")
	cmd.Flags().StringSliceVar(&a.opts.attacks, "attacks", []string{myattacks.Preimage, myattacks.Collision}, "attacks to run: preimage, collision, rho")
	cmd.Flags().StringVar(&a.opts.plotDir, "plot", "", "directory for PNG plots")
	return cmd
}
