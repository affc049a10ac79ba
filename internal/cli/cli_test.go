package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbwo1o/Cryptography/internal/config"
	"github.com/rbwo1o/Cryptography/mydigest"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func attemptLines(t *testing.T, out string) []int {
	t.Helper()
	var counts []int
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		n, err := strconv.Atoi(line)
		require.NoError(t, err, "line %q", line)
		counts = append(counts, n)
	}
	return counts
}

func TestCollisionCommand(t *testing.T) {
	out, _, err := runCLI(t, "collision", "--bits", "8", "--trials", "5", "--seed", "1")
	require.NoError(t, err)

	counts := attemptLines(t, out)
	require.Len(t, counts, 5)
	for _, n := range counts {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 256)
	}
}

func TestPreimageCommand_SeedReproducible(t *testing.T) {
	first, _, err := runCLI(t, "preimage", "-b", "8", "--trials", "4", "--seed", "42")
	require.NoError(t, err)
	second, _, err := runCLI(t, "preimage", "-b", "8", "--trials", "4", "--seed", "42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, attemptLines(t, first), 4)
}

func TestRhoCommand(t *testing.T) {
	out, _, err := runCLI(t, "rho", "--bits", "12", "--trials", "3", "--seed", "3", "--digest", "sha1cd")
	require.NoError(t, err)
	assert.Len(t, attemptLines(t, out), 3)
}

func TestRhoCommand_TooNarrow(t *testing.T) {
	_, _, err := runCLI(t, "rho", "--bits", "4", "--trials", "1")
	assert.ErrorIs(t, err, mydigest.ErrInvalidWidth)
}

func TestAttackCommand_Cutoff(t *testing.T) {
	out, _, err := runCLI(t, "preimage", "--bits", "40", "--trials", "2", "--max-attempts", "3", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, "3 (cutoff)\n3 (cutoff)\n", out)
}

func TestAttackCommand_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown digest", args: []string{"collision", "--digest", "md5"}},
		{name: "zero trials", args: []string{"collision", "--trials", "0"}},
		{name: "width too large", args: []string{"preimage", "--bits", "65"}},
		{name: "bad log level", args: []string{"preimage", "--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestQuietSuppressesTrials(t *testing.T) {
	out, errOut, err := runCLI(t, "collision", "--trials", "3", "--quiet", "--seed", "5")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "attack run finished")
}

func TestDebugLogsTrials(t *testing.T) {
	_, errOut, err := runCLI(t, "collision", "--trials", "2", "--quiet", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(errOut, "trial done"))
}

func TestSweepCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "graphs")

	out, errOut, err := runCLI(t, "sweep",
		"--bits-list", "8,10",
		"--attacks", "preimage,collision,rho",
		"--trials", "3",
		"--seed", "7",
		"--plot", dir,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "=== Experiment for truncated output = 8 bits ===")
	assert.Contains(t, out, "=== Experiment for truncated output = 10 bits ===")
	assert.Equal(t, 3, strings.Count(errOut, "plot saved"))
	for _, name := range []string{"preimage.png", "collision.png", "rho.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestSweepCommand_UnknownAttack(t *testing.T) {
	_, _, err := runCLI(t, "sweep", "--attacks", "rainbow", "--bits-list", "8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown attack")
}

func TestSweepCommand_EnvBits(t *testing.T) {
	t.Setenv(config.EnvBits, "8")
	t.Setenv(config.EnvTrials, "2")

	out, _, err := runCLI(t, "sweep", "--attacks", "collision", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "= 8 bits ===")
	assert.NotContains(t, out, "= 10 bits ===")
}

func TestProgressBar(t *testing.T) {
	_, _, err := runCLI(t, "collision", "--trials", "3", "--quiet", "--progress")
	require.NoError(t, err)
}

func runApp(t *testing.T, ctx context.Context, args ...string) (*app, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, a := newApp()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(ctx)
	return a, out.String(), err
}

func TestAttackCommand_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(50*time.Millisecond, cancel)
	defer timer.Stop()

	done := make(chan error, 1)
	go func() {
		_, _, err := runApp(t, ctx, "preimage", "--bits", "48", "--trials", "1", "--quiet")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("48-bit preimage ignored cancellation")
	}
}

func TestProgressBar_FinishedOnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, _, err := runApp(t, ctx, "preimage", "--bits", "48", "--trials", "2", "--quiet", "--progress")
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, a.bar)
	assert.True(t, a.bar.IsFinished())
}

func TestSweepCommand_RhoTooNarrowRejectedUpfront(t *testing.T) {
	out, _, err := runCLI(t, "sweep", "--attacks", "preimage,rho", "--bits-list", "4", "--trials", "2")
	require.ErrorIs(t, err, mydigest.ErrInvalidWidth)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Empty(t, out, "preimage must not run before rho is rejected")
}

func TestAttackCommand_IgnoresEnvBits(t *testing.T) {
	t.Setenv(config.EnvBits, "200")

	out, _, err := runCLI(t, "preimage", "-b", "8", "--trials", "2", "--seed", "1")
	require.NoError(t, err)
	assert.Len(t, attemptLines(t, out), 2)
}
