package myattacks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttacks_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAttacker(t, DefaultConfig(), 1, nil)
	attacks := map[string]func(context.Context, int) (Run, error){
		Preimage:  a.PreimageAttackContext,
		Collision: a.CollisionAttackContext,
		Rho:       a.RhoCollisionAttackContext,
	}
	for name, attack := range attacks {
		t.Run(name, func(t *testing.T) {
			run, err := attack(ctx, 8)
			require.ErrorIs(t, err, context.Canceled)
			assert.Empty(t, run.Trials)
		})
	}
}

func TestAttacks_CanceledWhileSearching(t *testing.T) {
	a := newTestAttacker(t, DefaultConfig(), 2, nil)
	attacks := map[string]func(context.Context, int) (Run, error){
		Preimage:  a.PreimageAttackContext,
		Collision: a.CollisionAttackContext,
		Rho:       a.RhoCollisionAttackContext,
	}
	for name, attack := range attacks {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				_, err := attack(ctx, 48)
				done <- err
			}()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.DeadlineExceeded)
			case <-time.After(10 * time.Second):
				t.Fatal("48-bit search ignored context cancellation")
			}
		})
	}
}
