package myattacks

import (
	"context"
	"os"
	"time"
)

// CollisionAttack - атака на основе парадокса о днях рождения.
// Каждое испытание выбирает входы до первого повтора усечённого хэша;
// результат - число различных значений, увиденных до повтора.
func (a *Attacker) CollisionAttack(bits int) (Run, error) {
	return a.CollisionAttackContext(context.Background(), bits)
}

// CollisionAttackContext - CollisionAttack с отменой через ctx
func (a *Attacker) CollisionAttackContext(ctx context.Context, bits int) (Run, error) {
	h, err := a.digest.Func(bits)
	if err != nil {
		return Run{}, err
	}
	run := Run{Attack: Collision, Bits: bits, Trials: make([]Trial, 0, a.cfg.Trials)}
	start := time.Now()

	for i := 0; i < a.cfg.Trials; i++ {
		trial := Trial{}
		seen := make(map[uint64]string)
		input := a.draw()
		v := h(input)
		for {
			if prev, ok := seen[v]; ok {
				trial.Witness = Witness{X: prev, Y: input}
				break
			}
			if err := interrupted(ctx, &run, trial.Attempts); err != nil {
				return run, err
			}
			if a.exhausted(trial.Attempts) {
				trial.Exhausted = true
				break
			}
			seen[v] = input
			trial.Attempts++
			input = a.draw()
			v = h(input)
		}
		a.finish(&run, i, trial)
	}
	run.Elapsed = time.Since(start)
	return run, nil
}

// CollisionAttack проводит 50 испытаний поиска коллизии усечённого SHA-1
// без ограничения попыток и печатает результат каждого испытания в stdout
func CollisionAttack(bits int) ([]int, error) {
	a, err := NewAttacker(DefaultConfig(), nil, nil, PrintObserver(os.Stdout))
	if err != nil {
		return nil, err
	}
	run, err := a.CollisionAttack(bits)
	if err != nil {
		return nil, err
	}
	return run.Attempts(), nil
}
