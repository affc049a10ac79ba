package myattacks

import (
	"context"
	"os"
	"time"
)

// PreimageAttack ищет вход с тем же усечённым хэшем, что у одного целевого входа.
// Цель выбирается один раз на всю серию, каждое испытание считает выборки
// до первого совпадения (не меньше одной).
func (a *Attacker) PreimageAttack(bits int) (Run, error) {
	return a.PreimageAttackContext(context.Background(), bits)
}

// PreimageAttackContext - PreimageAttack с отменой через ctx
func (a *Attacker) PreimageAttackContext(ctx context.Context, bits int) (Run, error) {
	h, err := a.digest.Func(bits)
	if err != nil {
		return Run{}, err
	}
	run := Run{Attack: Preimage, Bits: bits, Trials: make([]Trial, 0, a.cfg.Trials)}
	start := time.Now()

	targetInput := a.draw()
	target := h(targetInput)

	for i := 0; i < a.cfg.Trials; i++ {
		trial := Trial{}
		for {
			if err := interrupted(ctx, &run, trial.Attempts); err != nil {
				return run, err
			}
			if a.exhausted(trial.Attempts) {
				trial.Exhausted = true
				break
			}
			candidate := a.draw()
			trial.Attempts++
			if h(candidate) == target {
				trial.Witness = Witness{X: targetInput, Y: candidate}
				break
			}
		}
		a.finish(&run, i, trial)
	}
	run.Elapsed = time.Since(start)
	return run, nil
}

// PreimageAttack проводит 50 испытаний поиска прообраза усечённого SHA-1
// без ограничения попыток и печатает результат каждого испытания в stdout
func PreimageAttack(bits int) ([]int, error) {
	a, err := NewAttacker(DefaultConfig(), nil, nil, PrintObserver(os.Stdout))
	if err != nil {
		return nil, err
	}
	run, err := a.PreimageAttack(bits)
	if err != nil {
		return nil, err
	}
	return run.Attempts(), nil
}
