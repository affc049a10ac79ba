package myattacks

import (
	"context"
	"fmt"
	"time"

	"github.com/rbwo1o/Cryptography/mydigest"
)

const (
	MinRhoBits = 8

	// длина кодировки звена: 52^12 > 2^64, поэтому кодирование инъективно
	chainInputLen = 12
	saltLen       = 8
)

// звено для хранения информации о цепочке, дошедшей до отличительной точки
type chain struct {
	seed  uint64
	steps int
}

// chainInput - инъективная функция из значения хэша во вход из букв Alphabet.
// Соль своя в каждом испытании, иначе все испытания шли бы по одной функции.
func chainInput(salt string, v uint64) string {
	var b [chainInputLen]byte
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = Alphabet[v%uint64(len(Alphabet))]
		v /= uint64(len(Alphabet))
	}
	return salt + string(b[:])
}

// проверяет, является ли значение отличительным
func isDistinguished(v uint64, distinguishedBits int) bool {
	return v&(1<<uint(distinguishedBits)-1) == 0
}

// RhoCollisionAttack ищет коллизию методом Полларда с отличительными точками:
// итерирует v -> Trunc(chainInput(salt, v)) до отличительной точки и хранит только концы цепочек.
// Attempts - число вычислений хэша, включая поиск точной пары.
// Ширина меньше MinRhoBits не поддерживается: на малых множествах функция
// слишком часто оказывается перестановкой без коллизий.
func (a *Attacker) RhoCollisionAttack(bits int) (Run, error) {
	return a.RhoCollisionAttackContext(context.Background(), bits)
}

// distinguishedBits ограничивает число нулевых бит отличительной точки величиной bits/4:
// при bits/2 на 8 битах цикл часто обходит все отличительные точки
func (a *Attacker) distinguishedBits(bits int) int {
	return min(a.cfg.DistinguishedBits, bits/4)
}

// RhoCollisionAttackContext - RhoCollisionAttack с отменой через ctx
func (a *Attacker) RhoCollisionAttackContext(ctx context.Context, bits int) (Run, error) {
	h, err := a.digest.Func(bits)
	if err != nil {
		return Run{}, err
	}
	if bits < MinRhoBits {
		return Run{}, fmt.Errorf("%w: rho needs at least %d bits, got %d", mydigest.ErrInvalidWidth, MinRhoBits, bits)
	}
	run := Run{Attack: Rho, Bits: bits, Trials: make([]Trial, 0, a.cfg.Trials)}
	start := time.Now()

	d := a.distinguishedBits(bits)
	maxSteps := ChainFactor << uint(d)
	mask := uint64(1)<<uint(bits) - 1

	for i := 0; i < a.cfg.Trials; i++ {
		trial := a.rhoTrial(ctx, h, d, maxSteps, mask)
		if err := interrupted(ctx, &run, 0); err != nil {
			return run, err
		}
		a.finish(&run, i, trial)
	}
	run.Elapsed = time.Since(start)
	return run, nil
}

// rhoTrial прерывается без результата, если ctx отменён
func (a *Attacker) rhoTrial(ctx context.Context, h func(string) uint64, d, maxSteps int, mask uint64) Trial {
	trial := Trial{}
	dists := make(map[uint64]chain)
	salt := RandomString(a.rng, saltLen)
	// step вычисляет следующее звено, false - лимит попыток исчерпан или ctx отменён
	step := func(v uint64) (uint64, bool) {
		if trial.Attempts&ctxCheckMask == 0 && ctx.Err() != nil {
			return 0, false
		}
		if a.exhausted(trial.Attempts) {
			trial.Exhausted = true
			return 0, false
		}
		trial.Attempts++
		return h(chainInput(salt, v)), true
	}

	for {
		seed := a.rng.Uint64() & mask
		val, steps := seed, 0
		for {
			next, ok := step(val)
			if !ok {
				return trial
			}
			val = next
			steps++
			if isDistinguished(val, d) || steps >= maxSteps {
				break
			}
		}
		// цепочка зациклилась, не дойдя до отличительной точки
		if !isDistinguished(val, d) {
			continue
		}
		prev, exists := dists[val]
		if !exists {
			dists[val] = chain{seed: seed, steps: steps}
			continue
		}
		w, found, ok := findExactCollision(step, salt, prev, chain{seed: seed, steps: steps})
		if !ok {
			return trial
		}
		if found {
			trial.Witness = w
			return trial
		}
	}
}

// Для двух цепочек с одной отличительной точкой продвигаем более длинную на разность длин,
// затем идём синхронно до первого совпадения следующих звеньев.
// found == false: одна цепочка начинается на другой, коллизии нет.
// ok == false: лимит попыток исчерпан.
func findExactCollision(step func(uint64) (uint64, bool), salt string, x, y chain) (w Witness, found, ok bool) {
	longer, shorter := x, y
	if shorter.steps > longer.steps {
		longer, shorter = shorter, longer
	}
	u, v := longer.seed, shorter.seed
	for i := 0; i < longer.steps-shorter.steps; i++ {
		if u, ok = step(u); !ok {
			return Witness{}, false, false
		}
	}
	for u != v {
		nu, ok := step(u)
		if !ok {
			return Witness{}, false, false
		}
		nv, ok := step(v)
		if !ok {
			return Witness{}, false, false
		}
		if nu == nv {
			return Witness{X: chainInput(salt, u), Y: chainInput(salt, v)}, true, true
		}
		u, v = nu, nv
	}
	return Witness{}, false, true
}
