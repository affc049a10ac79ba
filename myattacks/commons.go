// Package myattacks измеряет число попыток, необходимых для поиска прообраза
// и коллизии усечённого хэша.
package myattacks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rbwo1o/Cryptography/mydigest"
)

// --- Константы ---
const (
	NumTrials   = 50
	InputLen    = 40
	DistBits    = 4
	ChainFactor = 20 // цепочка длиннее ChainFactor*2^d бросается

	Preimage  = "preimage"
	Collision = "collision"
	Rho       = "rho"
)

var ErrInvalidParams = errors.New("invalid attack parameters")

// Config - параметры серии испытаний
type Config struct {
	Trials            int
	InputLength       int
	MaxAttempts       int // 0 - без ограничения
	DistinguishedBits int // только для rho
}

// DefaultConfig возвращает параметры исходного эксперимента
func DefaultConfig() Config {
	return Config{
		Trials:            NumTrials,
		InputLength:       InputLen,
		MaxAttempts:       0,
		DistinguishedBits: DistBits,
	}
}

func (c Config) validate() error {
	switch {
	case c.Trials < 1:
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidParams, c.Trials)
	case c.InputLength < 1:
		return fmt.Errorf("%w: input length must be positive, got %d", ErrInvalidParams, c.InputLength)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidParams, c.MaxAttempts)
	case c.DistinguishedBits < 0:
		return fmt.Errorf("%w: distinguished bits must not be negative, got %d", ErrInvalidParams, c.DistinguishedBits)
	}
	return nil
}

// Witness - пара входов, подтверждающая успех испытания.
// Для прообраза X - целевой вход, Y - найденный.
type Witness struct {
	X string
	Y string
}

// Trial - результат одного испытания
type Trial struct {
	Attempts  int
	Exhausted bool // поиск остановлен по MaxAttempts
	Witness   Witness
}

// Run - результат серии испытаний для одной ширины
type Run struct {
	Attack  string
	Bits    int
	Trials  []Trial
	Elapsed time.Duration
}

// Attempts возвращает счётчики попыток в порядке испытаний
func (r Run) Attempts() []int {
	return Attempts(r.Trials)
}

// Exhausted возвращает число испытаний, прерванных по лимиту
func (r Run) Exhausted() int {
	n := 0
	for _, t := range r.Trials {
		if t.Exhausted {
			n++
		}
	}
	return n
}

// Attempts извлекает счётчики попыток
func Attempts(trials []Trial) []int {
	out := make([]int, len(trials))
	for i, t := range trials {
		out[i] = t.Attempts
	}
	return out
}

// Attacker проводит испытания. Все испытания идут последовательно в одной горутине,
// Attacker не безопасен для конкурентного использования.
type Attacker struct {
	cfg      Config
	digest   *mydigest.Truncator
	rng      *rand.Rand
	observer Observer
	buf      []byte
}

// NewAttacker создаёт атакующего. Пустые digest, rng и observer заменяются
// на SHA-1, источник со случайным зерном и пустой наблюдатель.
func NewAttacker(cfg Config, digest *mydigest.Truncator, rng *rand.Rand, observer Observer) (*Attacker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var err error
	if digest == nil {
		digest, err = mydigest.New(mydigest.SHA1)
		if err != nil {
			return nil, err
		}
	}
	if rng == nil {
		rng = NewRand(0)
	}
	if observer == nil {
		observer = ObserverFunc(func(TrialEvent) {})
	}
	return &Attacker{
		cfg:      cfg,
		digest:   digest,
		rng:      rng,
		observer: observer,
		buf:      make([]byte, cfg.InputLength),
	}, nil
}

// Config возвращает параметры атакующего
func (a *Attacker) Config() Config { return a.cfg }

// draw возвращает новый случайный вход
func (a *Attacker) draw() string {
	fillRandom(a.rng, a.buf)
	return string(a.buf)
}

// exhausted сообщает, исчерпан ли лимит попыток
func (a *Attacker) exhausted(attempts int) bool {
	return a.cfg.MaxAttempts > 0 && attempts >= a.cfg.MaxAttempts
}

// отмена контекста проверяется раз в ctxCheckMask+1 попыток
const ctxCheckMask = 1<<12 - 1

// interrupted возвращает ошибку отмены, если контекст отменён
func interrupted(ctx context.Context, run *Run, attempts int) error {
	if attempts&ctxCheckMask != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d trials: %w", len(run.Trials), err)
	}
	return nil
}

func (a *Attacker) finish(run *Run, i int, trial Trial) {
	run.Trials = append(run.Trials, trial)
	a.observer.TrialDone(TrialEvent{Attack: run.Attack, Bits: run.Bits, Index: i, Trial: trial})
}
