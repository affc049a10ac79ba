// Package mydigest вычисляет усечённые хэши: от полного дайджеста
// остаются только младшие bits бит.
//
// Усечение моделирует идеальную bits-битную случайную функцию. Результаты
// экспериментов над ним ничего не говорят о стойкости полного хэша.
package mydigest

import (
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math/big"

	"github.com/pjbgf/sha1cd"
	"golang.org/x/crypto/ripemd160"
)

// --- Константы ---
const (
	SHA1      = "sha1"
	SHA1CD    = "sha1cd"
	RIPEMD160 = "ripemd160"

	// MaxUintBits - предел ширины для представления значения в uint64
	MaxUintBits = 64
)

var (
	ErrInvalidWidth     = errors.New("invalid truncation width")
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
)

var constructors = map[string]func() hash.Hash{
	SHA1:      sha1.New,
	SHA1CD:    sha1cd.New,
	RIPEMD160: ripemd160.New,
}

// Algorithms возвращает имена поддерживаемых алгоритмов
func Algorithms() []string {
	return []string{SHA1, SHA1CD, RIPEMD160}
}

// Truncator хранит одно состояние хэша и переиспользует его между вызовами.
// Не безопасен для конкурентного использования.
type Truncator struct {
	alg  string
	h    hash.Hash
	sum  []byte
	bits int
}

// New создаёт усекающий хэш для алгоритма alg
func New(alg string) (*Truncator, error) {
	ctor, ok := constructors[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	h := ctor()
	return &Truncator{
		alg:  alg,
		h:    h,
		sum:  make([]byte, 0, h.Size()),
		bits: h.Size() * 8,
	}, nil
}

// Algorithm возвращает имя алгоритма
func (t *Truncator) Algorithm() string { return t.alg }

// Width возвращает собственную разрядность дайджеста в битах
func (t *Truncator) Width() int { return t.bits }

func (t *Truncator) digest(s string) []byte {
	t.h.Reset()
	t.h.Write([]byte(s))
	t.sum = t.h.Sum(t.sum[:0])
	return t.sum
}

// CheckWidth проверяет, что ширина bits допустима для Sum
func (t *Truncator) CheckWidth(bits int) error {
	if bits < 1 || bits > MaxUintBits || bits > t.bits {
		return fmt.Errorf("%w: %d bits (%s allows 1..%d)", ErrInvalidWidth, bits, t.alg, min(MaxUintBits, t.bits))
	}
	return nil
}

// Sum вычисляет дайджест UTF-8 байт строки s и оставляет младшие bits бит
func (t *Truncator) Sum(s string, bits int) (uint64, error) {
	if err := t.CheckWidth(bits); err != nil {
		return 0, err
	}
	return t.sum64(s, bits), nil
}

// sum64 - Sum без проверки ширины, для горячих циклов атак
func (t *Truncator) sum64(s string, bits int) uint64 {
	d := t.digest(s)
	// последние 8 байт big-endian числа содержат младшие 64 бита
	low := binary.BigEndian.Uint64(d[len(d)-8:])
	if bits == MaxUintBits {
		return low
	}
	return low & (1<<uint(bits) - 1)
}

// Func возвращает функцию усечения с заранее проверенной шириной
func (t *Truncator) Func(bits int) (func(string) uint64, error) {
	if err := t.CheckWidth(bits); err != nil {
		return nil, err
	}
	return func(s string) uint64 { return t.sum64(s, bits) }, nil
}

// SumBig усекает дайджест через big.Int, допускает ширину до Width()
func (t *Truncator) SumBig(s string, bits int) (*big.Int, error) {
	if bits < 1 || bits > t.bits {
		return nil, fmt.Errorf("%w: %d bits (%s allows 1..%d)", ErrInvalidWidth, bits, t.alg, t.bits)
	}
	hashInt := new(big.Int).SetBytes(t.digest(s))

	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1)) // == 00...0111.111
	return hashInt.And(hashInt, mask), nil
}

// Hex возвращает усечённый дайджест в виде "0x..." без ведущих нулей
func (t *Truncator) Hex(s string, bits int) (string, error) {
	v, err := t.SumBig(s, bits)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#x", v), nil
}

// Trunc - усечённый SHA-1 от строки s
func Trunc(s string, bits int) (uint64, error) {
	t, err := New(SHA1)
	if err != nil {
		return 0, err
	}
	return t.Sum(s, bits)
}
