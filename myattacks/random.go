package myattacks

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Alphabet - символы случайных входов
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// NewRand создаёт генератор PCG. При seed == 0 зерно берётся из crypto/rand.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomString возвращает строку длины n из символов Alphabet,
// выбранных равновероятно с возвращением
func RandomString(rng *rand.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	fillRandom(rng, b)
	return string(b)
}

func fillRandom(rng *rand.Rand, b []byte) {
	for i := range b {
		b[i] = Alphabet[rng.IntN(len(Alphabet))]
	}
}
