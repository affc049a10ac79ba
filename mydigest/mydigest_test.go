package mydigest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		alg  string
		bits int
		want uint64
	}{
		{name: "sha1 8 bits", alg: SHA1, bits: 8, want: 0x9d},
		{name: "sha1 16 bits", alg: SHA1, bits: 16, want: 0xd89d},
		{name: "sha1 22 bits", alg: SHA1, bits: 22, want: 0x10d89d},
		{name: "sha1 64 bits", alg: SHA1, bits: 64, want: 0x7850c26c9cd0d89d},
		{name: "sha1cd matches sha1", alg: SHA1CD, bits: 16, want: 0xd89d},
		{name: "ripemd160 8 bits", alg: RIPEMD160, bits: 8, want: 0xfc},
		{name: "ripemd160 12 bits", alg: RIPEMD160, bits: 12, want: 0xbfc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.alg)
			require.NoError(t, err)

			got, err := tr.Sum("abc", tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSum_Deterministic(t *testing.T) {
	tr, err := New(SHA1)
	require.NoError(t, err)

	for bits := 1; bits <= MaxUintBits; bits++ {
		first, err := tr.Sum("same input", bits)
		require.NoError(t, err)
		second, err := tr.Sum("same input", bits)
		require.NoError(t, err)
		assert.Equal(t, first, second, "bits=%d", bits)
	}
}

func TestSum_Range(t *testing.T) {
	tr, err := New(SHA1)
	require.NoError(t, err)

	for _, bits := range []int{1, 8, 10, 12, 14, 16, 18, 20, 22, 63} {
		for i := 0; i < 200; i++ {
			v, err := tr.Sum(fmt.Sprintf("input-%d", i), bits)
			require.NoError(t, err)
			assert.Less(t, v, uint64(1)<<uint(bits))
		}
	}
}

func TestSum_AgreesWithSumBig(t *testing.T) {
	for _, alg := range Algorithms() {
		tr, err := New(alg)
		require.NoError(t, err)

		for _, bits := range []int{1, 7, 8, 22, 33, 64} {
			small, err := tr.Sum("Hello, World", bits)
			require.NoError(t, err)
			big, err := tr.SumBig("Hello, World", bits)
			require.NoError(t, err)
			assert.True(t, big.IsUint64())
			assert.Equal(t, small, big.Uint64(), "%s bits=%d", alg, bits)
		}
	}
}

func TestSum_InvalidWidth(t *testing.T) {
	tr, err := New(SHA1)
	require.NoError(t, err)

	for _, bits := range []int{-1, 0, 65, 161} {
		_, err := tr.Sum("abc", bits)
		assert.ErrorIs(t, err, ErrInvalidWidth, "bits=%d", bits)
	}

	_, err = tr.Func(0)
	assert.ErrorIs(t, err, ErrInvalidWidth)

	_, err = tr.SumBig("abc", 161)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestFunc_MatchesSum(t *testing.T) {
	tr, err := New(SHA1)
	require.NoError(t, err)

	f, err := tr.Func(12)
	require.NoError(t, err)

	want, err := tr.Sum("abcdef", 12)
	require.NoError(t, err)
	assert.Equal(t, want, f("abcdef"))
}

func TestHex(t *testing.T) {
	tr, err := New(SHA1)
	require.NoError(t, err)

	got, err := tr.Hex("abc", 8)
	require.NoError(t, err)
	assert.Equal(t, "0x9d", got)

	got, err = tr.Hex("abc", 160)
	require.NoError(t, err)
	assert.Equal(t, "0xa9993e364706816aba3e25717850c26c9cd0d89d", got)
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New("md5")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestWidth(t *testing.T) {
	for _, alg := range Algorithms() {
		tr, err := New(alg)
		require.NoError(t, err)
		assert.Equal(t, 160, tr.Width(), alg)
		assert.Equal(t, alg, tr.Algorithm())
	}
}

func TestTrunc(t *testing.T) {
	got, err := Trunc("abc", 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x9d), got)
}
