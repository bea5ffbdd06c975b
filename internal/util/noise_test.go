package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractalNoiseRangeAndDeterminism(t *testing.T) {
	a := NewFractalNoise(1337, 4, 0.5, 2.1)
	b := NewFractalNoise(1337, 4, 0.5, 2.1)
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.173
		y := float64(i) * -0.291
		v := a.Sample(x, y)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.Sample(x, y), "одинаковый сид даёт одинаковый шум")
	}
}

func TestFractalNoiseSeedsDiffer(t *testing.T) {
	a := NewFractalNoise(1, 3, 0.6, 2.6)
	b := NewFractalNoise(2, 3, 0.6, 2.6)
	differs := false
	for i := 1; i < 50; i++ {
		x := float64(i) * 0.37
		if a.Sample(x, x*0.5) != b.Sample(x, x*0.5) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "разные сиды должны давать разный шум")
}

func TestPositionHash(t *testing.T) {
	h := PositionHash(7, 1, 2, 3, SaltFlora)
	assert.Equal(t, h, PositionHash(7, 1, 2, 3, SaltFlora))
	assert.NotEqual(t, h, PositionHash(8, 1, 2, 3, SaltFlora), "сид влияет на хеш")
	assert.NotEqual(t, h, PositionHash(7, 1, 2, 3, SaltGrowth), "соль влияет на хеш")
	assert.NotEqual(t, h, PositionHash(7, -1, 2, 3, SaltFlora))

	u := HashUnit(h)
	assert.GreaterOrEqual(t, u, 0.0)
	assert.Less(t, u, 1.0)
}

func TestPositionRandDeterministic(t *testing.T) {
	a := PositionRand(5, 10, 20, 30, SaltTreeShape)
	b := PositionRand(5, 10, 20, 30, SaltTreeShape)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
