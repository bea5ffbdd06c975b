package util

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// FractalNoise группа октав шума Перлина с собственным сидом.
// Значения нормированы в диапазон [0, 1].
type FractalNoise struct {
	perlin       *perlin.Perlin
	amplitudeSum float64
}

// NewFractalNoise создаёт группу октав.
// persistence - множитель амплитуды, lacunarity - множитель частоты между октавами.
func NewFractalNoise(seed int64, octaves int, persistence, lacunarity float64) *FractalNoise {
	alpha := 1.0 / persistence // go-perlin делит амплитуду на alpha на каждой октаве
	sum := 0.0
	amp := 1.0
	for i := 0; i < octaves; i++ {
		sum += amp
		amp *= persistence
	}
	return &FractalNoise{
		perlin:       perlin.NewPerlin(alpha, lacunarity, int32(octaves), seed),
		amplitudeSum: sum,
	}
}

// Sample возвращает значение шума для указанных координат (от 0 до 1)
func (f *FractalNoise) Sample(x, y float64) float64 {
	// Получаем значение шума (примерно от -1 до 1)
	noise := f.perlin.Noise2D(x, y) / f.amplitudeSum

	// Преобразуем в диапазон от 0 до 1
	return Clamp01((noise + 1.0) / 2.0)
}

// Clamp01 ограничивает значение отрезком [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
