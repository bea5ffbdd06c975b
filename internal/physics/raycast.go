package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

// MaxReach дальность наведения по умолчанию
const MaxReach = 8.0

// Hit результат наведения на блок
type Hit struct {
	Point  mgl64.Vec3 // точка входа луча в клетку
	Block  vec.Vec3
	Normal mgl64.Vec3 // нормаль грани, через которую вошёл луч
	Kind   block.BlockID
}

// Adjacent возвращает клетку перед гранью попадания (куда ставится блок)
func (h Hit) Adjacent() vec.Vec3 {
	return h.Block.Add(vec.Vec3{
		X: int(h.Normal.X()),
		Y: int(h.Normal.Y()),
		Z: int(h.Normal.Z()),
	})
}

// Raycast проходит клетки вдоль луча (алгоритм Амантидеса-Ву) и возвращает
// первую твёрдую клетку не дальше maxDist. Если начало луча уже внутри
// твёрдой клетки, нормаль нулевая.
func Raycast(src BlockSource, origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if maxDist <= 0 || dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var (
		cell   [3]int
		step   [3]int
		tMax   [3]float64
		tDelta [3]float64
	)
	for i := 0; i < 3; i++ {
		cell[i] = floor(origin[i])
		switch {
		case dir[i] > 0:
			step[i] = 1
			tMax[i] = (float64(cell[i]+1) - origin[i]) / dir[i]
			tDelta[i] = 1 / dir[i]
		case dir[i] < 0:
			step[i] = -1
			tMax[i] = (origin[i] - float64(cell[i])) / -dir[i]
			tDelta[i] = -1 / dir[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	t := 0.0
	var normal mgl64.Vec3
	for t <= maxDist {
		if src.IsSolid(cell[0], cell[1], cell[2]) {
			return Hit{
				Point:  origin.Add(dir.Mul(t)),
				Block:  vec.Vec3{X: cell[0], Y: cell[1], Z: cell[2]},
				Normal: normal,
				Kind:   src.GetBlock(cell[0], cell[1], cell[2]),
			}, true
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		normal = mgl64.Vec3{}
		normal[axis] = float64(-step[axis])
	}
	return Hit{}, false
}
