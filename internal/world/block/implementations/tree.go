package implementations

import (
	"math"
	"math/rand"

	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
)

const (
	treeMinHeight   = 4
	treeHeightRange = 2.5
	leafRadius      = 2
	// доля листьев, пропускаемых на краю кроны
	leafOmission = 0.15
)

// TreeHeight возвращает высоту ствола (4..6)
func TreeHeight(rng *rand.Rand) int {
	return treeMinHeight + int(math.Floor(rng.Float64()*treeHeightRange))
}

// PlantTree строит ствол и крону с основанием в base.
// Нижний блок ствола записывается безусловно (замещает саженец),
// остальные блоки пишутся только поверх воздуха или воды.
// Возвращает высоту ствола.
func PlantTree(api block.BlockAPI, rng *rand.Rand, base vec.Vec3) int {
	height := TreeHeight(rng)

	for y := 0; y < height; y++ {
		pos := vec.Vec3{X: base.X, Y: base.Y + y, Z: base.Z}
		if !api.IsWithinHeight(pos.Y + 1) {
			break
		}
		if y == 0 {
			api.Mutate(pos, block.LogBlockID)
			continue
		}
		api.MutateIfReplaceable(pos, block.LogBlockID)
	}

	centerY := base.Y + height - 2
	for dy := -leafRadius; dy <= leafRadius+1; dy++ {
		for dx := -leafRadius; dx <= leafRadius; dx++ {
			for dz := -leafRadius; dz <= leafRadius; dz++ {
				dist := canopyDistance(dx, dy, dz)
				if dist > leafRadius+0.8 {
					continue
				}

				pos := vec.Vec3{X: base.X + dx, Y: centerY + dy, Z: base.Z + dz}
				if !api.IsWithinHeight(pos.Y) {
					continue
				}
				if api.GetBlockID(pos) == block.LogBlockID {
					continue
				}

				if rng.Float64() > leafOmission || dist < leafRadius {
					api.MutateIfReplaceable(pos, block.LeavesBlockID)
				}
			}
		}
	}

	return height
}

// canopyDistance анизотропная метрика кроны: ось Z сжата
func canopyDistance(dx, dy, dz int) float64 {
	x, y, z := float64(dx), float64(dy), float64(dz)
	return math.Sqrt(x*x + y*y + z*z*0.8)
}
