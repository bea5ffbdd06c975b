package world

import (
	"math"

	"github.com/annel0/voxelsim/internal/util"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world/block"
	"github.com/annel0/voxelsim/internal/world/block/implementations"
)

// Параметры рельефа
const (
	// горизонтальный масштаб нормализации координат шума
	terrainScale = 128.0

	continentalWeight = 18.0
	detailWeight      = 8.0
	roughWeight       = 2.0
	heightBias        = 6.0

	subsurfaceDepth = 3
	minColumnHeight = 1
	// запас под крону дерева у потолка мира
	maxColumnHeight = ChunkHeight - 10

	// корни деревьев не ближе к краю чанка, чтобы крона не выходила за него
	treeMargin = 2
)

// Сдвиги сидов независимых групп октав
const (
	seedOffsetDetail   = 101
	seedOffsetRough    = 503
	seedOffsetBiome    = 907
	seedOffsetMoisture = 1301
)

// ColumnInfo результат генерации одной колонки
type ColumnInfo struct {
	Height int
	Biome  Biome
}

// WorldGenerator генерирует ландшафт мира.
// Результат - чистая функция (seed, worldX, worldZ).
type WorldGenerator struct {
	Seed     int64
	SeaLevel int

	continental *util.FractalNoise
	detail      *util.FractalNoise
	rough       *util.FractalNoise
	biome       *util.FractalNoise
	moisture    *util.FractalNoise
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64, seaLevel int) *WorldGenerator {
	return &WorldGenerator{
		Seed:        seed,
		SeaLevel:    seaLevel,
		continental: util.NewFractalNoise(seed, 4, 0.5, 2.1),
		detail:      util.NewFractalNoise(seed+seedOffsetDetail, 3, 0.6, 2.6),
		rough:       util.NewFractalNoise(seed+seedOffsetRough, 2, 0.7, 3.6),
		biome:       util.NewFractalNoise(seed+seedOffsetBiome, 3, 0.5, 2.0),
		moisture:    util.NewFractalNoise(seed+seedOffsetMoisture, 3, 0.5, 2.0),
	}
}

// Column вычисляет высоту поверхности и биом колонки
func (wg *WorldGenerator) Column(wx, wz int) ColumnInfo {
	nx := float64(wx) / terrainScale
	nz := float64(wz) / terrainScale

	continental := wg.continental.Sample(nx*1.4, nz*1.4)
	detail := wg.detail.Sample(nx*6.0, nz*6.0)
	rough := wg.rough.Sample(nx*18.0, nz*18.0)

	sea := float64(wg.SeaLevel)
	raw := sea + continental*continentalWeight + detail*detailWeight + rough*roughWeight - heightBias

	biomeNoise := wg.biome.Sample(nx*0.9, nz*0.9)
	moisture := wg.moisture.Sample(nx*1.1, nz*1.1)

	// предварительный биом задаёт амплитуду, итоговый считается по финальной высоте
	pre := ClassifyBiome(biomeNoise, moisture, int(math.Round(raw)), wg.SeaLevel)
	height := int(math.Round(sea + (raw-sea)*biomeProfiles[pre].Amplitude))
	height = clampInt(height, minColumnHeight, maxColumnHeight)

	return ColumnInfo{
		Height: height,
		Biome:  ClassifyBiome(biomeNoise, moisture, height, wg.SeaLevel),
	}
}

// GenerateChunk генерирует чанк по его координатам.
// Возвращает чанк и мировые позиции сгенерированных тикаемых блоков.
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) (*Chunk, []vec.Vec3) {
	chunk := NewChunk(coords)
	origin := coords.Origin()

	var columns [chunkArea]ColumnInfo
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			col := wg.Column(origin.X+x, origin.Z+z)
			columns[x+ChunkSize*z] = col
			chunk.setBiome(x, z, col.Biome)
			wg.fillColumn(chunk, x, z, col)
		}
	}

	var tickable []vec.Vec3
	api := &chunkBlockAPI{chunk: chunk, seed: wg.Seed}
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			if pos, ok := wg.scatterFlora(api, x, z, columns[x+ChunkSize*z]); ok {
				tickable = append(tickable, pos)
			}
		}
	}

	return chunk, tickable
}

// fillColumn заполняет колонку снизу вверх: камень, подповерхностный слой,
// поверхностный блок, затем вода до уровня моря или воздух
func (wg *WorldGenerator) fillColumn(chunk *Chunk, x, z int, col ColumnInfo) {
	profile := biomeProfiles[col.Biome]
	top := surfaceBlock(col.Biome, col.Height, wg.SeaLevel)

	for y := 0; y <= col.Height; y++ {
		id := block.StoneBlockID
		switch {
		case y == col.Height:
			id = top
		case y >= col.Height-subsurfaceDepth:
			id = profile.Subsurface
		}
		chunk.SetLocalUnconditional(x, y, z, id)
	}

	if wg.SeaLevel > col.Height {
		waterTop := minInt(wg.SeaLevel, ChunkHeight-1)
		for y := col.Height + 1; y <= waterTop; y++ {
			chunk.SetLocalUnconditional(x, y, z, block.WaterSourceBlockID)
		}
	}
}

// scatterFlora второй проход: флора на травяных колонках выше уровня моря.
// Возвращает позицию тикаемой флоры, если она посажена.
func (wg *WorldGenerator) scatterFlora(api *chunkBlockAPI, x, z int, col ColumnInfo) (vec.Vec3, bool) {
	if col.Height <= wg.SeaLevel+1 || col.Height+1 >= ChunkHeight {
		return vec.Vec3{}, false
	}
	if api.chunk.GetLocal(x, col.Height, z) != block.GrassBlockID {
		return vec.Vec3{}, false
	}

	profile := biomeProfiles[col.Biome]
	base := api.chunk.WorldPos(x, col.Height+1, z)
	r := util.HashUnit(util.PositionHash(wg.Seed, base.X, 0, base.Z, util.SaltFlora))

	switch {
	case r < profile.TreeChance:
		if x < treeMargin || x >= ChunkSize-treeMargin || z < treeMargin || z >= ChunkSize-treeMargin {
			return vec.Vec3{}, false
		}
		rng := util.PositionRand(wg.Seed, base.X, base.Y, base.Z, util.SaltTreeShape)
		implementations.PlantTree(api, rng, base)
		return vec.Vec3{}, false
	case r < profile.SaplingChance:
		if api.MutateIfReplaceable(base, block.SaplingBlockID) {
			return base, true
		}
	case r < profile.WheatChance:
		if api.MutateIfReplaceable(base, block.Wheat1BlockID) {
			return base, true
		}
	}
	return vec.Vec3{}, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
