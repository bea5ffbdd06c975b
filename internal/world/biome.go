package world

import "github.com/annel0/voxelsim/internal/world/block"

// Biome представляет тип биома колонки
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeForest
	BiomeMountains
	BiomeBeach
)

// String возвращает имя биома
func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "Plains"
	case BiomeDesert:
		return "Desert"
	case BiomeForest:
		return "Forest"
	case BiomeMountains:
		return "Mountains"
	case BiomeBeach:
		return "Beach"
	default:
		return "Unknown"
	}
}

// Пороговые значения классификации биомов
const (
	BeachBand            = 1    // |h - sea| <= BeachBand ⇒ пляж
	DesertBiomeMax       = 0.42 // шум биома ниже ⇒ пустыня (вместе с сухостью)
	DesertMoistureMax    = 0.45
	MountainBiomeMin     = 0.62
	MountainHeightOffset = 16 // h >= sea + offset ⇒ горы
	ForestMoistureMin    = 0.55

	// Высоты поверхности гор относительно уровня моря
	mountainStoneOffset = 14
	mountainSnowOffset  = 20
)

// biomeProfile описывает параметры генерации биома
type biomeProfile struct {
	Amplitude  float64 // множитель отклонения высоты от уровня моря
	Surface    block.BlockID
	Subsurface block.BlockID

	TreeChance    float64
	SaplingChance float64 // накопительный порог после деревьев
	WheatChance   float64 // накопительный порог после деревьев
}

var biomeProfiles = [...]biomeProfile{
	BiomePlains: {
		Amplitude:   0.8,
		Surface:     block.GrassBlockID,
		Subsurface:  block.DirtBlockID,
		TreeChance:  0.01,
		WheatChance: 0.05,
	},
	BiomeDesert: {
		Amplitude:  0.7,
		Surface:    block.SandBlockID,
		Subsurface: block.SandBlockID,
	},
	BiomeForest: {
		Amplitude:     1.0,
		Surface:       block.GrassBlockID,
		Subsurface:    block.DirtBlockID,
		TreeChance:    0.06,
		SaplingChance: 0.08,
	},
	BiomeMountains: {
		Amplitude:  1.6,
		Surface:    block.GrassBlockID,
		Subsurface: block.StoneBlockID,
		TreeChance: 0.008,
	},
	BiomeBeach: {
		Amplitude:  1.0,
		Surface:    block.SandBlockID,
		Subsurface: block.SandBlockID,
	},
}

// ClassifyBiome чистая функция классификации биома.
// Порядок правил: пляж, пустыня, горы, лес, равнины.
func ClassifyBiome(biomeNoise, moisture float64, height, seaLevel int) Biome {
	diff := height - seaLevel
	if diff < 0 {
		diff = -diff
	}

	switch {
	case diff <= BeachBand:
		return BiomeBeach
	case biomeNoise < DesertBiomeMax && moisture < DesertMoistureMax:
		return BiomeDesert
	case biomeNoise > MountainBiomeMin || height >= seaLevel+MountainHeightOffset:
		return BiomeMountains
	case moisture > ForestMoistureMin:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// surfaceBlock возвращает верхний блок колонки с учётом высоты
func surfaceBlock(b Biome, height, seaLevel int) block.BlockID {
	if height <= seaLevel {
		return block.SandBlockID
	}
	if b == BiomeMountains {
		switch {
		case height >= seaLevel+mountainSnowOffset:
			return block.SnowBlockID
		case height >= seaLevel+mountainStoneOffset:
			return block.StoneBlockID
		}
	}
	return biomeProfiles[b].Surface
}
