package vec

// ChunkKey упакованная координата чанка (чередование битов X и Z).
type ChunkKey uint64

// BlockKey упакованная координата блока: младшие 6 бит хранят Y,
// выше чередуются по 29 бит X и Z. Допустимый диапазон X и Z
// [-BlockCoordLimit, BlockCoordLimit), Y [0, 64).
type BlockKey uint64

// BlockCoordLimit граница горизонтальных координат, представимых в BlockKey
const BlockCoordLimit = 1 << 28

const (
	chunkBias = 1 << 31
	blockBias = BlockCoordLimit
	blockMask = 1<<29 - 1
	yBits     = 6
	yMask     = 1<<yBits - 1
)

// InBlockRange проверяет, что горизонтальная координата упаковывается без наложения
func InBlockRange(x, z int) bool {
	return x >= -BlockCoordLimit && x < BlockCoordLimit &&
		z >= -BlockCoordLimit && z < BlockCoordLimit
}

// PackChunkKey упаковывает координаты чанка в ключ
func PackChunkKey(x, z int) ChunkKey {
	ux := uint64(uint32(int64(x) + chunkBias))
	uz := uint64(uint32(int64(z) + chunkBias))
	return ChunkKey(part1by1(ux) | part1by1(uz)<<1)
}

// Unpack восстанавливает координаты чанка
func (k ChunkKey) Unpack() Vec2 {
	x := int64(compact1by1(uint64(k))) - chunkBias
	z := int64(compact1by1(uint64(k)>>1)) - chunkBias
	return Vec2{X: int(x), Z: int(z)}
}

// PackBlockKey упаковывает координаты блока в ключ.
// Координаты вне диапазона BlockKey накладываются, вызывающий
// проверяет их через InBlockRange.
func PackBlockKey(x, y, z int) BlockKey {
	ux := uint64(x+blockBias) & blockMask
	uz := uint64(z+blockBias) & blockMask
	xz := part1by1(ux) | part1by1(uz)<<1
	return BlockKey(xz<<yBits | uint64(y)&yMask)
}

// Unpack восстанавливает координаты блока
func (k BlockKey) Unpack() Vec3 {
	xz := uint64(k) >> yBits
	return Vec3{
		X: int(compact1by1(xz)) - blockBias,
		Y: int(uint64(k) & yMask),
		Z: int(compact1by1(xz>>1)) - blockBias,
	}
}

func part1by1(x uint64) uint64 {
	x &= 0x00000000FFFFFFFF
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

func compact1by1(x uint64) uint64 {
	x &= 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return x
}
