package vec

// ChunkSize длина стороны чанка по горизонтали (в блоках)
const ChunkSize = 16

// chunkShift log2(ChunkSize)
const chunkShift = 4

// Vec2 представляет горизонтальные координаты (X, Z).
// Используется как координата чанка и как координата колонки блоков.
type Vec2 struct {
	X, Z int
}

// ToChunkCoords преобразует глобальные координаты колонки в координаты чанка.
// Арифметический сдвиг даёт floor-деление и для отрицательных значений.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> chunkShift, Z: v.Z >> chunkShift}
}

// LocalInChunk возвращает локальные координаты внутри чанка (0..15)
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & (ChunkSize - 1), Z: v.Z & (ChunkSize - 1)}
}

// Origin возвращает мировые координаты угла чанка с минимальными X и Z
func (v Vec2) Origin() Vec2 {
	return Vec2{X: v.X << chunkShift, Z: v.Z << chunkShift}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}

// ChebyshevTo возвращает расстояние Чебышёва (квадратная окрестность)
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := abs(v.X - other.X)
	dz := abs(v.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

// Key возвращает упакованный ключ чанка
func (v Vec2) Key() ChunkKey {
	return PackChunkKey(v.X, v.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
