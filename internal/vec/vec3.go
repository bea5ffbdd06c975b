package vec

import "math"

// Vec3 представляет трехмерный вектор с целочисленными координатами блока.
// Y - вертикальная ось.
type Vec3 struct {
	X int
	Y int
	Z int
}

// FromWorld возвращает блок, содержащий точку с вещественными координатами
func FromWorld(x, y, z float64) Vec3 {
	return Vec3{
		X: int(math.Floor(x)),
		Y: int(math.Floor(y)),
		Z: int(math.Floor(z)),
	}
}

// Column возвращает горизонтальную проекцию блока
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// ChunkCoords возвращает координаты чанка, содержащего блок
func (v Vec3) ChunkCoords() Vec2 {
	return v.Column().ToChunkCoords()
}

// Local возвращает координаты блока внутри чанка (Y не меняется)
func (v Vec3) Local() Vec3 {
	return Vec3{X: v.X & (ChunkSize - 1), Y: v.Y, Z: v.Z & (ChunkSize - 1)}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Key возвращает упакованный ключ блока
func (v Vec3) Key() BlockKey {
	return PackBlockKey(v.X, v.Y, v.Z)
}

// Neighbors6 соседи по граням: +X, -X, +Y, -Y, +Z, -Z
var Neighbors6 = [6]Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// Horizontal4 горизонтальные соседи по граням
var Horizontal4 = [4]Vec3{
	{X: 1}, {X: -1},
	{Z: 1}, {Z: -1},
}
