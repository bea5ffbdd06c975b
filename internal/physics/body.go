package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxelsim/internal/world/block"
)

// Параметры тела игрока по умолчанию
const (
	DefaultRadius     = 0.38
	DefaultHalfHeight = 0.9
	Gravity           = 24.0
	JumpSpeed         = 9.0

	// Epsilon зазор между телом и гранью блока после столкновения
	Epsilon = 0.001
)

// BlockSource источник блоков для коллизий и наведения.
// *world.World удовлетворяет этому интерфейсу.
type BlockSource interface {
	IsSolid(x, y, z int) bool
	GetBlock(x, y, z int) block.BlockID
	IsWithinHeight(y int) bool
}

// Body осевой параллелепипед с центром в Position
type Body struct {
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
	Radius     float64 // полуширина по X и Z
	HalfHeight float64
	Grounded   bool
}

// NewBody создаёт тело стандартного размера
func NewBody(pos mgl64.Vec3) *Body {
	return &Body{
		Position:   pos,
		Radius:     DefaultRadius,
		HalfHeight: DefaultHalfHeight,
	}
}

// HalfExtents возвращает полуразмеры по осям
func (b *Body) HalfExtents() mgl64.Vec3 {
	return mgl64.Vec3{b.Radius, b.HalfHeight, b.Radius}
}

// Min возвращает нижний угол коробки
func (b *Body) Min() mgl64.Vec3 {
	return b.Position.Sub(b.HalfExtents())
}

// Max возвращает верхний угол коробки
func (b *Body) Max() mgl64.Vec3 {
	return b.Position.Add(b.HalfExtents())
}

// Feet возвращает точку под центром тела на уровне подошвы
func (b *Body) Feet() mgl64.Vec3 {
	return mgl64.Vec3{b.Position.X(), b.Position.Y() - b.HalfHeight, b.Position.Z()}
}

// IntersectsBlock проверяет пересечение тела с единичной клеткой.
// Касание гранью пересечением не считается.
func (b *Body) IntersectsBlock(x, y, z int) bool {
	lo, hi := b.Min(), b.Max()
	cell := mgl64.Vec3{float64(x), float64(y), float64(z)}
	for i := 0; i < 3; i++ {
		if hi[i] <= cell[i] || lo[i] >= cell[i]+1 {
			return false
		}
	}
	return true
}

// Walk задаёт горизонтальную скорость по направлению dir (Y игнорируется)
func (b *Body) Walk(dir mgl64.Vec3, speed float64) {
	flat := mgl64.Vec3{dir.X(), 0, dir.Z()}
	if flat.Len() == 0 {
		b.Velocity[0], b.Velocity[2] = 0, 0
		return
	}
	flat = flat.Normalize().Mul(speed)
	b.Velocity[0], b.Velocity[2] = flat.X(), flat.Z()
}

// Jump придаёт вертикальную скорость, если тело стоит на опоре
func (b *Body) Jump() bool {
	if !b.Grounded {
		return false
	}
	b.Velocity[1] = JumpSpeed
	b.Grounded = false
	return true
}

// ApplyGravity уменьшает вертикальную скорость за dt
func (b *Body) ApplyGravity(dt float64) {
	b.Velocity[1] -= Gravity * dt
}
