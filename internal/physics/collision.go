package physics

import "math"

// Collision оси, по которым движение было остановлено
type Collision struct {
	X, Y, Z bool
}

// Any сообщает, было ли хоть одно столкновение
func (c Collision) Any() bool {
	return c.X || c.Y || c.Z
}

// Move перемещает тело на Velocity*dt, разрешая столкновения по осям
// в порядке X, Z, Y. При вертикальном столкновении скорость по Y
// обнуляется, Grounded выставляется при падении или покое.
func Move(src BlockSource, b *Body, dt float64) Collision {
	var c Collision
	c.X = sweepAxis(src, b, 0, b.Velocity.X()*dt)
	c.Z = sweepAxis(src, b, 2, b.Velocity.Z()*dt)

	dy := b.Velocity.Y() * dt
	if dy == 0 {
		b.Grounded = restingOnGround(src, b)
		return c
	}

	c.Y = sweepAxis(src, b, 1, dy)
	b.Grounded = c.Y && b.Velocity.Y() <= 0
	if c.Y {
		b.Velocity[1] = 0
	}
	return c
}

// solidAt считает твёрдыми клетки вне высоты мира (пол и потолок)
func solidAt(src BlockSource, x, y, z int) bool {
	return !src.IsWithinHeight(y) || src.IsSolid(x, y, z)
}

// cellRange возвращает диапазон клеток, которые перекрывает тело
func cellRange(b *Body) (lo, hi [3]int) {
	bmin, bmax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		lo[i] = floor(bmin[i])
		hi[i] = floor(bmax[i])
	}
	return lo, hi
}

// sweepAxis сдвигает тело по одной оси и прижимает его к ближайшей
// твёрдой клетке на пути. Проверяются все слои клеток между начальной
// и конечной передней гранью, поэтому быстрое тело не проходит сквозь блок.
func sweepAxis(src BlockSource, b *Body, axis int, delta float64) bool {
	if delta == 0 {
		return false
	}

	half := b.HalfExtents()[axis]
	start := b.Position[axis]
	b.Position[axis] += delta
	lo, hi := cellRange(b)

	from, to, step := floor(start+half), floor(b.Position[axis]+half), 1
	if delta < 0 {
		from, to, step = floor(start-half), floor(b.Position[axis]-half), -1
	}

	for i := from; ; i += step {
		if layerBlocked(src, axis, i, lo, hi) {
			if delta > 0 {
				b.Position[axis] = float64(i) - half - Epsilon
			} else {
				b.Position[axis] = float64(i+1) + half + Epsilon
			}
			return true
		}
		if i == to {
			return false
		}
	}
}

// layerBlocked проверяет слой клеток с координатой i по оси axis
// в пределах перекрытия тела по двум другим осям
func layerBlocked(src BlockSource, axis, i int, lo, hi [3]int) bool {
	lo[axis], hi[axis] = i, i
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if solidAt(src, x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// restingOnGround проверяет опору под неподвижным по вертикали телом
func restingOnGround(src BlockSource, b *Body) bool {
	lo, hi := cellRange(b)
	below := floor(b.Position.Y() - b.HalfHeight - 2*Epsilon)
	return layerBlocked(src, 1, below, lo, hi)
}

func floor(v float64) int {
	return int(math.Floor(v))
}
