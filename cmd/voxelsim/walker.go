package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxelsim/internal/logging"
	"github.com/annel0/voxelsim/internal/physics"
	"github.com/annel0/voxelsim/internal/world"
	"github.com/annel0/voxelsim/internal/world/block"
)

// eyeOffset высота глаз над центром тела (1.62 от подошвы)
const eyeOffset = 1.62 - physics.DefaultHalfHeight

var (
	forward     = mgl64.Vec3{1, 0, 0}
	plantLookAt = mgl64.Vec3{1, -1, 0}
)

// walker игрок без ввода: идёт вдоль +X, перепрыгивает ступени,
// прокапывает препятствия на уровне глаз и сажает саженцы на траву
type walker struct {
	world  *world.World
	body   *physics.Body
	speed  float64
	logger *logging.Logger

	planted int
	dug     int
}

func newWalker(w *world.World, x, z, speed float64) *walker {
	h := w.GetSurfaceHeight(int(math.Floor(x)), int(math.Floor(z)))
	pos := mgl64.Vec3{x, float64(h+1) + physics.DefaultHalfHeight + physics.Epsilon, z}
	return &walker{
		world:  w,
		body:   physics.NewBody(pos),
		speed:  speed,
		logger: logging.GetSimLogger(),
	}
}

func (wk *walker) eye() mgl64.Vec3 {
	return wk.body.Position.Add(mgl64.Vec3{0, eyeOffset, 0})
}

// Advance выполняет один шаг движения длительностью dt
func (wk *walker) Advance(dt float64) physics.Collision {
	b := wk.body
	b.Walk(forward, wk.speed)
	b.ApplyGravity(dt)
	c := physics.Move(wk.world, b, dt)

	if c.X {
		wk.clearObstacle()
		b.Jump()
	}
	return c
}

// clearObstacle выкапывает блок перед глазами, чтобы не застрять у стены
func (wk *walker) clearObstacle() {
	hit, ok := physics.Raycast(wk.world, wk.eye(), forward, 1.5)
	if !ok {
		return
	}
	if wk.world.Dig(hit.Block.X, hit.Block.Y, hit.Block.Z) {
		wk.dug++
		wk.logger.Debug("⛏️ выкопан %s в %v", hit.Kind, hit.Block)
	}
}

// Plant ставит саженец на траву впереди, если клетка не занята телом
func (wk *walker) Plant() bool {
	hit, ok := physics.Raycast(wk.world, wk.eye(), plantLookAt, physics.MaxReach)
	if !ok || hit.Kind != block.GrassBlockID {
		return false
	}
	target := hit.Adjacent()
	if wk.body.IntersectsBlock(target.X, target.Y, target.Z) {
		return false
	}
	if !wk.world.Place(target.X, target.Y, target.Z, block.SaplingBlockID) {
		return false
	}
	wk.planted++
	wk.logger.Debug("🌱 саженец посажен в %v", target)
	return true
}

// Position возвращает позицию тела
func (wk *walker) Position() mgl64.Vec3 {
	return wk.body.Position
}
