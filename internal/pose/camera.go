package pose

import "github.com/go-gl/mathgl/mgl64"

// Camera moves on the ground plane: looking up or down never changes how far
// a step forward travels.
type Camera struct {
	view
}

func (c *Camera) MoveForward(distance float64) {
	forward := mgl64.Rotate3DY(c.yaw).Mul3x1(mgl64.Vec3{0, 0, -1})
	c.pos = c.pos.Add(forward.Mul(distance))
}

func (c *Camera) MoveRight(distance float64) {
	c.pos = c.pos.Add(c.right().Mul(distance))
}

// FreeCamera translates along its own axes, so walking forward while looking
// up lifts the eye; the ground clamp then pulls it back down.
type FreeCamera struct {
	view
}

func (c *FreeCamera) MoveForward(distance float64) {
	c.pos = c.pos.Add(c.ViewDirection().Mul(distance))
}

func (c *FreeCamera) MoveRight(distance float64) {
	c.pos = c.pos.Add(c.right().Mul(distance))
}
