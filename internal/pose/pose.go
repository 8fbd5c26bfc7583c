// Package pose holds the viewpoint the locomotion integrator drives.
//
// Two sinks satisfy the same contract: Camera walks on the horizontal plane
// regardless of pitch (pointer-lock style), FreeCamera translates along its
// full local axes. Which one is wired in is decided at startup.
package pose

import (
	"math"

	"github.com/Versifine/folio/internal/locomotion"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultSensitivity = 0.002
	maxPitch           = math.Pi / 2
)

// Sink is what frontends and the player need beyond the integrator contract.
type Sink interface {
	locomotion.PoseSink
	Look(dx, dy float64)
	Position() mgl64.Vec3
	SetPosition(pos mgl64.Vec3)
	Yaw() float64
	Pitch() float64
	ViewDirection() mgl64.Vec3
}

type Kind string

const (
	KindCamera     Kind = "camera"
	KindFreeCamera Kind = "free"
)

// New builds the sink for kind; unknown kinds get the pointer-lock camera.
func New(kind Kind, spawn mgl64.Vec3, sensitivity float64) Sink {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	v := view{pos: spawn, sensitivity: sensitivity}
	if kind == KindFreeCamera {
		return &FreeCamera{view: v}
	}
	return &Camera{view: v}
}

// Spawn is where the viewpoint starts: eye height, a few units back from the
// welcome screen.
func Spawn(height float64) mgl64.Vec3 {
	return mgl64.Vec3{0, height, 5}
}

type view struct {
	pos         mgl64.Vec3
	yaw         float64
	pitch       float64
	sensitivity float64
}

func (v *view) Y() float64                 { return v.pos[1] }
func (v *view) SetY(y float64)             { v.pos[1] = y }
func (v *view) Position() mgl64.Vec3       { return v.pos }
func (v *view) SetPosition(pos mgl64.Vec3) { v.pos = pos }
func (v *view) Yaw() float64               { return v.yaw }
func (v *view) Pitch() float64             { return v.pitch }

// Look applies pointer movement. Moving right turns right, moving down looks
// down; pitch stops at straight up/down.
func (v *view) Look(dx, dy float64) {
	v.yaw = normalizeYaw(v.yaw - dx*v.sensitivity)
	v.pitch = clampPitch(v.pitch - dy*v.sensitivity)
}

// ViewDirection is the unit vector the eye looks along, -Z at rest.
func (v *view) ViewDirection() mgl64.Vec3 {
	return orientation(v.yaw, v.pitch).Mul3x1(mgl64.Vec3{0, 0, -1})
}

func (v *view) right() mgl64.Vec3 {
	return mgl64.Rotate3DY(v.yaw).Mul3x1(mgl64.Vec3{1, 0, 0})
}

func orientation(yaw, pitch float64) mgl64.Mat3 {
	return mgl64.Rotate3DY(yaw).Mul3(mgl64.Rotate3DX(pitch))
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

func normalizeYaw(y float64) float64 {
	for y <= -math.Pi {
		y += 2 * math.Pi
	}
	for y > math.Pi {
		y -= 2 * math.Pi
	}
	return y
}
