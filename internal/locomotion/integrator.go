package locomotion

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Integrator struct {
	cfg   PlayerConfig
	state KinematicState
	last  time.Duration
}

// NewIntegrator starts grounded at rest. start is the frame-clock reading the
// first Tick measures its delta from.
func NewIntegrator(cfg PlayerConfig, start time.Duration) *Integrator {
	return &Integrator{
		cfg:   cfg,
		state: KinematicState{Grounded: true},
		last:  start,
	}
}

func (it *Integrator) Config() PlayerConfig {
	return it.cfg
}

func (it *Integrator) State() KinematicState {
	return it.state
}

func (it *Integrator) Grounded() bool {
	return it.state.Grounded
}

func (it *Integrator) LastUpdate() time.Duration {
	return it.last
}

// Reset moves the clock reference without integrating, e.g. after a pause or
// teleport so the next delta does not cover the gap.
func (it *Integrator) Reset(now time.Duration) {
	it.last = now
}

// Halt zeroes velocity. Callers that move the sink directly (teleports)
// pass whether the new position rests on the floor.
func (it *Integrator) Halt(grounded bool) {
	it.state.Velocity = mgl64.Vec3{}
	it.state.Grounded = grounded
}

// Jump is a no-op while airborne.
func (it *Integrator) Jump() {
	if !it.state.Grounded {
		return
	}
	it.state.Velocity[1] += it.cfg.JumpImpulse
	it.state.Grounded = false
}

// Tick integrates one frame. Ticks whose timestamp does not advance are
// dropped without touching state. The damping factor saturates at 1 so a long
// stall (backgrounded window) stops the player instead of reversing them.
func (it *Integrator) Tick(now time.Duration, input InputState, sink PoseSink) {
	if sink == nil || now <= it.last {
		return
	}
	delta := (now - it.last).Seconds()
	it.last = now
	if !finiteVec(it.state.Velocity) {
		it.state.Velocity = mgl64.Vec3{}
	}

	v := &it.state.Velocity
	damp := math.Min(Damping*delta, 1)
	v[0] -= v[0] * damp
	v[2] -= v[2] * damp
	v[1] -= Gravity * delta

	if input.Horizontal() {
		dir := desiredDirection(input)
		v[2] -= dir[2] * it.cfg.Speed * delta
		v[0] -= dir[0] * it.cfg.Speed * delta
	}

	sink.MoveRight(-v[0] * delta)
	sink.MoveForward(-v[2] * delta)

	sink.SetY(sink.Y() + v[1]*delta)

	if sink.Y() < it.cfg.Height {
		v[1] = 0
		sink.SetY(it.cfg.Height)
		it.state.Grounded = true
	}
}

func desiredDirection(input InputState) mgl64.Vec3 {
	dir := mgl64.Vec3{
		boolToFloat(input.Right) - boolToFloat(input.Left),
		0,
		boolToFloat(input.Forward) - boolToFloat(input.Backward),
	}
	length := dir.Len()
	if length == 0 {
		return dir
	}
	return dir.Mul(1 / length)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
