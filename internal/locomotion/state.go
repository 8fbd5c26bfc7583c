package locomotion

import "github.com/go-gl/mathgl/mgl64"

type KinematicState struct {
	Velocity mgl64.Vec3
	Grounded bool
}

type PlayerConfig struct {
	Height      float64
	Speed       float64
	JumpImpulse float64
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Height:      DefaultHeight,
		Speed:       DefaultSpeed,
		JumpImpulse: DefaultJumpImpulse,
	}
}

// InputState is the per-frame snapshot of held direction keys plus the
// one-shot jump trigger. Sources own the flags; the integrator only reads them.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
}

func (in InputState) Horizontal() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

// PoseSink is the camera-side half of the contract. MoveForward and MoveRight
// translate along the sink's local axes; Y/SetY address the world vertical.
type PoseSink interface {
	MoveForward(distance float64)
	MoveRight(distance float64)
	Y() float64
	SetY(y float64)
}
