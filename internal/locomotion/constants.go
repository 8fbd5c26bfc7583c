package locomotion

const (
	// Damping is the exponential decay rate of horizontal velocity, per second.
	Damping = 10.0
	// Gravity is eight times Earth's.
	Gravity = 9.8 * 8.0

	DefaultHeight      = 1.8
	DefaultSpeed       = 12.0
	DefaultJumpImpulse = 20.0
)
