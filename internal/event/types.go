package event

import "github.com/go-gl/mathgl/mgl64"

const (
	EventJumped      = "player.jumped"
	EventLanded      = "player.landed"
	EventProjectNear = "project.near"
	EventInteract    = "screen.interact"
)

type JumpedEvent struct {
	Position mgl64.Vec3
	Impulse  float64
}

type LandedEvent struct {
	Position mgl64.Vec3
	Airtime  float64
}

// ProjectNearEvent fires when the nearest platform changes. ProjectID is
// empty when the player walks away from all of them.
type ProjectNearEvent struct {
	ProjectID string
	Distance  float64
}

type InteractEvent struct {
	ProjectID string
	URL       string
	Contact   bool
}
