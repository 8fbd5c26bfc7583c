package player

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Versifine/folio/internal/event"
	"github.com/Versifine/folio/internal/locomotion"
	"github.com/Versifine/folio/internal/pose"
	"github.com/go-gl/mathgl/mgl64"
)

// StateUpdater receives the pose after every integrated step.
type StateUpdater interface {
	UpdatePose(state State)
}

type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Grounded bool
}

// Player binds the integrator to a pose sink. Step, Look and Teleport share
// one lock so a key-reader goroutine can never interleave with a frame.
type Player struct {
	mu            sync.Mutex
	integrator    *locomotion.Integrator
	sink          pose.Sink
	bus           *event.Bus
	stateUpdater  StateUpdater
	airborneSince time.Duration
	lastNow       time.Duration
}

func New(cfg locomotion.PlayerConfig, sink pose.Sink, bus *event.Bus) *Player {
	return &Player{
		integrator: locomotion.NewIntegrator(cfg, 0),
		sink:       sink,
		bus:        bus,
	}
}

// SetStateUpdater replaces the receiver of pose updates; nil detaches it.
func (p *Player) SetStateUpdater(u StateUpdater) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stateUpdater = u
	p.mu.Unlock()
}

// ResetClock makes now the reference for the next Step without integrating
// the gap, e.g. after the window regains focus or a new frame clock starts.
func (p *Player) ResetClock(now time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	from := p.integrator.LastUpdate()
	p.integrator.Reset(now)
	p.lastNow = now
	p.mu.Unlock()
	slog.Debug("player clock reset", "from", from, "to", now)
}

func (p *Player) Step(now time.Duration, input locomotion.InputState) error {
	if p == nil {
		return fmt.Errorf("player is nil")
	}
	if p.sink == nil {
		return fmt.Errorf("pose sink is nil")
	}

	p.mu.Lock()
	jumped := false
	if input.Jump && p.integrator.Grounded() {
		p.integrator.Jump()
		p.airborneSince = now
		jumped = true
	}
	wasGrounded := p.integrator.Grounded()
	p.integrator.Tick(now, input, p.sink)
	p.lastNow = now
	landed := !wasGrounded && p.integrator.Grounded()
	airtime := (now - p.airborneSince).Seconds()
	state := p.snapshotLocked()
	impulse := p.integrator.Config().JumpImpulse
	updater := p.stateUpdater
	p.mu.Unlock()

	if jumped {
		slog.Debug("player jumped", "x", state.Position.X(), "z", state.Position.Z())
		p.bus.Publish(event.EventJumped, event.JumpedEvent{Position: state.Position, Impulse: impulse})
	}
	if landed {
		slog.Debug("player landed", "airtime", airtime)
		p.bus.Publish(event.EventLanded, event.LandedEvent{Position: state.Position, Airtime: airtime})
	}
	if updater != nil {
		updater.UpdatePose(state)
	}
	return nil
}

func (p *Player) Look(dx, dy float64) {
	if p == nil || p.sink == nil {
		return
	}
	p.mu.Lock()
	p.sink.Look(dx, dy)
	p.mu.Unlock()
}

// Teleport places the eye at pos. Anything below eye height is lifted onto
// the floor; anything above it starts falling on the next step.
func (p *Player) Teleport(pos mgl64.Vec3) {
	if p == nil || p.sink == nil {
		return
	}
	p.mu.Lock()
	height := p.integrator.Config().Height
	if pos.Y() < height {
		pos[1] = height
	}
	p.sink.SetPosition(pos)
	grounded := pos.Y() == height
	p.integrator.Halt(grounded)
	if !grounded {
		p.airborneSince = p.lastNow
	}
	state := p.snapshotLocked()
	updater := p.stateUpdater
	p.mu.Unlock()

	slog.Info("player teleported", "x", pos.X(), "y", pos.Y(), "z", pos.Z())
	if updater != nil {
		updater.UpdatePose(state)
	}
}

func (p *Player) Snapshot() State {
	if p == nil {
		return State{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Eye returns the ray origin and direction at the center of the view.
func (p *Player) Eye() (mgl64.Vec3, mgl64.Vec3) {
	if p == nil || p.sink == nil {
		return mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink.Position(), p.sink.ViewDirection()
}

func (p *Player) snapshotLocked() State {
	ks := p.integrator.State()
	return State{
		Position: p.sink.Position(),
		Velocity: ks.Velocity,
		Yaw:      p.sink.Yaw(),
		Pitch:    p.sink.Pitch(),
		Grounded: ks.Grounded,
	}
}
