package input

import (
	"sync"
	"time"

	"github.com/Versifine/folio/internal/locomotion"
)

const DefaultPulse = 180 * time.Millisecond

// Pulse is the Source for terminals, which report key presses but never
// releases. Each press holds its direction for one pulse window and cancels
// the opposite direction; auto-repeat from a held key keeps extending it.
type Pulse struct {
	mu          sync.Mutex
	pulse       time.Duration
	now         func() time.Time
	state       locomotion.InputState
	until       map[Action]time.Time
	jumpPending bool
}

func NewPulse(pulse time.Duration) *Pulse {
	if pulse <= 0 {
		pulse = DefaultPulse
	}
	return &Pulse{
		pulse: pulse,
		now:   time.Now,
		until: make(map[Action]time.Time),
	}
}

func (p *Pulse) Press(key Key) {
	a := ActionFor(key)
	if a == ActionNone {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if a == ActionJump {
		p.jumpPending = true
		return
	}
	setFlag(&p.state, a, true)
	p.until[a] = p.now().Add(p.pulse)
	if opp := opposite(a); opp != ActionNone {
		setFlag(&p.state, opp, false)
		delete(p.until, opp)
	}
}

func (p *Pulse) Snapshot() locomotion.InputState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked(p.now())
	in := p.state
	in.Jump = p.jumpPending
	p.jumpPending = false
	return in
}

// Held reports the current flags without consuming a pending jump.
func (p *Pulse) Held() locomotion.InputState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expireLocked(p.now())
	in := p.state
	in.Jump = p.jumpPending
	return in
}

func (p *Pulse) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = locomotion.InputState{}
	p.until = make(map[Action]time.Time)
	p.jumpPending = false
}

func (p *Pulse) expireLocked(now time.Time) {
	for a, deadline := range p.until {
		if !now.Before(deadline) {
			setFlag(&p.state, a, false)
			delete(p.until, a)
		}
	}
}

func opposite(a Action) Action {
	switch a {
	case ActionForward:
		return ActionBackward
	case ActionBackward:
		return ActionForward
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	default:
		return ActionNone
	}
}
