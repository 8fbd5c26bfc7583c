package input

import (
	"sync"

	"github.com/Versifine/folio/internal/locomotion"
)

// Keyboard tracks held keys from discrete down/up events. Direction flags stay
// set until the matching key-up; jump fires once per press and is consumed by
// the next Snapshot.
type Keyboard struct {
	mu          sync.Mutex
	held        locomotion.InputState
	pressed     map[Key]bool
	jumpPending bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{pressed: make(map[Key]bool)}
}

func (k *Keyboard) KeyDown(key Key) {
	a := ActionFor(key)
	if a == ActionNone {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	repeat := k.pressed[key]
	k.pressed[key] = true
	if a == ActionJump {
		if !repeat {
			k.jumpPending = true
		}
		return
	}
	setFlag(&k.held, a, true)
}

// KeyUp releases the action only when no other key bound to it is still down,
// so releasing ArrowUp while W is held keeps walking.
func (k *Keyboard) KeyUp(key Key) {
	a := ActionFor(key)
	if a == ActionNone {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pressed, key)
	if a == ActionJump {
		return
	}
	for other := range k.pressed {
		if ActionFor(other) == a {
			return
		}
	}
	setFlag(&k.held, a, false)
}

func (k *Keyboard) Snapshot() locomotion.InputState {
	k.mu.Lock()
	defer k.mu.Unlock()
	in := k.held
	in.Jump = k.jumpPending
	k.jumpPending = false
	return in
}

// Clear drops every held key, e.g. when the window loses focus and key-up
// events will never arrive.
func (k *Keyboard) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = locomotion.InputState{}
	k.pressed = make(map[Key]bool)
	k.jumpPending = false
}
