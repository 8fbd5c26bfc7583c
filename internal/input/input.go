package input

import (
	"strings"

	"github.com/Versifine/folio/internal/locomotion"
)

// Key names follow DOM KeyboardEvent.code values.
type Key string

const (
	KeyW       Key = "KeyW"
	KeyA       Key = "KeyA"
	KeyS       Key = "KeyS"
	KeyD       Key = "KeyD"
	ArrowUp    Key = "ArrowUp"
	ArrowDown  Key = "ArrowDown"
	ArrowLeft  Key = "ArrowLeft"
	ArrowRight Key = "ArrowRight"
	Space      Key = "Space"
)

type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionJump
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	default:
		return "none"
	}
}

// Source is anything that can hand the integrator a frame's input.
type Source interface {
	Snapshot() locomotion.InputState
}

func ActionFor(k Key) Action {
	switch k {
	case KeyW, ArrowUp:
		return ActionForward
	case KeyS, ArrowDown:
		return ActionBackward
	case KeyA, ArrowLeft:
		return ActionLeft
	case KeyD, ArrowRight:
		return ActionRight
	case Space:
		return ActionJump
	default:
		return ActionNone
	}
}

// ParseKey accepts DOM codes and the bare letters a terminal delivers.
func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(s) {
	case "w", "keyw":
		return KeyW, true
	case "a", "keya":
		return KeyA, true
	case "s", "keys":
		return KeyS, true
	case "d", "keyd":
		return KeyD, true
	case "arrowup":
		return ArrowUp, true
	case "arrowdown":
		return ArrowDown, true
	case "arrowleft":
		return ArrowLeft, true
	case "arrowright":
		return ArrowRight, true
	case " ", "space":
		return Space, true
	}
	return "", false
}

func setFlag(in *locomotion.InputState, a Action, held bool) {
	switch a {
	case ActionForward:
		in.Forward = held
	case ActionBackward:
		in.Backward = held
	case ActionLeft:
		in.Left = held
	case ActionRight:
		in.Right = held
	}
}
