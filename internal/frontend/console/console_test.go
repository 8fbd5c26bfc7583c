package console

import (
	"bufio"
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/Versifine/folio/internal/catalog"
	"github.com/Versifine/folio/internal/event"
	"github.com/Versifine/folio/internal/frontend"
	"github.com/Versifine/folio/internal/input"
	"github.com/Versifine/folio/internal/locomotion"
	"github.com/Versifine/folio/internal/player"
	"github.com/Versifine/folio/internal/pose"
	"github.com/Versifine/folio/internal/scene"
)

type recordingOpener struct {
	urls []string
}

func (r *recordingOpener) Open(url string) error {
	r.urls = append(r.urls, url)
	return nil
}

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer, *recordingOpener) {
	t.Helper()
	cfg := locomotion.DefaultPlayerConfig()
	bus := event.NewBus()
	sink := pose.New(pose.KindCamera, pose.Spawn(cfg.Height), pose.DefaultSensitivity)
	pulse := input.NewPulse(0)
	opener := &recordingOpener{}
	session := frontend.NewSession(player.New(cfg, sink, bus), scene.Build(catalog.Default(), 1), pulse, bus, opener)

	c := NewConsole(session, pulse, 20, pose.DefaultSensitivity)
	out := &bytes.Buffer{}
	c.out = out
	return c, out, opener
}

func feed(c *Console, keys string) {
	reader := bufio.NewReader(strings.NewReader(keys))
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		c.handleKey(reader, b)
	}
}

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func TestConsole_MovementKeysPulse(t *testing.T) {
	c, _, _ := newTestConsole(t)

	feed(c, "w")
	if in := c.pulse.Held(); !in.Forward {
		t.Fatalf("forward not held after w")
	}
	feed(c, "S")
	if in := c.pulse.Held(); in.Forward || !in.Backward {
		t.Fatalf("S should cancel forward: %+v", in)
	}
	feed(c, "a ")
	if in := c.pulse.Held(); !in.Left || !in.Jump {
		t.Fatalf("left/jump not set: %+v", in)
	}
	feed(c, "x")
	if in := c.pulse.Held(); in != (locomotion.InputState{}) {
		t.Fatalf("x did not clear input: %+v", in)
	}
}

func TestConsole_ArrowKeysTurn(t *testing.T) {
	c, _, _ := newTestConsole(t)

	feed(c, "\x1b[D")
	approxEqual(t, c.session.Player.Snapshot().Yaw, lookStep, 1e-9, "yaw after left arrow")
	feed(c, "\x1b[C\x1b[C")
	approxEqual(t, c.session.Player.Snapshot().Yaw, -lookStep, 1e-9, "yaw after two right arrows")
	feed(c, "\x1b[A")
	approxEqual(t, c.session.Player.Snapshot().Pitch, lookStep, 1e-9, "pitch after up arrow")
}

func TestConsole_ZeroSensitivityStillTurns(t *testing.T) {
	cfg := locomotion.DefaultPlayerConfig()
	pulse := input.NewPulse(0)
	sink := pose.New(pose.KindCamera, pose.Spawn(cfg.Height), 0)
	session := frontend.NewSession(player.New(cfg, sink, nil), scene.Build(catalog.Default(), 1), pulse, nil, nil)
	c := NewConsole(session, pulse, 20, 0)
	c.out = &bytes.Buffer{}

	feed(c, "\x1b[D")
	approxEqual(t, session.Player.Snapshot().Yaw, lookStep, 1e-9, "yaw after left arrow")
}

func TestConsole_NoWorld(t *testing.T) {
	cfg := locomotion.DefaultPlayerConfig()
	pulse := input.NewPulse(0)
	sink := pose.New(pose.KindCamera, pose.Spawn(cfg.Height), 0)
	session := frontend.NewSession(player.New(cfg, sink, nil), nil, pulse, nil, nil)
	c := NewConsole(session, pulse, 20, 0)
	out := &bytes.Buffer{}
	c.out = out

	feed(c, ":look data-analyst-agent\r:projects\re")
	for _, want := range []string{"no world loaded", "no projects loaded", "nothing under the crosshair"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output %q does not contain %q", out.String(), want)
		}
	}
}

func TestConsole_Commands(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{"help", "help", ":look <project_id>"},
		{"state", "state", "ground=true frames=0"},
		{"tp usage", "tp 1 2", "usage: :tp"},
		{"tp invalid", "tp a b c", "invalid tp args"},
		{"tp", "tp 3 1.8 -4", "teleported to (3.000, 1.800, -4.000)"},
		{"projects", "projects", "crypto-trading-bot"},
		{"look missing", "look nowhere", "project nowhere not found"},
		{"open without menu", "open 1", "no contact menu open"},
		{"unknown", "fly", "unknown command: fly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out, _ := newTestConsole(t)
			feed(c, ":"+tt.cmd+"\r")
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output %q does not contain %q", out.String(), tt.want)
			}
			if c.isCommandMode() {
				t.Fatalf("still in command mode after enter")
			}
		})
	}
}

func TestConsole_CommandEditing(t *testing.T) {
	c, out, _ := newTestConsole(t)

	feed(c, ":tpx\x7f 0 5 9\r")
	pos := c.session.Player.Snapshot().Position
	approxEqual(t, pos.Y(), 5, 1e-9, "y after edited tp")
	approxEqual(t, pos.Z(), 9, 1e-9, "z after edited tp")

	feed(c, ":state\x1b")
	if c.isCommandMode() || !strings.Contains(out.String(), "command cancelled") {
		t.Fatalf("ESC did not cancel command mode")
	}
}

func TestConsole_LookAndInteract(t *testing.T) {
	c, out, opener := newTestConsole(t)

	feed(c, ":look data-analyst-agent\r")
	feed(c, "e")
	if !c.session.MenuOpen() {
		t.Fatalf("contact menu not open, output %q", out.String())
	}
	if !strings.Contains(out.String(), "2. GitHub") {
		t.Fatalf("contact options not listed: %q", out.String())
	}

	feed(c, "2")
	if len(opener.urls) != 1 || opener.urls[0] != "https://github.com/le-Affan" {
		t.Fatalf("opened %q, want the profile url", opener.urls)
	}
	if c.session.MenuOpen() {
		t.Fatalf("menu still open after choosing")
	}
}

func TestConsole_InteractMiss(t *testing.T) {
	c, out, _ := newTestConsole(t)
	feed(c, ":look 0 1.8 20\r")
	feed(c, "e")
	if !strings.Contains(out.String(), "nothing under the crosshair") {
		t.Fatalf("output %q", out.String())
	}
}

func TestConsole_StatusLine(t *testing.T) {
	c, _, _ := newTestConsole(t)
	feed(c, "d")
	line := c.statusLine()
	for _, want := range []string{"R:on", "FWD:off", "ground:true", "near:-", "Y:1.80"} {
		if !strings.Contains(line, want) {
			t.Fatalf("status line %q missing %q", line, want)
		}
	}
}

func TestParseVec(t *testing.T) {
	tests := []struct {
		args []string
		ok   bool
	}{
		{[]string{"1", "2", "3"}, true},
		{[]string{"1", "NaN", "3"}, false},
		{[]string{"1", "2", "+Inf"}, false},
		{[]string{"x", "2", "3"}, false},
	}
	for _, tt := range tests {
		if _, ok := parseVec(tt.args); ok != tt.ok {
			t.Fatalf("parseVec(%v) ok = %t, want %t", tt.args, ok, tt.ok)
		}
	}
}
