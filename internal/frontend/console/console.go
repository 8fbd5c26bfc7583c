// Package console is the terminal frontend. Terminals deliver key presses
// but no releases, so movement keys pulse instead of being held.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Versifine/folio/internal/frame"
	"github.com/Versifine/folio/internal/frontend"
	"github.com/Versifine/folio/internal/input"
	"github.com/Versifine/folio/internal/pose"
	"github.com/Versifine/folio/internal/scene"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"
)

const lookStep = 5 * math.Pi / 180

type Console struct {
	session     *frontend.Session
	pulse       *input.Pulse
	ticker      *frame.Ticker
	sensitivity float64
	out         io.Writer

	mu          sync.Mutex
	commandMode bool
	commandBuf  []rune
	statusWidth int
}

// NewConsole drives session from the terminal. The session must read its
// input from pulse; sensitivity is the pose's radians-per-pixel so arrow keys
// turn by a fixed angle.
func NewConsole(session *frontend.Session, pulse *input.Pulse, tps int, sensitivity float64) *Console {
	if sensitivity <= 0 {
		sensitivity = pose.DefaultSensitivity
	}
	return &Console{
		session:     session,
		pulse:       pulse,
		ticker:      frame.NewTicker(tps),
		sensitivity: sensitivity,
		out:         os.Stdout,
	}
}

// Available reports whether stdin is a terminal the console can put into
// raw mode.
func Available() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (c *Console) Start(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("console is nil")
	}
	if c.session == nil {
		return fmt.Errorf("console session is nil")
	}
	if c.pulse == nil {
		return fmt.Errorf("console input is nil")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(c.out, "\r\n")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprint(c.out, "[folio] console started (W/A/S/D pulse, Space jump, arrows look, E interact, X, :, Ctrl-C quit)\r\n")
	c.renderStatusLine()

	go func() {
		if err := c.ticker.Run(ctx, c.step); err != nil {
			slog.Error("console frame loop stopped", "error", err)
			cancel()
		}
	}()

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := reader.ReadByte()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read console input: %w", err)
		}
		if b == 3 { // Ctrl-C; raw mode swallows SIGINT
			return nil
		}
		c.handleKey(reader, b)
	}
}

func (c *Console) step(now time.Duration) error {
	if err := c.session.Frame(now); err != nil {
		return err
	}
	c.renderStatusLine()
	return nil
}

func (c *Console) handleKey(reader *bufio.Reader, b byte) {
	if c.isCommandMode() {
		c.handleCommandByte(b)
		return
	}

	switch b {
	case ':':
		c.enterCommandMode()
		return
	case 'w', 'W', 's', 'S', 'a', 'A', 'd', 'D', ' ':
		if key, ok := input.ParseKey(string(b)); ok {
			c.pulse.Press(key)
		}
	case 'x', 'X':
		c.pulse.Clear()
	case 'e', 'E':
		c.interact()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if c.session.MenuOpen() {
			c.choose(int(b - '0'))
		}
	case 27: // ESC + arrow sequence
		next, err := reader.ReadByte()
		if err != nil || next != '[' {
			return
		}
		arrow, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch arrow {
		case 'D': // left
			c.turn(-lookStep, 0)
		case 'C': // right
			c.turn(lookStep, 0)
		case 'A': // up
			c.turn(0, -lookStep)
		case 'B': // down
			c.turn(0, lookStep)
		}
	}
	c.renderStatusLine()
}

// turn rotates the view by radians, using the same sign convention as
// pointer movement.
func (c *Console) turn(yaw, pitch float64) {
	c.session.Player.Look(yaw/c.sensitivity, pitch/c.sensitivity)
}

func (c *Console) interact() {
	action, err := c.session.Interact()
	if err != nil {
		fmt.Fprintf(c.out, "\r\n[folio] interact failed: %v\r\n", err)
		return
	}
	switch action.Kind {
	case scene.ActionNone:
		fmt.Fprint(c.out, "\r\n[folio] nothing under the crosshair\r\n")
	case scene.ActionOpenGitHub:
		fmt.Fprintf(c.out, "\r\n[folio] opened %s\r\n", action.Project.GitHubURL)
	case scene.ActionContact:
		fmt.Fprintf(c.out, "\r\n[folio] %s - contact:\r\n", action.Project.Name)
		for i, opt := range c.session.World.Catalog.ContactOptions() {
			fmt.Fprintf(c.out, "  %d. %s\r\n", i+1, opt.Name)
		}
		fmt.Fprint(c.out, "  press a number or :open <n>, anything else cancels\r\n")
	}
}

func (c *Console) choose(n int) {
	url, err := c.session.Choose(n)
	switch {
	case err != nil:
		fmt.Fprintf(c.out, "\r\n[folio] %v\r\n", err)
	case url == "":
		fmt.Fprint(c.out, "\r\n[folio] contact menu cancelled\r\n")
	default:
		fmt.Fprintf(c.out, "\r\n[folio] opened %s\r\n", url)
	}
}

func (c *Console) enterCommandMode() {
	c.mu.Lock()
	c.commandMode = true
	c.commandBuf = c.commandBuf[:0]
	c.mu.Unlock()
	fmt.Fprint(c.out, "\r\n:")
}

func (c *Console) handleCommandByte(b byte) {
	switch b {
	case 13, 10: // Enter
		c.mu.Lock()
		cmd := strings.TrimSpace(string(c.commandBuf))
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()

		fmt.Fprint(c.out, "\r\n")
		if cmd != "" {
			c.executeCommand(cmd)
		}
		c.renderStatusLine()
		return
	case 27: // ESC cancel command mode
		c.mu.Lock()
		c.commandMode = false
		c.commandBuf = c.commandBuf[:0]
		c.mu.Unlock()
		fmt.Fprint(c.out, "\r\n[folio] command cancelled\r\n")
		c.renderStatusLine()
		return
	case 8, 127: // Backspace
		c.mu.Lock()
		if len(c.commandBuf) > 0 {
			c.commandBuf = c.commandBuf[:len(c.commandBuf)-1]
		}
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s ", buf)
		fmt.Fprintf(c.out, "\r:%s", buf)
		return
	default:
		if b < 32 || b > 126 {
			return
		}
		c.mu.Lock()
		c.commandBuf = append(c.commandBuf, rune(b))
		buf := string(c.commandBuf)
		c.mu.Unlock()
		fmt.Fprintf(c.out, "\r:%s", buf)
	}
}

func (c *Console) executeCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "help":
		c.printHelp()
	case "state":
		st := c.session.Player.Snapshot()
		fmt.Fprintf(c.out, "[folio] pos=(%.3f,%.3f,%.3f) vel=(%.3f,%.3f,%.3f) yaw=%.3f pitch=%.3f ground=%t frames=%d\r\n",
			st.Position.X(), st.Position.Y(), st.Position.Z(),
			st.Velocity.X(), st.Velocity.Y(), st.Velocity.Z(),
			st.Yaw, st.Pitch, st.Grounded, c.session.Frames(),
		)
	case "tp":
		if len(parts) != 4 {
			fmt.Fprint(c.out, "[folio] usage: :tp <x> <y> <z>\r\n")
			return
		}
		pos, ok := parseVec(parts[1:])
		if !ok {
			fmt.Fprint(c.out, "[folio] invalid tp args\r\n")
			return
		}
		c.session.Player.Teleport(pos)
		fmt.Fprintf(c.out, "[folio] teleported to (%.3f, %.3f, %.3f)\r\n", pos.X(), pos.Y(), pos.Z())
	case "look":
		c.handleLookCommand(parts)
	case "projects":
		c.printProjects()
	case "open":
		if len(parts) != 2 {
			fmt.Fprint(c.out, "[folio] usage: :open <n>\r\n")
			return
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			fmt.Fprint(c.out, "[folio] invalid contact option\r\n")
			return
		}
		c.choose(n)
	default:
		fmt.Fprintf(c.out, "[folio] unknown command: %s\r\n", parts[0])
	}
}

func (c *Console) handleLookCommand(parts []string) {
	switch len(parts) {
	case 2:
		if c.session.World == nil {
			fmt.Fprint(c.out, "[folio] no world loaded\r\n")
			return
		}
		for _, s := range c.session.World.Screens {
			if s.ProjectID == parts[1] {
				c.lookAt(s.Center)
				fmt.Fprintf(c.out, "[folio] look at %s\r\n", s.ProjectID)
				return
			}
		}
		fmt.Fprintf(c.out, "[folio] project %s not found\r\n", parts[1])
	case 4:
		target, ok := parseVec(parts[1:])
		if !ok {
			fmt.Fprint(c.out, "[folio] invalid look args\r\n")
			return
		}
		c.lookAt(target)
		fmt.Fprintf(c.out, "[folio] look at (%.3f, %.3f, %.3f)\r\n", target.X(), target.Y(), target.Z())
	default:
		fmt.Fprint(c.out, "[folio] usage: :look <project_id> or :look <x> <y> <z>\r\n")
	}
}

func (c *Console) lookAt(target mgl64.Vec3) {
	st := c.session.Player.Snapshot()
	d := target.Sub(st.Position)

	yaw := math.Atan2(-d.X(), -d.Z())
	pitch := math.Atan2(d.Y(), math.Hypot(d.X(), d.Z()))

	c.turn(st.Yaw-yaw, st.Pitch-pitch)
}

func (c *Console) printProjects() {
	if c.session.World == nil || c.session.World.Catalog == nil {
		fmt.Fprint(c.out, "[folio] no projects loaded\r\n")
		return
	}
	cat := c.session.World.Catalog
	near := c.session.NearProject()
	for _, p := range cat.Projects {
		mark := " "
		if p.ID == near {
			mark = "*"
		}
		fmt.Fprintf(c.out, "%s %-22s %s (%.0f, %.0f)\r\n", mark, p.ID, p.Name, p.Position.X, p.Position.Z)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, "[folio] keys:\r\n")
	fmt.Fprint(c.out, "  W/S/A/D: pulse movement (~180ms)\r\n")
	fmt.Fprint(c.out, "  Space: jump\r\n")
	fmt.Fprint(c.out, "  Arrow Left/Right: yaw +/-5 deg\r\n")
	fmt.Fprint(c.out, "  Arrow Up/Down: pitch +/-5 deg\r\n")
	fmt.Fprint(c.out, "  E: click the screen under the crosshair\r\n")
	fmt.Fprint(c.out, "  1-9: pick a contact option\r\n")
	fmt.Fprint(c.out, "  X: clear all input\r\n")
	fmt.Fprint(c.out, "  : enter command mode\r\n")
	fmt.Fprint(c.out, "[folio] commands:\r\n")
	fmt.Fprint(c.out, "  :look <project_id>\r\n")
	fmt.Fprint(c.out, "  :look <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :tp <x> <y> <z>\r\n")
	fmt.Fprint(c.out, "  :open <n>\r\n")
	fmt.Fprint(c.out, "  :projects\r\n")
	fmt.Fprint(c.out, "  :state\r\n")
	fmt.Fprint(c.out, "  :help\r\n")
}

func (c *Console) statusLine() string {
	in := c.pulse.Held()
	st := c.session.Pose()
	near := c.session.NearProject()
	if near == "" {
		near = "-"
	}
	return fmt.Sprintf(
		"[FWD:%s BCK:%s L:%s R:%s JMP:%s | YAW:%.1f PIT:%.1f | X:%.2f Y:%.2f Z:%.2f ground:%t | near:%s]",
		boolLabel(in.Forward),
		boolLabel(in.Backward),
		boolLabel(in.Left),
		boolLabel(in.Right),
		boolLabel(in.Jump),
		st.Yaw*180/math.Pi,
		st.Pitch*180/math.Pi,
		st.Position.X(),
		st.Position.Y(),
		st.Position.Z(),
		st.Grounded,
		near,
	)
}

func (c *Console) renderStatusLine() {
	c.mu.Lock()
	if c.commandMode {
		c.mu.Unlock()
		return
	}
	width := c.statusWidth
	c.mu.Unlock()

	line := c.statusLine()
	padding := ""
	if width > len(line) {
		padding = strings.Repeat(" ", width-len(line))
	}
	fmt.Fprintf(c.out, "\r%s%s", line, padding)

	c.mu.Lock()
	if len(line) > c.statusWidth {
		c.statusWidth = len(line)
	}
	c.mu.Unlock()
}

func (c *Console) isCommandMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commandMode
}

func parseVec(args []string) (mgl64.Vec3, bool) {
	var v mgl64.Vec3
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return mgl64.Vec3{}, false
		}
		v[i] = f
	}
	return v, true
}

func boolLabel(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
