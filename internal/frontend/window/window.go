//go:build !tinygo && cgo

// Package window is the desktop frontend: an ebiten window with a captured
// cursor standing in for pointer lock.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/Versifine/folio/internal/frame"
	"github.com/Versifine/folio/internal/frontend"
	"github.com/Versifine/folio/internal/input"
	"github.com/Versifine/folio/internal/panel"
	"github.com/Versifine/folio/internal/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 960
	screenHeight = 540
	mapScale     = 2.0
	mapOriginX   = 110
	mapOriginY   = 430
)

// ErrUnavailable is returned when the binary was built without window support.
var ErrUnavailable = errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")

var keyBindings = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyArrowUp:    input.ArrowUp,
	ebiten.KeyArrowDown:  input.ArrowDown,
	ebiten.KeyArrowLeft:  input.ArrowLeft,
	ebiten.KeyArrowRight: input.ArrowRight,
	ebiten.KeySpace:      input.Space,
}

var (
	backgroundColor = color.RGBA{0x0a, 0x0a, 0x0a, 0xff}
	groundColor     = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	crosshairColor  = color.RGBA{0xff, 0xff, 0xff, 0xcc}
)

// Run opens the window and blocks until it closes or ctx is done. session
// must read its input from keyboard.
func Run(ctx context.Context, session *frontend.Session, keyboard *input.Keyboard, tps int) error {
	if session == nil || keyboard == nil {
		return fmt.Errorf("window session is not wired")
	}
	if tps <= 0 {
		tps = frame.DefaultTPS
	}

	g := &game{
		ctx:      ctx,
		session:  session,
		keyboard: keyboard,
		clock:    frame.NewClock(),
		panels:   make(map[string]*ebiten.Image),
		focused:  true,
	}
	ebiten.SetWindowTitle("Folio")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	slog.Info("Window frontend started", "tps", tps)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type game struct {
	ctx      context.Context
	session  *frontend.Session
	keyboard *input.Keyboard
	clock    *frame.Clock
	panels   map[string]*ebiten.Image

	locked       bool
	focused      bool
	lastX, lastY int
	message      string
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	focused := ebiten.IsFocused()
	if !focused {
		if g.focused {
			g.release()
		}
		g.focused = false
		return nil
	}
	if !g.focused {
		g.focused = true
		g.session.Resume()
	}

	if g.locked && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.release()
	}

	for ek, k := range keyBindings {
		if inpututil.IsKeyJustPressed(ek) {
			g.keyboard.KeyDown(k)
		}
		if inpututil.IsKeyJustReleased(ek) {
			g.keyboard.KeyUp(k)
		}
	}

	if g.session.MenuOpen() {
		g.updateMenu()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !g.locked {
			g.capture()
		} else {
			g.interact()
		}
	}

	if g.locked {
		x, y := ebiten.CursorPosition()
		g.session.Player.Look(float64(x-g.lastX), float64(y-g.lastY))
		g.lastX, g.lastY = x, y
	}

	return g.session.Frame(g.clock.Now())
}

func (g *game) capture() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	g.lastX, g.lastY = ebiten.CursorPosition()
	g.locked = true
}

// release drops the cursor and every held key, as a page does when pointer
// lock is lost.
func (g *game) release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.keyboard.Clear()
	g.locked = false
}

func (g *game) interact() {
	action, err := g.session.Interact()
	if err != nil {
		slog.Warn("Interact failed", "error", err)
		g.message = err.Error()
		return
	}
	switch action.Kind {
	case scene.ActionOpenGitHub:
		g.message = "Opened " + action.Project.GitHubURL
	case scene.ActionContact:
		g.message = ""
	}
}

var menuKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

func (g *game) updateMenu() {
	choice := -1
	for i, k := range menuKeys {
		if inpututil.IsKeyJustPressed(k) {
			choice = i + 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		choice = 0
	}
	if choice < 0 {
		return
	}
	url, err := g.session.Choose(choice)
	switch {
	case err != nil:
		g.message = err.Error()
	case url == "":
		g.message = "Cancelled"
	default:
		g.message = "Opened " + url
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawMap(screen)
	g.drawPanel(screen)

	cx, cy := float32(screenWidth/2), float32(screenHeight/2)
	vector.StrokeLine(screen, cx-8, cy, cx+8, cy, 1, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-8, cx, cy+8, 1, crosshairColor, false)

	ebitenutil.DebugPrint(screen, g.hud())
}

// drawMap is a top-down view of the platforms around the player.
func (g *game) drawMap(screen *ebiten.Image) {
	st := g.session.Pose()
	w := g.session.World
	size := float32(scene.GroundSize / 2 * mapScale)
	vector.DrawFilledRect(screen, mapOriginX-size/2, mapOriginY-size/2, size, size, groundColor, false)

	toMap := func(x, z float64) (float32, float32) {
		return mapOriginX + float32(x*mapScale/2), mapOriginY + float32(z*mapScale/2)
	}
	if w != nil && w.Catalog != nil {
		for _, p := range w.Platforms {
			proj, _ := w.Catalog.Project(p.ProjectID)
			x, y := toMap(p.Center.X(), p.Center.Z())
			vector.DrawFilledCircle(screen, x, y, float32(p.Radius*mapScale/2), proj.RGBA(), true)
		}
	}

	x, y := toMap(st.Position.X(), st.Position.Z())
	fx := float32(-math.Sin(st.Yaw)) * 6
	fz := float32(-math.Cos(st.Yaw)) * 6
	vector.DrawFilledCircle(screen, x, y, 2.5, color.White, true)
	vector.StrokeLine(screen, x, y, x+fx, y+fz, 1, color.White, true)
}

// drawPanel shows the card of the project the player stands next to.
func (g *game) drawPanel(screen *ebiten.Image) {
	id := g.session.NearProject()
	w := g.session.World
	if id == "" || w == nil || w.Catalog == nil {
		return
	}
	img, ok := g.panels[id]
	if !ok {
		p, found := w.Catalog.Project(id)
		if !found {
			return
		}
		img = ebiten.NewImageFromImage(panel.Render(p, loadIcon(p.Icon)))
		g.panels[id] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screenWidth-panel.Width-16), 16)
	op.ColorScale.ScaleAlpha(float32(0.7 + w.GlowOpacity))
	screen.DrawImage(img, op)
}

func (g *game) hud() string {
	st := g.session.Pose()
	var b strings.Builder
	if !g.locked {
		b.WriteString("Click to look around\n")
	} else {
		b.WriteString("WASD / arrows move, Space jump, click a screen, Esc release\n")
	}
	fmt.Fprintf(&b, "pos %.1f %.1f %.1f  ground %t  fps %.0f  frame %d\n",
		st.Position.X(), st.Position.Y(), st.Position.Z(), st.Grounded, ebiten.ActualFPS(), g.session.Frames())

	if g.session.MenuOpen() && g.session.World != nil && g.session.World.Catalog != nil {
		b.WriteString("Contact:\n")
		for i, opt := range g.session.World.Catalog.ContactOptions() {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, opt.Name)
		}
		b.WriteString("  Backspace cancels\n")
	}
	if g.message != "" {
		b.WriteString(g.message + "\n")
	}
	return b.String()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func loadIcon(path string) image.Image {
	if path == "" {
		return nil
	}
	icon, err := panel.LoadIcon(path)
	if err != nil {
		slog.Warn("Skipping panel icon", "path", path, "error", err)
		return nil
	}
	return icon
}
