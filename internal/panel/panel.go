// Package panel rasterizes the info screens that float above each platform.
package panel

import (
	"image"
	"image/color"
	"strings"

	"github.com/Versifine/folio/internal/catalog"
	"golang.org/x/image/draw"
)

const (
	Width         = 512
	Height        = 342
	WelcomeHeight = 320

	maxTextWidth = 470
	lineStep     = 20
	descTop      = 90
	iconSize     = 64
)

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, B: 0x88, A: 0xff}
)

// Layout is where Render puts things, exposed so hit-testing and tests can
// agree with the pixels.
type Layout struct {
	Lines  []string
	Bottom int
	Button image.Rectangle
}

func LayoutFor(p catalog.Project) Layout {
	lines := Wrap(p.Description, maxTextWidth, func(s string) int { return measure(s, 1) })
	y := descTop
	if len(lines) > 1 {
		y += (len(lines) - 1) * lineStep
	}
	return Layout{
		Lines:  lines,
		Bottom: y,
		Button: image.Rect(30, y+85, 30+150, y+85+35),
	}
}

// Render draws the panel for p. icon may be nil.
func Render(p catalog.Project, icon image.Image) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	accent := p.RGBA()
	fillRect(img, img.Bounds(), black)
	strokeRect(img, image.Rect(10, 10, 502, 332), 4, accent)

	text(img, Width/2, 50, p.Name, accent, alignCenter, 2)

	l := LayoutFor(p)
	for i, line := range l.Lines {
		text(img, 30, descTop+i*lineStep, line, white, alignLeft, 1)
	}
	y := l.Bottom

	text(img, 30, y+40, "Tech Stack:", accent, alignLeft, 1)
	text(img, 30, y+65, strings.Join(p.TechStack, " | "), white, alignLeft, 1)

	fillRect(img, l.Button, accent)
	text(img, l.Button.Min.X+l.Button.Dx()/2, y+107, "View on GitHub", black, alignCenter, 1)
	text(img, 200, y+107, "LinkedIn | GitHub | Email", white, alignLeft, 1)

	if icon != nil {
		target := image.Rect(Width-20-iconSize, 20, Width-20, 20+iconSize)
		draw.CatmullRom.Scale(img, target, icon, icon.Bounds(), draw.Over, nil)
	}
	return img
}

func RenderWelcome(info catalog.PersonalInfo) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, WelcomeHeight))
	fillRect(img, img.Bounds(), black)
	strokeRect(img, image.Rect(10, 10, 502, 310), 4, green)

	text(img, Width/2, 60, "Welcome!", green, alignCenter, 3)
	text(img, Width/2, 100, "I'm "+info.Name, white, alignCenter, 2)
	text(img, Width/2, 140, "Explore my projects by jumping between platforms", white, alignCenter, 1)
	text(img, Width/2, 165, "Click on floating screens to visit links", white, alignCenter, 1)
	text(img, Width/2, 210, "Use WASD to move, SPACE to jump", green, alignCenter, 1)
	text(img, Width/2, 250, "LinkedIn | GitHub | Email available on project screens", white, alignCenter, 1)
	return img
}
