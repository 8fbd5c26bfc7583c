package panel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type align int

const (
	alignLeft align = iota
	alignCenter
)

var face font.Face = basicfont.Face7x13

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a border of width w centered on r's edges, like a canvas
// strokeRect with lineWidth w.
func strokeRect(dst draw.Image, r image.Rectangle, w int, c color.Color) {
	h := w / 2
	outer := r.Inset(-h)
	inner := r.Inset(w - h)
	fillRect(dst, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), c)
	fillRect(dst, image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), c)
	fillRect(dst, image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c)
	fillRect(dst, image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), c)
}

func measure(s string, scale int) int {
	return font.MeasureString(face, s).Ceil() * scale
}

// text draws s with its baseline at y. scale > 1 renders at the face's native
// size and blows it up, which keeps the bitmap font crisp.
func text(dst draw.Image, x, y int, s string, c color.Color, a align, scale int) {
	if scale < 1 {
		scale = 1
	}
	width := measure(s, scale)
	if a == alignCenter {
		x -= width / 2
	}
	if scale == 1 {
		d := font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
		return
	}

	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	tmp := image.NewRGBA(image.Rect(0, 0, width/scale, m.Height.Ceil()))
	d := font.Drawer{Dst: tmp, Src: image.NewUniform(c), Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(s)

	target := image.Rect(x, y-ascent*scale, x+width, y-ascent*scale+tmp.Bounds().Dy()*scale)
	draw.NearestNeighbor.Scale(dst, target, tmp, tmp.Bounds(), draw.Over, nil)
}

// Wrap breaks words into lines no wider than maxWidth pixels. A single word
// wider than maxWidth still gets its own line.
func Wrap(s string, maxWidth int, width func(string) int) []string {
	words := splitWords(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := ""
	for n, w := range words {
		test := line + w + " "
		if width(test) > maxWidth && n > 0 {
			lines = append(lines, trimSpace(line))
			line = w + " "
			continue
		}
		line = test
	}
	return append(lines, trimSpace(line))
}

func splitWords(s string) []string {
	var out []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func trimSpace(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}
