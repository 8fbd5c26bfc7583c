package scene

import (
	"math"

	"github.com/Versifine/folio/internal/catalog"
	"github.com/go-gl/mathgl/mgl64"
)

// Hit is a ray hitting a screen. UV runs left to right and bottom to top
// across the readable face, both in [0,1].
type Hit struct {
	Screen   Screen
	Distance float64
	Point    mgl64.Vec3
	U, V     float64
}

// Intersect tests the ray against the front face only; looking at a screen
// from behind does not hit it.
func (s Screen) Intersect(origin, dir mgl64.Vec3) (Hit, bool) {
	denom := dir.Dot(s.Normal)
	if denom >= -1e-9 {
		return Hit{}, false
	}
	t := s.Center.Sub(origin).Dot(s.Normal) / denom
	if t <= 0 {
		return Hit{}, false
	}
	point := origin.Add(dir.Mul(t))
	local := point.Sub(s.Center)
	x := local.Dot(s.Right())
	y := local.Dot(up)
	if math.Abs(x) > s.Width/2 || math.Abs(y) > s.Height/2 {
		return Hit{}, false
	}
	return Hit{
		Screen:   s,
		Distance: t,
		Point:    point,
		U:        0.5 + x/s.Width,
		V:        0.5 + y/s.Height,
	}, true
}

// Pick returns the nearest project screen along the ray.
func (w *World) Pick(origin, dir mgl64.Vec3) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	var best Hit
	found := false
	for _, s := range w.Screens {
		hit, ok := s.Intersect(origin, dir)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenGitHub
	ActionContact
)

func (k ActionKind) String() string {
	switch k {
	case ActionOpenGitHub:
		return "github"
	case ActionContact:
		return "contact"
	default:
		return "none"
	}
}

type Action struct {
	Kind    ActionKind
	Project catalog.Project
}

// InGitHubButton reports whether the UV lands on the "View on GitHub" button
// drawn in the lower left of each panel.
func InGitHubButton(u, v float64) bool {
	return u > 0.05 && u < 0.35 && v < 0.25
}

// Action maps a hit to what clicking it does: the button opens the project,
// anywhere else on the panel offers the contact options.
func (w *World) Action(hit Hit) Action {
	if w.Catalog == nil {
		return Action{}
	}
	p, ok := w.Catalog.Project(hit.Screen.ProjectID)
	if !ok {
		return Action{}
	}
	if InGitHubButton(hit.U, hit.V) {
		return Action{Kind: ActionOpenGitHub, Project: p}
	}
	return Action{Kind: ActionContact, Project: p}
}
