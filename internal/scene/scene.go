// Package scene lays out the walkable world from the project catalog and
// answers the geometric questions the frontends ask of it: which screen is
// under the crosshair, which platform is closest.
package scene

import (
	"math"
	"math/rand"

	"github.com/Versifine/folio/internal/catalog"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	GroundSize = 100.0

	PlatformRadius   = 3.0
	PlatformHeight   = 0.5
	GlowRadius       = 3.5
	glowDrop         = 0.3
	screenLift       = 4.0
	ScreenWidth      = 6.0
	ScreenHeight     = 4.0
	WelcomeWidth     = 8.0
	WelcomeHeight    = 5.0
	backgroundCount  = 200
	platformParticle = 50
)

var (
	welcomeCenter = mgl64.Vec3{0, 6, -2}
	// Screens turn to face this point, the spawn position at their own height.
	facingTarget = mgl64.Vec3{0, 0, 5}
	up           = mgl64.Vec3{0, 1, 0}
)

type Platform struct {
	ProjectID string
	Center    mgl64.Vec3
	Radius    float64
	Glow      mgl64.Vec3
}

// Screen is a flat rectangle. Normal points out of the readable face.
type Screen struct {
	ProjectID string
	Center    mgl64.Vec3
	Normal    mgl64.Vec3
	Width     float64
	Height    float64
}

type ParticleField struct {
	ProjectID string
	Points    []mgl64.Vec3
}

type World struct {
	Catalog    *catalog.Catalog
	Platforms  []Platform
	Screens    []Screen
	Welcome    Screen
	Background ParticleField
	Fields     []ParticleField

	GlowOpacity        float64
	BackgroundRotation float64
}

// Build places one platform, screen and particle cloud per project. seed
// makes particle placement reproducible.
func Build(cat *catalog.Catalog, seed int64) *World {
	rng := rand.New(rand.NewSource(seed))
	w := &World{
		Catalog:     cat,
		Welcome:     Screen{Center: welcomeCenter, Normal: mgl64.Vec3{0, 0, 1}, Width: WelcomeWidth, Height: WelcomeHeight},
		GlowOpacity: 0.3,
	}
	if cat == nil {
		return w
	}

	for _, p := range cat.Projects {
		center := p.Position.Vec()
		w.Platforms = append(w.Platforms, Platform{
			ProjectID: p.ID,
			Center:    center,
			Radius:    PlatformRadius,
			Glow:      center.Sub(mgl64.Vec3{0, glowDrop, 0}),
		})

		screenCenter := center.Add(mgl64.Vec3{0, screenLift, 0})
		w.Screens = append(w.Screens, Screen{
			ProjectID: p.ID,
			Center:    screenCenter,
			Normal:    facing(screenCenter),
			Width:     ScreenWidth,
			Height:    ScreenHeight,
		})

		field := ParticleField{ProjectID: p.ID, Points: make([]mgl64.Vec3, platformParticle)}
		for i := range field.Points {
			field.Points[i] = mgl64.Vec3{
				center.X() + (rng.Float64()-0.5)*10,
				center.Y() + rng.Float64()*8,
				center.Z() + (rng.Float64()-0.5)*10,
			}
		}
		w.Fields = append(w.Fields, field)
	}

	w.Background.Points = make([]mgl64.Vec3, backgroundCount)
	for i := range w.Background.Points {
		w.Background.Points[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * GroundSize,
			rng.Float64() * 50,
			(rng.Float64() - 0.5) * GroundSize,
		}
	}
	return w
}

// Animate advances the cosmetic state to elapsed seconds. Platform particles
// bob a little every call, so it is meant to run once per frame.
func (w *World) Animate(elapsed float64) {
	w.BackgroundRotation = elapsed * 0.1
	w.GlowOpacity = 0.3 + math.Sin(elapsed*2)*0.1
	for fi := range w.Fields {
		pts := w.Fields[fi].Points
		for i := range pts {
			pts[i][1] += math.Sin(elapsed+float64(i*3+1)) * 0.01
		}
	}
}

// Nearest returns the platform whose center is horizontally closest to pos.
func (w *World) Nearest(pos mgl64.Vec3) (Platform, float64, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range w.Platforms {
		d := math.Hypot(pos.X()-p.Center.X(), pos.Z()-p.Center.Z())
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Platform{}, 0, false
	}
	return w.Platforms[best], bestDist, true
}

func facing(center mgl64.Vec3) mgl64.Vec3 {
	d := mgl64.Vec3{facingTarget.X() - center.X(), 0, facingTarget.Z() - center.Z()}
	if d.Len() < 1e-9 {
		return mgl64.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

// Right is the screen's local +X axis; with Normal and up it spans the plane.
func (s Screen) Right() mgl64.Vec3 {
	return up.Cross(s.Normal)
}
