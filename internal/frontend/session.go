// Package frontend holds what the window and console frontends share: the
// per-frame session loop and link handling.
package frontend

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Versifine/folio/internal/event"
	"github.com/Versifine/folio/internal/input"
	"github.com/Versifine/folio/internal/player"
	"github.com/Versifine/folio/internal/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// NearRadius is how close (horizontally) the player must be to a platform
// for it to count as the current project.
const NearRadius = 6.0

type Session struct {
	Player *player.Player
	World  *scene.World
	Input  input.Source
	Bus    *event.Bus
	Opener Opener

	mu      sync.Mutex
	pose    player.State
	nearID  string
	pending *scene.Action
	frames  uint64
	resync  bool
}

// NewSession attaches itself to p as the pose receiver. The first Frame
// re-anchors the player's clock, so a session may take over a player that
// another frame clock was driving.
func NewSession(p *player.Player, w *scene.World, src input.Source, bus *event.Bus, opener Opener) *Session {
	if opener == nil {
		opener = LogOpener{}
	}
	s := &Session{Player: p, World: w, Input: src, Bus: bus, Opener: opener, resync: true}
	if p != nil {
		s.pose = p.Snapshot()
		p.SetStateUpdater(s)
	}
	return s
}

// Frame is the per-frame callback: sample input, integrate, animate.
func (s *Session) Frame(now time.Duration) error {
	if s.Player == nil || s.Input == nil {
		return fmt.Errorf("session is not wired")
	}
	s.mu.Lock()
	resync := s.resync
	s.resync = false
	s.mu.Unlock()
	if resync {
		s.Player.ResetClock(now)
	}

	if err := s.Player.Step(now, s.Input.Snapshot()); err != nil {
		return err
	}
	if s.World != nil {
		s.World.Animate(now.Seconds())
	}

	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
	return nil
}

// Resume drops the time since the last frame instead of integrating it, for
// frontends that stop calling Frame while paused or unfocused.
func (s *Session) Resume() {
	s.mu.Lock()
	s.resync = true
	s.mu.Unlock()
}

// UpdatePose receives every pose the player settles on, from frames and
// teleports alike.
func (s *Session) UpdatePose(state player.State) {
	s.mu.Lock()
	s.pose = state
	s.mu.Unlock()
	s.trackNearest(state.Position)
}

// Pose is the last pose the player reported.
func (s *Session) Pose() player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose
}

func (s *Session) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Session) NearProject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nearID
}

func (s *Session) trackNearest(pos mgl64.Vec3) {
	if s.World == nil {
		return
	}
	id := ""
	dist := 0.0
	if p, d, ok := s.World.Nearest(pos); ok && d <= NearRadius {
		id, dist = p.ProjectID, d
	}

	s.mu.Lock()
	changed := id != s.nearID
	s.nearID = id
	s.mu.Unlock()

	if changed {
		slog.Debug("Nearest project changed", "project", id, "distance", dist)
		s.Bus.Publish(event.EventProjectNear, event.ProjectNearEvent{ProjectID: id, Distance: dist})
	}
}

// Interact clicks whatever screen is under the crosshair. GitHub buttons open
// immediately; anywhere else on a panel leaves a contact menu pending for
// Choose. It reports the resulting action, ActionNone on a miss.
func (s *Session) Interact() (scene.Action, error) {
	if s.World == nil || s.Player == nil {
		return scene.Action{}, nil
	}
	origin, dir := s.Player.Eye()
	hit, ok := s.World.Pick(origin, dir)
	if !ok {
		return scene.Action{}, nil
	}
	action := s.World.Action(hit)
	switch action.Kind {
	case scene.ActionOpenGitHub:
		url, err := Resolve(action, s.World.Catalog, 0)
		if err != nil {
			return action, err
		}
		s.Bus.Publish(event.EventInteract, event.InteractEvent{ProjectID: action.Project.ID, URL: url})
		return action, s.Opener.Open(url)
	case scene.ActionContact:
		s.mu.Lock()
		s.pending = &action
		s.mu.Unlock()
		s.Bus.Publish(event.EventInteract, event.InteractEvent{ProjectID: action.Project.ID, Contact: true})
	}
	return action, nil
}

// Choose answers the pending contact menu with a 1-based entry. Out-of-range
// choices cancel the menu.
func (s *Session) Choose(choice int) (string, error) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending == nil {
		return "", fmt.Errorf("no contact menu open")
	}
	url, err := Resolve(*pending, s.World.Catalog, choice)
	if err != nil || url == "" {
		return "", err
	}
	return url, s.Opener.Open(url)
}

func (s *Session) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
