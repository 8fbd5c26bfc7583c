// Package catalog loads the projects shown in the world.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed default.json
var defaultJSON []byte

var (
	ErrNoProjects   = errors.New("catalog has no projects")
	ErrDuplicateID  = errors.New("duplicate project id")
	ErrInvalidColor = errors.New("invalid project color")
)

type Catalog struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Projects     []Project    `json:"projects"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	GitHubURL   string   `json:"githubUrl"`
	Position    Vec3     `json:"position"`
	Color       string   `json:"color"`
	// Icon is an optional image path (png, jpeg or tga) drawn on the panel.
	Icon string `json:"icon,omitempty"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

type ContactOption struct {
	Name string
	URL  string
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return cat, nil
}

// LoadOrDefault never fails: when path cannot be loaded the embedded catalog
// is returned and fallback is true.
func LoadOrDefault(path string) (cat *Catalog, fallback bool) {
	cat, err := Load(path)
	if err == nil {
		return cat, false
	}
	slog.Warn("Failed to load projects, using fallback data", "path", path, "error", err)
	return Default(), true
}

func Default() *Catalog {
	cat, err := Parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return cat
}

func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) Validate() error {
	if c == nil || len(c.Projects) == 0 {
		return ErrNoProjects
	}
	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.ID == "" {
			return fmt.Errorf("project %d: empty id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
		if _, err := ParseColor(p.Color); err != nil {
			return fmt.Errorf("project %s: %w", p.ID, err)
		}
	}
	return nil
}

func (c *Catalog) Project(id string) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ContactOptions lists the ways to reach the owner, in menu order.
func (c *Catalog) ContactOptions() []ContactOption {
	info := c.PersonalInfo
	return []ContactOption{
		{Name: "LinkedIn", URL: info.LinkedIn},
		{Name: "GitHub", URL: info.GitHub},
		{Name: "Email", URL: "mailto:" + info.Email},
	}
}

func (p Project) RGBA() color.RGBA {
	c, err := ParseColor(p.Color)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// ParseColor accepts CSS-style "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
