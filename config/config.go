// Package config reads scene files: TOML documents describing the window and a tree
// of containers and labels laid out on grids.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kryonlabs/mindscape/render"
)

//go:embed demo.toml
var demoScene []byte

// ErrInvalidScene wraps every problem found while decoding or validating a scene.
var ErrInvalidScene = errors.New("config: invalid scene")

type Scene struct {
	Window WindowSpec    `toml:"window"`
	Root   ContainerSpec `toml:"root"`
}

type WindowSpec struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	Title           string `toml:"title"`
	Resizable       *bool  `toml:"resizable"`
	TargetFPS       int    `toml:"target_fps"`
	Background      string `toml:"background"`
	GrabLocksCursor bool   `toml:"grab_locks_cursor"`
}

// CellSpec is one row or column. Weight defaults to 1.
type CellSpec struct {
	Weight *float32 `toml:"weight"`
	Fixed  float32  `toml:"fixed"`
}

// GridSpec lists rows and columns explicitly or asks for uniform ones by count.
// With neither given an axis has a single cell.
type GridSpec struct {
	Rows     []CellSpec `toml:"rows"`
	Cols     []CellSpec `toml:"cols"`
	RowCount int        `toml:"row_count"`
	ColCount int        `toml:"col_count"`
}

type ContainerSpec struct {
	Name       string          `toml:"name"`
	Cell       *[2]int         `toml:"cell"` // column, row in the parent grid; absent on the root
	Grid       GridSpec        `toml:"grid"`
	Bg         string          `toml:"bg"`
	OnEvent    string          `toml:"on_event"`
	Labels     []LabelSpec     `toml:"label"`
	Containers []ContainerSpec `toml:"container"`
}

type LabelSpec struct {
	Name     string   `toml:"name"`
	Cell     *[2]int  `toml:"cell"`
	Text     string   `toml:"text"`
	Align    []string `toml:"align"`
	FontSize float32  `toml:"font_size"`
	Fg       string   `toml:"fg"`
	Bg       string   `toml:"bg"`
	OnEvent  string   `toml:"on_event"`
}

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a scene from r and validates it. Keys the scene format does not know
// are rejected.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidScene, strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the built-in demo scene.
func Default() *Scene {
	s, err := Decode(bytes.NewReader(demoScene))
	if err != nil {
		panic(fmt.Sprintf("config: embedded demo scene: %v", err))
	}
	return s
}

// Config resolves the window settings over render.DefaultWindowConfig.
func (w WindowSpec) Config() (render.WindowConfig, error) {
	cfg := render.DefaultWindowConfig()
	if w.Width > 0 {
		cfg.Width = w.Width
	}
	if w.Height > 0 {
		cfg.Height = w.Height
	}
	if w.Title != "" {
		cfg.Title = w.Title
	}
	if w.Resizable != nil {
		cfg.Resizable = *w.Resizable
	}
	if w.TargetFPS > 0 {
		cfg.TargetFPS = w.TargetFPS
	}
	if w.Background != "" {
		bg, err := ParseColor(w.Background)
		if err != nil {
			return cfg, fmt.Errorf("%w: window.background: %w", ErrInvalidScene, err)
		}
		cfg.Background = bg
	}
	cfg.GrabLocksCursor = w.GrabLocksCursor
	return cfg, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The empty string is the zero colour,
// which widgets treat as unset.
func ParseColor(s string) (rl.Color, error) {
	if s == "" {
		return rl.Color{}, nil
	}
	alpha := uint8(255)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return rl.Color{}, fmt.Errorf("colour %q: bad alpha", s)
		}
		alpha, hex = uint8(a), s[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, alpha), nil
}
