package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/widget"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestDefaultScene(t *testing.T) {
	s := Default()
	assert.Equal(t, "main", s.Root.Name)
	assert.Equal(t, 3, s.Root.Grid.RowCount)
	assert.Equal(t, 2, s.Root.Grid.ColCount)
	require.Len(t, s.Root.Labels, 4)
	assert.Equal(t, []string{"left", "top"}, s.Root.Labels[1].Align)

	cfg, err := s.Window.Config()
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, "Test: Layout", cfg.Title)
	assert.Equal(t, 30, cfg.TargetFPS)
	assert.Equal(t, rl.NewColor(0x33, 0x66, 0x66, 255), cfg.Background)
}

func TestBuildDefault(t *testing.T) {
	var logged []event.Event
	handlers := Handlers{"log": func(ev event.Event) { logged = append(logged, ev) }}

	root, err := Build(Default(), handlers, quietLogger())
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.Equal(t, 3, root.Grid.Rows.Len())
	assert.Equal(t, 2, root.Grid.Cols.Len())
	require.Len(t, root.Children(), 4)

	great := root.Children()[2].(*widget.Label)
	assert.Equal(t, "I'm great thanks!", great.Text)
	assert.Equal(t, layout.AlignFillY, great.Align)
	xcell, ycell := root.Cell(1, 2)
	assert.Same(t, xcell, great.XCell)
	assert.Same(t, ycell, great.YCell)
	assert.Equal(t, rl.NewColor(0, 0x7f, 0, 0x7f), great.Bg)

	// "quit" is not registered here, so the root stays unbound
	assert.Nil(t, root.OnEvent)
	great.Handle(event.KeyDown{Key: rl.KeyA})
	assert.Len(t, logged, 1)
}

func TestBuildNestedAndGenerated(t *testing.T) {
	const doc = `
[root.grid]
cols = [{ fixed = 40.0, weight = 0.0 }, { weight = 2.0 }, {}]

[[root.container]]
cell = [2, 0]
bg = "#10203040"
[root.container.grid]
row_count = 2

[[root.container.label]]
cell = [0, 1]
text = "inner"
font_size = 12.0
`
	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	root, err := Build(s, nil, quietLogger())
	require.NoError(t, err)

	require.Equal(t, 3, root.Grid.Cols.Len())
	assert.Equal(t, float32(40), root.Grid.Cols.At(0).Fixed)
	assert.Equal(t, float32(0), root.Grid.Cols.At(0).Weight)
	assert.Equal(t, float32(2), root.Grid.Cols.At(1).Weight)
	assert.Equal(t, float32(1), root.Grid.Cols.At(2).Weight)

	require.Len(t, root.Children(), 1)
	inner := root.Children()[0].(*widget.Container)
	assert.True(t, strings.HasPrefix(inner.Name, "container-"), inner.Name)
	assert.Same(t, root.Grid.Cols.At(2), inner.XCell)
	assert.Equal(t, rl.NewColor(0x10, 0x20, 0x30, 0x40), inner.Bg)

	lbl := inner.Children()[0].(*widget.Label)
	assert.True(t, strings.HasPrefix(lbl.Name, "label-"), lbl.Name)
	assert.Equal(t, float32(12), lbl.FontSize)
	assert.Same(t, inner.Grid.Rows.At(1), lbl.YCell)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "[root]\nsize = 3\n", "root.size"},
		{"root with cell", "[root]\ncell = [0, 0]\n", "takes no cell"},
		{"cell out of grid", "[[root.label]]\ncell = [1, 0]\n", "outside the 1-column, 1-row grid"},
		{"negative weight", "[root.grid]\nrows = [{ weight = -1.0 }]\n", "weight -1 is negative"},
		{"list and count", "[root.grid]\nrows = [{}]\nrow_count = 2\n", "both a cell list and a count"},
		{"bad alignment", "[[root.label]]\nalign = [\"sideways\"]\n", "sideways"},
		{"bad colour", "[[root.label]]\nfg = \"red\"\n", "fg"},
		{"bad alpha", "[window]\nbackground = \"#000000zz\"\n", "bad alpha"},
		{"syntax", "[root\n", "invalid scene"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrInvalidScene)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	s := &Scene{Root: ContainerSpec{Labels: []LabelSpec{
		{Name: "a", Cell: &[2]int{3, 0}},
		{Name: "b", FontSize: -1},
	}}}
	err := s.Validate()
	require.ErrorIs(t, err, ErrInvalidScene)
	assert.Contains(t, err.Error(), "a: cell [3, 0]")
	assert.Contains(t, err.Error(), "b: font_size -1")
}

func TestBuildWarnsOnMissingHandler(t *testing.T) {
	var buf strings.Builder
	s := &Scene{Root: ContainerSpec{Name: "r", OnEvent: "nope"}}

	root, err := Build(s, Handlers{}, log.New(&buf))
	require.NoError(t, err)
	assert.Nil(t, root.OnEvent)
	assert.Contains(t, buf.String(), "no handler registered")
	assert.Contains(t, buf.String(), "nope")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"x\"\nresizable = false\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	cfg, err := s.Window.Config()
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Title)
	assert.False(t, cfg.Resizable)
	assert.Equal(t, 640, cfg.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, rl.NewColor(255, 128, 0, 255), c)

	c, err = ParseColor("")
	require.NoError(t, err)
	assert.Zero(t, c.A)

	_, err = ParseColor("#12")
	assert.Error(t, err)
}
