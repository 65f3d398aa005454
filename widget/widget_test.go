package widget

import (
	"errors"
	"fmt"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/layout"
	"github.com/kryonlabs/mindscape/render"
)

type rect struct{ x, y, w, h int32 }

// fakeRenderer tracks viewports the way a real backend does: pushes are relative to
// the current viewport origin.
type fakeRenderer struct {
	screen     rect
	viewports  []rect
	transforms int
	pushed     []rect // absolute viewports in push order
	fills      []rl.Color
	quads      [][2]rl.Vector2
	nextTex    uint32
	texts      []string
	released   []uint32
	textErr    error
}

func newFakeRenderer(w, h int32) *fakeRenderer {
	return &fakeRenderer{screen: rect{0, 0, w, h}}
}

func (f *fakeRenderer) current() rect {
	if len(f.viewports) == 0 {
		return f.screen
	}
	return f.viewports[len(f.viewports)-1]
}

func (f *fakeRenderer) ViewportSize() rl.Vector2 {
	c := f.current()
	return rl.NewVector2(float32(c.w), float32(c.h))
}

func (f *fakeRenderer) PushViewport(x, y, w, h int32) {
	c := f.current()
	v := rect{c.x + x, c.y + y, w, h}
	f.viewports = append(f.viewports, v)
	f.pushed = append(f.pushed, v)
}

func (f *fakeRenderer) PopViewport()          { f.viewports = f.viewports[:len(f.viewports)-1] }
func (f *fakeRenderer) PushIdentityTransform() { f.transforms++ }
func (f *fakeRenderer) PopTransform()          { f.transforms-- }

func (f *fakeRenderer) FillRect(_, _ rl.Vector2, c rl.Color) { f.fills = append(f.fills, c) }

func (f *fakeRenderer) DrawTexture(_ rl.Texture2D, minima, maxima rl.Vector2) {
	f.quads = append(f.quads, [2]rl.Vector2{minima, maxima})
}

func (f *fakeRenderer) TextTexture(text string, size float32, _ rl.Color) (rl.Texture2D, error) {
	if f.textErr != nil {
		return rl.Texture2D{}, f.textErr
	}
	f.nextTex++
	f.texts = append(f.texts, text)
	return rl.Texture2D{ID: f.nextTex, Width: int32(len(text)) * 10, Height: int32(size)}, nil
}

func (f *fakeRenderer) ReleaseTexture(tex rl.Texture2D) { f.released = append(f.released, tex.ID) }

// viewportRecorder is a leaf node that records the viewport and transform depth it renders in.
type viewportRecorder struct {
	render.Tree
	seen       rect
	transforms int
}

func (p *viewportRecorder) Render(r render.Renderer) error {
	f := r.(*fakeRenderer)
	p.seen, p.transforms = f.current(), f.transforms
	return nil
}

func TestWidgetPosAndSize(t *testing.T) {
	g := layout.UniformGrid(2, 2)
	require.NoError(t, g.Compute(rl.NewVector2(200, 100)))

	w := New(g.CellPair(1, 0))
	assert.Equal(t, rl.NewVector2(50, 0), w.Pos())
	assert.Equal(t, rl.NewVector2(50, 100), w.Size())
	assert.True(t, w.Contains(rl.NewVector2(60, 10)))
	assert.False(t, w.Contains(rl.NewVector2(10, 10)))
	assert.False(t, w.Contains(rl.NewVector2(100, 10)), "right edge is exclusive")

	assert.Equal(t, rl.Vector2{}, New(nil, nil).Pos())
	assert.Equal(t, rl.White, w.ForegroundColor())
}

func TestRootContainerUsesViewportAndIdentityTransform(t *testing.T) {
	r := newFakeRenderer(400, 400)
	root := NewRoot(layout.UniformGrid(2, 2))
	p := &viewportRecorder{}
	cell := New(root.Cell(1, 1))
	cell.Add(p)
	root.Add(cell)

	require.NoError(t, render.Draw(r, root))

	assert.Equal(t, rect{200, 200, 200, 200}, p.seen)
	assert.Equal(t, 1, p.transforms)
	assert.Zero(t, r.transforms, "transform popped")
	assert.Empty(t, r.viewports, "viewports popped")
}

func TestNestedContainerIsRelativeToParent(t *testing.T) {
	r := newFakeRenderer(400, 400)
	root := NewRoot(layout.UniformGrid(2, 2))
	inner := NewContainer(layout.UniformGrid(2, 2), nil, nil)
	inner.XCell, inner.YCell = root.Cell(1, 1)
	p := &viewportRecorder{}
	leaf := New(inner.Cell(1, 0))
	leaf.Add(p)
	inner.Add(leaf)
	root.Add(inner)

	require.NoError(t, render.Draw(r, root))

	// inner covers (200,200)-(400,400); its cell (1,0) is the lower right quarter of that
	assert.Equal(t, rect{300, 200, 100, 100}, p.seen)
	assert.Equal(t, []rect{{200, 200, 200, 200}, {300, 200, 100, 100}}, r.pushed)
	assert.Empty(t, r.viewports)
}

func TestContainerRecomputesEveryFrame(t *testing.T) {
	r := newFakeRenderer(100, 100)
	root := NewRoot(layout.UniformGrid(1, 1))
	xcell, _ := root.Cell(0, 0)

	require.NoError(t, render.Draw(r, root))
	assert.InDelta(t, 100, xcell.Size, 1e-3)

	r.screen = rect{0, 0, 300, 300}
	require.NoError(t, render.Draw(r, root))
	assert.InDelta(t, 300, xcell.Size, 1e-3)
}

func TestContainerComputeErrorReleasesState(t *testing.T) {
	r := newFakeRenderer(100, 100)
	root := NewRoot(layout.NewGrid(layout.NewVector(layout.Fixed(10)), layout.Uniform(1)))
	root.Name = "main"

	err := render.Draw(r, root)
	require.ErrorIs(t, err, layout.ErrNoWeight)
	assert.Contains(t, err.Error(), `container "main"`)
	assert.Zero(t, r.transforms)
}

func TestChildErrorStillPopsEverything(t *testing.T) {
	r := newFakeRenderer(100, 100)
	r.textErr = errors.New("no font")
	root := NewRoot(layout.UniformGrid(1, 1))
	root.Add(NewLabel(root.Cell(0, 0), "hi", layout.AlignCenter))

	err := render.Draw(r, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no font")
	assert.Empty(t, r.viewports)
	assert.Zero(t, r.transforms)
}

func TestLabelRendersAlignedText(t *testing.T) {
	r := newFakeRenderer(200, 200)
	root := NewRoot(layout.UniformGrid(1, 1))
	lbl := NewLabel(root.Cell(0, 0), "hello", layout.AlignLeft|layout.AlignTop)
	lbl.FontSize = 25
	lbl.Bg = rl.NewColor(10, 20, 30, 128)
	root.Add(lbl)

	require.NoError(t, render.Draw(r, root))

	require.Len(t, r.quads, 1)
	// 50x25 texture in a 200x200 viewport
	assert.Equal(t, [2]rl.Vector2{rl.NewVector2(-1, 0.75), rl.NewVector2(-0.5, 1)}, r.quads[0])
	assert.Equal(t, []rl.Color{lbl.Bg}, r.fills)
}

func TestLabelCachesTexture(t *testing.T) {
	r := newFakeRenderer(100, 100)
	root := NewRoot(layout.UniformGrid(1, 1))
	lbl := NewLabel(root.Cell(0, 0), "a", layout.AlignCenter)
	root.Add(lbl)

	for i := 0; i < 3; i++ {
		require.NoError(t, render.Draw(r, root))
	}
	assert.Equal(t, []string{"a"}, r.texts)

	lbl.Text = "b"
	require.NoError(t, render.Draw(r, root))
	assert.Equal(t, []string{"a", "b"}, r.texts)
	assert.Equal(t, []uint32{1}, r.released)

	lbl.Fg = rl.Red
	require.NoError(t, render.Draw(r, root))
	assert.Len(t, r.texts, 3, "colour change rasterizes again")

	lbl.Text = ""
	require.NoError(t, render.Draw(r, root))
	assert.Equal(t, []uint32{1, 2, 3}, r.released)
	assert.Len(t, r.quads, 5)
}

type recordingLeaf struct {
	Widget
	log *[]string
}

func (l *recordingLeaf) Handle(ev event.Event) {
	*l.log = append(*l.log, fmt.Sprintf("%s:%v", l.Name, ev))
}

func TestContainerRoutesPositionalEvents(t *testing.T) {
	var log []string
	root := NewRoot(layout.UniformGrid(2, 2))
	require.NoError(t, root.Grid.Compute(rl.NewVector2(200, 200)))

	left := &recordingLeaf{log: &log}
	left.Name = "left"
	left.XCell, left.YCell = root.Cell(0, 0)
	right := &recordingLeaf{log: &log}
	right.Name = "right"
	right.XCell, right.YCell = root.Cell(1, 0)
	root.Add(left, right)

	event.Trigger(root, event.ButtonDown{Pos: rl.NewVector2(150, 50), Button: 0})
	// captured by right: a release over left still goes to right
	event.Trigger(root, event.ButtonUp{Pos: rl.NewVector2(20, 50), Button: 0})
	event.Trigger(root, event.MouseMove{Pos: rl.NewVector2(20, 50)})
	event.Trigger(root, event.KeyDown{Key: rl.KeyA})

	assert.Equal(t, []string{
		"right:" + event.ButtonDown{Pos: rl.NewVector2(150, 50)}.String(),
		"right:" + event.ButtonUp{Pos: rl.NewVector2(20, 50)}.String(),
		"left:" + event.MouseMove{Pos: rl.NewVector2(20, 50)}.String(),
		"left:" + event.KeyDown{Key: rl.KeyA}.String(),
		"right:" + event.KeyDown{Key: rl.KeyA}.String(),
	}, log)
}

func TestCaptureEndsOnlyWithItsOwnButton(t *testing.T) {
	var log []string
	root := NewRoot(layout.UniformGrid(2, 2))
	require.NoError(t, root.Grid.Compute(rl.NewVector2(200, 200)))

	left := &recordingLeaf{log: &log}
	left.Name = "left"
	left.XCell, left.YCell = root.Cell(0, 0)
	right := &recordingLeaf{log: &log}
	right.Name = "right"
	right.XCell, right.YCell = root.Cell(1, 0)
	root.Add(left, right)

	over := rl.NewVector2(20, 50)
	events := []event.Event{
		event.ButtonDown{Pos: rl.NewVector2(150, 50), Button: 0},
		event.ButtonUp{Pos: over, Button: 1},
		event.MouseMove{Pos: over},
		event.ButtonUp{Pos: over, Button: 0},
		event.MouseMove{Pos: over},
	}
	for _, ev := range events {
		event.Trigger(root, ev)
	}

	want := func(name string, ev event.Event) string { return fmt.Sprintf("%s:%v", name, ev) }
	assert.Equal(t, []string{
		want("right", events[0]),
		want("right", events[1]), // another button's release keeps the capture
		want("right", events[2]),
		want("right", events[3]),
		want("left", events[4]),
	}, log)
}

func TestNestedContainerLocalizesEvents(t *testing.T) {
	var got []event.Event
	root := NewRoot(layout.UniformGrid(2, 2))
	inner := NewContainer(layout.UniformGrid(1, 1), nil, nil)
	inner.XCell, inner.YCell = root.Cell(1, 1)
	leaf := New(inner.Cell(0, 0))
	leaf.OnEvent = func(ev event.Event) { got = append(got, ev) }
	inner.Add(leaf)
	root.Add(inner)

	placements, err := Layout(root, rl.NewVector2(200, 200))
	require.NoError(t, err)
	require.Len(t, placements, 3)

	event.Trigger(root, event.MouseMove{Pos: rl.NewVector2(150, 130)})
	event.Trigger(root, event.MouseMove{Pos: rl.NewVector2(50, 50)})

	assert.Equal(t, []event.Event{event.MouseMove{Pos: rl.NewVector2(50, 30)}}, got)
}

func TestHandleBeforeChildren(t *testing.T) {
	var log []string
	root := NewRoot(layout.UniformGrid(1, 1))
	root.OnEvent = func(event.Event) { log = append(log, "root") }
	child := New(root.Cell(0, 0))
	child.OnEvent = func(event.Event) { log = append(log, "child") }
	root.Add(child)

	event.Trigger(root, event.Char{Char: 'x'})
	assert.Equal(t, []string{"root", "child"}, log)
}
