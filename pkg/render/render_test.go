package render

import (
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/treescope/pkg/model"
)

func sceneWithOneNode(key int) (Scene, model.NodeID) {
	a := model.NewArena()
	id := a.New(key, 2)
	a.Node(id).Pos = r2.Vec{X: 100, Y: 100}
	sc := Scene{
		Arena:  a,
		Layers: []Layer{{Root: id, Arity: 2}},
		Marks:  model.NewMarks(),
	}
	return sc, id
}

func TestFillForPriority(t *testing.T) {
	sc, id := sceneWithOneNode(1)

	if got := fillFor(sc, id); got != model.DefaultNodeColor {
		t.Errorf("unmarked node should use its stored color, got %v", got)
	}

	sc.Marks.Explore(id)
	if got := fillFor(sc, id); got != colorExplored {
		t.Errorf("explored should beat default, got %v", got)
	}

	sc.Marks.Highlight(id)
	if got := fillFor(sc, id); got != colorHighlighted {
		t.Errorf("highlighted should beat explored, got %v", got)
	}

	sc.Marks.Select(id)
	if got := fillFor(sc, id); got != colorSelected {
		t.Errorf("selected should beat highlighted, got %v", got)
	}
}

func TestFrameDrawsNode(t *testing.T) {
	cfg := Config{Width: 200, Height: 200, Radius: 20}
	sc, _ := sceneWithOneNode(7)

	img := Frame(cfg, sc)
	r, g, b, _ := img.At(100, 100).RGBA()
	bg := color.RGBA{0xff, 0xff, 0xff, 0xff}
	if uint8(r>>8) == bg.R && uint8(g>>8) == bg.G && uint8(b>>8) == bg.B {
		t.Error("node center should not be background colored")
	}
}

func TestFrameSkipsInvisibleNode(t *testing.T) {
	cfg := Config{Width: 200, Height: 200, Radius: 20}
	sc, _ := sceneWithOneNode(model.InvisibleKey)

	img := Frame(cfg, sc)
	r, g, b, _ := img.At(100, 100).RGBA()
	if uint8(r>>8) != 0xff || uint8(g>>8) != 0xff || uint8(b>>8) != 0xff {
		t.Error("invisible node should leave the background untouched")
	}
}

func TestFrameSkipsEdgesToInvisibleChildren(t *testing.T) {
	cfg := Config{Width: 300, Height: 300, Radius: 20}
	a := model.NewArena()
	root := a.New(1, 2)
	phantom := a.New(model.InvisibleKey, 2)
	a.Node(root).Children[0] = phantom
	a.Node(root).Pos = r2.Vec{X: 100, Y: 100}
	a.Node(phantom).Pos = r2.Vec{X: 100, Y: 260}

	sc := Scene{Arena: a, Layers: []Layer{{Root: root, Arity: 2}}, Marks: model.NewMarks()}
	img := Frame(cfg, sc)

	// Midpoint of the would-be edge stays background.
	r, g, b, _ := img.At(100, 180).RGBA()
	if uint8(r>>8) != 0xff || uint8(g>>8) != 0xff || uint8(b>>8) != 0xff {
		t.Error("edge to a phantom child should not be drawn")
	}
}

func TestWriteSVGSkipsInvisible(t *testing.T) {
	cfg := DefaultConfig()
	a := model.NewArena()
	root := a.New(5, 2)
	phantom := a.New(model.InvisibleKey, 2)
	a.Node(root).Children[0] = phantom
	sc := Scene{Arena: a, Layers: []Layer{{Root: root, Arity: 2}}, Marks: model.NewMarks()}

	var sb strings.Builder
	if err := WriteSVG(&sb, cfg, sc); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, ">5<") {
		t.Error("expected visible node key in SVG output")
	}
	if strings.Count(out, "<circle") != 1 {
		t.Errorf("expected exactly one circle, got %d", strings.Count(out, "<circle"))
	}
	if strings.Contains(out, "<line") {
		t.Error("no edge should be drawn to a phantom leaf")
	}
}

func TestHitBoundary(t *testing.T) {
	cfg := Config{Width: 200, Height: 200, Radius: 30}
	a := model.NewArena()
	id := a.New(1, 2)
	n := a.Node(id)
	n.Pos = r2.Vec{X: 100, Y: 100}

	if !Hit(cfg, n, 100, 100) {
		t.Error("click at center must always hit")
	}
	if !Hit(cfg, n, 100+cfg.Radius*1.03, 100) {
		t.Error("click at 1.03x radius must hit")
	}
	if Hit(cfg, n, 100+cfg.Radius*1.05, 100) {
		t.Error("click at 1.05x radius must not hit")
	}
}

func TestSceneCloneIndependence(t *testing.T) {
	sc, id := sceneWithOneNode(9)
	sc.Marks.Select(id)

	clone := sc.Clone()
	sc.Arena.Node(id).Key = 99
	sc.Marks.Reset()
	sc.Layers[0].Arity = 1

	if clone.Arena.Node(id).Key != 9 {
		t.Error("clone arena should be independent")
	}
	if clone.Marks.Selected != id {
		t.Error("clone marks should be independent")
	}
	if clone.Layers[0].Arity != 2 {
		t.Error("clone layers should be independent")
	}
}

func TestCSS(t *testing.T) {
	if got := css(color.RGBA{0x2b, 0x6c, 0xc4, 0xff}); got != "#2b6cc4" {
		t.Errorf("css = %q", got)
	}
}
