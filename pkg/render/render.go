// Package render draws structure scenes onto 2D canvases.
//
// A Scene is everything needed to paint one frame: an arena, the roots to
// draw (tree plus auxiliary list), and the marks in force. Frames render
// off-screen into a fresh gg context and are returned as image.Image, so
// recording never touches a live surface; renderSVG mirrors the raster
// output for static export.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/treescope/pkg/model"
)

// HitSlop scales the node radius for click-hit testing: a click within
// 1.04x the radius of a node's current position hits it.
const HitSlop = 1.04

// Config fixes the canvas geometry for a visualizer instance.
type Config struct {
	Width  int
	Height int
	Radius float64 // node circle radius
}

// DefaultConfig matches a comfortable desktop canvas.
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 800, Radius: 30}
}

// Layer is one root to draw with its arity.
type Layer struct {
	Root  model.NodeID
	Arity int
}

// Scene is a drawable snapshot of visual state.
type Scene struct {
	Arena  *model.Arena
	Layers []Layer
	Marks  *model.Marks
}

// Clone deep-copies the scene so later mutation of the live structure
// cannot reach into a captured frame.
func (s Scene) Clone() Scene {
	out := Scene{
		Arena:  s.Arena.Clone(),
		Layers: make([]Layer, len(s.Layers)),
		Marks:  s.Marks.Clone(),
	}
	copy(out.Layers, s.Layers)
	return out
}

var (
	colorBackground  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorSelected    = color.RGBA{0x2b, 0x6c, 0xc4, 0xff} // traversal head
	colorHighlighted = color.RGBA{0x8a, 0xd6, 0x8a, 0xff} // in the aux list
	colorExplored    = color.RGBA{0x2e, 0x7d, 0x32, 0xff} // finished nodes
	colorEdge        = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorText        = color.RGBA{0x11, 0x11, 0x11, 0xff}
)

// fillFor picks the node fill by role priority: selected beats highlighted
// beats explored beats the node's own stored color.
func fillFor(sc Scene, id model.NodeID) color.RGBA {
	switch {
	case sc.Marks.Selected == id:
		return colorSelected
	case sc.Marks.Highlighted[id]:
		return colorHighlighted
	case sc.Marks.Explored[id]:
		return colorExplored
	default:
		return sc.Arena.Node(id).Color
	}
}

// Frame renders the scene into an off-screen context and returns the image.
func Frame(cfg Config, sc Scene) image.Image {
	dc := gg.NewContext(cfg.Width, cfg.Height)
	Draw(dc, cfg, sc)
	return dc.Image()
}

// Draw paints the scene onto dc: background, then each layer's edges and
// nodes.
func Draw(dc *gg.Context, cfg Config, sc Scene) {
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	for _, layer := range sc.Layers {
		drawTreeRecursive(dc, cfg, sc, layer.Arity, layer.Root)
	}
}

// drawTreeRecursive draws the edges from id to its visible children, then
// the node itself, then recurses. Edges first, so they never occlude node
// circles.
func drawTreeRecursive(dc *gg.Context, cfg Config, sc Scene, arity int, id model.NodeID) {
	n := sc.Arena.Node(id)
	if n == nil {
		return
	}

	dc.SetColor(colorEdge)
	dc.SetLineWidth(3)
	for i := 0; i < arity; i++ {
		child := sc.Arena.Node(n.Children[i])
		if child == nil || n.Key == model.InvisibleKey || child.Key == model.InvisibleKey {
			continue
		}
		dc.DrawLine(n.Pos.X, n.Pos.Y, child.Pos.X, child.Pos.Y)
		dc.Stroke()
	}

	drawNode(dc, cfg, sc, id)

	for i := 0; i < arity; i++ {
		drawTreeRecursive(dc, cfg, sc, arity, n.Children[i])
	}
}

// drawNode draws one node circle with its key centered over it. Nodes
// carrying InvisibleKey are skipped entirely.
func drawNode(dc *gg.Context, cfg Config, sc Scene, id model.NodeID) {
	n := sc.Arena.Node(id)
	if n == nil || n.Key == model.InvisibleKey {
		return
	}

	dc.SetColor(fillFor(sc, id))
	dc.DrawCircle(n.Pos.X, n.Pos.Y, cfg.Radius)
	dc.Fill()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(fmt.Sprintf("%d", n.Key), n.Pos.X, n.Pos.Y, 0.5, 0.5)
}

// WriteSVG mirrors Draw as an SVG document.
func WriteSVG(w io.Writer, cfg Config, sc Scene) error {
	canvas := svg.New(w)
	canvas.Start(cfg.Width, cfg.Height)
	canvas.Rect(0, 0, cfg.Width, cfg.Height, fmt.Sprintf("fill:%s", css(colorBackground)))
	for _, layer := range sc.Layers {
		writeSVGRecursive(canvas, cfg, sc, layer.Arity, layer.Root)
	}
	canvas.End()
	return nil
}

func writeSVGRecursive(canvas *svg.SVG, cfg Config, sc Scene, arity int, id model.NodeID) {
	n := sc.Arena.Node(id)
	if n == nil {
		return
	}

	for i := 0; i < arity; i++ {
		child := sc.Arena.Node(n.Children[i])
		if child == nil || n.Key == model.InvisibleKey || child.Key == model.InvisibleKey {
			continue
		}
		canvas.Line(int(n.Pos.X), int(n.Pos.Y), int(child.Pos.X), int(child.Pos.Y),
			fmt.Sprintf("stroke:%s;stroke-width:3", css(colorEdge)))
	}

	if n.Key != model.InvisibleKey {
		canvas.Circle(int(n.Pos.X), int(n.Pos.Y), int(cfg.Radius),
			fmt.Sprintf("fill:%s", css(fillFor(sc, id))))
		canvas.Text(int(n.Pos.X), int(n.Pos.Y)+4, fmt.Sprintf("%d", n.Key),
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;text-anchor:middle", css(colorText)))
	}

	for i := 0; i < arity; i++ {
		writeSVGRecursive(canvas, cfg, sc, arity, n.Children[i])
	}
}

// Hit reports whether (x, y) lands on the node's current position, within
// HitSlop times the radius.
func Hit(cfg Config, n *model.Node, x, y float64) bool {
	return math.Hypot(x-n.Pos.X, y-n.Pos.Y) < cfg.Radius*HitSlop
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
