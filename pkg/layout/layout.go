// Package layout computes destination coordinates for fixed-arity trees.
//
// Placement is deterministic and pure with respect to tree shape: for a
// fixed shape, arity and root geometry, repeated passes assign identical
// destinations. Layout writes destinations only; snapping and interpolation
// toward them are separate operations so the animation engine can capture
// intermediate frames.
package layout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/treescope/pkg/model"
)

// Depth returns the maximum depth of the tree rooted at root, scanned from
// scratch. A node with a negative key (sentinels included) contributes 0,
// otherwise 1 + the max over its children.
func Depth(a *model.Arena, root model.NodeID, arity int) int {
	n := a.Node(root)
	if n == nil || n.Key < 0 {
		return 0
	}
	max := 0
	for i := 0; i < arity; i++ {
		if d := Depth(a, n.Children[i], arity); d > max {
			max = d
		}
	}
	return max + 1
}

// PlaceTreeNodes assigns a destination to every node reachable from root.
//
// The root lands exactly at (xStart, yStart). Siblings at depth d sit
// treeWidth/arity^d apart, the budget halving independently per subtree:
// each recursive call hands width/arity down. Levels are depthLen apart.
// Arity 1 forces width 0 so linked lists stack vertically.
func PlaceTreeNodes(a *model.Arena, root model.NodeID, arity int, xStart, yStart, treeWidth, depthLen float64) {
	n := a.Node(root)
	if n == nil {
		return
	}
	n.Dest = r2.Vec{X: xStart, Y: yStart}

	width := treeWidth / float64(arity)
	if arity == 1 {
		width = 0
	}
	placeRecursive(a, root, arity, width, Depth(a, root, arity), depthLen)
}

// placeRecursive places the children of id, then recurses. Children are
// positioned left to right in slot order, centered under the parent: the
// cursor starts at parent.x - width*(1+arity)/2 and advances by width
// before each slot, so slot i lands at parent.x - width*(1+arity)/2 +
// width*(i+1).
func placeRecursive(a *model.Arena, id model.NodeID, arity int, width float64, depth int, depthLen float64) {
	n := a.Node(id)
	if depth <= 0 || n == nil {
		return
	}

	currX := n.Dest.X - width*(1+float64(arity))/2
	currY := n.Dest.Y + depthLen

	for i := 0; i < arity; i++ {
		currX += width
		child := a.Node(n.Children[i])
		if child == nil {
			continue
		}
		child.Dest = r2.Vec{X: currX, Y: currY}
		placeRecursive(a, n.Children[i], arity, width/float64(arity), depth-1, depthLen)
	}
}

// PlaceCentered is the no-argument variant: it derives the root position
// and tree width from the canvas width and a radius-derived margin, and is
// used whenever a mutation leaves layout parameters unspecified.
func PlaceCentered(a *model.Arena, root model.NodeID, arity int, canvasWidth, radius, depthLen float64) {
	PlaceTreeNodes(a, root, arity,
		canvasWidth/2+radius*1.5, radius*2,
		canvasWidth-radius*5, depthLen)
}

// SnapToDestination moves every node reachable from the given roots to its
// destination. Idempotent: a second snap changes nothing.
func SnapToDestination(a *model.Arena, roots ...model.NodeID) {
	for _, root := range roots {
		for _, id := range a.Reachable(root) {
			n := a.Node(id)
			n.Pos = n.Dest
		}
	}
}

// MoveStep advances every node reachable from the given roots one frame
// toward its destination, covering the remaining distance evenly over the
// frames left: on frame i of total, each node moves 1/(total-i) of the gap.
// After the last frame every node sits exactly at its destination.
func MoveStep(a *model.Arena, frame, total int, roots ...model.NodeID) {
	fraction := float64(total - frame)
	if fraction <= 0 {
		fraction = 1
	}
	for _, root := range roots {
		for _, id := range a.Reachable(root) {
			n := a.Node(id)
			n.Pos = r2.Add(n.Pos, r2.Scale(1/fraction, r2.Sub(n.Dest, n.Pos)))
		}
	}
}
