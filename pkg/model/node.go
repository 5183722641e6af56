// Package model defines the node arena shared by every visualized
// structure.
//
// Nodes are stored in an Arena and addressed by stable NodeID rather than
// by pointer. A node's membership in a structure is defined purely by
// reachability from that structure's root: detaching a subtree is a single
// child-slot write, and a slot that is no longer reachable is simply never
// enumerated again.
package model

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NodeID addresses a node inside an Arena.
type NodeID int

// None marks an empty child slot.
const None NodeID = -1

// Valid keys are non-negative, so both sentinels sit outside the key domain.
const (
	// NoKey is the empty result of pop, peek and hit-test queries.
	NoKey = -1
	// InvisibleKey marks a phantom leaf. Nodes carrying it stay in the
	// ownership graph but are excluded from rendering, edge drawing and
	// depth measurement.
	InvisibleKey = math.MinInt32
)

// DefaultNodeColor is the fill used for nodes with no role-based override.
var DefaultNodeColor = color.RGBA{0xd6, 0x45, 0x41, 0xff}

// Node is one vertex of a fixed-arity structure.
//
// Pos is where the node is currently rendered; Dest is where the layout
// engine wants it. Animation interpolates Pos toward Dest; layout passes
// write only Dest.
type Node struct {
	Key      int
	Value    int
	Children []NodeID
	Pos      r2.Vec
	Dest     r2.Vec
	Color    color.RGBA
}

// Arena owns the backing storage for nodes.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates a node with the given key and arity and returns its ID.
// All child slots start empty.
func (a *Arena) New(key, arity int) NodeID {
	children := make([]NodeID, arity)
	for i := range children {
		children[i] = None
	}
	a.nodes = append(a.nodes, Node{
		Key:      key,
		Value:    key,
		Children: children,
		Color:    DefaultNodeColor,
	})
	return NodeID(len(a.nodes) - 1)
}

// Node returns the node for id, or nil for None or an out-of-range ID.
func (a *Arena) Node(id NodeID) *Node {
	if id == None || int(id) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[id]
}

// Len reports how many nodes have ever been allocated, reachable or not.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Reachable enumerates every node reachable from root, children before
// parent within each subtree (post-order, left to right).
func (a *Arena) Reachable(root NodeID) []NodeID {
	var ids []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := a.Node(id)
		if n == nil {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
		ids = append(ids, id)
	}
	walk(root)
	return ids
}

// Find returns the first reachable node holding key, or None.
func (a *Arena) Find(root NodeID, key int) NodeID {
	for _, id := range a.Reachable(root) {
		if a.nodes[id].Key == key {
			return id
		}
	}
	return None
}

// Clone deep-copies the arena. Snapshots captured during animation
// recording rely on clones being fully independent of later mutation.
func (a *Arena) Clone() *Arena {
	out := &Arena{nodes: make([]Node, len(a.nodes))}
	copy(out.nodes, a.nodes)
	for i := range out.nodes {
		children := make([]NodeID, len(a.nodes[i].Children))
		copy(children, a.nodes[i].Children)
		out.nodes[i].Children = children
	}
	return out
}
