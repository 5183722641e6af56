// Package structs implements the visualized structures: the binary search
// tree (and its fixed-arity generalization) and the auxiliary list used as
// the call-stack / queue shown during traversals.
package structs

import (
	"github.com/vanderheijden86/treescope/pkg/layout"
	"github.com/vanderheijden86/treescope/pkg/model"
	"github.com/vanderheijden86/treescope/pkg/render"
)

// List is a singly linked chain of arity-1 nodes with three insertion
// disciplines. It shares its arena with the structure being visualized so
// one layout and render pass covers both.
//
// The isStack flag reflects only the most recent insertion; pop's layout
// anchor follows it. Callers never mix disciplines on one instance.
type List struct {
	arena   *model.Arena
	head    model.NodeID
	cfg     render.Config
	spacing float64
	isStack bool
}

// NewList returns an empty list drawing on arena with the given canvas
// geometry. Entries sit 2.5 radii apart vertically.
func NewList(arena *model.Arena, cfg render.Config) *List {
	return &List{
		arena:   arena,
		head:    model.None,
		cfg:     cfg,
		spacing: cfg.Radius * 2.5,
	}
}

// Head returns the head node ID, or model.None when empty.
func (l *List) Head() model.NodeID { return l.head }

// Empty reports whether the list has no entries.
func (l *List) Empty() bool { return l.head == model.None }

// Len walks the chain and counts entries.
func (l *List) Len() int {
	count := 0
	for id := l.head; id != model.None; id = l.next(id) {
		count++
	}
	return count
}

func (l *List) next(id model.NodeID) model.NodeID {
	n := l.arena.Node(id)
	if n == nil {
		return model.None
	}
	return n.Children[0]
}

// anchorTop is the fixed on-screen position queues hang from.
func (l *List) anchorTop() (x, y float64) {
	return l.cfg.Radius * 1.5, l.cfg.Radius * 1.5
}

// anchorBot is the corner stacks grow away from.
func (l *List) anchorBot() (x, y float64) {
	return l.cfg.Radius * 1.5, float64(l.cfg.Height) - l.cfg.Radius*1.5
}

// Layout recomputes destinations for the whole chain, anchored by the
// current discipline: stacks re-anchor the head at the bottom corner and
// grow upward, queues hang the head from the fixed top position and grow
// downward.
func (l *List) Layout() {
	if l.head == model.None {
		return
	}
	if l.isStack {
		x, y := l.anchorBot()
		layout.PlaceTreeNodes(l.arena, l.head, 1, x, y, 0, -l.spacing)
	} else {
		x, y := l.anchorTop()
		layout.PlaceTreeNodes(l.arena, l.head, 1, x, y, 0, l.spacing)
	}
}

// StackInsert pushes a node holding key at the head.
func (l *List) StackInsert(key int) model.NodeID {
	id := l.arena.New(key, 1)
	l.arena.Node(id).Children[0] = l.head
	l.head = id
	l.isStack = true
	l.Layout()
	return id
}

// QueueInsert appends a node holding key at the tail.
func (l *List) QueueInsert(key int) model.NodeID {
	id := l.arena.New(key, 1)
	l.isStack = false
	if l.head == model.None {
		l.head = id
	} else {
		tail := l.head
		for l.next(tail) != model.None {
			tail = l.next(tail)
		}
		l.arena.Node(tail).Children[0] = id
	}
	l.Layout()
	return id
}

// PriorityQueueInsert inserts a node holding key in ascending value order.
// A value <= the head's becomes the new head; anything else lands after
// the last entry whose value is <= the new value, so ties away from the
// head keep their arrival order.
func (l *List) PriorityQueueInsert(key int) model.NodeID {
	id := l.arena.New(key, 1)
	value := l.arena.Node(id).Value
	l.isStack = false

	if l.head == model.None || l.arena.Node(l.head).Value >= value {
		l.arena.Node(id).Children[0] = l.head
		l.head = id
	} else {
		prev := l.head
		for l.next(prev) != model.None && l.arena.Node(l.next(prev)).Value <= value {
			prev = l.next(prev)
		}
		l.arena.Node(id).Children[0] = l.next(prev)
		l.arena.Node(prev).Children[0] = id
	}
	l.Layout()
	return id
}

// Pop removes the head and returns its key, or model.NoKey when empty.
// Relayout anchors by the discipline of the most recent insertion.
func (l *List) Pop() int {
	if l.head == model.None {
		return model.NoKey
	}
	key := l.arena.Node(l.head).Key
	l.head = l.next(l.head)
	l.Layout()
	return key
}

// Peek returns the head's key without mutating or relaying out, or
// model.NoKey when empty.
func (l *List) Peek() int {
	if l.head == model.None {
		return model.NoKey
	}
	return l.arena.Node(l.head).Key
}

// Clear drops every entry. The nodes stay in the arena but become
// unreachable.
func (l *List) Clear() {
	l.head = model.None
}
