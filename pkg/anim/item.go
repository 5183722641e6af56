// Package anim records and replays animation items.
//
// Recording is push-based: while an operation runs synchronously against
// the live structure, each animation-producing step appends an Item whose
// side effect has already been applied and whose visual state has already
// been captured as scene snapshots. Playback later re-renders those
// snapshots at a controlled pace, independent of how fast the operation
// itself ran.
package anim

import (
	"time"

	"github.com/vanderheijden86/treescope/pkg/render"
)

// Kind discriminates the recorded item variants.
type Kind int

const (
	// KindSelect marks a node as the single current focus.
	KindSelect Kind = iota
	// KindStackAdd pushes a node onto the auxiliary list as a stack.
	KindStackAdd
	// KindQueueAdd appends a node to the auxiliary list as a queue.
	KindQueueAdd
	// KindPriorityQueueAdd inserts a node into the auxiliary list in
	// ascending value order.
	KindPriorityQueueAdd
	// KindListPop removes the front of the auxiliary list.
	KindListPop
	// KindExplore adds a node to the explored set.
	KindExplore
	// KindMove interpolates every live node toward its destination over a
	// fixed number of frames.
	KindMove
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindStackAdd:
		return "stack_add"
	case KindQueueAdd:
		return "queue_add"
	case KindPriorityQueueAdd:
		return "priority_queue_add"
	case KindListPop:
		return "list_pop"
	case KindExplore:
		return "explore"
	case KindMove:
		return "move"
	default:
		return "unknown"
	}
}

// Item is one recorded, replayable animation unit: a message, a nominal
// duration, and the scene snapshots captured when its side effect ran.
//
// Items are immutable once appended; snapshots are deep copies, so later
// mutation of the live structure cannot reach them. Multi-frame items
// split their duration evenly across frames. Reverse playback re-displays
// the same frames: items are replayable, not invertible.
type Item struct {
	Kind     Kind
	Message  string
	Duration time.Duration
	Frames   []render.Scene
}
