package structs

import (
	"errors"
	"fmt"
	"time"

	"github.com/vanderheijden86/treescope/pkg/anim"
	"github.com/vanderheijden86/treescope/pkg/layout"
	"github.com/vanderheijden86/treescope/pkg/model"
	"github.com/vanderheijden86/treescope/pkg/render"
	"github.com/vanderheijden86/treescope/pkg/store"
)

// MovementFrames is how many interpolation frames a move item captures.
const MovementFrames = 30

// Nominal item durations before speed scaling.
const (
	durSelect = 400 * time.Millisecond
	durListOp = 400 * time.Millisecond
	durMove   = 900 * time.Millisecond
)

// ErrEmptyStructure is returned when a record is requested for a structure
// with no nodes.
var ErrEmptyStructure = errors.New("structure has no nodes")

// Balancer is the per-structure rebalancing hook. Self-balancing variants
// implement it; the plain search tree leaves it nil.
type Balancer interface {
	AfterInsert(t *Tree, inserted model.NodeID)
	AfterRemove(t *Tree)
}

// Tree is a visualizable fixed-arity structure: a binary search tree for
// arity 2, a linked list for arity 1. It owns the arena, the root, the
// marks, the recording log, and the auxiliary list shown during
// traversals.
type Tree struct {
	arena    *model.Arena
	root     model.NodeID
	arity    int
	marks    *model.Marks
	aux      *List
	log      *anim.Log
	cfg      render.Config
	depthLen float64
	balancer Balancer
}

// Option configures a Tree.
type Option func(*Tree)

// WithConfig overrides the canvas geometry.
func WithConfig(cfg render.Config) Option {
	return func(t *Tree) { t.cfg = cfg }
}

// WithBalancer installs a rebalancing hook.
func WithBalancer(b Balancer) Option {
	return func(t *Tree) { t.balancer = b }
}

// WithDepthLen overrides the vertical spacing between levels.
func WithDepthLen(depthLen float64) Option {
	return func(t *Tree) { t.depthLen = depthLen }
}

// NewTree returns an empty structure of the given arity.
func NewTree(arity int, opts ...Option) *Tree {
	t := &Tree{
		root:  model.None,
		arity: arity,
		arena: model.NewArena(),
		marks: model.NewMarks(),
		log:   anim.NewLog(),
		cfg:   render.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.depthLen == 0 {
		t.depthLen = t.cfg.Radius * 3
	}
	t.aux = NewList(t.arena, t.cfg)
	return t
}

// Accessors used by rendering, playback and the UI layer.

func (t *Tree) Arena() *model.Arena { return t.arena }
func (t *Tree) Root() model.NodeID { return t.root }
func (t *Tree) Arity() int { return t.arity }
func (t *Tree) Marks() *model.Marks { return t.marks }
func (t *Tree) Aux() *List { return t.aux }
func (t *Tree) Log() *anim.Log { return t.log }
func (t *Tree) Config() render.Config { return t.cfg }

// Type names the structure variant for persistence.
func (t *Tree) Type() string {
	if t.arity == 1 {
		return store.TypeLinkedList
	}
	return store.TypeBST
}

// Scene captures the current visual state: the tree layer, the auxiliary
// list layer, and the marks in force.
func (t *Tree) Scene() render.Scene {
	return render.Scene{
		Arena: t.arena,
		Layers: []render.Layer{
			{Root: t.root, Arity: t.arity},
			{Root: t.aux.Head(), Arity: 1},
		},
		Marks: t.marks,
	}
}

// BeginAnimation clears the log and the marks and enters the recording
// state. Every mutation or traversal run before StopAnimation records
// items.
func (t *Tree) BeginAnimation() error {
	t.marks.Reset()
	return t.log.Begin()
}

// StopAnimation finalizes the current operation: marks and auxiliary list
// are cleared, a final layout and snap run, and exactly one frame goes to
// the sink (when non-nil) even if nothing was recorded. The log becomes
// ready for playback.
func (t *Tree) StopAnimation(sink anim.Sink) error {
	t.marks.Reset()
	t.aux.Clear()
	t.layoutAll()
	layout.SnapToDestination(t.arena, t.root)
	if sink != nil {
		sink.Display(render.Frame(t.cfg, t.Scene()), "")
	}
	return t.log.Stop()
}

// layoutAll recomputes destinations for the tree and the auxiliary list.
func (t *Tree) layoutAll() {
	layout.PlaceCentered(t.arena, t.root, t.arity, float64(t.cfg.Width), t.cfg.Radius, t.depthLen)
	t.aux.Layout()
}

func (t *Tree) recording() bool {
	return t.log.State() == anim.LogRecording
}

func (t *Tree) snapshot() []render.Scene {
	return []render.Scene{t.Scene().Clone()}
}

// recordSelect marks id as the single focus and records a select item.
func (t *Tree) recordSelect(id model.NodeID, msg string) {
	if !t.recording() {
		return
	}
	t.marks.Select(id)
	_ = t.log.Append(anim.Item{Kind: anim.KindSelect, Message: msg, Duration: durSelect, Frames: t.snapshot()})
}

// recordExplore adds id to the explored set and records an explore item.
func (t *Tree) recordExplore(id model.NodeID, msg string) {
	if !t.recording() {
		return
	}
	t.marks.Explore(id)
	_ = t.log.Append(anim.Item{Kind: anim.KindExplore, Message: msg, Duration: durSelect, Frames: t.snapshot()})
}

// recordStackAdd pushes the node's key onto the auxiliary list as a stack,
// highlights the tree node, and records the item.
func (t *Tree) recordStackAdd(id model.NodeID, msg string) {
	if !t.recording() {
		return
	}
	t.aux.StackInsert(t.arena.Node(id).Key)
	t.marks.Highlight(id)
	_ = t.log.Append(anim.Item{Kind: anim.KindStackAdd, Message: msg, Duration: durListOp, Frames: t.snapshot()})
}

// recordQueueAdd appends the node's key to the auxiliary list as a queue,
// highlights the tree node, and records the item.
func (t *Tree) recordQueueAdd(id model.NodeID, msg string) {
	if !t.recording() {
		return
	}
	t.aux.QueueInsert(t.arena.Node(id).Key)
	t.marks.Highlight(id)
	_ = t.log.Append(anim.Item{Kind: anim.KindQueueAdd, Message: msg, Duration: durListOp, Frames: t.snapshot()})
}

// recordListPop removes the auxiliary list's head, un-highlights the tree
// node holding the popped key, records the item, and returns the key.
func (t *Tree) recordListPop(format string) int {
	if !t.recording() {
		return t.aux.Pop()
	}
	key := t.aux.Pop()
	if key != model.NoKey {
		t.marks.Unhighlight(t.arena.Find(t.root, key))
	}
	_ = t.log.Append(anim.Item{Kind: anim.KindListPop, Message: fmt.Sprintf(format, key), Duration: durListOp, Frames: t.snapshot()})
	return key
}

// recordMove relayouts everything and records a move item interpolating
// every live node toward its destination over MovementFrames frames. When
// not recording it snaps instead, so the operation still ends laid out.
func (t *Tree) recordMove(msg string) {
	t.layoutAll()
	if !t.recording() {
		layout.SnapToDestination(t.arena, t.root, t.aux.Head())
		return
	}
	frames := make([]render.Scene, 0, MovementFrames)
	for i := 0; i < MovementFrames; i++ {
		layout.MoveStep(t.arena, i, MovementFrames, t.root, t.aux.Head())
		frames = append(frames, t.Scene().Clone())
	}
	_ = t.log.Append(anim.Item{Kind: anim.KindMove, Message: msg, Duration: durMove, Frames: frames})
}

// CheckInsert reports whether key is absent, i.e. safe to insert into a
// duplicate-forbidding structure. Callers check before Insert; the core
// does not re-check.
func (t *Tree) CheckInsert(key int) bool {
	return t.arena.Find(t.root, key) == model.None
}

// Insert adds key to the structure. Between BeginAnimation and
// StopAnimation the descent, the attachment and the resulting movement are
// recorded; otherwise the mutation applies silently and the layout snaps.
func (t *Tree) Insert(key int) {
	id := t.arena.New(key, t.arity)
	switch {
	case t.root == model.None:
		t.root = id
	case t.arity == 1:
		cur := t.root
		for {
			n := t.arena.Node(cur)
			t.recordSelect(cur, fmt.Sprintf("Exploring %d", n.Key))
			if n.Children[0] == model.None {
				n.Children[0] = id
				break
			}
			cur = n.Children[0]
		}
	default:
		cur := t.root
		for {
			n := t.arena.Node(cur)
			t.recordSelect(cur, fmt.Sprintf("Exploring %d", n.Key))
			slot := 1
			if key < n.Key {
				slot = 0
			}
			if n.Children[slot] == model.None {
				n.Children[slot] = id
				break
			}
			cur = n.Children[slot]
		}
	}
	if t.balancer != nil {
		t.balancer.AfterInsert(t, id)
	}
	t.recordMove(fmt.Sprintf("Inserting %d", key))
}

// Remove deletes key from the structure and reports whether it was found.
// For binary search trees, two-children deletion replaces the node's key
// with its in-order successor and splices the successor out; linked lists
// unlink the matching node.
func (t *Tree) Remove(key int) bool {
	if t.arity == 1 {
		return t.removeList(key)
	}
	parent, slot := model.None, 0
	cur := t.root
	for cur != model.None {
		n := t.arena.Node(cur)
		t.recordSelect(cur, fmt.Sprintf("Exploring %d", n.Key))
		if key == n.Key {
			break
		}
		parent = cur
		slot = 1
		if key < n.Key {
			slot = 0
		}
		cur = n.Children[slot]
	}
	if cur == model.None {
		t.recordSelect(model.None, fmt.Sprintf("%d not in tree", key))
		return false
	}

	n := t.arena.Node(cur)
	if n.Children[0] != model.None && n.Children[1] != model.None {
		// Two children: walk to the leftmost node of the right subtree.
		succParent, succ := cur, n.Children[1]
		for t.arena.Node(succ).Children[0] != model.None {
			t.recordSelect(succ, fmt.Sprintf("Exploring %d", t.arena.Node(succ).Key))
			succParent = succ
			succ = t.arena.Node(succ).Children[0]
		}
		s := t.arena.Node(succ)
		t.recordSelect(succ, fmt.Sprintf("Exploring %d", s.Key))
		n.Key, n.Value = s.Key, s.Value
		succSlot := 1
		if t.arena.Node(succParent).Children[0] == succ {
			succSlot = 0
		}
		t.arena.Node(succParent).Children[succSlot] = s.Children[1]
	} else {
		child := n.Children[0]
		if child == model.None {
			child = n.Children[1]
		}
		if parent == model.None {
			t.root = child
		} else {
			t.arena.Node(parent).Children[slot] = child
		}
	}

	if t.balancer != nil {
		t.balancer.AfterRemove(t)
	}
	t.recordMove(fmt.Sprintf("Removing %d", key))
	return true
}

func (t *Tree) removeList(key int) bool {
	parent := model.None
	cur := t.root
	for cur != model.None {
		n := t.arena.Node(cur)
		t.recordSelect(cur, fmt.Sprintf("Exploring %d", n.Key))
		if key == n.Key {
			break
		}
		parent = cur
		cur = n.Children[0]
	}
	if cur == model.None {
		t.recordSelect(model.None, fmt.Sprintf("%d not in tree", key))
		return false
	}

	next := t.arena.Node(cur).Children[0]
	if parent == model.None {
		t.root = next
	} else {
		t.arena.Node(parent).Children[0] = next
	}

	if t.balancer != nil {
		t.balancer.AfterRemove(t)
	}
	t.recordMove(fmt.Sprintf("Removing %d", key))
	return true
}

// PreOrder visits the tree node-first and returns the visit order. The
// descent is visualized as a stack: push on entry, pop on exit.
func (t *Tree) PreOrder() []int {
	var out []int
	t.preOrder(t.root, &out)
	return out
}

func (t *Tree) preOrder(id model.NodeID, out *[]int) {
	n := t.arena.Node(id)
	if n == nil || n.Key == model.InvisibleKey {
		return
	}
	t.recordStackAdd(id, fmt.Sprintf("Exploring %d", n.Key))
	t.recordSelect(id, fmt.Sprintf("Current Node %d", n.Key))
	*out = append(*out, n.Key)
	for _, c := range n.Children {
		t.preOrder(c, out)
	}
	t.recordListPop("Finished exploring %d")
	t.recordExplore(id, fmt.Sprintf("Finished exploring %d", n.Key))
}

// InOrder visits left subtree, node, right subtree. Defined for arity 2.
func (t *Tree) InOrder() []int {
	var out []int
	t.inOrder(t.root, &out)
	return out
}

func (t *Tree) inOrder(id model.NodeID, out *[]int) {
	n := t.arena.Node(id)
	if n == nil || n.Key == model.InvisibleKey {
		return
	}
	t.recordStackAdd(id, fmt.Sprintf("Exploring %d", n.Key))
	t.inOrder(n.Children[0], out)
	t.recordSelect(id, fmt.Sprintf("Current Node %d", n.Key))
	*out = append(*out, n.Key)
	t.inOrder(n.Children[1], out)
	t.recordListPop("Finished exploring %d")
	t.recordExplore(id, fmt.Sprintf("Finished exploring %d", n.Key))
}

// PostOrder visits children before the node.
func (t *Tree) PostOrder() []int {
	var out []int
	t.postOrder(t.root, &out)
	return out
}

func (t *Tree) postOrder(id model.NodeID, out *[]int) {
	n := t.arena.Node(id)
	if n == nil || n.Key == model.InvisibleKey {
		return
	}
	t.recordStackAdd(id, fmt.Sprintf("Exploring %d", n.Key))
	for _, c := range n.Children {
		t.postOrder(c, out)
	}
	t.recordSelect(id, fmt.Sprintf("Current Node %d", n.Key))
	*out = append(*out, n.Key)
	t.recordListPop("Finished exploring %d")
	t.recordExplore(id, fmt.Sprintf("Finished exploring %d", n.Key))
}

// BreadthFirst visits the tree level by level, visualizing the frontier as
// a queue.
func (t *Tree) BreadthFirst() []int {
	if t.arena.Node(t.root) == nil {
		return nil
	}
	var out []int
	t.recordQueueAdd(t.root, fmt.Sprintf("Queueing %d", t.arena.Node(t.root).Key))
	frontier := []model.NodeID{t.root}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		n := t.arena.Node(id)
		t.recordListPop("Popped %d")
		t.recordSelect(id, fmt.Sprintf("Exploring %d", n.Key))
		out = append(out, n.Key)
		t.recordExplore(id, fmt.Sprintf("Exploring %d", n.Key))
		for _, c := range n.Children {
			child := t.arena.Node(c)
			if child == nil || child.Key == model.InvisibleKey {
				continue
			}
			t.recordQueueAdd(c, fmt.Sprintf("Queueing %d", child.Key))
			frontier = append(frontier, c)
		}
	}
	return out
}

// Search walks the search-ordered tree toward key and reports whether it
// was found.
func (t *Tree) Search(key int) bool {
	cur := t.root
	for cur != model.None {
		n := t.arena.Node(cur)
		t.recordSelect(cur, fmt.Sprintf("Exploring %d", n.Key))
		if key == n.Key {
			t.recordExplore(cur, fmt.Sprintf("Found %d", key))
			return true
		}
		if t.arity == 1 || key > n.Key {
			cur = n.Children[len(n.Children)-1]
		} else {
			cur = n.Children[0]
		}
	}
	t.recordSelect(model.None, fmt.Sprintf("%d not in tree", key))
	return false
}

// ClickedNode returns the key of the first tree node whose current
// position lies within the hit slop of (x, y), or model.NoKey.
func (t *Tree) ClickedNode(x, y float64) int {
	for _, id := range t.arena.Reachable(t.root) {
		n := t.arena.Node(id)
		if n.Key == model.InvisibleKey {
			continue
		}
		if render.Hit(t.cfg, n, x, y) {
			return n.Key
		}
	}
	return model.NoKey
}

// Keys returns the node keys in breadth-first order from the root,
// skipping phantom leaves. Head-first for the linked-list variant.
func (t *Tree) Keys() []int {
	var keys []int
	if t.arena.Node(t.root) == nil {
		return keys
	}
	frontier := []model.NodeID{t.root}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		n := t.arena.Node(id)
		if n == nil {
			continue
		}
		if n.Key != model.InvisibleKey {
			keys = append(keys, n.Key)
		}
		for _, c := range n.Children {
			if c != model.None {
				frontier = append(frontier, c)
			}
		}
	}
	return keys
}

// CreateRecord serializes the structure for persistence. Re-inserting the
// record's values in order into an empty structure of the same type
// reproduces the shape.
func (t *Tree) CreateRecord() (store.Record, error) {
	keys := t.Keys()
	if len(keys) == 0 {
		return store.Record{}, ErrEmptyStructure
	}
	return store.NewRecord(t.Type(), keys), nil
}

// BuildFromRecord rebuilds a structure by replaying the record's values
// through the same insertion algorithm.
func BuildFromRecord(rec store.Record, opts ...Option) *Tree {
	arity := 2
	if rec.Type == store.TypeLinkedList {
		arity = 1
	}
	t := NewTree(arity, opts...)
	for _, v := range rec.Values {
		t.Insert(v)
	}
	return t
}
