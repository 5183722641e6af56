package structs

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"

	"github.com/vanderheijden86/treescope/pkg/anim"
	"github.com/vanderheijden86/treescope/pkg/layout"
	"github.com/vanderheijden86/treescope/pkg/model"
	"github.com/vanderheijden86/treescope/pkg/store"
)

func buildBST(keys ...int) *Tree {
	t := NewTree(2)
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

// childKey returns the key in the given child slot of the node holding
// parentKey, or model.NoKey for an empty slot.
func childKey(t *Tree, parentKey, slot int) int {
	pid := t.arena.Find(t.root, parentKey)
	c := t.arena.Node(t.arena.Node(pid).Children[slot])
	if c == nil {
		return model.NoKey
	}
	return c.Key
}

func TestBSTInsertShape(t *testing.T) {
	tree := buildBST(10, 5, 15, 3, 7)

	if tree.arena.Node(tree.root).Key != 10 {
		t.Fatalf("root = %d, want 10", tree.arena.Node(tree.root).Key)
	}
	cases := []struct{ parent, slot, want int }{
		{10, 0, 5},
		{10, 1, 15},
		{5, 0, 3},
		{5, 1, 7},
	}
	for _, c := range cases {
		if got := childKey(tree, c.parent, c.slot); got != c.want {
			t.Errorf("child of %d slot %d = %d, want %d", c.parent, c.slot, got, c.want)
		}
	}
}

func TestCheckInsert(t *testing.T) {
	tree := buildBST(10, 5)
	if tree.CheckInsert(10) {
		t.Error("existing key should not be insertable")
	}
	if !tree.CheckInsert(7) {
		t.Error("fresh key should be insertable")
	}
	if !NewTree(2).CheckInsert(1) {
		t.Error("anything is insertable into an empty tree")
	}
}

func TestTraversalOrders(t *testing.T) {
	tree := buildBST(10, 5, 15, 3, 7, 12, 20)

	cases := []struct {
		name string
		run  func() []int
		want []int
	}{
		{"preorder", tree.PreOrder, []int{10, 5, 3, 7, 15, 12, 20}},
		{"inorder", tree.InOrder, []int{3, 5, 7, 10, 12, 15, 20}},
		{"postorder", tree.PostOrder, []int{3, 7, 5, 12, 20, 15, 10}},
		{"bfs", tree.BreadthFirst, []int{10, 5, 15, 3, 7, 12, 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.run()
			if len(got) != len(c.want) {
				t.Fatalf("got %v, want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("got %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestSearch(t *testing.T) {
	tree := buildBST(10, 5, 15)
	if !tree.Search(15) {
		t.Error("expected to find 15")
	}
	if tree.Search(99) {
		t.Error("expected 99 absent")
	}
}

func TestRemoveLeaf(t *testing.T) {
	tree := buildBST(10, 5, 15)
	if !tree.Remove(5) {
		t.Fatal("remove should report found")
	}
	if got := childKey(tree, 10, 0); got != model.NoKey {
		t.Errorf("slot should be empty after leaf removal, got %d", got)
	}
}

func TestRemoveOneChild(t *testing.T) {
	tree := buildBST(10, 5, 3)
	tree.Remove(5)
	if got := childKey(tree, 10, 0); got != 3 {
		t.Errorf("child should splice up, got %d", got)
	}
}

func TestRemoveTwoChildren(t *testing.T) {
	tree := buildBST(10, 5, 15, 12, 20)
	tree.Remove(10)

	// The in-order successor (12) replaces the removed key.
	if got := tree.arena.Node(tree.root).Key; got != 12 {
		t.Fatalf("root = %d, want successor 12", got)
	}
	if got := childKey(tree, 15, 0); got != model.NoKey {
		t.Errorf("successor should be spliced out, got %d", got)
	}
	want := []int{5, 12, 15, 20}
	got := tree.InOrder()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("inorder after remove = %v, want %v", got, want)
		}
	}
}

func TestRemoveRoot(t *testing.T) {
	tree := buildBST(10)
	if !tree.Remove(10) {
		t.Fatal("remove should report found")
	}
	if tree.arena.Node(tree.root) != nil {
		t.Error("tree should be empty after removing the only node")
	}
}

func TestRemoveMissing(t *testing.T) {
	tree := buildBST(10)
	if tree.Remove(99) {
		t.Error("removing a missing key should report not found")
	}
}

func TestLinkedListVariant(t *testing.T) {
	tree := NewTree(1)
	for _, k := range []int{4, 2, 9} {
		tree.Insert(k)
	}
	if got := tree.Type(); got != store.TypeLinkedList {
		t.Errorf("type = %q, want %q", got, store.TypeLinkedList)
	}
	keys := tree.Keys()
	want := []int{4, 2, 9}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v (head first)", keys, want)
		}
	}
	if !tree.Search(9) {
		t.Error("expected to find 9 in the chain")
	}
}

func TestLinkedListRemove(t *testing.T) {
	tree := NewTree(1)
	for _, k := range []int{5, 3, 8, 1} {
		tree.Insert(k)
	}

	checkChain := func(want []int) {
		t.Helper()
		keys := tree.Keys()
		if len(keys) != len(want) {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Fatalf("keys = %v, want %v", keys, want)
			}
		}
	}

	if !tree.Remove(3) {
		t.Fatal("3 should be found")
	}
	checkChain([]int{5, 8, 1})

	if !tree.Remove(5) {
		t.Fatal("head removal should succeed")
	}
	checkChain([]int{8, 1})

	if !tree.Remove(1) {
		t.Fatal("tail removal should succeed")
	}
	checkChain([]int{8})

	if tree.Remove(9) {
		t.Error("removing an absent key should report false")
	}
	checkChain([]int{8})

	if !tree.Remove(8) {
		t.Fatal("last entry removal should succeed")
	}
	if len(tree.Keys()) != 0 {
		t.Errorf("keys = %v, want empty", tree.Keys())
	}
}

func TestCreateRecordAndRoundTrip(t *testing.T) {
	tree := buildBST(10, 5, 15, 3, 7)

	rec, err := tree.CreateRecord()
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if rec.Type != store.TypeBST {
		t.Errorf("type = %q, want %q", rec.Type, store.TypeBST)
	}
	wantValues := []int{10, 5, 15, 3, 7} // breadth-first from the root
	for i := range wantValues {
		if rec.Values[i] != wantValues[i] {
			t.Fatalf("values = %v, want %v", rec.Values, wantValues)
		}
	}

	rebuilt := BuildFromRecord(rec)
	for _, c := range []struct{ parent, slot, want int }{
		{10, 0, 5}, {10, 1, 15}, {5, 0, 3}, {5, 1, 7},
	} {
		if got := childKey(rebuilt, c.parent, c.slot); got != c.want {
			t.Errorf("rebuilt child of %d slot %d = %d, want %d", c.parent, c.slot, got, c.want)
		}
	}
}

func TestCreateRecordEmpty(t *testing.T) {
	_, err := NewTree(2).CreateRecord()
	if !errors.Is(err, ErrEmptyStructure) {
		t.Errorf("expected ErrEmptyStructure, got %v", err)
	}
}

func TestKeysSkipPhantomLeaves(t *testing.T) {
	tree := buildBST(10)
	phantom := tree.arena.New(model.InvisibleKey, 2)
	tree.arena.Node(tree.root).Children[0] = phantom

	keys := tree.Keys()
	if len(keys) != 1 || keys[0] != 10 {
		t.Errorf("keys = %v, phantom leaves must not be persisted", keys)
	}
}

func TestClickedNode(t *testing.T) {
	tree := buildBST(10, 5, 15)
	layout.PlaceCentered(tree.arena, tree.root, 2, float64(tree.cfg.Width), tree.cfg.Radius, tree.depthLen)
	layout.SnapToDestination(tree.arena, tree.root)

	n := tree.arena.Node(tree.arena.Find(tree.root, 5))
	if got := tree.ClickedNode(n.Pos.X, n.Pos.Y); got != 5 {
		t.Errorf("click at node center = %d, want 5", got)
	}
	if got := tree.ClickedNode(-500, -500); got != model.NoKey {
		t.Errorf("click in empty space = %d, want NoKey", got)
	}
}

// countingSink counts displayed frames.
type countingSink struct {
	n atomic.Int64
}

func (s *countingSink) Display(image.Image, string) { s.n.Add(1) }

func TestAnimationRecordsItems(t *testing.T) {
	tree := buildBST(10, 5, 15)

	if err := tree.BeginAnimation(); err != nil {
		t.Fatal(err)
	}
	tree.BreadthFirst()
	if err := tree.StopAnimation(nil); err != nil {
		t.Fatal(err)
	}

	if tree.log.Len() == 0 {
		t.Fatal("traversal should record items")
	}
	first := tree.log.Items()[0]
	if first.Kind != anim.KindQueueAdd {
		t.Errorf("BFS should start by queueing the root, got %v", first.Kind)
	}
	if first.Message != "Queueing 10" {
		t.Errorf("message = %q, want %q", first.Message, "Queueing 10")
	}
	if len(first.Frames) != 1 {
		t.Errorf("single-step items capture one frame, got %d", len(first.Frames))
	}
}

func TestInsertRecordsMoveFrames(t *testing.T) {
	tree := buildBST(10)
	if err := tree.BeginAnimation(); err != nil {
		t.Fatal(err)
	}
	tree.Insert(5)
	if err := tree.StopAnimation(nil); err != nil {
		t.Fatal(err)
	}

	items := tree.log.Items()
	last := items[len(items)-1]
	if last.Kind != anim.KindMove {
		t.Fatalf("insert should end with a move item, got %v", last.Kind)
	}
	if len(last.Frames) != MovementFrames {
		t.Errorf("move item frames = %d, want %d", len(last.Frames), MovementFrames)
	}
	if last.Message != "Inserting 5" {
		t.Errorf("message = %q", last.Message)
	}
}

func TestRecordedFramesAreSnapshots(t *testing.T) {
	tree := buildBST(10)
	_ = tree.BeginAnimation()
	tree.Search(10)
	_ = tree.StopAnimation(nil)

	frame := tree.log.Items()[0].Frames[0]
	if frame.Marks.Selected == model.None {
		t.Fatal("snapshot should hold the selection at capture time")
	}
	// Marks were cleared at stop; the captured frame must not see that.
	if !tree.marks.Empty() {
		t.Fatal("live marks should be reset after stop")
	}
}

func TestStopAnimationEmptyLogRendersOnce(t *testing.T) {
	tree := buildBST(10, 5)
	sink := &countingSink{}

	if err := tree.BeginAnimation(); err != nil {
		t.Fatal(err)
	}
	if err := tree.StopAnimation(sink); err != nil {
		t.Fatal(err)
	}

	if got := sink.n.Load(); got != 1 {
		t.Errorf("stop must render exactly one frame, got %d", got)
	}
	if tree.log.Len() != 0 {
		t.Errorf("log should be empty, got %d items", tree.log.Len())
	}
	if !tree.marks.Empty() {
		t.Error("marks should be empty after stop")
	}
	if !tree.aux.Empty() {
		t.Error("auxiliary list should be empty after stop")
	}
	// The final layout pass snapped every node.
	for _, id := range tree.arena.Reachable(tree.root) {
		n := tree.arena.Node(id)
		if n.Pos != n.Dest {
			t.Errorf("node %d not snapped to destination", id)
		}
	}
}

func TestNoRecordingOutsideAnimation(t *testing.T) {
	tree := buildBST(10, 5, 15)
	tree.PreOrder()
	if tree.log.Len() != 0 {
		t.Errorf("operations outside an animation must not record, got %d items", tree.log.Len())
	}
	if !tree.aux.Empty() {
		t.Error("auxiliary list must stay empty outside an animation")
	}
}

func TestBalancerHookCalled(t *testing.T) {
	var inserts, removes int
	b := &stubBalancer{onInsert: func() { inserts++ }, onRemove: func() { removes++ }}
	tree := NewTree(2, WithBalancer(b))

	tree.Insert(10)
	tree.Insert(5)
	tree.Remove(5)

	if inserts != 2 {
		t.Errorf("AfterInsert calls = %d, want 2", inserts)
	}
	if removes != 1 {
		t.Errorf("AfterRemove calls = %d, want 1", removes)
	}
}

type stubBalancer struct {
	onInsert func()
	onRemove func()
}

func (b *stubBalancer) AfterInsert(*Tree, model.NodeID) { b.onInsert() }
func (b *stubBalancer) AfterRemove(*Tree)               { b.onRemove() }
