package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/treescope/pkg/anim"
	"github.com/vanderheijden86/treescope/pkg/model"
	"github.com/vanderheijden86/treescope/pkg/render"
)

func testScene() (render.Config, render.Scene) {
	cfg := render.Config{Width: 64, Height: 64, Radius: 8}
	a := model.NewArena()
	id := a.New(5, 2)
	a.Node(id).Pos.X, a.Node(id).Pos.Y = 32, 32
	sc := render.Scene{
		Arena:  a,
		Layers: []render.Layer{{Root: id, Arity: 2}},
		Marks:  model.NewMarks(),
	}
	return cfg, sc
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"out.png":      FormatPNG,
		"out.svg":      FormatSVG,
		"out.SVG":      FormatSVG,
		"out":          FormatPNG,
		"dir/name.jpg": FormatPNG,
	}
	for path, want := range cases {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSaveSnapshotPNG(t *testing.T) {
	cfg, sc := testScene()
	path := filepath.Join(t.TempDir(), "nested", "snap.png")

	if err := SaveSnapshot(path, FormatPNG, cfg, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestSaveSnapshotSVG(t *testing.T) {
	cfg, sc := testScene()
	path := filepath.Join(t.TempDir(), "snap.svg")

	if err := SaveSnapshot(path, FormatSVG, cfg, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not an SVG")
	}
}

func TestSaveFrameSequence(t *testing.T) {
	cfg, sc := testScene()
	log := anim.NewLog()
	if err := log.Begin(); err != nil {
		t.Fatal(err)
	}
	_ = log.Append(anim.Item{
		Kind:     anim.KindSelect,
		Duration: time.Millisecond,
		Frames:   []render.Scene{sc.Clone()},
	})
	_ = log.Append(anim.Item{
		Kind:     anim.KindMove,
		Duration: time.Millisecond,
		Frames:   []render.Scene{sc.Clone(), sc.Clone(), sc.Clone()},
	})
	_ = log.Stop()

	dir := t.TempDir()
	n, err := SaveFrameSequence(dir, cfg, log)
	if err != nil {
		t.Fatalf("save sequence: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 frames, got %d", n)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 files, got %d", len(entries))
	}
	if entries[0].Name() != "frame_000001.png" {
		t.Errorf("first frame named %q", entries[0].Name())
	}
}
