// Command dsv is a data structure visualizer: it builds a binary search
// tree or linked list, records an animated operation against it, and plays
// the animation back in the terminal or exports it to PNG/SVG frames.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/treescope/pkg/config"
	"github.com/vanderheijden86/treescope/pkg/debug"
	"github.com/vanderheijden86/treescope/pkg/export"
	"github.com/vanderheijden86/treescope/pkg/render"
	"github.com/vanderheijden86/treescope/pkg/store"
	"github.com/vanderheijden86/treescope/pkg/structs"
	"github.com/vanderheijden86/treescope/pkg/ui"
	"github.com/vanderheijden86/treescope/pkg/version"
	"github.com/vanderheijden86/treescope/pkg/watcher"
)

func main() {
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")

	structType := flag.String("type", "bst", "Structure type: bst or list")
	keysFlag := flag.String("keys", "", "Comma separated keys to insert, in order")
	loadFlag := flag.String("load", "", "Load a structure record from a JSON file")
	galleryGet := flag.String("gallery", "", "Load a structure record from the gallery by name")

	opFlag := flag.String("op", "", "Operation to animate: insert, remove, search, preorder, inorder, postorder, bfs")
	argFlag := flag.Int("arg", -1, "Key argument for insert/remove/search")

	saveFlag := flag.String("save", "", "Save the structure record to a JSON file")
	gallerySave := flag.String("gallery-save", "", "Save the structure record to the gallery under this name")
	galleryList := flag.Bool("gallery-list", false, "List gallery records and exit")
	galleryDelete := flag.String("gallery-delete", "", "Delete a gallery record and exit")

	snapshotFlag := flag.String("snapshot", "", "Write a snapshot (.png or .svg) and exit")
	framesFlag := flag.String("frames", "", "Write every recorded frame as PNGs into this directory and exit")
	watchFlag := flag.String("watch", "", "Watch a record file and re-export a snapshot on change (requires -snapshot)")
	speedFlag := flag.Float64("speed", 0, "Playback speed multiplier (overrides config)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dsv %s\n", version.Version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if *speedFlag > 0 {
		cfg.Animation.Speed = *speedFlag
	}

	if *galleryList {
		if err := listGallery(cfg); err != nil {
			fatal(err)
		}
		return
	}
	if *galleryDelete != "" {
		if err := withGallery(cfg, func(g *store.Gallery) error {
			return g.Delete(*galleryDelete)
		}); err != nil {
			fatal(err)
		}
		return
	}

	if *watchFlag != "" {
		if *snapshotFlag == "" {
			fatal(fmt.Errorf("-watch requires -snapshot"))
		}
		if err := watchRecord(cfg, *watchFlag, *snapshotFlag); err != nil {
			fatal(err)
		}
		return
	}

	tree, op, arg, err := buildTree(cfg, *structType, *keysFlag, *loadFlag, *galleryGet, *opFlag, *argFlag)
	if err != nil {
		fatal(err)
	}

	if op != "" {
		if err := runOperation(tree, op, arg); err != nil {
			fatal(err)
		}
	}

	if *saveFlag != "" || *gallerySave != "" {
		rec, err := tree.CreateRecord()
		if err != nil {
			fatal(err)
		}
		if *saveFlag != "" {
			if err := rec.Save(*saveFlag); err != nil {
				fatal(err)
			}
			fmt.Printf("saved %s\n", *saveFlag)
		}
		if *gallerySave != "" {
			if err := withGallery(cfg, func(g *store.Gallery) error {
				return g.Put(*gallerySave, rec)
			}); err != nil {
				fatal(err)
			}
			fmt.Printf("saved gallery record %q\n", *gallerySave)
		}
	}

	if *snapshotFlag != "" {
		if err := export.SaveSnapshot(*snapshotFlag, export.FormatFromPath(*snapshotFlag), tree.Config(), tree.Scene()); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *snapshotFlag)
		return
	}

	if *framesFlag != "" {
		n, err := export.SaveFrameSequence(*framesFlag, tree.Config(), tree.Log())
		if err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %d frames to %s\n", n, *framesFlag)
		return
	}

	if !ui.IsTerminal() {
		fatal(fmt.Errorf("no terminal attached; use -snapshot or -frames for non-interactive output"))
	}
	runTUI(tree, cfg)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func renderConfig(cfg config.Config) render.Config {
	return render.Config{
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Radius: cfg.Canvas.Radius,
	}
}

func treeOptions(cfg config.Config) []structs.Option {
	return []structs.Option{
		structs.WithConfig(renderConfig(cfg)),
		structs.WithDepthLen(cfg.Animation.DepthLen),
	}
}

// buildTree assembles the structure from whichever source was given. When
// nothing was given and a terminal is attached, the wizard asks instead.
func buildTree(cfg config.Config, structType, keysFlag, loadFlag, galleryGet, op string, arg int) (*structs.Tree, string, int, error) {
	opts := treeOptions(cfg)

	switch {
	case loadFlag != "":
		rec, err := store.Load(loadFlag)
		if err != nil {
			return nil, "", 0, err
		}
		return structs.BuildFromRecord(rec, opts...), op, arg, nil

	case galleryGet != "":
		var rec store.Record
		err := withGallery(cfg, func(g *store.Gallery) error {
			var err error
			rec, err = g.Get(galleryGet)
			return err
		})
		if err != nil {
			return nil, "", 0, err
		}
		return structs.BuildFromRecord(rec, opts...), op, arg, nil

	case keysFlag != "":
		keys, err := ui.ParseKeys(keysFlag)
		if err != nil {
			return nil, "", 0, err
		}
		arity := 2
		if strings.EqualFold(structType, "list") {
			arity = 1
		}
		tree := structs.NewTree(arity, opts...)
		for _, k := range keys {
			if !tree.CheckInsert(k) {
				return nil, "", 0, fmt.Errorf("duplicate key %d", k)
			}
			tree.Insert(k)
		}
		return tree, op, arg, nil

	case ui.IsTerminal():
		res, err := ui.RunWizard(cfg.DefaultType)
		if err != nil {
			return nil, "", 0, err
		}
		arity := 2
		if res.Type == store.TypeLinkedList {
			arity = 1
		}
		tree := structs.NewTree(arity, opts...)
		for _, k := range res.Keys {
			tree.Insert(k)
		}
		return tree, res.Operation, res.Arg, nil

	default:
		return nil, "", 0, fmt.Errorf("no structure given; use -keys, -load, or -gallery")
	}
}

// runOperation records the named operation against the tree.
func runOperation(tree *structs.Tree, op string, arg int) error {
	if err := tree.BeginAnimation(); err != nil {
		return err
	}
	switch strings.ToLower(op) {
	case "insert":
		if !tree.CheckInsert(arg) {
			return fmt.Errorf("key %d already present", arg)
		}
		tree.Insert(arg)
	case "remove":
		tree.Remove(arg)
	case "search":
		tree.Search(arg)
	case "preorder":
		tree.PreOrder()
	case "inorder":
		tree.InOrder()
	case "postorder":
		tree.PostOrder()
	case "bfs":
		tree.BreadthFirst()
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	if err := tree.StopAnimation(nil); err != nil {
		return err
	}
	debug.Log("recorded %d items for %s", tree.Log().Len(), op)
	return nil
}

func runTUI(tree *structs.Tree, cfg config.Config) {
	p := tea.NewProgram(ui.New(tree, cfg.ResolvedRecordDir()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

// watchRecord re-exports a snapshot every time the record file changes.
func watchRecord(cfg config.Config, recordPath, snapshotPath string) error {
	exportOnce := func() {
		rec, err := store.Load(recordPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			return
		}
		tree := structs.BuildFromRecord(rec, treeOptions(cfg)...)
		if err := export.SaveSnapshot(snapshotPath, export.FormatFromPath(snapshotPath), tree.Config(), tree.Scene()); err != nil {
			fmt.Fprintf(os.Stderr, "snapshot failed: %v\n", err)
			return
		}
		fmt.Printf("wrote %s\n", snapshotPath)
	}

	w, err := watcher.New(recordPath,
		watcher.WithOnChange(exportOnce),
		watcher.WithOnError(func(err error) {
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	exportOnce()
	fmt.Printf("watching %s (ctrl-c to stop)\n", recordPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func withGallery(cfg config.Config, fn func(*store.Gallery) error) error {
	g, err := store.OpenGallery(cfg.ResolvedGalleryDB())
	if err != nil {
		return err
	}
	defer g.Close()
	return fn(g)
}

func listGallery(cfg config.Config) error {
	return withGallery(cfg, func(g *store.Gallery) error {
		entries, err := g.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("gallery is empty")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-20s %-12s %3d values  %s\n", e.Name, e.Type, e.Count, e.Modified.Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "dsv: %v\n", err)
	os.Exit(1)
}
