// Package export writes static snapshots and frame sequences of a
// structure to disk.
package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/treescope/pkg/anim"
	"github.com/vanderheijden86/treescope/pkg/render"
)

// Format selects the snapshot output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath infers the format from a file extension, defaulting to
// PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// SaveSnapshot renders the scene once and writes it to path in the given
// format.
func SaveSnapshot(path string, format Format, cfg render.Config, sc render.Scene) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatSVG:
		if err := render.WriteSVG(f, cfg, sc); err != nil {
			return fmt.Errorf("cannot write SVG: %w", err)
		}
	default:
		if err := png.Encode(f, render.Frame(cfg, sc)); err != nil {
			return fmt.Errorf("cannot encode PNG: %w", err)
		}
	}
	return f.Close()
}

// SaveFrameSequence writes every frame of every recorded item as numbered
// PNGs under dir (frame_000001.png onward, in log order). Frames encode
// in parallel; the numbering still follows the log.
func SaveFrameSequence(dir string, cfg render.Config, log *anim.Log) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	var g errgroup.Group
	g.SetLimit(4)

	count := 0
	for _, item := range log.Items() {
		for _, frame := range item.Frames {
			count++
			path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", count))
			sc := frame
			g.Go(func() error {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("cannot create %s: %w", path, err)
				}
				defer f.Close()
				if err := png.Encode(f, render.Frame(cfg, sc)); err != nil {
					return fmt.Errorf("cannot encode %s: %w", path, err)
				}
				return f.Close()
			})
		}
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return count, nil
}
