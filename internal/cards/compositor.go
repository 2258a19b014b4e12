// Package cards renders one printable card per game by scaling the
// game's artwork into the template's artwork window.
package cards

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroprints/covergen/internal/engine"
)

// Card dimensions and the artwork window on the template, in pixels.
const (
	Width  = 638
	Height = 1012

	ArtX      = 30
	ArtY      = 110
	ArtWidth  = 576
	ArtHeight = 838
)

// FileName returns the card file name for a 1-based position in the run.
func FileName(seq int) string {
	return fmt.Sprintf("card_%04d.png", seq)
}

type Compositor struct {
	engine   engine.Engine
	template string
	outDir   string
}

func NewCompositor(eng engine.Engine, template, outDir string) *Compositor {
	return &Compositor{
		engine:   eng,
		template: template,
		outDir:   outDir,
	}
}

// Generate renders the card for one game and returns the path it was
// written to. The artwork is scaled to cover the window, center cropped,
// and composited onto the template. The intermediate scaled file is
// removed whether or not the card succeeds, and an existing card at the
// same path is overwritten.
func (c *Compositor) Generate(ctx context.Context, artwork string, seq int) (string, error) {
	dest := filepath.Join(c.outDir, FileName(seq))
	scaled := dest + ".scaled.png"
	defer os.Remove(scaled)

	if err := c.engine.ResizeCover(ctx, artwork, scaled, ArtWidth, ArtHeight); err != nil {
		return "", fmt.Errorf("failed to scale %s: %w", artwork, err)
	}
	if err := c.engine.Composite(ctx, c.template, scaled, dest, ArtX, ArtY); err != nil {
		return "", fmt.Errorf("failed to compose %s: %w", dest, err)
	}
	return dest, nil
}
