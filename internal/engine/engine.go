// Package engine abstracts the image compositing backend so the card and page
// generators never depend on a particular imaging toolset. Backends are
// stateless: every operation reads input files and writes an output file.
package engine

import (
	"context"
	"fmt"

	"github.com/retroprints/covergen/internal/engine/magick"
	"github.com/retroprints/covergen/internal/engine/native"
)

// Engine is the operation set the pipeline needs from a compositing backend.
type Engine interface {
	// NewCanvas writes a blank white canvas of the given size to path.
	NewCanvas(ctx context.Context, path string, width, height int) error

	// ResizeCover scales src to fully cover width×height while preserving its
	// aspect ratio, center-crops the overflow and writes exactly width×height
	// pixels to dst. No letterboxing.
	ResizeCover(ctx context.Context, src, dst string, width, height int) error

	// Composite draws overlay onto base at the given offset and writes the
	// result to dst. dst may equal base.
	Composite(ctx context.Context, base, overlay, dst string, x, y int) error
}

// New returns the named compositing engine. "magick" shells out to
// ImageMagick through the given binary (falling back to the COVERGEN_MAGICK
// environment variable, then to "magick"); "native" runs in-process.
func New(name, magickBin string) (Engine, error) {
	switch name {
	case "magick":
		return magick.New(magickBin), nil
	case "native":
		return native.New(), nil
	default:
		return nil, fmt.Errorf("unsupported engine: %s", name)
	}
}
