// Package magick drives ImageMagick as an external compositing engine. The
// engine itself stays a black box: covergen only builds argument lists and
// checks exit status, so any convert-compatible toolchain works.
package magick

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs one external command and returns its combined output. It
// exists so tests can capture argument lists without an ImageMagick install.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Engine invokes the ImageMagick CLI for every operation.
type Engine struct {
	bin  string
	exec Executor
}

// New creates an engine around the given ImageMagick binary. An empty name
// falls back to the COVERGEN_MAGICK environment variable, then to "magick".
func New(bin string) *Engine {
	if bin == "" {
		bin = os.Getenv("COVERGEN_MAGICK")
	}
	if bin == "" {
		bin = "magick"
	}
	return &Engine{bin: bin, exec: execRunner{}}
}

// NewWithExecutor creates an engine with a custom executor (used in tests).
func NewWithExecutor(bin string, executor Executor) *Engine {
	e := New(bin)
	e.exec = executor
	return e
}

// NewCanvas writes a blank white canvas: magick -size WxH xc:white PATH.
func (e *Engine) NewCanvas(ctx context.Context, path string, width, height int) error {
	return e.run(ctx, "-size", size(width, height), "xc:white", path)
}

// ResizeCover scales and center-crops in one invocation:
// magick SRC -resize WxH^ -gravity center -extent WxH DST.
func (e *Engine) ResizeCover(ctx context.Context, src, dst string, width, height int) error {
	s := size(width, height)
	return e.run(ctx, src, "-resize", s+"^", "-gravity", "center", "-extent", s, dst)
}

// Composite draws overlay onto base at the offset:
// magick BASE OVERLAY -geometry +X+Y -composite DST.
func (e *Engine) Composite(ctx context.Context, base, overlay, dst string, x, y int) error {
	return e.run(ctx, base, overlay, "-geometry", offset(x, y), "-composite", dst)
}

func (e *Engine) run(ctx context.Context, args ...string) error {
	out, err := e.exec.Run(ctx, e.bin, args...)
	if err != nil {
		// ImageMagick writes its diagnostics to stderr; carry them along so
		// per-card failures in the summary say what actually went wrong.
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", e.bin, err, msg)
		}
		return fmt.Errorf("%s failed: %w", e.bin, err)
	}
	return nil
}

func size(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

func offset(x, y int) string {
	return fmt.Sprintf("%+d%+d", x, y)
}
