// Package native implements the compositing engine in-process with
// github.com/disintegration/imaging. It produces the same geometry as the
// ImageMagick engine and needs no external tooling, which also makes it the
// engine the pipeline tests run against.
package native

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Engine performs resize, crop and composite operations in-process.
type Engine struct{}

// New creates the in-process engine.
func New() *Engine {
	return &Engine{}
}

// NewCanvas writes a blank white canvas of the given size.
func (*Engine) NewCanvas(ctx context.Context, path string, width, height int) error {
	if err := imaging.Save(imaging.New(width, height, white), path); err != nil {
		return fmt.Errorf("failed to write canvas %s: %w", path, err)
	}
	return nil
}

// ResizeCover scales src to cover width×height and center-crops the overflow,
// writing exactly width×height pixels to dst.
func (*Engine) ResizeCover(ctx context.Context, src, dst string, width, height int) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	// imaging.Fill is scale-to-cover plus center crop in one step, matching
	// ImageMagick's -resize WxH^ -gravity center -extent WxH.
	filled := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(filled, dst); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// Composite draws overlay over base at (x, y) and writes the result to dst.
func (*Engine) Composite(ctx context.Context, base, overlay, dst string, x, y int) error {
	bg, err := imaging.Open(base)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", base, err)
	}
	fg, err := imaging.Open(overlay)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", overlay, err)
	}
	out := imaging.Overlay(bg, fg, image.Pt(x, y), 1.0)
	if err := imaging.Save(out, dst); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
