// Package pipeline drives a full run: load the catalog, resolve each
// game's artwork, render the cards, and assemble the print pages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/retroprints/covergen/internal/assets"
	"github.com/retroprints/covergen/internal/cards"
	"github.com/retroprints/covergen/internal/engine"
	"github.com/retroprints/covergen/internal/gamelist"
	"github.com/retroprints/covergen/internal/pages"
	"github.com/retroprints/covergen/internal/report"
)

// Options configures one generation run.
type Options struct {
	// SystemDir is the system folder holding gamelist.xml and the asset
	// files it references.
	SystemDir string
	// Template is the card template image.
	Template string
	// OutputDir receives the cards and pages. It is created on demand,
	// only once there is at least one card to render.
	OutputDir string
	// Engine renders the images.
	Engine engine.Engine
	// Concurrency bounds how many cards render at once. Values below 1
	// mean one at a time.
	Concurrency int
}

// Run generates cards and pages for one system folder. Games with
// incomplete assets are skipped, and a card or page that fails does not
// stop the rest. The returned report lists every outcome; the returned
// error is reserved for conditions that abort the whole run, such as a
// missing gamelist or an empty catalog.
func Run(ctx context.Context, opts Options) (*report.RunReport, error) {
	rep := &report.RunReport{
		System:    filepath.Base(filepath.Clean(opts.SystemDir)),
		StartedAt: time.Now(),
	}

	if _, err := os.Stat(opts.Template); err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	records, err := gamelist.Load(opts.SystemDir)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no games found in %s", filepath.Join(opts.SystemDir, gamelist.Filename))
	}
	slog.Info("Catalog loaded", "system", rep.System, "games", len(records))

	resolutions := assets.NewResolver(opts.SystemDir).ResolveAll(records)

	retained := 0
	for _, res := range resolutions {
		if res.Retained {
			retained++
		} else {
			slog.Debug("Skipping game", "game", res.Record.Name, "reason", res.Reason)
		}
	}
	slog.Info("Assets resolved", "complete", retained, "incomplete", len(resolutions)-retained)

	if retained > 0 {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cardPaths := renderCards(ctx, opts, resolutions, rep)
	assemblePages(ctx, opts, rep, cardPaths)

	rep.FinishedAt = time.Now()
	rep.Tally()
	return rep, nil
}

// renderCards renders one card per retained game and returns the paths
// of the cards that succeeded, in catalog order. Cards are numbered by
// their position among the retained games, so a failed card leaves a
// gap rather than renumbering the ones after it.
func renderCards(ctx context.Context, opts Options, resolutions []assets.Resolution, rep *report.RunReport) []string {
	comp := cards.NewCompositor(opts.Engine, opts.Template, opts.OutputDir)

	var jobs []assets.Resolution
	for _, res := range resolutions {
		if res.Retained {
			jobs = append(jobs, res)
		}
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	type outcome struct {
		card string
		err  error
	}
	outcomes := make([]outcome, len(jobs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job assets.Resolution) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Rendering card", "game", job.Record.Name, "progress", fmt.Sprintf("%d/%d", idx+1, len(jobs)))

			card, err := comp.Generate(ctx, job.Artwork, idx+1)
			outcomes[idx] = outcome{card: card, err: err}
		}(i, job)
	}
	wg.Wait()

	// Record outcomes in catalog order, skipped games interleaved with
	// rendered ones.
	var cardPaths []string
	next := 0
	for _, res := range resolutions {
		item := report.Item{Game: res.Record.Name, Path: res.Record.Path}
		if !res.Retained {
			item.Status = report.StatusSkipped
			item.Reason = string(res.Reason)
			rep.Items = append(rep.Items, item)
			continue
		}

		out := outcomes[next]
		next++
		if out.err != nil {
			slog.Error("Card failed", "game", res.Record.Name, "err", out.err)
			item.Status = report.StatusFailed
			item.Reason = out.err.Error()
		} else {
			item.Status = report.StatusGenerated
			item.Card = filepath.Base(out.card)
			cardPaths = append(cardPaths, out.card)
		}
		rep.Items = append(rep.Items, item)
	}
	return cardPaths
}

// assemblePages chunks the rendered cards into pages and assembles each
// one. A page that fails is recorded and the rest are still built.
func assemblePages(ctx context.Context, opts Options, rep *report.RunReport, cardPaths []string) {
	if len(cardPaths) == 0 {
		return
	}

	asm := pages.NewAssembler(opts.Engine, opts.OutputDir)
	groups := pages.Chunk(cardPaths)
	rep.Pages = make([]report.Page, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, group := range groups {
		g.Go(func() error {
			number := i + 1
			slog.Info("Assembling page", "page", fmt.Sprintf("%d/%d", number, len(groups)), "cards", len(group))

			path, err := asm.Assemble(ctx, rep.System, number, group)
			page := report.Page{Number: number, Cards: len(group)}
			if err != nil {
				slog.Error("Page failed", "page", number, "err", err)
				page.Error = err.Error()
			} else {
				page.Path = path
			}
			rep.Pages[i] = page
			return nil
		})
	}
	// Failures are recorded per page, so the group itself never errors.
	_ = g.Wait()
}
