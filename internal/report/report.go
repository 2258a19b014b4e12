// Package report records what happened to every game in a run.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Outcome of a single game.
const (
	StatusGenerated = "generated"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Item is the outcome for one game, kept in catalog order.
type Item struct {
	Game   string `yaml:"game"`
	Path   string `yaml:"path,omitempty"`
	Status string `yaml:"status"`
	Card   string `yaml:"card,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// Page is the outcome for one assembled page.
type Page struct {
	Number int    `yaml:"number"`
	Cards  int    `yaml:"cards"`
	Path   string `yaml:"path,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Summary aggregates the counters for a run.
type Summary struct {
	Games          int `yaml:"games"`
	Retained       int `yaml:"retained"`
	Incomplete     int `yaml:"incomplete"`
	CardsGenerated int `yaml:"cardsgenerated"`
	CardsFailed    int `yaml:"cardsfailed"`
	PagesGenerated int `yaml:"pagesgenerated"`
	PagesFailed    int `yaml:"pagesfailed"`
}

// RunReport is the complete record of one generation run.
type RunReport struct {
	System     string    `yaml:"system"`
	StartedAt  time.Time `yaml:"startedat"`
	FinishedAt time.Time `yaml:"finishedat"`
	Summary    Summary   `yaml:"summary"`
	Items      []Item    `yaml:"items"`
	Pages      []Page    `yaml:"pages,omitempty"`
}

// Tally recomputes the summary counters from the recorded items and pages.
func (r *RunReport) Tally() {
	s := Summary{Games: len(r.Items)}
	for _, item := range r.Items {
		switch item.Status {
		case StatusGenerated:
			s.Retained++
			s.CardsGenerated++
		case StatusFailed:
			s.Retained++
			s.CardsFailed++
		case StatusSkipped:
			s.Incomplete++
		}
	}
	for _, page := range r.Pages {
		if page.Error != "" {
			s.PagesFailed++
		} else {
			s.PagesGenerated++
		}
	}
	r.Summary = s
}

// SaveYAML writes the full report to the given path.
func (r *RunReport) SaveYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteText prints the human readable summary shown after a run.
func (r *RunReport) WriteText(w io.Writer) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintf(w, "Run Summary: %s\n", r.System)
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Games in catalog:   %d\n", r.Summary.Games)
	fmt.Fprintf(w, "Complete games:     %d\n", r.Summary.Retained)
	fmt.Fprintf(w, "Incomplete games:   %d\n", r.Summary.Incomplete)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cards generated:    %d\n", r.Summary.CardsGenerated)
	fmt.Fprintf(w, "Cards failed:       %d\n", r.Summary.CardsFailed)
	fmt.Fprintf(w, "Pages generated:    %d\n", r.Summary.PagesGenerated)
	fmt.Fprintf(w, "Pages failed:       %d\n", r.Summary.PagesFailed)

	var skipped []Item
	for _, item := range r.Items {
		if item.Status == StatusSkipped || item.Status == StatusFailed {
			skipped = append(skipped, item)
		}
	}
	if len(skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Games without a card:")
		for _, item := range skipped {
			fmt.Fprintf(w, "  %s: %s\n", item.Game, item.Reason)
		}
	}

	if !r.FinishedAt.IsZero() && !r.StartedAt.IsZero() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Duration:           %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintln(w, "========================================")
}
