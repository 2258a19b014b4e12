// Package export writes the catalog inventory to analysis friendly
// formats.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/retroprints/covergen/internal/assets"
)

// Entry is one catalog record joined with the outcome of asset
// resolution.
type Entry struct {
	ID       string `json:"id" parquet:"id"`
	Name     string `json:"name" parquet:"name"`
	Path     string `json:"path" parquet:"path"`
	Artwork  string `json:"artwork,omitempty" parquet:"artwork,optional"`
	Marquee  string `json:"marquee,omitempty" parquet:"marquee,optional"`
	Complete bool   `json:"complete" parquet:"complete"`
	Reason   string `json:"reason,omitempty" parquet:"reason,optional"`
}

// FromResolutions flattens resolver output into entries, preserving
// catalog order.
func FromResolutions(resolutions []assets.Resolution) []Entry {
	entries := make([]Entry, 0, len(resolutions))
	for _, res := range resolutions {
		entries = append(entries, Entry{
			ID:       res.Record.ID,
			Name:     res.Record.Name,
			Path:     res.Record.Path,
			Artwork:  res.Artwork,
			Marquee:  res.Marquee,
			Complete: res.Retained,
			Reason:   string(res.Reason),
		})
	}
	return entries
}

// Write saves the entries to path in the format named by the extension
// (Parquet, JSONL or JSON).
func Write(path string, entries []Entry) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(path, entries)
	case ".jsonl":
		return writeJSONL(path, entries)
	case ".json":
		return writeJSON(path, entries)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .jsonl, .json)", ext)
	}
}

func writeParquet(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Entry](file)
	if _, err := writer.Write(entries); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet: %w", err)
	}
	return nil
}

func writeJSONL(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("failed to encode entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func writeJSON(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
