package gamelist

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Filename is the catalog document expected at the root of a system folder.
const Filename = "gamelist.xml"

// ErrNotFound reports a system folder without a gamelist.xml.
var ErrNotFound = errors.New("gamelist.xml not found")

// Record is one catalog entry. Asset references are stored exactly as they
// appear in the document (usually relative paths like "./images/foo.png");
// resolution against the system folder happens in the assets package.
type Record struct {
	ID        string
	Name      string
	Path      string
	Image     string
	Thumbnail string
	Marquee   string
}

// Load locates and parses the catalog of a system folder.
func Load(systemDir string) ([]Record, error) {
	info, err := os.Stat(systemDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("system folder not found: %s", systemDir)
	}
	return Parse(filepath.Join(systemDir, Filename))
}

// Parse reads a gamelist.xml document into an ordered slice of records.
// Document order is preserved and duplicate identifiers are kept as separate
// records. A missing document wraps ErrNotFound; a malformed document is a
// parse error. Neither produces a partial result.
func Parse(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read gamelist: %w", err)
	}

	// The root element name varies between frontends (<gameList>, <gamelist>),
	// so only the direct <game> children are matched.
	var doc struct {
		Games []xmlGame `xml:"game"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	records := make([]Record, 0, len(doc.Games))
	for _, g := range doc.Games {
		records = append(records, g.record())
	}
	return records, nil
}

type xmlGame struct {
	ID        *string `xml:"id,attr"`
	Name      *string `xml:"name"`
	Path      *string `xml:"path"`
	Image     string  `xml:"image"`
	Thumbnail string  `xml:"thumbnail"`
	Marquee   string  `xml:"marquee"`
}

// record applies the catalog defaults: absent id/name/path elements fall back
// to placeholders, while an element that is present but empty stays empty.
// Asset references default to the empty string either way.
func (g xmlGame) record() Record {
	r := Record{
		ID:        "N/A",
		Name:      "Unknown",
		Path:      "N/A",
		Image:     g.Image,
		Thumbnail: g.Thumbnail,
		Marquee:   g.Marquee,
	}
	if g.ID != nil {
		r.ID = *g.ID
	}
	if g.Name != nil {
		r.Name = *g.Name
	}
	if g.Path != nil {
		r.Path = *g.Path
	}
	return r
}
