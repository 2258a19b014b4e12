package assets

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/retroprints/covergen/internal/gamelist"
)

// Catalogs routinely list the same asset file for many entries (duplicated
// records, shared placeholder art), so stat results are cached.
const statCacheSize = 512

// SkipReason says why a record was excluded from card generation.
type SkipReason string

const (
	SkipArtworkMissing SkipReason = "artwork missing"
	SkipMarqueeMissing SkipReason = "marquee missing"
)

// Resolution is the per-record outcome of asset resolution. Every catalog
// record yields exactly one Resolution, in catalog order; excluded records
// carry a reason instead of an error.
type Resolution struct {
	Record   gamelist.Record
	Artwork  string // resolved path of the chosen artwork, when retained
	Marquee  string // resolved path of the marquee, when retained
	Retained bool
	Reason   SkipReason
}

// Resolver decides which artwork file to use for each record and whether the
// record is complete enough to become a card. It only reads the filesystem.
type Resolver struct {
	baseDir string
	stats   *lru.Cache
}

// NewResolver creates a resolver for asset references relative to the given
// system folder.
func NewResolver(baseDir string) *Resolver {
	cache, _ := lru.New(statCacheSize)
	return &Resolver{
		baseDir: baseDir,
		stats:   cache,
	}
}

// Resolve applies the selection rule to one record:
//
//  1. A thumbnail reference whose filename contains "thumb" (case-insensitive)
//     and that exists on disk wins.
//  2. Otherwise the primary image reference is used if non-empty and existing.
//  3. Without either the record is skipped, which is not an error.
//
// Independently, the marquee reference must be non-empty and exist, or the
// record is skipped as well.
func (r *Resolver) Resolve(rec gamelist.Record) Resolution {
	res := Resolution{Record: rec}

	artwork, ok := r.pickArtwork(rec)
	if !ok {
		res.Reason = SkipArtworkMissing
		return res
	}

	marquee, ok := r.Check(rec.Marquee)
	if !ok {
		res.Reason = SkipMarqueeMissing
		return res
	}

	res.Artwork = artwork
	res.Marquee = marquee
	res.Retained = true
	return res
}

// ResolveAll resolves every record, preserving catalog order.
func (r *Resolver) ResolveAll(records []gamelist.Record) []Resolution {
	out := make([]Resolution, 0, len(records))
	for _, rec := range records {
		out = append(out, r.Resolve(rec))
	}
	return out
}

func (r *Resolver) pickArtwork(rec gamelist.Record) (string, bool) {
	if rec.Thumbnail != "" && isThumbName(rec.Thumbnail) {
		if path, ok := r.Check(rec.Thumbnail); ok {
			return path, true
		}
		// Fall through: a dangling thumbnail reference still allows the
		// primary image to be used.
	}
	return r.Check(rec.Image)
}

// Check normalizes an asset reference, joins it to the system folder and
// reports whether a regular file exists there. An empty reference is never a
// hit.
func (r *Resolver) Check(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	path := filepath.Join(r.baseDir, Normalize(ref))
	return path, r.exists(path)
}

func (r *Resolver) exists(path string) bool {
	if v, ok := r.stats.Get(path); ok {
		return v.(bool)
	}
	info, err := os.Stat(path)
	exists := err == nil && info.Mode().IsRegular()
	r.stats.Add(path, exists)
	return exists
}

// Normalize strips the leading "./" marker gamelists conventionally put in
// front of relative asset paths. Anything else is left untouched.
func Normalize(ref string) string {
	return strings.TrimPrefix(ref, "./")
}

// The thumbnail-priority rule is a naming convention: only references whose
// filename actually says "thumb" are trusted as thumbnails.
func isThumbName(ref string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(ref)), "thumb")
}
