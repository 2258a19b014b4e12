package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroprints/covergen/internal/gamelist"
)

// touch creates an empty file (and parent directories) under dir.
func touch(t *testing.T, dir string, rel string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create fixture file: %v", err)
	}
}

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name        string
		files       []string
		record      gamelist.Record
		wantRetain  bool
		wantArtwork string // relative to the system dir
		wantReason  SkipReason
	}{
		{
			name:  "thumbnail wins over image",
			files: []string{"images/a.png", "images/a-thumb.png", "images/a-marquee.png"},
			record: gamelist.Record{
				Image: "./images/a.png", Thumbnail: "./images/a-thumb.png", Marquee: "./images/a-marquee.png",
			},
			wantRetain:  true,
			wantArtwork: "images/a-thumb.png",
		},
		{
			name:  "missing thumbnail file falls back to image",
			files: []string{"images/b.png", "images/b-marquee.png"},
			record: gamelist.Record{
				Image: "./images/b.png", Thumbnail: "./images/b-thumb.png", Marquee: "./images/b-marquee.png",
			},
			wantRetain:  true,
			wantArtwork: "images/b.png",
		},
		{
			name:  "thumbnail reference without thumb in the filename is ignored",
			files: []string{"images/c.png", "images/c-small.png", "images/c-marquee.png"},
			record: gamelist.Record{
				Image: "./images/c.png", Thumbnail: "./images/c-small.png", Marquee: "./images/c-marquee.png",
			},
			wantRetain:  true,
			wantArtwork: "images/c.png",
		},
		{
			name:  "thumbnail match is case-insensitive",
			files: []string{"images/d-THUMB.PNG", "images/d-marquee.png"},
			record: gamelist.Record{
				Thumbnail: "./images/d-THUMB.PNG", Marquee: "./images/d-marquee.png",
			},
			wantRetain:  true,
			wantArtwork: "images/d-THUMB.PNG",
		},
		{
			name:  "thumbnail alone is enough without a primary image",
			files: []string{"images/e-thumb.png", "images/e-marquee.png"},
			record: gamelist.Record{
				Thumbnail: "./images/e-thumb.png", Marquee: "./images/e-marquee.png",
			},
			wantRetain:  true,
			wantArtwork: "images/e-thumb.png",
		},
		{
			name:       "no usable artwork",
			files:      []string{"images/f-marquee.png"},
			record:     gamelist.Record{Image: "./images/f.png", Marquee: "./images/f-marquee.png"},
			wantReason: SkipArtworkMissing,
		},
		{
			name:       "missing marquee excludes the record",
			files:      []string{"images/g.png"},
			record:     gamelist.Record{Image: "./images/g.png", Marquee: "./images/g-marquee.png"},
			wantReason: SkipMarqueeMissing,
		},
		{
			name:       "empty marquee reference excludes the record",
			files:      []string{"images/h.png"},
			record:     gamelist.Record{Image: "./images/h.png"},
			wantReason: SkipMarqueeMissing,
		},
		{
			name:       "record with nothing reports the artwork first",
			record:     gamelist.Record{},
			wantReason: SkipArtworkMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}

			res := NewResolver(dir).Resolve(tt.record)

			if res.Retained != tt.wantRetain {
				t.Fatalf("Retained = %v, want %v (reason %q)", res.Retained, tt.wantRetain, res.Reason)
			}
			if tt.wantRetain {
				want := filepath.Join(dir, tt.wantArtwork)
				if res.Artwork != want {
					t.Errorf("Artwork = %q, want %q", res.Artwork, want)
				}
				if res.Marquee == "" {
					t.Error("Expected resolved marquee path on a retained record")
				}
			} else if res.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.wantReason)
			}
		})
	}
}

func TestResolveDirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images", "art.png"), 0755); err != nil {
		t.Fatalf("Failed to create directory fixture: %v", err)
	}
	touch(t, dir, "images/m.png")

	res := NewResolver(dir).Resolve(gamelist.Record{
		Image: "./images/art.png", Marquee: "./images/m.png",
	})
	if res.Retained {
		t.Error("A directory must not satisfy the artwork existence check")
	}
	if res.Reason != SkipArtworkMissing {
		t.Errorf("Reason = %q, want %q", res.Reason, SkipArtworkMissing)
	}
}

func TestResolveAllCountsAndOrder(t *testing.T) {
	// Five records: two lack the marquee, one lacks both image variants,
	// two are complete. The resolver retains 2 and reports 3 incomplete.
	dir := t.TempDir()
	touch(t, dir, "images/one.png")
	touch(t, dir, "images/one-marquee.png")
	touch(t, dir, "images/two-thumb.png")
	touch(t, dir, "images/two-marquee.png")
	touch(t, dir, "images/three.png")
	touch(t, dir, "images/four.png")
	touch(t, dir, "images/five-marquee.png")

	records := []gamelist.Record{
		{Name: "One", Image: "./images/one.png", Marquee: "./images/one-marquee.png"},
		{Name: "Two", Thumbnail: "./images/two-thumb.png", Marquee: "./images/two-marquee.png"},
		{Name: "Three", Image: "./images/three.png", Marquee: "./images/three-marquee.png"},
		{Name: "Four", Image: "./images/four.png"},
		{Name: "Five", Marquee: "./images/five-marquee.png"},
	}

	resolutions := NewResolver(dir).ResolveAll(records)

	if len(resolutions) != len(records) {
		t.Fatalf("Expected %d resolutions, got %d", len(records), len(resolutions))
	}

	retained := 0
	incomplete := 0
	for i, res := range resolutions {
		if res.Record.Name != records[i].Name {
			t.Errorf("resolutions[%d] is %q, want %q (order must be preserved)", i, res.Record.Name, records[i].Name)
		}
		if res.Retained {
			retained++
		} else {
			incomplete++
		}
	}

	if retained != 2 {
		t.Errorf("Expected 2 retained records, got %d", retained)
	}
	if incomplete != 3 {
		t.Errorf("Expected 3 incomplete records, got %d", incomplete)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"./images/a.png", "images/a.png"},
		{"images/a.png", "images/a.png"},
		{"./a/./b.png", "a/./b.png"},
		{"/abs/a.png", "/abs/a.png"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.ref); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestCheckCachesStatResults(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "images/a.png")

	r := NewResolver(dir)
	if _, ok := r.Check("./images/a.png"); !ok {
		t.Fatal("Expected existing file to be found")
	}

	// Removing the file behind the resolver's back must not change the
	// answer within one run: resolution is stat-cached per path.
	if err := os.Remove(filepath.Join(dir, "images", "a.png")); err != nil {
		t.Fatalf("Failed to remove fixture: %v", err)
	}
	if _, ok := r.Check("./images/a.png"); !ok {
		t.Error("Expected cached stat result after deletion")
	}
}
