// mksample creates a small demo library for trying covergen without a
// real EmulationStation setup: a card template with the artwork window
// marked, a gamelist.xml and generated cover art.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	cardWidth  = 638
	cardHeight = 1012
	artX       = 30
	artY       = 110
	artWidth   = 576
	artHeight  = 838
)

func main() {
	output := flag.String("output", "./sample", "Output directory for the demo library")
	system := flag.String("system", "nes", "System folder name")
	games := flag.Int("games", 12, "Number of games to generate")
	flag.Parse()

	systemDir := filepath.Join(*output, *system)
	for _, dir := range []string{filepath.Join(systemDir, "images"), filepath.Join(systemDir, "marquees")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	template := filepath.Join(*output, "template.png")
	if err := writeTemplate(template); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeLibrary(systemDir, *games); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample library with %d games written to %s\n", *games, systemDir)
	fmt.Printf("\nTry it:\n")
	fmt.Printf("  covergen list %s\n", systemDir)
	fmt.Printf("  covergen generate %s --template %s --output %s\n",
		systemDir, template, filepath.Join(*output, "cards"))
}

// writeTemplate draws a card sized frame with a gold border. The
// artwork window is filled darker so composited covers are easy to
// eyeball.
func writeTemplate(path string) error {
	img := imaging.New(cardWidth, cardHeight, color.NRGBA{R: 24, G: 26, B: 33, A: 255})
	window := image.Rect(artX, artY, artX+artWidth, artY+artHeight)
	for y := 0; y < cardHeight; y++ {
		for x := 0; x < cardWidth; x++ {
			switch {
			case image.Pt(x, y).In(window):
				img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 10, B: 12, A: 255})
			case x < 8 || x >= cardWidth-8 || y < 8 || y >= cardHeight-8:
				img.SetNRGBA(x, y, color.NRGBA{R: 210, G: 180, B: 90, A: 255})
			}
		}
	}
	return imaging.Save(img, path)
}

// writeLibrary writes the gamelist and the asset files it references.
// Every fourth game gets a thumbnail next to its full image, and the
// last game's artwork is left missing entirely so a skip shows up in
// runs. A dangling game never gets a thumbnail, or the thumbnail would
// stand in for the missing image.
func writeLibrary(systemDir string, games int) error {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\"?>\n<gameList>\n")

	for i := 1; i <= games; i++ {
		imageRef := fmt.Sprintf("./images/game%02d.png", i)
		marqueeRef := fmt.Sprintf("./marquees/game%02d.png", i)

		dangling := i == games && games > 1
		thumbRef := ""
		if i%4 == 0 && !dangling {
			thumbRef = fmt.Sprintf("./images/game%02d-thumb.png", i)
		}

		if !dangling {
			if err := imaging.Save(cover(i, 240, 360), refPath(systemDir, imageRef)); err != nil {
				return err
			}
		}
		if thumbRef != "" {
			if err := imaging.Save(cover(i, 120, 180), refPath(systemDir, thumbRef)); err != nil {
				return err
			}
		}
		if err := imaging.Save(marquee(i), refPath(systemDir, marqueeRef)); err != nil {
			return err
		}

		fmt.Fprintf(&sb, "  <game id=\"%d\">\n", i)
		fmt.Fprintf(&sb, "    <name>Sample Game %02d</name>\n", i)
		fmt.Fprintf(&sb, "    <path>./game%02d.zip</path>\n", i)
		fmt.Fprintf(&sb, "    <image>%s</image>\n", imageRef)
		if thumbRef != "" {
			fmt.Fprintf(&sb, "    <thumbnail>%s</thumbnail>\n", thumbRef)
		}
		fmt.Fprintf(&sb, "    <marquee>%s</marquee>\n", marqueeRef)
		sb.WriteString("  </game>\n")
	}
	sb.WriteString("</gameList>\n")

	return os.WriteFile(filepath.Join(systemDir, "gamelist.xml"), []byte(sb.String()), 0o644)
}

func refPath(systemDir, ref string) string {
	return filepath.Join(systemDir, strings.TrimPrefix(ref, "./"))
}

// cover draws a gradient keyed to the game index so every card looks
// different.
func cover(seed, w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{A: 255})
	base := uint8(seed * 37)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: base + uint8(x*128/w),
				G: uint8(y * 255 / h),
				B: 255 - base,
				A: 255,
			})
		}
	}
	return img
}

func marquee(seed int) *image.NRGBA {
	img := imaging.New(300, 80, color.NRGBA{R: uint8(40 + seed*13), G: 40, B: 60, A: 255})
	for x := 0; x < 300; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		img.SetNRGBA(x, 79, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return img
}
