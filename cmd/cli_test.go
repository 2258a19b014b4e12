package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/retroprints/covergen/internal/export"
)

const testCatalog = `<?xml version="1.0"?>
<gameList>
  <game id="1">
    <name>Super Mario Bros.</name>
    <path>./smb.zip</path>
    <image>./images/smb.png</image>
    <marquee>./marquees/smb.png</marquee>
  </game>
  <game id="2">
    <name>Metroid</name>
    <path>./metroid.zip</path>
    <image>./images/metroid.png</image>
    <marquee>./marquees/metroid.png</marquee>
  </game>
</gameList>
`

func writeTestSystem(t *testing.T) (root, system string) {
	t.Helper()
	root = t.TempDir()
	system = filepath.Join(root, "nes")

	if err := os.MkdirAll(system, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(system, "gamelist.xml"), []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	// Only the first game's assets exist.
	for _, rel := range []string{"images/smb.png", "marquees/smb.png"} {
		path := filepath.Join(system, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := imaging.Save(imaging.New(60, 90, color.NRGBA{R: 200, A: 255}), path); err != nil {
			t.Fatal(err)
		}
	}
	return root, system
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestListCommand(t *testing.T) {
	_, system := writeTestSystem(t)

	out, err := runCommand(t, "list", system)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{
		"Found 2 games in " + system,
		"✓ Image: ./images/smb.png",
		"✗ Image: ./images/metroid.png",
		"Missing files: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestListCommandSearch(t *testing.T) {
	_, system := writeTestSystem(t)

	out, err := runCommand(t, "list", system, "--search", "mario")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Found 1 games in") {
		t.Errorf("Expected one match:\n%s", out)
	}
	if strings.Contains(out, "Metroid") {
		t.Errorf("Metroid should be filtered out:\n%s", out)
	}

	if _, err := runCommand(t, "list", system, "--search", "zzzz"); err == nil {
		t.Error("Expected error when nothing matches")
	}
}

func TestListCommandMissingFolder(t *testing.T) {
	if _, err := runCommand(t, "list", filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Expected error for a missing system folder")
	}
}

func TestCommandsEmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	system := filepath.Join(dir, "nes")
	if err := os.MkdirAll(system, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(system, "gamelist.xml"), []byte(`<?xml version="1.0"?><gameList></gameList>`), 0o644); err != nil {
		t.Fatal(err)
	}

	// Every command reports the same diagnostic, naming the catalog file.
	want := "no games found in " + filepath.Join(system, "gamelist.xml")
	for _, args := range [][]string{
		{"list", system},
		{"export", system, "--output", filepath.Join(dir, "out.jsonl")},
	} {
		_, err := runCommand(t, args...)
		if err == nil {
			t.Fatalf("%s should fail for an empty catalog", args[0])
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%s error = %q, want %q", args[0], err, want)
		}
	}
}

func TestExportCommand(t *testing.T) {
	root, system := writeTestSystem(t)
	out := filepath.Join(root, "nes.jsonl")

	if _, err := runCommand(t, "export", system, "--output", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer file.Close()

	var entries []export.Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry export.Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("Line is not valid JSON: %v", err)
		}
		entries = append(entries, entry)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if !entries[0].Complete || entries[0].Name != "Super Mario Bros." {
		t.Errorf("First entry = %+v", entries[0])
	}
	if entries[1].Complete || entries[1].Reason != "artwork missing" {
		t.Errorf("Second entry = %+v", entries[1])
	}
}

func TestGenerateCommand(t *testing.T) {
	root, system := writeTestSystem(t)

	template := filepath.Join(root, "template.png")
	if err := imaging.Save(imaging.New(638, 1012, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), template); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(root, "cards")
	reportPath := filepath.Join(root, "run.yaml")

	out, err := runCommand(t, "generate", system,
		"--engine", "native",
		"--template", template,
		"--output", outDir,
		"--report", reportPath)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "card_0001.png")); err != nil {
		t.Errorf("Missing card: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "nes_01.png")); err != nil {
		t.Errorf("Missing page: %v", err)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("Missing report: %v", err)
	}
	for _, want := range []string{
		"Run Summary: nes",
		"Cards generated:    1",
		"Metroid: artwork missing",
		"Report saved to: " + reportPath,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}
