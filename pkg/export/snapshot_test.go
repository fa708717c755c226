package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mboersen/divvy/pkg/walkthrough"
)

func snapshotOpts(t *testing.T, path string) SnapshotOptions {
	t.Helper()
	reg := walkthrough.DefaultRegistry()
	return SnapshotOptions{
		Path:     path,
		Screen:   walkthrough.ScreenBoards,
		Steps:    reg.Steps(walkthrough.ScreenBoards),
		Resolver: walkthrough.NewResolver(),
	}
}

func TestSaveSnapshotSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.svg")
	if err := SaveSnapshot(snapshotOpts(t, path)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not an svg document")
	}
	if !strings.Contains(out, "boards") {
		t.Error("header missing the screen name")
	}
}

func TestSaveSnapshotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.png")
	if err := SaveSnapshot(snapshotOpts(t, path)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a png file")
	}
}

func TestSaveSnapshotDefaultsToSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards")
	if err := SaveSnapshot(snapshotOpts(t, path)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(path + ".svg"); err != nil {
		t.Errorf("expected %s.svg: %v", path, err)
	}
}

func TestSaveSnapshotCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "boards.svg")
	if err := SaveSnapshot(snapshotOpts(t, path)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestSaveSnapshotRejectsBadInput(t *testing.T) {
	opts := snapshotOpts(t, filepath.Join(t.TempDir(), "x.svg"))
	opts.Steps = nil
	if err := SaveSnapshot(opts); err == nil {
		t.Error("expected an error for zero steps")
	}

	opts = snapshotOpts(t, "")
	if err := SaveSnapshot(opts); err == nil {
		t.Error("expected an error for an empty path")
	}

	opts = snapshotOpts(t, filepath.Join(t.TempDir(), "x.svg"))
	opts.Format = "gif"
	if err := SaveSnapshot(opts); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
