package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	apperrors "github.com/gridflow-dev/gridflow/pkg/errors"
	"github.com/gridflow-dev/gridflow/pkg/session"
)

// newTestCLI builds a CLI that logs into a buffer, never touches the user's
// config, and keeps snapshots and the result cache under per-test directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output.Color = false
	cfg.SnapshotDir = t.TempDir()
	cfg.CacheDir = t.TempDir()
	return &CLI{Logger: newLogger(&buf, log.WarnLevel), Config: cfg}
}

func runCommand(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func writeDiagramFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

const chainDiagram = `{
	"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
	"edges": [
		{"id": "e1", "from": "a", "to": "b"},
		{"id": "e2", "from": "b", "to": "c"}
	]
}`

func TestLayoutCommand(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, chainDiagram)
	output := filepath.Join(t.TempDir(), "layout.json")

	if err := runCommand(c, "layout", input, "-o", output); err != nil {
		t.Fatalf("layout command error = %v, want nil", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc layoutDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(doc.Layers) != 3 {
		t.Errorf("len(Layers) = %d, want 3", len(doc.Layers))
	}
	if doc.Placements["b"] != (placementDoc{Layer: 1, Index: 0}) {
		t.Errorf("Placements[b] = %+v, want {1 0}", doc.Placements["b"])
	}
}

func TestLayoutCommand_MissingFile(t *testing.T) {
	c := newTestCLI(t)
	err := runCommand(c, "layout", filepath.Join(t.TempDir(), "absent.json"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want ErrCodeFileNotFound", err)
	}
}

func TestLayoutCommand_Cycle(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, `{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [
			{"id": "e1", "from": "a", "to": "b"},
			{"id": "e2", "from": "b", "to": "a"}
		]
	}`)

	err := runCommand(c, "layout", input)
	if !apperrors.Is(err, apperrors.ErrCodeCycle) {
		t.Errorf("error = %v, want ErrCodeCycle", err)
	}
}

func TestLayoutCommand_UnknownNode(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, `{
		"nodes": [{"id": "a"}],
		"edges": [{"id": "e1", "from": "a", "to": "ghost"}]
	}`)

	err := runCommand(c, "layout", input)
	if !apperrors.Is(err, apperrors.ErrCodeUnknownNode) {
		t.Errorf("error = %v, want ErrCodeUnknownNode", err)
	}
}

func TestLayoutCommand_MalformedJSON(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, `{broken`)

	err := runCommand(c, "layout", input)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want ErrCodeInvalidFormat", err)
	}
}

func TestRouteCommand(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, chainDiagram)
	output := filepath.Join(t.TempDir(), "routes.json")

	if err := runCommand(c, "route", input, "-o", output); err != nil {
		t.Fatalf("route command error = %v, want nil", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc routeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(doc.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(doc.Routes))
	}
	if doc.Routes[0].ID != "e1" || doc.Routes[1].ID != "e2" {
		t.Errorf("route order = %s, %s, want e1, e2", doc.Routes[0].ID, doc.Routes[1].ID)
	}
	if len(doc.Routes[0].Points) < 2 {
		t.Errorf("route e1 has %d points, want at least 2", len(doc.Routes[0].Points))
	}
	if len(doc.Layout.Layers) != 3 {
		t.Errorf("len(Layout.Layers) = %d, want 3", len(doc.Layout.Layers))
	}
}

func TestRouteCommand_CachedRerunMatches(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, chainDiagram)
	first := filepath.Join(t.TempDir(), "first.json")
	second := filepath.Join(t.TempDir(), "second.json")

	if err := runCommand(c, "route", input, "-o", first); err != nil {
		t.Fatalf("first route command error = %v, want nil", err)
	}

	// The first run populates the result cache.
	entries, err := os.ReadDir(c.Config.CacheDir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("cache dir should contain entries after a run")
	}

	// A rerun serves byte-identical results from cache, and --refresh
	// recomputes to the same bytes.
	if err := runCommand(c, "route", input, "-o", second); err != nil {
		t.Fatalf("second route command error = %v, want nil", err)
	}
	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("cached rerun should produce identical output")
	}

	if err := runCommand(c, "route", input, "-o", second, "--refresh"); err != nil {
		t.Fatalf("refresh route command error = %v, want nil", err)
	}
	b, _ = os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("refreshed run should produce identical output")
	}
}

func TestSnapshotCommands(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, chainDiagram)

	if err := runCommand(c, "snapshot", "save", "flow", input); err != nil {
		t.Fatalf("snapshot save error = %v, want nil", err)
	}

	// The snapshot is readable through the store.
	store, err := session.NewFileStore(c.Config.SnapshotDir)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := store.Load(context.Background(), "flow")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if snap.Revision == "" {
		t.Error("saved snapshot has no revision")
	}

	// A blind second save without the revision must conflict.
	err = runCommand(c, "snapshot", "save", "flow", input)
	if !apperrors.Is(err, apperrors.ErrCodeRevisionConflict) {
		t.Errorf("blind re-save error = %v, want ErrCodeRevisionConflict", err)
	}

	// Saving with the current revision succeeds.
	if err := runCommand(c, "snapshot", "save", "flow", input, "-r", snap.Revision); err != nil {
		t.Errorf("revision save error = %v, want nil", err)
	}

	if err := runCommand(c, "snapshot", "rm", "flow"); err != nil {
		t.Fatalf("snapshot rm error = %v, want nil", err)
	}
	if _, err := store.Load(context.Background(), "flow"); err == nil {
		t.Error("snapshot still present after rm")
	}
}

func TestSnapshotSave_InvalidJSON(t *testing.T) {
	c := newTestCLI(t)
	input := writeDiagramFile(t, `{broken`)

	err := runCommand(c, "snapshot", "save", "flow", input)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want ErrCodeInvalidFormat", err)
	}
}
