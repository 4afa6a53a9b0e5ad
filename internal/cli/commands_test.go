package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/library"
)

const sampleExport = `{
  "Bitmaps": [{"assetId": 1, "src": "sky.png"}],
  "Shapes": [{"assetId": 7, "draw": [["m", 0, 0], ["l", 10, 5]]}],
  "Texts": [{"assetId": 4, "text": "hello"}],
  "Timelines": [
    {"assetId": 10, "type": "movieclip", "totalFrames": 1},
    {"assetId": 12, "type": "stage", "totalFrames": 48, "children": [
      {"assetId": 7, "instanceId": 1},
      {"assetId": 10, "instanceId": 2},
      {"assetId": 99, "instanceId": 3}
    ]}
  ],
  "_meta": {"stageName": "MC", "framerate": 24}
}`

// setupEnv points config and cache at fresh directories and returns a
// document path inside a temp dir.
func setupEnv(t *testing.T, export string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(export), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command and returns everything printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	defer func() { stdout = prev }()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"inspect", "assets", "lookup", "create", "render", "pack", "unpack", "format", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInspectJSON(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "inspect", doc, "--json")
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	var s library.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if s.StageName != "MC" || s.Assets != 5 || !s.HasContainer {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Dangling) != 1 || s.Dangling[0].AssetID != 99 {
		t.Errorf("Dangling = %v", s.Dangling)
	}
}

func TestInspectUsesCache(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "inspect", doc)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	if !strings.Contains(out, "MC") || !strings.Contains(out, iconFresh) {
		t.Errorf("first run output:\n%s", out)
	}
	if !strings.Contains(out, "asset 99 (instance 3)") {
		t.Errorf("missing dangling warning:\n%s", out)
	}

	out, err = runCLI(t, "inspect", doc)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second run should be cached:\n%s", out)
	}

	out, _ = runCLI(t, "inspect", doc, "--no-cache")
	if !strings.Contains(out, iconFresh) {
		t.Errorf("--no-cache should bypass the cache:\n%s", out)
	}
}

func TestInspectStrict(t *testing.T) {
	dup := strings.Replace(sampleExport, `{"assetId": 4, "text"`, `{"assetId": 7, "text"`, 1)
	doc := setupEnv(t, dup)

	if _, err := runCLI(t, "inspect", doc, "--no-cache"); err != nil {
		t.Fatalf("duplicates should be allowed by default: %v", err)
	}
	_, err := runCLI(t, "inspect", doc, "--no-cache", "--strict")
	if !errs.Is(err, errs.ErrCodeDuplicateID) {
		t.Errorf("--strict error = %v, want DUPLICATE_ASSET", err)
	}
}

func TestAssets(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "assets", doc, "--kind", "shape")
	if err != nil {
		t.Fatalf("assets error: %v", err)
	}
	if !strings.Contains(out, "MC_7") || strings.Contains(out, "sky.png") {
		t.Errorf("filtered output:\n%s", out)
	}
	if !strings.Contains(out, "1 of 5 assets") {
		t.Errorf("missing count line:\n%s", out)
	}

	if _, err := runCLI(t, "assets", doc, "--kind", "sprite"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestLookup(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "lookup", doc, "7", "--json")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode record: %v\n%s", err, out)
	}
	if rec["assetId"] != 7.0 {
		t.Errorf("record = %v", rec)
	}

	out, err = runCLI(t, "lookup", doc, "12")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if !strings.Contains(out, "stage #12") || !strings.Contains(out, "asset 99 as instance 3") {
		t.Errorf("stage output:\n%s", out)
	}

	if _, err := runCLI(t, "lookup", doc, "42"); !errs.Is(err, errs.ErrCodeAssetNotFound) {
		t.Errorf("missing asset error = %v", err)
	}
	if _, err := runCLI(t, "lookup", doc, "x"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad id error = %v", err)
	}
}

func TestCreate(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "create", doc, "10", "3")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if !strings.Contains(out, "container#10/3") {
		t.Errorf("output:\n%s", out)
	}

	if _, err := runCLI(t, "create", doc, "99", "1"); !errs.Is(err, errs.ErrCodeAssetNotFound) {
		t.Errorf("dangling child error = %v", err)
	}
}

func TestRenderDOT(t *testing.T) {
	doc := setupEnv(t, sampleExport)
	out := filepath.Join(t.TempDir(), "graph.dot")

	if _, err := runCLI(t, "render", doc, "-f", "dot", "-o", out, "--dangling", "--direction", "lr"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") || !strings.Contains(dot, "rankdir=LR") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
	if !strings.Contains(dot, "missing #99") {
		t.Errorf("--dangling should draw the missing child:\n%s", dot)
	}
}

func TestRenderErrors(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"bad format", []string{"render", doc, "-f", "png", "-o", filepath.Join(t.TempDir(), "g.png")}, errs.ErrCodeInvalidInput},
		{"bad direction", []string{"render", doc, "-f", "dot", "--direction", "XY", "-o", filepath.Join(t.TempDir(), "g.dot")}, errs.ErrCodeInvalidInput},
		{"traversal", []string{"render", doc, "-o", "../g.svg"}, errs.ErrCodeInvalidPath},
		{"missing document", []string{"render", filepath.Join(t.TempDir(), "none.json"), "-f", "dot", "-o", filepath.Join(t.TempDir(), "g.dot")}, errs.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestPackUnpack(t *testing.T) {
	doc := setupEnv(t, sampleExport)
	pack := filepath.Join(t.TempDir(), "forest.res")

	if _, err := runCLI(t, "pack", doc, "-o", pack); err != nil {
		t.Fatalf("pack error: %v", err)
	}

	// Packs load like any other document
	out, err := runCLI(t, "inspect", pack, "--json", "--no-cache")
	if err != nil {
		t.Fatalf("inspect pack error: %v", err)
	}
	var s library.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil || s.Assets != 5 {
		t.Fatalf("pack summary = %+v, err = %v", s, err)
	}

	out, err = runCLI(t, "unpack", pack)
	if err != nil {
		t.Fatalf("unpack error: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decode unpacked: %v", err)
	}
	if meta, _ := raw["_meta"].(map[string]any); meta["stageName"] != "MC" {
		t.Errorf("_meta = %v", raw["_meta"])
	}

	out, err = runCLI(t, "unpack", pack, "--id", "4")
	if err != nil {
		t.Fatalf("unpack --id error: %v", err)
	}
	if !strings.Contains(out, `"hello"`) {
		t.Errorf("unpack --id 4:\n%s", out)
	}
	if _, err := runCLI(t, "unpack", pack, "--id", "404"); !errs.Is(err, errs.ErrCodeAssetNotFound) {
		t.Errorf("unpack missing id error = %v", err)
	}
}

func TestFormatRound(t *testing.T) {
	setupEnv(t, sampleExport)
	cfg := writeConfig(t, "precision = 1\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default places", []string{"format", "round", "3.14159"}, "3.14"},
		{"explicit places", []string{"format", "round", "3.14159", "-p", "3"}, "3.142"},
		{"config precision", []string{"--config", cfg, "format", "round", "3.14159"}, "3.1"},
		{"flag beats config", []string{"--config", cfg, "format", "round", "3.14159", "--places", "4"}, "3.1416"},
		{"half up", []string{"format", "round", "2.675", "-p", "1"}, "2.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSimpleAndShapes(t *testing.T) {
	doc := setupEnv(t, sampleExport)
	plain := filepath.Join(t.TempDir(), "plain.json")
	if err := os.WriteFile(plain, []byte(`{"name": "a", "x1": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "format", "simple", plain)
	if err != nil {
		t.Fatalf("format simple error: %v", err)
	}
	if !strings.Contains(out, `name: "a"`) || !strings.Contains(out, `"x1": 2`) {
		t.Errorf("simple output:\n%s", out)
	}

	out, err = runCLI(t, "format", "shapes", doc)
	if err != nil {
		t.Fatalf("format shapes error: %v", err)
	}
	if !strings.Contains(out, "\n    \"draw\"") {
		t.Errorf("shapes output:\n%s", out)
	}
}

func TestCacheCommands(t *testing.T) {
	doc := setupEnv(t, sampleExport)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	out, _ = runCLI(t, "cache", "clear")
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on empty cache:\n%s", out)
	}

	if _, err := runCLI(t, "inspect", doc); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("clear output:\n%s", out)
	}
}

func TestCompletion(t *testing.T) {
	setupEnv(t, sampleExport)
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "stagekit") {
		t.Error("bash completion should mention the program name")
	}
}
