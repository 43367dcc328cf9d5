package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("cfg=%+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	src := `
window:
  width: 640
assets:
  root: https://example.com/static
  mesh: objects/monkey.obj
render:
  clear_color: [0, 0, 0.5]
strict: true
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 768 {
		t.Fatalf("window=%+v, want width override and default height", cfg.Window)
	}
	if cfg.Assets.Root != "https://example.com/static" || cfg.Assets.Mesh != "objects/monkey.obj" {
		t.Fatalf("assets=%+v", cfg.Assets)
	}
	if cfg.Render.ClearColor != [3]float32{0, 0, 0.5} || !cfg.Render.ShowStats {
		t.Fatalf("render=%+v", cfg.Render)
	}
	if !cfg.Strict {
		t.Fatal("strict not set")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax": "window: [",
		"size":   "window:\n  height: 0\n",
		"color":  "render:\n  clear_color: [2, 0, 0]\n",
		"mesh":   "assets:\n  mesh: \"\"\n",
	}
	for name, src := range tests {
		path := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: invalid config accepted", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "viewer.yaml")
	want := Default()
	want.Window.Title = "monkey"
	want.Strict = true
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
