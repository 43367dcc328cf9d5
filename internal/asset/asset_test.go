package asset

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/obj"
)

var quiet = log.New(io.Discard, "", 0)

func TestMaterialPath(t *testing.T) {
	tests := []struct {
		obj, lib, want string
	}{
		{"objects/monkey.obj", "monkey.mtl", "objects/monkey.mtl"},
		{"a/b/c.obj", "m.mtl", "a/b/m.mtl"},
		{"a/b/c.obj", "sub/m.mtl", "a/b/sub/m.mtl"},
		{"/abs/c.obj", "m.mtl", "/abs/m.mtl"},
		{"c.obj", "m.mtl", "m.mtl"},
	}
	for _, tt := range tests {
		if got := MaterialPath(tt.obj, tt.lib); got != tt.want {
			t.Fatalf("MaterialPath(%q, %q)=%q, want %q", tt.obj, tt.lib, got, tt.want)
		}
	}
}

func TestFSFetcher(t *testing.T) {
	f := FSFetcher{FS: fstest.MapFS{"x/y.obj": {Data: []byte("v 0 0 0")}}}
	data, err := f.Fetch(context.Background(), "x/y.obj")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 0 0 0" {
		t.Fatalf("data=%q", data)
	}

	_, err = f.Fetch(context.Background(), "missing.obj")
	if !errors.Is(err, ErrFetch) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v, want ErrFetch wrapping fs.ErrNotExist", err)
	}
}

func TestFSFetcherCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := FSFetcher{FS: fstest.MapFS{"a.obj": {}}}
	if _, err := f.Fetch(ctx, "a.obj"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/objects/cube.obj" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "v 1 2 3\n")
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/assets")
	if err != nil {
		t.Fatal(err)
	}
	f := HTTPFetcher{Base: base, Client: srv.Client()}

	data, err := f.Fetch(context.Background(), "objects/cube.obj")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 1 2 3\n" {
		t.Fatalf("data=%q", data)
	}

	_, err = f.Fetch(context.Background(), "objects/none.obj")
	var ferr *FetchError
	if !errors.As(err, &ferr) || ferr.Status != http.StatusNotFound {
		t.Fatalf("err=%v, want 404 FetchError", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("err=%v, want ErrFetch", err)
	}
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(FSFetcher); !ok {
		t.Fatalf("embedded fetcher=%T", f)
	}

	f, err = NewFetcher("https://example.com/static")
	if err != nil {
		t.Fatal(err)
	}
	if h, ok := f.(HTTPFetcher); !ok || h.Base.Host != "example.com" {
		t.Fatalf("http fetcher=%#v", f)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.mtl"), []byte("newmtl a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = NewFetcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Fetch(context.Background(), "a.mtl"); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFetcher(filepath.Join(dir, "a.mtl")); err == nil {
		t.Fatal("file accepted as asset root")
	}
	if _, err := NewFetcher(filepath.Join(dir, "nope")); err == nil {
		t.Fatal("missing directory accepted as asset root")
	}
}

func TestLoadMesh(t *testing.T) {
	fsys := fstest.MapFS{
		"objects/tri.obj": {Data: []byte("mtllib tri.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl blue\nf 1 2 3\n")},
		"objects/tri.mtl": {Data: []byte("newmtl blue\nKd 0 0 1\n")},
	}
	l := Loader{Fetcher: FSFetcher{FS: fsys}, Logger: quiet}
	mesh, err := l.LoadMesh(context.Background(), "objects/tri.obj")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.VertexCount != 3 {
		t.Fatalf("vertex count=%d", mesh.VertexCount)
	}
	for v := 0; v < 3; v++ {
		if b := mesh.Vertices[v*obj.Stride+5]; b != 1 {
			t.Fatalf("vertex %d blue=%v", v, b)
		}
	}
}

func TestLoadMeshMissingMaterial(t *testing.T) {
	fsys := fstest.MapFS{
		"objects/tri.obj": {Data: []byte("mtllib gone.mtl\nv 0 0 0\nf 1 1 1\n")},
	}
	l := Loader{Fetcher: FSFetcher{FS: fsys}, Logger: quiet}
	_, err := l.LoadMesh(context.Background(), "objects/tri.obj")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("err=%v, want ErrFetch", err)
	}
	var lerr *obj.LineError
	if !errors.As(err, &lerr) || lerr.Line != 1 {
		t.Fatalf("err=%v, want line 1", err)
	}
}

func TestLoadMeshMissingObject(t *testing.T) {
	l := Loader{Fetcher: FSFetcher{FS: fstest.MapFS{}}, Logger: quiet}
	if _, err := l.LoadMesh(context.Background(), "objects/none.obj"); !errors.Is(err, ErrFetch) {
		t.Fatalf("err=%v, want ErrFetch", err)
	}
}

func TestLoadEmbeddedCube(t *testing.T) {
	f, err := NewFetcher("")
	if err != nil {
		t.Fatal(err)
	}
	l := Loader{Fetcher: f, Logger: quiet, Strict: true}
	mesh, err := l.LoadMesh(context.Background(), "objects/cube.obj")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Triangles() != 12 {
		t.Fatalf("triangles=%d, want 12", mesh.Triangles())
	}
}
