// Package asset retrieves OBJ and MTL text and composes them into meshes.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/thedaneeffect/ebiten-mesh-viewer/assets"
)

// ErrFetch is matched by every error a Fetcher returns for an asset it
// could not retrieve.
var ErrFetch = errors.New("fetch failed")

// FetchError describes a failed retrieval. Status is the HTTP status code
// when the asset came from a server, zero otherwise.
type FetchError struct {
	Name   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("could not load %s (%d)", e.Name, e.Status)
	}
	return fmt.Sprintf("could not load %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Fetcher returns the raw contents of a named asset. Names use forward
// slashes regardless of the host platform.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FSFetcher reads assets from a file system.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	data, err := fs.ReadFile(f.FS, strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}

const userAgent = "ebiten-mesh-viewer/1.0"

// HTTPFetcher reads assets relative to a base URL.
type HTTPFetcher struct {
	Base   *url.URL
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	target := ref
	if f.Base != nil {
		target = f.Base.JoinPath(ref.Path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Name: name, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}

// NewFetcher picks a Fetcher for root: the embedded assets when root is
// empty, an HTTPFetcher for http(s) URLs and the local directory otherwise.
func NewFetcher(root string) (Fetcher, error) {
	switch {
	case root == "":
		return FSFetcher{FS: assets.FS}, nil
	case strings.HasPrefix(root, "http://"), strings.HasPrefix(root, "https://"):
		base, err := url.Parse(root)
		if err != nil {
			return nil, fmt.Errorf("asset root %q: %w", root, err)
		}
		return HTTPFetcher{Base: base}, nil
	default:
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("asset root: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("asset root %q is not a directory", root)
		}
		return FSFetcher{FS: os.DirFS(root)}, nil
	}
}
