package asset

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/mtl"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/obj"
)

// Loader fetches and compiles assets one after the other.
type Loader struct {
	Fetcher Fetcher
	Logger  *log.Logger
	Strict  bool
}

// LoadMaterials fetches and parses the MTL library at name.
func (l *Loader) LoadMaterials(ctx context.Context, name string) (mtl.Table, error) {
	src, err := l.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load mtl: %w", err)
	}
	table, err := mtl.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("load mtl %s: %w", name, err)
	}
	l.logger().Printf("successfully loaded materials %s", name)
	return table, nil
}

// LoadMesh fetches the OBJ at name and compiles it. Material libraries it
// references are loaded relative to its directory before the statements
// that follow them are read.
func (l *Loader) LoadMesh(ctx context.Context, name string) (*obj.Mesh, error) {
	src, err := l.Fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load obj: %w", err)
	}
	c := obj.Compiler{
		Resolve: func(ctx context.Context, lib string) (mtl.Table, error) {
			return l.LoadMaterials(ctx, MaterialPath(name, lib))
		},
		Logger: l.Logger,
		Strict: l.Strict,
	}
	mesh, err := c.Compile(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", name, err)
	}
	l.logger().Printf("successfully loaded mesh %s (%d vertices)", name, mesh.VertexCount)
	return mesh, nil
}

// MaterialPath resolves lib against the directory of objPath, which is
// everything before its last slash.
func MaterialPath(objPath, lib string) string {
	i := strings.LastIndex(objPath, "/")
	if i < 0 {
		return lib
	}
	return objPath[:i] + "/" + lib
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}
