// Package obj compiles Wavefront OBJ meshes into an interleaved
// position+color vertex buffer ready for a static GPU upload.
package obj

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/mtl"
)

type (
	float = float32
	vec2  = mgl.Vec2
	vec3  = mgl.Vec3
)

const (
	// Stride is the number of floats per vertex: position xyz then color rgb.
	Stride = 6

	PrimitiveTriangles = "TRIANGLES"
)

// Mesh is a compiled, non-indexed triangle list.
type Mesh struct {
	Primitive   string
	Vertices    []float
	VertexCount int
}

// Triangles returns the number of triangles in the buffer.
func (m *Mesh) Triangles() int {
	return m.VertexCount / 3
}

// ResolveFunc loads the material library named by an mtllib statement.
type ResolveFunc func(ctx context.Context, lib string) (mtl.Table, error)

// Compiler turns OBJ source into a Mesh. The zero value compiles meshes
// without materials and logs to the standard logger.
type Compiler struct {
	Resolve ResolveFunc
	Logger  *log.Logger

	// Strict turns unknown material references and unresolvable mtllib
	// statements into errors instead of warnings.
	Strict bool
}

// Parse compiles src using resolve for mtllib statements.
func Parse(ctx context.Context, src []byte, resolve ResolveFunc) (*Mesh, error) {
	c := Compiler{Resolve: resolve}
	return c.Compile(ctx, src)
}

// scratch holds the per-document lists. Normals and coordinates are
// collected but never emitted.
type scratch struct {
	positions []vec3
	normals   []vec3
	coords    []vec2
	vertices  []float
	materials mtl.Table
	color     vec3
}

// Compile runs a single pass over src. Material libraries are resolved
// synchronously when their mtllib line is reached, so a usemtl only sees
// libraries declared above it.
func (c *Compiler) Compile(ctx context.Context, src []byte) (*Mesh, error) {
	s := &scratch{}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := c.statement(ctx, s, fields, line); err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	return &Mesh{
		Primitive:   PrimitiveTriangles,
		Vertices:    s.vertices,
		VertexCount: len(s.vertices) / Stride,
	}, nil
}

func (c *Compiler) statement(ctx context.Context, s *scratch, fields []string, line int) error {
	switch fields[0] {
	case "mtllib":
		return c.mtllib(ctx, s, fields[1:], line)
	case "usemtl":
		return c.usemtl(s, fields[1:], line)
	case "v":
		p, err := parse_vec3(fields)
		if err != nil {
			return err
		}
		s.positions = append(s.positions, p)
	case "vn":
		n, err := parse_vec3(fields)
		if err != nil {
			return err
		}
		s.normals = append(s.normals, n)
	case "vt":
		t, err := parse_vec2(fields)
		if err != nil {
			return err
		}
		s.coords = append(s.coords, t)
	case "f":
		return s.face(fields[1:])
	}
	return nil
}

func (c *Compiler) mtllib(ctx context.Context, s *scratch, libs []string, line int) error {
	if len(libs) == 0 {
		return nil
	}
	if c.Resolve == nil {
		if c.Strict {
			return ErrNoResolver
		}
		c.logger().Printf("obj line %d: ignoring mtllib %s: no resolver", line, strings.Join(libs, " "))
		return nil
	}
	table := mtl.Table{}
	for _, lib := range libs {
		loaded, err := c.Resolve(ctx, lib)
		if err != nil {
			return fmt.Errorf("mtllib %s: %w", lib, err)
		}
		table.Merge(loaded)
	}
	s.materials = table
	return nil
}

func (c *Compiler) usemtl(s *scratch, args []string, line int) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	color, ok := s.materials.Lookup(name)
	if !ok {
		if c.Strict {
			return fmt.Errorf("%w %q", ErrUnknownMaterial, name)
		}
		c.logger().Printf("obj line %d: unknown material %q, keeping previous color", line, name)
		return nil
	}
	s.color = color
	return nil
}

// face emits one triangle. Only the position sub-index of each corner is
// read; texture and normal sub-indices are ignored.
func (s *scratch) face(corners []string) error {
	if len(corners) != 3 {
		return fmt.Errorf("%w: %d corners, want 3", ErrMalformedFace, len(corners))
	}
	for _, corner := range corners {
		p, err := s.position(corner)
		if err != nil {
			return err
		}
		s.vertices = append(s.vertices,
			p.X(), p.Y(), p.Z(),
			s.color.X(), s.color.Y(), s.color.Z(),
		)
	}
	return nil
}

func (s *scratch) position(corner string) (vec3, error) {
	ref, _, _ := strings.Cut(corner, "/")
	index, err := strconv.Atoi(ref)
	if err != nil {
		return vec3{}, fmt.Errorf("%w: bad corner %q", ErrMalformedFace, corner)
	}
	// negative indices count back from the last declared position
	if index < 0 {
		index += len(s.positions) + 1
	}
	if index < 1 || index > len(s.positions) {
		return vec3{}, fmt.Errorf("%w: %s with %d positions", ErrFaceIndex, ref, len(s.positions))
	}
	return s.positions[index-1], nil
}

func (c *Compiler) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

func parse_floats(fields []string, out []float) error {
	if len(fields) < len(out)+1 {
		return fmt.Errorf("%w: %s has %d components, want %d", ErrMalformedVertex, fields[0], len(fields)-1, len(out))
	}
	for i := range out {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrMalformedVertex, fields[0], fields[i+1])
		}
		out[i] = float(f)
	}
	return nil
}

func parse_vec3(fields []string) (v vec3, err error) {
	err = parse_floats(fields, v[:])
	return
}

func parse_vec2(fields []string) (v vec2, err error) {
	err = parse_floats(fields, v[:])
	return
}
