// Package raster turns an interleaved position+color buffer into
// screen-space triangles: clip, perspective divide, cull and depth sort.
package raster

import (
	"cmp"
	"slices"
)

const stride = 6

// Vertex is a screen-space vertex. X and Y are pixels with Y growing
// downwards, Z is the normalized device depth.
type Vertex struct {
	X, Y, Z float
	R, G, B float
}

type triangle struct {
	v     [3]Vertex
	depth float
}

// Projector reuses its buffers between frames.
type Projector struct {
	clipper   clipper
	triangles []triangle
	out       []Vertex

	// CullBackFaces drops triangles wound clockwise on screen.
	CullBackFaces bool
}

func NewProjector() *Projector {
	return &Projector{CullBackFaces: true}
}

// Project transforms count vertices of buf by mvp into a width x height
// viewport and returns the visible triangles ordered back to front. The
// returned slice is only valid until the next call.
func (p *Projector) Project(buf []float, count int, mvp mat4, width, height int) []Vertex {
	p.triangles = p.triangles[:0]
	p.out = p.out[:0]

	count = min(count, len(buf)/stride)
	count -= count % 3

	w_half := float(width) / 2
	h_half := float(height) / 2

	for i := 0; i < count; i += 3 {
		var corners [3]point
		clipped := false
		for j := range corners {
			o := (i + j) * stride
			pos := mvp.Mul4x1(vec4{buf[o], buf[o+1], buf[o+2], 1})
			corners[j] = point{pos: pos, rgb: vec3{buf[o+3], buf[o+4], buf[o+5]}}
			clipped = clipped || out_of_bounds(pos)
		}

		if !clipped {
			p.emit(corners[0], corners[1], corners[2], w_half, h_half)
			continue
		}
		polygon := p.clipper.clip(corners[0], corners[1], corners[2])
		for k := 2; k < len(polygon); k++ {
			p.emit(polygon[0], polygon[k-1], polygon[k], w_half, h_half)
		}
	}

	// no depth buffer: draw far triangles first
	slices.SortStableFunc(p.triangles, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
	for _, t := range p.triangles {
		p.out = append(p.out, t.v[0], t.v[1], t.v[2])
	}
	return p.out
}

func (p *Projector) emit(a, b, c point, w_half, h_half float) {
	if a.pos.W() <= 0 || b.pos.W() <= 0 || c.pos.W() <= 0 {
		return
	}
	na := a.pos.Vec3().Mul(1 / a.pos.W())
	nb := b.pos.Vec3().Mul(1 / b.pos.W())
	nc := c.pos.Vec3().Mul(1 / c.pos.W())

	// 2d cross product
	dx12 := nb.X() - na.X()
	dy12 := nb.Y() - na.Y()
	dx13 := nc.X() - na.X()
	dy13 := nc.Y() - na.Y()
	if p.CullBackFaces && dx12*dy13-dx13*dy12 <= 0 {
		return
	}

	p.triangles = append(p.triangles, triangle{
		v: [3]Vertex{
			screen_vertex(na, a.rgb, w_half, h_half),
			screen_vertex(nb, b.rgb, w_half, h_half),
			screen_vertex(nc, c.rgb, w_half, h_half),
		},
		depth: (na.Z() + nb.Z() + nc.Z()) / 3,
	})
}

func viewport_transform(ndc, dimension_half float) float {
	return dimension_half*ndc + dimension_half
}

func screen_vertex(ndc, rgb vec3, w_half, h_half float) Vertex {
	return Vertex{
		X: viewport_transform(ndc.X(), w_half),
		Y: 2*h_half - viewport_transform(ndc.Y(), h_half),
		Z: ndc.Z(),
		R: rgb.X(),
		G: rgb.Y(),
		B: rgb.Z(),
	}
}
