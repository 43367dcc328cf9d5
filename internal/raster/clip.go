package raster

import (
	"github.com/chewxy/math32"
	mgl "github.com/go-gl/mathgl/mgl32"
)

type (
	float = float32
	vec3  = mgl.Vec3
	vec4  = mgl.Vec4
	mat4  = mgl.Mat4
)

// point is a clip-space position with its color.
type point struct {
	pos vec4
	rgb vec3
}

func lerp_point(a, b point, t float) point {
	return point{
		pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		rgb: a.rgb.Add(b.rgb.Sub(a.rgb).Mul(t)),
	}
}

type plane struct {
	origin vec4
	normal vec4
}

// test determines if `v` is in front of the plane.
func (p plane) test(v vec4) bool {
	return v.Sub(p.origin).Dot(p.normal) > 0
}

// intersection returns how far along a->b the segment touches the plane.
func (p plane) intersection(a, b vec4) float {
	u := b.Sub(a)
	w := a.Sub(p.origin)
	d := p.normal.Dot(u)
	if math32.Abs(d) < 1e-12 {
		return 0
	}
	return -p.normal.Dot(w) / d
}

var clip_planes = [...]plane{
	{origin: vec4{1, 0, 0, 1}, normal: vec4{-1, 0, 0, 1}}, // right
	{origin: vec4{-1, 0, 0, 1}, normal: vec4{1, 0, 0, 1}}, // left
	{origin: vec4{0, 1, 0, 1}, normal: vec4{0, -1, 0, 1}}, // bottom
	{origin: vec4{0, -1, 0, 1}, normal: vec4{0, 1, 0, 1}}, // top
	{origin: vec4{0, 0, 1, 1}, normal: vec4{0, 0, -1, 1}}, // front
	{origin: vec4{0, 0, -1, 1}, normal: vec4{0, 0, 1, 1}}, // back
}

func out_of_bounds(a vec4) bool {
	x, y, z, w := a.X(), a.Y(), a.Z(), a.W()
	return x < -w || x > w || y < -w || y > w || z < -w || z > w
}

// clipper keeps two polygon buffers so clipping does not allocate per
// triangle. A triangle clipped by six planes has at most nine corners.
type clipper struct {
	a [9]point
	b [9]point
}

// https://en.wikipedia.org/wiki/Sutherland-Hodgman_algorithm
func (c *clipper) clip(p1, p2, p3 point) []point {
	output := append(c.b[:0], p1, p2, p3)
	for _, plane := range clip_planes {
		copy(c.a[:], output)
		input := c.a[:len(output)]
		output = c.b[:0]
		if len(input) == 0 {
			return nil
		}
		prev := input[len(input)-1]
		for _, cur := range input {
			if plane.test(cur.pos) {
				if !plane.test(prev.pos) {
					output = append(output, lerp_point(prev, cur, plane.intersection(prev.pos, cur.pos)))
				}
				output = append(output, cur)
			} else if plane.test(prev.pos) {
				output = append(output, lerp_point(prev, cur, plane.intersection(prev.pos, cur.pos)))
			}
			prev = cur
		}
	}
	return output
}
