package frame

import (
	"math"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

func TestNewClock(t *testing.T) {
	c := NewClock()
	if c.Model() != mgl.Ident4() {
		t.Fatalf("model=%v, want identity", c.Model())
	}
	if got := c.View().Col(3); got != (mgl.Vec4{0, 0, -3, 1}) {
		t.Fatalf("view translation=%v, want [0 0 -3 1]", got)
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	c := NewClock()
	const ticks = 600
	for i := 0; i < ticks; i++ {
		c.Advance()
	}
	if c.Ticks() != ticks {
		t.Fatalf("ticks=%d, want %d", c.Ticks(), ticks)
	}
	want := mgl.HomogRotate3DY(RotationStep * ticks)
	if !c.Model().ApproxEqualThreshold(want, 1e-3) {
		t.Fatalf("model=%v, want %v", c.Model(), want)
	}
}

func TestAdvanceDirection(t *testing.T) {
	c := NewClock()
	c.Advance()
	// A negative rotation about +Y swings +X towards +Z.
	p := c.Model().Mul4x1(mgl.Vec4{1, 0, 0, 1})
	if p.Z() <= 0 || p.Y() != 0 {
		t.Fatalf("rotated x axis=%v", p)
	}
	if d := math.Abs(float64(p.Vec3().Len()) - 1); d > 1e-6 {
		t.Fatalf("rotation changed length by %v", d)
	}
}

func TestResizeIdempotent(t *testing.T) {
	c := NewClock()
	a := c.Resize(1280, 720)
	b := c.Resize(1280, 720)
	if a != b || a != c.Projection() {
		t.Fatalf("projection changed between identical resizes:\n%v\n%v", a, b)
	}
	if w, h := c.Size(); w != 1280 || h != 720 {
		t.Fatalf("size=%dx%d", w, h)
	}
}

func TestResizeMatchesPerspective(t *testing.T) {
	c := NewClock()
	got := c.Resize(800, 400)
	want := mgl.Perspective(mgl.DegToRad(45), 2, 0.1, 100)
	if got != want {
		t.Fatalf("projection=%v, want %v", got, want)
	}
}

func TestResizeZeroHeight(t *testing.T) {
	c := NewClock()
	p := c.Resize(640, 0)
	for i, v := range p {
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			t.Fatalf("projection[%d]=%v", i, v)
		}
	}
	if p != mgl.Perspective(mgl.DegToRad(45), 640, 0.1, 100) {
		t.Fatalf("zero height not clamped to one: %v", p)
	}
	if w, h := c.Size(); w != 640 || h != 1 {
		t.Fatalf("size=%dx%d", w, h)
	}
}

func TestResetKeepsProjection(t *testing.T) {
	c := NewClock()
	p := c.Resize(100, 100)
	c.Advance()
	c.Reset()
	if c.Model() != mgl.Ident4() || c.Ticks() != 0 {
		t.Fatalf("model=%v ticks=%d after reset", c.Model(), c.Ticks())
	}
	if c.Projection() != p {
		t.Fatal("reset touched projection")
	}
}
