// Package viewer ties a compiled mesh, its frame clock and the render loop
// to a drawing target.
package viewer

import (
	"log"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/frame"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/loop"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/obj"
)

// Uniform names as the vertex shader declares them.
const (
	ModelMat      = "ModelMat"
	ViewMat       = "ViewMat"
	ProjectionMat = "ProjectionMat"
)

// Target is the graphics binding a session draws through.
type Target interface {
	SetUniform(name string, m mgl.Mat4)
	Clear()
	DrawArrays(vertices []float32, count int)
}

type Session struct {
	mesh   *obj.Mesh
	target Target
	clock  *frame.Clock
	loop   *loop.Controller
	log    *log.Logger

	ready bool
}

func New(mesh *obj.Mesh, target Target, sched loop.Scheduler, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		mesh:   mesh,
		target: target,
		clock:  frame.NewClock(),
		log:    logger,
	}
	s.loop = loop.NewController(sched, s.clock, s.draw)
	return s
}

// Init uploads the view once, sizes the projection for the surface and
// starts the loop.
func (s *Session) Init(width, height int) {
	s.target.SetUniform(ViewMat, s.clock.View())
	s.Resize(width, height)
	s.ready = true
	s.loop.Start()
}

// Resize recomputes and uploads the projection. Repeated calls with the
// current size upload nothing.
func (s *Session) Resize(width, height int) {
	if w, h := s.clock.Size(); s.ready && w == max(width, 1) && h == max(height, 1) {
		return
	}
	s.target.SetUniform(ProjectionMat, s.clock.Resize(width, height))
}

func (s *Session) Start() {
	if !s.ready {
		s.log.Println("viewer: start before init ignored")
		return
	}
	s.loop.Start()
}

func (s *Session) Stop() { s.loop.Stop() }

func (s *Session) Toggle() {
	if s.loop.State() == loop.Running {
		s.Stop()
	} else {
		s.Start()
	}
}

func (s *Session) State() loop.State   { return s.loop.State() }
func (s *Session) Clock() *frame.Clock { return s.clock }
func (s *Session) Mesh() *obj.Mesh     { return s.mesh }

func (s *Session) draw() {
	s.target.SetUniform(ModelMat, s.clock.Model())
	s.target.Clear()
	s.target.DrawArrays(s.mesh.Vertices, s.mesh.VertexCount)
}
