package main

import (
	"context"
	"errors"
	"log"
	"time"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/config"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/loop"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/obj"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/raster"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/viewer"
)

// offscreen projects every frame on the CPU and keeps counts instead of
// drawing anything.
type offscreen struct {
	width, height int
	projector     *raster.Projector
	uniforms      map[string]mgl.Mat4
	uploads       int
	draws         int
	triangles     int
}

func (o *offscreen) SetUniform(name string, m mgl.Mat4) {
	o.uniforms[name] = m
	o.uploads++
}

func (o *offscreen) Clear() {}

func (o *offscreen) DrawArrays(vertices []float32, count int) {
	mvp := o.uniforms[viewer.ProjectionMat].Mul4(o.uniforms[viewer.ViewMat]).Mul4(o.uniforms[viewer.ModelMat])
	o.triangles += len(o.projector.Project(vertices, count, mvp, o.width, o.height)) / 3
	o.draws++
}

func run_headless(ctx context.Context, cfg config.Config, mesh *obj.Mesh) error {
	target := &offscreen{
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		projector: raster.NewProjector(),
		uniforms:  map[string]mgl.Mat4{},
	}
	queue := &loop.Queue{}
	session := viewer.New(mesh, target, queue, nil)
	session.Init(cfg.Window.Width, cfg.Window.Height)

	start := time.Now()
	n, err := loop.Drive(ctx, queue, time.Second/60, *frames)
	session.Stop()

	log.Printf("headless: %d frames in %v, %d uploads, %d draws, %d visible triangles",
		n, time.Since(start).Round(time.Millisecond), target.uploads, target.draws, target.triangles)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
