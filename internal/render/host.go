// Package render hosts a viewing session in an ebiten window.
package render

import (
	"fmt"
	"image/color"
	"log"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/loop"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/raster"
	"github.com/thedaneeffect/ebiten-mesh-viewer/internal/viewer"
)

type (
	float = float32
	mat4  = mgl.Mat4
)

// max_batch is the largest vertex count one uint16-indexed draw can address,
// rounded down to whole triangles.
const max_batch = 65535 - 65535%3

type Window struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Vsync     bool
}

type Options struct {
	ClearColor [3]float
	ShowStats  bool
	Logger     *log.Logger
}

// Hooks connect input and window events back to the session.
type Hooks struct {
	Resize func(width, height int)
	Toggle func()
	Status func() string
}

// Host is an ebiten.Game. Its embedded queue is the session's frame
// scheduler, flushed once per Draw, and it implements viewer.Target.
type Host struct {
	loop.Queue

	hooks     Hooks
	clear     color.Color
	stats     bool
	log       *log.Logger
	shader    *ebiten.Shader
	white     *ebiten.Image
	projector *raster.Projector

	model      mat4
	view       mat4
	projection mat4

	screen   *ebiten.Image
	width    int
	height   int
	vertices []ebiten.Vertex
	indices  []uint16
	drawn    int
}

var _ viewer.Target = (*Host)(nil)
var _ loop.Scheduler = (*Host)(nil)

func NewHost(opts Options, hooks Hooks) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Host{
		hooks: hooks,
		clear: color.RGBA{
			R: uint8(opts.ClearColor[0] * 255),
			G: uint8(opts.ClearColor[1] * 255),
			B: uint8(opts.ClearColor[2] * 255),
			A: 255,
		},
		stats:      opts.ShowStats,
		log:        logger,
		white:      white_pixel(),
		projector:  raster.NewProjector(),
		model:      mgl.Ident4(),
		view:       mgl.Ident4(),
		projection: mgl.Ident4(),
	}

	shader, err := ebiten.NewShader([]byte(vertex_color_shader))
	if err != nil {
		// keep going, DrawTriangles with vertex colors looks the same
		h.log.Printf("could not link shader: %v", err)
	} else {
		h.shader = shader
	}
	return h
}

// SetHooks replaces the callbacks, for sessions created after the host.
func (h *Host) SetHooks(hooks Hooks) { h.hooks = hooks }

func (h *Host) SetUniform(name string, m mat4) {
	switch name {
	case viewer.ModelMat:
		h.model = m
	case viewer.ViewMat:
		h.view = m
	case viewer.ProjectionMat:
		h.projection = m
	default:
		h.log.Printf("render: unknown uniform %s", name)
	}
}

func (h *Host) Clear() {
	h.vertices = h.vertices[:0]
	h.drawn = 0
	if h.screen != nil {
		h.screen.Fill(h.clear)
	}
}

func (h *Host) DrawArrays(vertices []float, count int) {
	if h.screen == nil {
		return
	}
	bounds := h.screen.Bounds()
	mvp := h.projection.Mul4(h.view).Mul4(h.model)
	projected := h.projector.Project(vertices, count, mvp, bounds.Dx(), bounds.Dy())

	start := len(h.vertices)
	for _, v := range projected {
		h.vertices = append(h.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   1,
			SrcY:   1,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: 1,
		})
	}
	h.submit(h.screen, h.vertices[start:])
	h.drawn += len(projected) / 3
}

func (h *Host) submit(target *ebiten.Image, vertices []ebiten.Vertex) {
	for len(vertices) > 0 {
		n := min(len(vertices), max_batch)
		batch := vertices[:n]
		vertices = vertices[n:]

		for i := len(h.indices); i < n; i++ {
			h.indices = append(h.indices, uint16(i))
		}
		indices := h.indices[:n]

		if h.shader != nil {
			target.DrawTrianglesShader(batch, indices, h.shader, &ebiten.DrawTrianglesShaderOptions{})
		} else {
			target.DrawTriangles(batch, indices, h.white, &ebiten.DrawTrianglesOptions{})
		}
	}
}

func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && h.hooks.Toggle != nil {
		h.hooks.Toggle()
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.screen = screen
	defer func() { h.screen = nil }()

	// a stopped loop leaves the last frame on screen
	if h.Flush() == 0 {
		screen.Fill(h.clear)
		h.submit(screen, h.vertices)
	}

	if !h.stats {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), 0, 0)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Triangles: %d", h.drawn), 0, 14)
	if h.hooks.Status != nil {
		ebitenutil.DebugPrintAt(screen, h.hooks.Status(), 0, 28)
	}
}

func (h *Host) Layout(outerWidth, outerHeight int) (int, int) {
	// ebiten rejects an empty screen, a minimized window reports one
	outerWidth, outerHeight = max(outerWidth, 1), max(outerHeight, 1)
	if outerWidth != h.width || outerHeight != h.height {
		h.width, h.height = outerWidth, outerHeight
		if h.hooks.Resize != nil {
			h.hooks.Resize(outerWidth, outerHeight)
		}
	}
	return outerWidth, outerHeight
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(h *Host, w Window) error {
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetVsyncEnabled(w.Vsync)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGameWithOptions(h, &ebiten.RunGameOptions{})
}
