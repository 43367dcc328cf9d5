package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// the vertices already carry the material color, the fragment stage only
// passes it through
var vertex_color_shader = `
//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, rgba vec4) vec4 {
	return rgba
}
`

// white_pixel is the source image for the DrawTriangles fallback. Sampling
// a one pixel sub image keeps filtering from bleeding in the border.
func white_pixel() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
