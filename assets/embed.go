// Package assets holds the meshes bundled into the binary.
package assets

import "embed"

//go:embed objects
var FS embed.FS
