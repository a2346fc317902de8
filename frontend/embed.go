// Package frontend holds the built editor UI.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var assets embed.FS

// Dist returns the UI bundle rooted at dist/, index.html at its top.
func Dist() (fs.FS, error) {
	return fs.Sub(assets, "dist")
}
