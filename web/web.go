// Package web bundles the HTML templates served by the render surface.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
