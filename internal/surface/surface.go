// Package surface draws tree line primitives and a text overlay onto a
// target: the ebiten window or an in-memory raster that can be saved as PNG.
package surface

import "errors"

// ErrSurface marks a failure reported by a drawing target.
var ErrSurface = errors.New("render surface failure")
