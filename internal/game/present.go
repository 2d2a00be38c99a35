package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/iburimskiy/fractal-tree/internal/surface"
	"github.com/iburimskiy/fractal-tree/internal/tree"
)

// Background is the clear color behind the tree.
var Background = tree.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}.NRGBA()

const overlayX, overlayY = 10, 10

// Surface is a drawing target for one frame.
type Surface interface {
	Clear(c color.Color)
	StrokeLines(lines []tree.Line) error
	Overlay(text string, x, y int) error
}

// Present draws the driver's current frame onto s. Errors from s end the
// frame and are returned as surface.ErrSurface.
func Present(s Surface, d *Driver) error {
	s.Clear(Background)
	if err := s.StrokeLines(d.Lines()); err != nil {
		return wrapSurface(err)
	}
	if err := s.Overlay(d.Overlay(), overlayX, overlayY); err != nil {
		return wrapSurface(err)
	}
	return nil
}

func wrapSurface(err error) error {
	if errors.Is(err, surface.ErrSurface) {
		return fmt.Errorf("present frame: %w", err)
	}
	return fmt.Errorf("present frame: %w: %w", surface.ErrSurface, err)
}
