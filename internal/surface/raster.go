package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/fractal-tree/internal/tree"
)

const overlayFontSize = 14

// Raster draws with gg's software renderer. Nothing is shown on screen;
// the result is read back with Image or SavePNG.
type Raster struct {
	dc   *gg.Context
	font *text.FontSource
	face text.Face
}

// NewRaster creates a width×height raster with the Go Regular font
// loaded for overlays.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid raster size %dx%d", ErrSurface, width, height)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: load overlay font: %w", ErrSurface, err)
	}
	return &Raster{
		dc:   gg.NewContext(width, height),
		font: src,
		face: src.Face(overlayFontSize),
	}, nil
}

func (s *Raster) Clear(c color.Color) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

func (s *Raster) StrokeLines(lines []tree.Line) error {
	s.dc.SetLineCap(gg.LineCapRound)
	for i, l := range lines {
		s.dc.SetRGBA(l.Color.R, l.Color.G, l.Color.B, l.Color.A)
		s.dc.SetLineWidth(l.Thickness)
		s.dc.DrawLine(l.Start.X, l.Start.Y, l.End.X, l.End.Y)
		if err := s.dc.Stroke(); err != nil {
			return fmt.Errorf("%w: stroke line %d: %w", ErrSurface, i, err)
		}
	}
	return nil
}

// Overlay draws text in white with its top-left corner at (x, y),
// one row per line of text.
func (s *Raster) Overlay(msg string, x, y int) error {
	s.dc.SetFont(s.face)
	s.dc.SetRGBA(1, 1, 1, 1)
	for i, row := range strings.Split(msg, "\n") {
		baseline := float64(y) + float64(i+1)*overlayFontSize
		s.dc.DrawString(row, float64(x), baseline)
	}
	return nil
}

func (s *Raster) Image() image.Image {
	return s.dc.Image()
}

func (s *Raster) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrSurface, path, err)
	}
	return nil
}

func (s *Raster) Close() error {
	return errors.Join(s.dc.Close(), s.font.Close())
}
