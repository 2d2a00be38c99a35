package surface

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/fractal-tree/internal/tree"
)

// Ebiten draws onto an ebiten image, normally the screen passed to Draw.
type Ebiten struct {
	dst       *ebiten.Image
	antialias bool
}

func NewEbiten(dst *ebiten.Image) *Ebiten {
	return &Ebiten{dst: dst, antialias: true}
}

func (s *Ebiten) Clear(c color.Color) {
	if s.dst != nil {
		s.dst.Fill(c)
	}
}

func (s *Ebiten) StrokeLines(lines []tree.Line) error {
	if s.dst == nil {
		return fmt.Errorf("%w: no target image", ErrSurface)
	}
	for _, l := range lines {
		vector.StrokeLine(s.dst,
			float32(l.Start.X), float32(l.Start.Y),
			float32(l.End.X), float32(l.End.Y),
			float32(l.Thickness), l.Color.NRGBA(), s.antialias)
	}
	return nil
}

// Overlay prints text with its top-left corner at (x, y) using ebiten's debug font.
func (s *Ebiten) Overlay(text string, x, y int) error {
	if s.dst == nil {
		return fmt.Errorf("%w: no target image", ErrSurface)
	}
	ebitenutil.DebugPrintAt(s.dst, text, x, y)
	return nil
}
