package tree

import "image/color"

// Color has four channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Gray is an opaque grey of the given intensity.
func Gray(v float64) Color { return Color{R: v, G: v, B: v, A: 1} }

// NRGBA converts c to 8-bit channels, clamping out-of-range values.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Line is a drawable primitive: one segment with its color and width.
type Line struct {
	Start, End Vec
	Color      Color
	Thickness  float64
}

// Intensity is the grey level for a generation: 1/3 at the root, rising
// linearly to 1 at maxGeneration. A maxGeneration below 1 counts as 1.
func Intensity(generation, maxGeneration int) float64 {
	if maxGeneration < 1 {
		maxGeneration = 1
	}
	return (0.5 + float64(generation)/float64(maxGeneration)) / 1.5
}

// Render flattens the tree below root into one Line per segment,
// in pre-order.
func Render(root *Segment, thickness float64, maxGeneration int) []Line {
	if root == nil {
		return nil
	}
	return AppendLines(make([]Line, 0, root.Count()), root, thickness, maxGeneration)
}

// AppendLines is Render writing into dst, so a caller can reuse one
// buffer across frames.
func AppendLines(dst []Line, root *Segment, thickness float64, maxGeneration int) []Line {
	if root == nil {
		return dst
	}
	root.Walk(func(s *Segment) {
		dst = append(dst, Line{
			Start:     s.Start,
			End:       s.End,
			Color:     Gray(Intensity(s.Generation, maxGeneration)),
			Thickness: thickness,
		})
	})
	return dst
}
