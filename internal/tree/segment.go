// Package tree generates branching fractal trees as line segments.
//
// A tree is regrown from a single root segment every time it is needed:
// each growth step attaches a fan of children to every leaf, so after k
// steps every root-to-leaf path has exactly k branchings.
package tree

// A Segment is one branch of the tree.
//
// Its own geometry is fixed once created; growth only ever adds children.
type Segment struct {
	Start, End Vec

	// Generation is the depth of the segment. The root is 0.
	Generation int

	// Children are in creation order, which is increasing angle.
	// A segment has either no children or exactly the tree's branch count.
	Children []*Segment

	angle  float64
	length float64
}

// NewSegment creates a childless segment and caches its polar form.
func NewSegment(start, end Vec, generation int) *Segment {
	d := end.Sub(start)
	return &Segment{
		Start:      start,
		End:        end,
		Generation: generation,
		angle:      d.Angle(),
		length:     d.Len(),
	}
}

// Angle is the segment's own direction in radians.
func (s *Segment) Angle() float64 { return s.angle }

// Length is the distance from Start to End.
func (s *Segment) Length() float64 { return s.length }

// IsLeaf reports whether the segment has no children yet.
func (s *Segment) IsLeaf() bool { return len(s.Children) == 0 }

// Grow applies one growth step below s: every leaf reached from s gets
// branches children fanned across [angle-spread, angle+spread], each
// mult times as long as its parent.
//
// Grow does nothing when branches < 2.
func (s *Segment) Grow(branches int, spread, mult float64) {
	if branches < 2 {
		return
	}
	if !s.IsLeaf() {
		for _, c := range s.Children {
			c.Grow(branches, spread, mult)
		}
		return
	}

	length := s.length * mult
	step := 2 * spread / float64(branches-1)

	s.Children = make([]*Segment, 0, branches)
	for i := 0; i < branches; i++ {
		a := s.angle - spread + float64(i)*step
		end := s.End.Add(Polar(a, length))
		s.Children = append(s.Children, NewSegment(s.End, end, s.Generation+1))
	}
}

// Walk calls fn for s and every descendant, parents before children.
func (s *Segment) Walk(fn func(*Segment)) {
	fn(s)
	for _, c := range s.Children {
		c.Walk(fn)
	}
}

// Leaves counts the childless segments at or below s.
func (s *Segment) Leaves() int {
	n := 0
	s.Walk(func(seg *Segment) {
		if seg.IsLeaf() {
			n++
		}
	})
	return n
}

// Count returns the number of segments at or below s, s included.
func (s *Segment) Count() int {
	n := 0
	s.Walk(func(*Segment) { n++ })
	return n
}
