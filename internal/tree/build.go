package tree

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerate is returned for fewer than two branches per iteration;
	// the angular step between siblings is undefined there.
	ErrDegenerate = errors.New("degenerate parameters")

	// ErrInvalidParams is returned for negative iteration counts and
	// non-positive or non-finite length multipliers.
	ErrInvalidParams = errors.New("invalid tree parameters")
)

// Params control how a tree grows from its root.
type Params struct {
	// Iterations is the number of growth steps.
	Iterations int

	// Branches is the number of children each leaf gets per step.
	Branches int

	// Spread is the half-angle, in radians, of each fan of children.
	Spread float64

	// LengthMultiplier scales a child's length relative to its parent.
	LengthMultiplier float64
}

// Validate reports why p cannot be used to build a tree, if it cannot.
func (p Params) Validate() error {
	if p.Branches < 2 {
		return fmt.Errorf("%w: %d branches per iteration, need at least 2", ErrDegenerate, p.Branches)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("%w: negative iteration count %d", ErrInvalidParams, p.Iterations)
	}
	m := p.LengthMultiplier
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return fmt.Errorf("%w: length multiplier %v must be positive", ErrInvalidParams, m)
	}
	return nil
}

// Build grows a tree from the root segment start→end.
//
// The result depends only on its arguments.
func Build(start, end Vec, p Params) (*Segment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	root := NewSegment(start, end, 0)
	for i := 0; i < p.Iterations; i++ {
		root.Grow(p.Branches, p.Spread, p.LengthMultiplier)
	}
	return root, nil
}
