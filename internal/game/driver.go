package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/fractal-tree/internal/config"
	"github.com/iburimskiy/fractal-tree/internal/tree"
)

// Source supplies the tree settings, on startup and on every reload.
type Source interface {
	Load() (config.Config, error)
}

// State is everything the animation carries from one frame to the next.
type State struct {
	// Angle is the current fan half-angle in radians. It accumulates
	// without wrapping; only the overlay reduces it.
	Angle float64

	Config config.Config
	Tree   *tree.Segment

	lines []tree.Line
	stale bool
}

// Driver advances the animation one frame at a time.
type Driver struct {
	state  State
	src    Source
	start  tree.Vec
	end    tree.Vec
	logger *log.Logger
}

// RootAnchors returns the fixed root segment for a w×h viewport: upright,
// a third of the height long, a tenth of the height above the bottom edge.
func RootAnchors(w, h float64) (start, end tree.Vec) {
	start = tree.Vec{X: w / 2, Y: h - h/10}
	end = tree.Vec{X: w / 2, Y: h - (h/10 + h/3)}
	return start, end
}

// NewDriver loads the initial config from src and grows the first tree.
func NewDriver(src Source, start, end tree.Vec, logger *log.Logger) (*Driver, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &Driver{
		state:  State{Angle: cfg.StartAngle, Config: cfg},
		src:    src,
		start:  start,
		end:    end,
		logger: logger,
	}
	d.warnIfLarge()
	if err := d.rebuild(); err != nil {
		return nil, err
	}
	return d, nil
}

// Tick advances the angle by dt seconds and regrows the tree.
//
// With zero angular velocity and no reload since the last frame nothing
// changes, so the previous tree and lines are kept.
func (d *Driver) Tick(dt float64) error {
	s := &d.state
	if s.Config.AngularVelocity == 0 && !s.stale && s.Tree != nil {
		return nil
	}
	s.Angle += s.Config.AngularVelocity * dt
	return d.rebuild()
}

// Reload re-reads the config. On success the working settings are replaced
// and the angle restarts at start_angle; the tree on screen is regrown by the
// next Tick. On failure the state is left as it was and the error returned.
func (d *Driver) Reload() error {
	cfg, err := d.src.Load()
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	d.state.Config = cfg
	d.state.Angle = cfg.StartAngle
	d.state.stale = true

	d.logger.Info("Reloaded config",
		"start_angle", cfg.StartAngle,
		"angular_velocity", cfg.AngularVelocity,
		"iterations", cfg.Iterations,
		"branches", cfg.BranchesPerIteration)
	d.warnIfLarge()
	return nil
}

func (d *Driver) rebuild() error {
	s := &d.state
	root, err := tree.Build(d.start, d.end, s.Config.Params(s.Angle))
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}

	s.Tree = root
	s.lines = tree.AppendLines(s.lines[:0], root, s.Config.LineThickness, s.Config.Iterations)
	s.stale = false
	return nil
}

func (d *Driver) warnIfLarge() {
	if n := d.state.Config.Segments(); n > config.SegmentWarnThreshold {
		d.logger.Warn("Tree is very large and will be slow to regrow every frame", "segments", n)
	}
}

// Lines are the draw primitives for the current tree. The slice is reused
// by the next Tick.
func (d *Driver) Lines() []tree.Line { return d.state.lines }

func (d *Driver) Angle() float64 { return d.state.Angle }

func (d *Driver) Config() config.Config { return d.state.Config }

func (d *Driver) Tree() *tree.Segment { return d.state.Tree }

// Overlay is the on-screen readout of the current angle.
func (d *Driver) Overlay() string {
	return formatAngle(d.state.Angle)
}
