package game

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/fractal-tree/internal/config"
	"github.com/iburimskiy/fractal-tree/internal/logging"
	"github.com/iburimskiy/fractal-tree/internal/tree"
)

type fakeSource struct {
	cfg   config.Config
	err   error
	loads int
}

func (s *fakeSource) Load() (config.Config, error) {
	s.loads++
	if s.err != nil {
		return config.Config{}, s.err
	}
	return s.cfg, nil
}

func baseConfig() config.Config {
	return config.Config{
		StartAngle:           0.2,
		AngularVelocity:      0.5,
		Iterations:           3,
		BranchesPerIteration: 2,
		LineThickness:        2,
		LengthMultiplier:     0.7,
	}
}

func newTestDriver(t *testing.T, src Source) (*Driver, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	start, end := RootAnchors(config.ScreenWidth, config.ScreenHeight)
	d, err := NewDriver(src, start, end, logging.New(&buf, log.DebugLevel))
	if err != nil {
		t.Fatalf("NewDriver() error = %v", err)
	}
	return d, &buf
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// spreadOf recovers the fan half-angle from the root's first child.
func spreadOf(root *tree.Segment) float64 {
	return root.Angle() - root.Children[0].Angle()
}

func TestRootAnchors(t *testing.T) {
	start, end := RootAnchors(1000, 800)
	if start != (tree.Vec{X: 500, Y: 720}) {
		t.Errorf("start = %v, want (500, 720)", start)
	}
	if !near(end.X, 500) || !near(end.Y, 800-(80+800.0/3)) {
		t.Errorf("end = %v, want (500, %v)", end, 800-(80+800.0/3))
	}
}

func TestNewDriver(t *testing.T) {
	src := &fakeSource{cfg: baseConfig()}
	d, _ := newTestDriver(t, src)

	if d.Angle() != 0.2 {
		t.Errorf("Angle() = %v, want start angle 0.2", d.Angle())
	}
	if got := d.Tree().Leaves(); got != 8 {
		t.Errorf("initial tree has %d leaves, want 8", got)
	}
	if got := len(d.Lines()); got != 15 {
		t.Errorf("initial frame has %d lines, want 15", got)
	}
	if !near(spreadOf(d.Tree()), 0.2) {
		t.Errorf("initial spread = %v, want 0.2", spreadOf(d.Tree()))
	}
}

func TestNewDriverLoadError(t *testing.T) {
	src := &fakeSource{err: config.ErrMalformed}
	start, end := RootAnchors(100, 100)
	if _, err := NewDriver(src, start, end, nil); !errors.Is(err, config.ErrMalformed) {
		t.Fatalf("NewDriver() error = %v, want %v", err, config.ErrMalformed)
	}
}

func TestTickAdvancesAngle(t *testing.T) {
	d, _ := newTestDriver(t, &fakeSource{cfg: baseConfig()})

	before := d.Tree()
	if err := d.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if !near(d.Angle(), 0.25) {
		t.Errorf("Angle() = %v, want 0.25", d.Angle())
	}
	if d.Tree() == before {
		t.Error("Tick did not replace the tree")
	}
	if !near(spreadOf(d.Tree()), 0.25) {
		t.Errorf("spread after tick = %v, want 0.25", spreadOf(d.Tree()))
	}

	for i := 0; i < 100; i++ {
		if err := d.Tick(1); err != nil {
			t.Fatal(err)
		}
	}
	if !near(d.Angle(), 50.25) {
		t.Errorf("Angle() = %v, want unwrapped 50.25", d.Angle())
	}
}

func TestTickZeroVelocityKeepsTree(t *testing.T) {
	cfg := baseConfig()
	cfg.AngularVelocity = 0
	d, _ := newTestDriver(t, &fakeSource{cfg: cfg})

	before := d.Tree()
	for i := 0; i < 3; i++ {
		if err := d.Tick(0.016); err != nil {
			t.Fatal(err)
		}
	}
	if d.Tree() != before {
		t.Error("tree regrown although nothing changed")
	}
	if d.Angle() != 0.2 {
		t.Errorf("Angle() = %v, want 0.2", d.Angle())
	}
}

func TestReloadAppliesOnNextTick(t *testing.T) {
	src := &fakeSource{cfg: baseConfig()}
	d, logs := newTestDriver(t, src)

	if err := d.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	inFlight := d.Tree()
	lines := append([]tree.Line(nil), d.Lines()...)

	src.cfg.AngularVelocity = 2.0
	if err := d.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if d.Tree() != inFlight {
		t.Error("Reload replaced the displayed tree before the next tick")
	}
	if len(d.Lines()) != len(lines) || d.Lines()[1] != lines[1] {
		t.Error("Reload changed the displayed lines before the next tick")
	}
	if d.Angle() != 0.2 {
		t.Errorf("Angle() after reload = %v, want start angle 0.2", d.Angle())
	}
	if d.Config().AngularVelocity != 2.0 {
		t.Errorf("AngularVelocity = %v, want 2.0", d.Config().AngularVelocity)
	}

	prev := d.Angle()
	if err := d.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	if delta := d.Angle() - prev; !near(delta, 0.2) {
		t.Errorf("angle delta after reload = %v, want 0.2", delta)
	}
	if d.Tree() == inFlight {
		t.Error("tick after reload did not regrow the tree")
	}

	if !bytes.Contains(logs.Bytes(), []byte("Reloaded config")) {
		t.Errorf("reload not logged: %q", logs.String())
	}
}

func TestReloadWithZeroVelocityRegrows(t *testing.T) {
	cfg := baseConfig()
	cfg.AngularVelocity = 0
	src := &fakeSource{cfg: cfg}
	d, _ := newTestDriver(t, src)

	src.cfg.Iterations = 4
	if err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	if err := d.Tick(0.016); err != nil {
		t.Fatal(err)
	}
	if got := d.Tree().Leaves(); got != 16 {
		t.Errorf("leaves after reload = %d, want 16", got)
	}
}

func TestReloadFailureLeavesState(t *testing.T) {
	src := &fakeSource{cfg: baseConfig()}
	d, _ := newTestDriver(t, src)
	if err := d.Tick(0.1); err != nil {
		t.Fatal(err)
	}
	angle, cfg, tr := d.Angle(), d.Config(), d.Tree()

	src.err = tree.ErrDegenerate
	err := d.Reload()
	if !errors.Is(err, tree.ErrDegenerate) {
		t.Fatalf("Reload() error = %v, want %v", err, tree.ErrDegenerate)
	}
	if d.Angle() != angle || d.Config() != cfg || d.Tree() != tr {
		t.Error("failed reload modified the driver state")
	}
}

func TestLargeTreeWarning(t *testing.T) {
	cfg := baseConfig()
	cfg.AngularVelocity = 0
	src := &fakeSource{cfg: cfg}

	var buf bytes.Buffer
	start, end := RootAnchors(100, 100)
	d, err := NewDriver(src, start, end, logging.New(&buf, log.InfoLevel))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(buf.Bytes(), []byte("very large")) {
		t.Fatalf("small tree triggered a size warning: %q", buf.String())
	}

	// Reload only warns; with zero velocity and no Tick the tree is never grown.
	src.cfg.Iterations = 21
	if err := d.Reload(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("very large")) {
		t.Errorf("large tree did not warn: %q", buf.String())
	}
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		angle float64
		want  string
	}{
		{0, "Angle: 0.000\nRads: 0.000"},
		{math.Pi, "Angle: 180.000\nRads: 3.142"},
		{2*math.Pi + 0.5, "Angle: 28.648\nRads: 0.500"},
		{-0.5, "Angle: 28.648\nRads: 0.500"},
	}

	for _, tt := range tests {
		if got := formatAngle(tt.angle); got != tt.want {
			t.Errorf("formatAngle(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}

	d, _ := newTestDriver(t, &fakeSource{cfg: baseConfig()})
	if got, want := d.Overlay(), formatAngle(0.2); got != want {
		t.Errorf("Overlay() = %q, want %q", got, want)
	}
}
