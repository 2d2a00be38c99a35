package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/iburimskiy/fractal-tree/internal/tree"
)

const (
	ScreenWidth  = 1000
	ScreenHeight = 800

	WindowTitle = "Tree"

	// DefaultPath is where the tree settings are read from unless --config says otherwise.
	DefaultPath = "./config.toml"

	// Trees above this many segments are allowed but slow to regrow every frame.
	SegmentWarnThreshold = 1 << 20
)

var (
	// ErrMalformed covers missing fields, wrongly typed fields and out-of-range values.
	ErrMalformed = errors.New("malformed config")

	// ErrUnreadable is returned when the config file cannot be opened or read.
	ErrUnreadable = errors.New("unreadable config")
)

// Config holds the tree and animation settings.
type Config struct {
	StartAngle           float64 `toml:"start_angle"`
	AngularVelocity      float64 `toml:"angular_velocity"`
	Iterations           int     `toml:"iterations"`
	BranchesPerIteration int     `toml:"branches_per_iteration"`
	LineThickness        float64 `toml:"line_thickness"`
	LengthMultiplier     float64 `toml:"length_multiplier"`
}

// requiredKeys lists every key a config file must set. There are no defaults.
var requiredKeys = []string{
	"start_angle",
	"angular_velocity",
	"iterations",
	"branches_per_iteration",
	"line_thickness",
	"length_multiplier",
}

// Params returns the growth parameters for a tree fanned at spread radians.
func (c Config) Params(spread float64) tree.Params {
	return tree.Params{
		Iterations:       c.Iterations,
		Branches:         c.BranchesPerIteration,
		Spread:           spread,
		LengthMultiplier: c.LengthMultiplier,
	}
}

// Segments is the size of the tree c generates, root included.
// It saturates at math.MaxInt.
func (c Config) Segments() int {
	total, level := 1, 1
	for i := 0; i < c.Iterations; i++ {
		if level > math.MaxInt/max(c.BranchesPerIteration, 1) {
			return math.MaxInt
		}
		level *= c.BranchesPerIteration
		if total > math.MaxInt-level {
			return math.MaxInt
		}
		total += level
	}
	return total
}

// Validate checks value ranges. Fewer than two branches is reported as
// tree.ErrDegenerate; every other violation as ErrMalformed.
func (c Config) Validate() error {
	for key, v := range map[string]float64{
		"start_angle":      c.StartAngle,
		"angular_velocity": c.AngularVelocity,
		"line_thickness":   c.LineThickness,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrMalformed, key)
		}
	}
	if c.LineThickness <= 0 {
		return fmt.Errorf("%w: line_thickness %v must be positive", ErrMalformed, c.LineThickness)
	}

	err := c.Params(c.StartAngle).Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tree.ErrDegenerate):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

// Decode reads a TOML config from r. Every field in requiredKeys must be
// present with the right type.
func Decode(r io.Reader) (Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	for _, key := range requiredKeys {
		if !md.IsDefined(key) {
			return Config{}, fmt.Errorf("%w: missing field %q", ErrMalformed, key)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load opens path and decodes it.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FileSource loads the config from a file each time it is asked.
type FileSource struct {
	Path string
}

func (s FileSource) Load() (Config, error) {
	return Load(s.Path)
}
