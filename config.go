package arm

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/setanarut/vec"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Point is a YAML friendly [x, y] pair.
type Point [2]float64

func (p Point) Vec() vec.Vec2 {
	return vec.Vec2{X: p[0], Y: p[1]}
}

// Config describes an arm, its tuning and the obstacles around it.
type Config struct {
	Tick      time.Duration    `yaml:"tick"`
	Seed      int64            `yaml:"seed"`
	Log       LogConfig        `yaml:"log"`
	Arm       ArmConfig        `yaml:"arm"`
	Solver    SolverConfig     `yaml:"solver"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path is a file path or "stderr". Empty disables logging.
	Path string `yaml:"path"`
}

type ArmConfig struct {
	Root      Point           `yaml:"root"`
	Direction float64         `yaml:"direction"`
	Segments  []SegmentConfig `yaml:"segments"`
	// HoldRadius, when positive, gives the arm a ball of that radius to carry.
	HoldRadius float64 `yaml:"hold_radius"`
}

type SegmentConfig struct {
	Length   float64 `yaml:"length"`
	MaxSpeed float64 `yaml:"max_speed"`
	Width    float64 `yaml:"width"`
	Color    string  `yaml:"color"`
}

type SolverConfig struct {
	SparkSpeed  float64 `yaml:"spark_speed"`
	SparkChance float64 `yaml:"spark_chance"`
}

// ObstacleConfig is one collider. Type selects which of the shape fields
// are read: circle (center, radius), half_plane (point, normal), polygon
// (points) or ellipse (center, axes, rotation).
type ObstacleConfig struct {
	Type     string  `yaml:"type"`
	Center   Point   `yaml:"center,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Point    Point   `yaml:"point,omitempty"`
	Normal   Point   `yaml:"normal,omitempty"`
	Points   []Point `yaml:"points,omitempty"`
	Axes     Point   `yaml:"axes,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty"`
	Layer    string  `yaml:"layer,omitempty"`
	Soft     bool    `yaml:"soft,omitempty"`
}

// DefaultConfig returns a three segment arm on a 20 ms tick with no
// obstacles.
func DefaultConfig() *Config {
	return &Config{
		Tick: 20 * time.Millisecond,
		Seed: 1,
		Log:  LogConfig{Level: "info"},
		Arm: ArmConfig{
			Direction: math.Pi / 2,
			Segments: []SegmentConfig{
				{Length: 100, MaxSpeed: 150, Width: 12, Color: "#d0d0d0"},
				{Length: 80, MaxSpeed: 150, Width: 8, Color: "#a0a0a0"},
				{Length: 50, MaxSpeed: 150, Width: 5, Color: "#707070"},
			},
		},
		Solver: SolverConfig{
			SparkSpeed:  DefaultSparkSpeed,
			SparkChance: DefaultSparkChance,
		},
	}
}

// LoadConfig decodes YAML from r on top of DefaultConfig and validates it.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads the config at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate reports every problem found, each wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig))
	}

	if c.Tick <= 0 {
		invalid("tick %v must be positive", c.Tick)
	}
	if len(c.Arm.Segments) == 0 {
		invalid("arm has no segments")
	}
	for i, s := range c.Arm.Segments {
		if !(s.Length > 0) {
			invalid("segment %d length %v must be positive", i, s.Length)
		}
		if s.MaxSpeed < 0 || math.IsNaN(s.MaxSpeed) {
			invalid("segment %d max_speed %v must not be negative", i, s.MaxSpeed)
		}
		if _, err := ParseColor(s.Color); err != nil {
			invalid("segment %d color %q", i, s.Color)
		}
	}
	if c.Arm.HoldRadius < 0 {
		invalid("hold_radius %v must not be negative", c.Arm.HoldRadius)
	}
	for i, o := range c.Obstacles {
		if _, err := o.Collider(); err != nil {
			invalid("obstacle %d: %v", i, err)
		}
	}
	return errs
}

// BuildChain creates the configured chain. Every joint starts at zero with
// the whole arm pointing along Direction.
func (c *Config) BuildChain() (*Chain, error) {
	lengths := make([]float64, len(c.Arm.Segments))
	for i, s := range c.Arm.Segments {
		lengths[i] = s.Length
	}
	chain, err := NewStraightChain(c.Arm.Root.Vec(), c.Arm.Direction, lengths, 0)
	if err != nil {
		return nil, err
	}
	for i, s := range c.Arm.Segments {
		chain.Segment(i).MaxSpeed = s.MaxSpeed
	}
	return chain, nil
}

// BuildColliders creates a collider per obstacle.
func (c *Config) BuildColliders() ([]*Collider, error) {
	colliders := make([]*Collider, 0, len(c.Obstacles))
	for i, o := range c.Obstacles {
		col, err := o.Collider()
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		colliders = append(colliders, col)
	}
	return colliders, nil
}

// BuildSolver creates a solver with the configured tuning and seed.
func (c *Config) BuildSolver(opts ...SolverOption) *Solver {
	opts = append([]SolverOption{
		WithSeed(c.Seed),
		WithSparks(c.Solver.SparkSpeed, c.Solver.SparkChance),
	}, opts...)
	return NewSolver(opts...)
}

// Styles returns the visual attributes of each segment keyed by index.
func (c *Config) Styles() map[int]BoneStyle {
	styles := make(map[int]BoneStyle, len(c.Arm.Segments))
	for i, s := range c.Arm.Segments {
		fill, _ := ParseColor(s.Color)
		styles[i] = BoneStyle{Width: s.Width, Fill: fill}
	}
	return styles
}

// Collider builds the collider described by o.
func (o ObstacleConfig) Collider() (*Collider, error) {
	var layer Layer
	switch o.Layer {
	case "", "any":
		layer = LayerAnySegment
	case "end":
		layer = LayerEndOnly
	default:
		return nil, fmt.Errorf("unknown layer %q: %w", o.Layer, ErrInvalidShape)
	}

	var (
		shape IShape
		err   error
	)
	switch o.Type {
	case "circle":
		shape, err = NewCircle(o.Center.Vec(), o.Radius)
	case "half_plane":
		shape, err = NewHalfPlane(o.Point.Vec(), o.Normal.Vec())
	case "polygon":
		points := make([]vec.Vec2, len(o.Points))
		for i, p := range o.Points {
			points[i] = p.Vec()
		}
		shape, err = NewPolyShape(points)
	case "ellipse":
		shape, err = NewEllipse(o.Center.Vec(), o.Axes.Vec(), o.Rotation)
	default:
		return nil, fmt.Errorf("unknown obstacle type %q: %w", o.Type, ErrInvalidShape)
	}
	if err != nil {
		return nil, err
	}
	return &Collider{Class: shape, Layer: layer, Soft: o.Soft, UserData: o.Type}, nil
}

// ParseColor parses "#rrggbb". The empty string is opaque white.
func ParseColor(s string) (FColor, error) {
	if s == "" {
		return FColor{1, 1, 1, 1}, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return FColor{}, fmt.Errorf("color %q: expected #rrggbb", s)
	}
	rgb, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return FColor{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)
	return FColor{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}, nil
}
