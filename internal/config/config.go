// Package config loads the optional sheet.yaml or sheet.jsonc file used by
// the sheetsim command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	sheeterrors "github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/sheet"
)

// File names searched by LoadOptional, in order.
const (
	YAMLFile  = "sheet.yaml"
	JSONCFile = "sheet.jsonc"
)

// DefaultVersion is assumed when a file omits version.
const DefaultVersion = "v1"

// DefaultContainer is the container extent used when a file omits it.
const DefaultContainer = 800

// Config represents a sheet configuration file.
type Config struct {
	Version   string       `yaml:"version,omitempty" json:"version,omitempty"`
	Detents   []DetentSpec `yaml:"detents,omitempty" json:"detents,omitempty"`
	Index     int          `yaml:"index,omitempty" json:"index,omitempty"`
	Modal     bool         `yaml:"modal,omitempty" json:"modal,omitempty"`
	Container float64      `yaml:"container,omitempty" json:"container,omitempty"`
	Content   float64      `yaml:"content,omitempty" json:"content,omitempty"`
	Springs   SpringsSpec  `yaml:"springs,omitempty" json:"springs,omitempty"`
	Trace     TraceSpec    `yaml:"trace,omitempty" json:"trace,omitempty"`
}

// DetentSpec is one entry of the detents list. It accepts a number, the
// words "max" or "fill", or a mapping with value and programmatic keys.
type DetentSpec struct {
	Fill         bool
	Value        float64
	Programmatic bool
}

// SpringsSpec holds the open and close spring overrides.
type SpringsSpec struct {
	Open  *SpringSpec `yaml:"open,omitempty" json:"open,omitempty"`
	Close *SpringSpec `yaml:"close,omitempty" json:"close,omitempty"`
}

// SpringSpec overrides fields of a default spring. Duration is in
// milliseconds.
type SpringSpec struct {
	Damping  *float64 `yaml:"damping,omitempty" json:"damping,omitempty"`
	Duration *float64 `yaml:"duration,omitempty" json:"duration,omitempty"`
	Clamp    *bool    `yaml:"clamp,omitempty" json:"clamp,omitempty"`
	Velocity *float64 `yaml:"velocity,omitempty" json:"velocity,omitempty"`
}

// TraceSpec enables the gesture trace buffer.
type TraceSpec struct {
	Enabled  bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Capacity int  `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

// LoadOptional reads sheet.yaml or sheet.jsonc from dir if present. A
// directory with neither file yields an empty Config.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range []string{YAMLFile, JSONCFile} {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return &Config{}, nil
}

// LoadFile reads a single configuration file. Files ending in .json or
// .jsonc are parsed as JSON with comments; everything else as YAML.
func LoadFile(path string) (*Config, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return &cfg, nil
}

// Validate checks the version and spring fields.
func (c *Config) Validate() error {
	version := strings.TrimSpace(c.Version)
	if version == "" {
		version = DefaultVersion
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return invalid("version", fmt.Sprintf("%q is not a semantic version", c.Version))
	}
	if major := semver.Major(version); major != DefaultVersion {
		return invalid("version", fmt.Sprintf("unsupported major version %s", major))
	}
	for i, d := range c.Detents {
		if math.IsNaN(d.Value) || math.IsInf(d.Value, 0) {
			return invalid(fmt.Sprintf("detents[%d]", i), "value must be finite")
		}
	}
	if err := c.Springs.Open.validate("springs.open"); err != nil {
		return err
	}
	if err := c.Springs.Close.validate("springs.close"); err != nil {
		return err
	}
	if c.Container < 0 || c.Content < 0 {
		return invalid("container", "extents must not be negative")
	}
	if c.Trace.Capacity < 0 {
		return invalid("trace.capacity", "must not be negative")
	}
	return nil
}

func (s *SpringSpec) validate(field string) error {
	if s == nil {
		return nil
	}
	if s.Damping != nil && !(*s.Damping > 0) {
		return invalid(field+".damping", "must be positive")
	}
	if s.Duration != nil && !(*s.Duration > 0) {
		return invalid(field+".duration", "must be positive")
	}
	return nil
}

func invalid(field, reason string) error {
	return sheeterrors.Config("config.Validate", &sheeterrors.ConfigError{Field: field, Reason: reason})
}

// SheetConfig validates c and converts it to a sheet.Config. Missing
// detents default to [0, fill]; a missing container uses DefaultContainer.
func (c *Config) SheetConfig() (sheet.Config, error) {
	if err := c.Validate(); err != nil {
		return sheet.Config{}, err
	}

	detents := make(sheet.DetentSet, 0, len(c.Detents))
	for _, d := range c.Detents {
		detents = append(detents, d.Detent())
	}
	if len(detents) == 0 {
		detents = sheet.DetentSet{sheet.Pixels(0), sheet.Fill()}
	}

	container := c.Container
	if container == 0 {
		container = DefaultContainer
	}

	cfg := sheet.Config{
		Detents:         detents,
		Index:           c.Index,
		Modal:           c.Modal,
		ContainerExtent: container,
		ContentExtent:   c.Content,
		OpenSpring:      c.Springs.Open.apply(sheet.DefaultOpenSpring()),
		CloseSpring:     c.Springs.Close.apply(sheet.DefaultCloseSpring()),
	}
	if c.Trace.Enabled {
		cfg.Trace = sheet.NewTraceBuffer(c.Trace.Capacity)
	}
	return cfg, nil
}

func (s *SpringSpec) apply(base sheet.SpringConfig) sheet.SpringConfig {
	if s == nil {
		return base
	}
	if s.Damping != nil {
		base.DampingRatio = *s.Damping
	}
	if s.Duration != nil {
		base.Duration = time.Duration(*s.Duration * float64(time.Millisecond))
	}
	if s.Clamp != nil {
		base.OvershootClamping = *s.Clamp
	}
	if s.Velocity != nil {
		v := *s.Velocity
		base.Velocity = &v
	}
	return base
}

// Detent converts the entry to a sheet.Detent.
func (d DetentSpec) Detent() sheet.Detent {
	out := sheet.Pixels(d.Value)
	if d.Fill {
		out = sheet.Fill()
	}
	out.Programmatic = d.Programmatic
	return out
}

// UnmarshalYAML accepts a scalar or a {value, programmatic} mapping.
func (d *DetentSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return d.parseScalar(node.Value)
	case yaml.MappingNode:
		var raw struct {
			Value        yaml.Node `yaml:"value"`
			Programmatic bool      `yaml:"programmatic"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: detent mapping needs a scalar value", node.Line)
		}
		if err := d.parseScalar(raw.Value.Value); err != nil {
			return err
		}
		d.Programmatic = raw.Programmatic
		return nil
	default:
		return fmt.Errorf("line %d: detent must be a number, \"max\", or a mapping", node.Line)
	}
}

// UnmarshalJSON accepts a number, a string, or a {value, programmatic}
// object.
func (d *DetentSpec) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var raw struct {
			Value        json.RawMessage `json:"value"`
			Programmatic bool            `json:"programmatic"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if len(raw.Value) == 0 {
			return fmt.Errorf("detent object needs a value")
		}
		if err := d.UnmarshalJSON(raw.Value); err != nil {
			return err
		}
		d.Programmatic = raw.Programmatic
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.parseScalar(s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("detent must be a number, \"max\", or an object: %w", err)
	}
	*d = DetentSpec{Value: v}
	return nil
}

func (d *DetentSpec) parseScalar(s string) error {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "max", "fill":
		*d = DetentSpec{Fill: true}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid detent %q", s)
	}
	*d = DetentSpec{Value: v}
	return nil
}
