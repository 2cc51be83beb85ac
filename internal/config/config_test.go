package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	sheeterrors "github.com/go-drift/bottomsheet/pkg/errors"
	"github.com/go-drift/bottomsheet/pkg/sheet"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Version != "" || len(cfg.Detents) != 0 {
		t.Errorf("Expected empty config, got %+v", cfg)
	}
}

func TestLoadOptional_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, `
version: v1.2.0
detents:
  - 0
  - 240
  - max
  - value: 600
    programmatic: true
index: 1
modal: true
container: 700
springs:
  open:
    duration: 400
  close:
    damping: 0.5
    clamp: false
trace:
  enabled: true
  capacity: 32
`)
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}

	want := []DetentSpec{{Value: 0}, {Value: 240}, {Fill: true}, {Value: 600, Programmatic: true}}
	if len(cfg.Detents) != len(want) {
		t.Fatalf("Expected %d detents, got %d", len(want), len(cfg.Detents))
	}
	for i := range want {
		if cfg.Detents[i] != want[i] {
			t.Errorf("detents[%d]: expected %+v, got %+v", i, want[i], cfg.Detents[i])
		}
	}

	sc, err := cfg.SheetConfig()
	if err != nil {
		t.Fatalf("SheetConfig: %v", err)
	}
	if sc.Index != 1 || !sc.Modal || sc.ContainerExtent != 700 {
		t.Errorf("unexpected sheet config %+v", sc)
	}
	if sc.Detents[2].Kind != sheet.DetentFill || !sc.Detents[3].Programmatic {
		t.Errorf("unexpected detents %v", sc.Detents)
	}
	if sc.OpenSpring.Duration != 400*time.Millisecond || sc.OpenSpring.DampingRatio != 1 || !sc.OpenSpring.OvershootClamping {
		t.Errorf("unexpected open spring %+v", sc.OpenSpring)
	}
	if sc.CloseSpring.DampingRatio != 0.5 || sc.CloseSpring.OvershootClamping || sc.CloseSpring.Duration != 250*time.Millisecond {
		t.Errorf("unexpected close spring %+v", sc.CloseSpring)
	}
	if sc.Trace == nil || sc.Trace.Capacity() != 32 {
		t.Errorf("Expected trace buffer with capacity 32")
	}
}

func TestLoadOptional_JSONC(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, JSONCFile, `{
  // comments and trailing commas are allowed
  "detents": [0, "fill", {"value": 320, "programmatic": true},],
  "springs": {"open": {"velocity": -150}},
}`)
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	want := []DetentSpec{{Value: 0}, {Fill: true}, {Value: 320, Programmatic: true}}
	for i := range want {
		if cfg.Detents[i] != want[i] {
			t.Errorf("detents[%d]: expected %+v, got %+v", i, want[i], cfg.Detents[i])
		}
	}
	sc, err := cfg.SheetConfig()
	if err != nil {
		t.Fatalf("SheetConfig: %v", err)
	}
	if sc.OpenSpring.Velocity == nil || *sc.OpenSpring.Velocity != -150 {
		t.Errorf("Expected open velocity -150, got %v", sc.OpenSpring.Velocity)
	}
	if sc.ContainerExtent != DefaultContainer {
		t.Errorf("Expected default container %d, got %v", DefaultContainer, sc.ContainerExtent)
	}
}

func TestLoadFile_NumericVersion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sheet.yaml", "version: 1\ndetents: [0, max]\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Expected version \"1\", got %q", cfg.Version)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected version 1 to validate, got %v", err)
	}
}

func TestLoadOptional_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, "index: 2\n")
	writeFile(t, dir, JSONCFile, `{"index": 5}`)
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Index != 2 {
		t.Errorf("Expected index from sheet.yaml, got %d", cfg.Index)
	}
}

func TestLoadFile_ParseErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"bad.yaml", "detents: [0, tall]\n"},
		{"nested.yaml", "detents:\n  - [1, 2]\n"},
		{"bad.jsonc", `{"detents": [true]}`},
		{"empty.jsonc", `{"detents": [{"programmatic": true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.data)
			if _, err := LoadFile(path); err == nil {
				t.Errorf("Expected parse error for %s", tt.name)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "sheet.yaml"))
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default version", Config{}, ""},
		{"prerelease", Config{Version: "v1.0.0-rc.1"}, ""},
		{"bare major", Config{Version: "1"}, ""},
		{"bare semver", Config{Version: "1.2.0"}, ""},
		{"bare major two", Config{Version: "2.0.0"}, "version"},
		{"not semver", Config{Version: "1.x"}, "version"},
		{"major two", Config{Version: "v2.0.0"}, "version"},
		{"negative damping", Config{Springs: SpringsSpec{Open: &SpringSpec{Damping: &neg}}}, "springs.open.damping"},
		{"negative duration", Config{Springs: SpringsSpec{Close: &SpringSpec{Duration: &neg}}}, "springs.close.duration"},
		{"negative container", Config{Container: -5}, "container"},
		{"negative capacity", Config{Trace: TraceSpec{Capacity: -1}}, "trace.capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			var se *sheeterrors.SheetError
			if !stderrors.As(err, &se) || se.Kind != sheeterrors.KindConfig {
				t.Fatalf("Expected config SheetError, got %v", err)
			}
			var ce *sheeterrors.ConfigError
			if !stderrors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestSheetConfig_DefaultDetents(t *testing.T) {
	sc, err := (&Config{}).SheetConfig()
	if err != nil {
		t.Fatalf("SheetConfig: %v", err)
	}
	if len(sc.Detents) != 2 || sc.Detents[0] != sheet.Pixels(0) || sc.Detents[1] != sheet.Fill() {
		t.Errorf("Expected [0, fill], got %v", sc.Detents)
	}
	if sc.OpenSpring != sheet.DefaultOpenSpring() || sc.CloseSpring != sheet.DefaultCloseSpring() {
		t.Errorf("Expected default springs")
	}
	if sc.Trace != nil {
		t.Errorf("Expected no trace buffer by default")
	}

	s, err := sheet.NewSheet(sc)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	defer s.Close()
	if got := s.Geometry().Tallest; got != DefaultContainer {
		t.Errorf("Expected tallest %d, got %v", DefaultContainer, got)
	}
}
