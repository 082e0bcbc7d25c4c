package framy

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options holds raw, unvalidated user settings as they come from flags or a config file.
type Options struct {
	Padding   int    `yaml:"padding"`
	Size      int    `yaml:"size"`
	OutDir    string `yaml:"outdir"`
	Format    string `yaml:"format"`
	Color     string `yaml:"color"`
	Filter    string `yaml:"filter"`
	Quality   int    `yaml:"quality"`
	Lossless  bool   `yaml:"lossless"`
	Mirror    bool   `yaml:"mirror"`
	KeepGoing bool   `yaml:"keep_going"`
	Workers   int    `yaml:"workers"`
}

// DefaultOptions returns the settings used when nothing is specified.
func DefaultOptions() Options {
	return Options{
		Padding: defaultPadding,
		Size:    defaultSize,
		OutDir:  defaultOutDir,
		Format:  defaultFormat,
		Color:   defaultColor,
		Filter:  defaultFilter,
		Quality: defaultQuality,
		Workers: defaultWorkers,
	}
}

// LoadOptions reads a YAML config file on top of base, keys absent from the file keep base values.
func LoadOptions(path string, base Options) (Options, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	opt := base
	if err := yaml.Unmarshal(data, &opt); err != nil {
		return base, fmt.Errorf("failed to parse config: %w", err)
	}

	return opt, nil
}

// Warning reports a cosmetic setting that was replaced by its default.
type Warning struct {
	Field    string
	Value    string
	Fallback string
}

func (w Warning) String() string {
	return fmt.Sprintf("unknown %s %q, using %s instead", w.Field, w.Value, w.Fallback)
}

// Build validates options into a FrameConfig.
//
// Malformed cosmetic fields (format, color, filter) never fail, they fall back
// to a default and produce a Warning. Geometry that cannot produce a frame fails
// with ErrInvalidConfiguration.
func (o Options) Build() (FrameConfig, []Warning, error) {
	var warnings []Warning

	cfg := FrameConfig{
		Padding:            o.Padding,
		Size:               o.Size,
		Quality:            o.Quality,
		Lossless:           o.Lossless,
		MirrorOrientations: o.Mirror,
		Workers:            o.Workers,
		OutDir:             normalizeDir(o.OutDir),
	}

	format, ok := ParseFormat(o.Format)
	if !ok {
		warnings = append(warnings, Warning{Field: "format", Value: o.Format, Fallback: format.String()})
	}
	cfg.Format = format

	c, err := ParseColor(o.Color)
	if err != nil {
		c = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
		warnings = append(warnings, Warning{Field: "color", Value: o.Color, Fallback: defaultColor})
	}
	cfg.BorderColor = c

	filter, ok := ParseFilter(o.Filter)
	if !ok {
		warnings = append(warnings, Warning{Field: "filter", Value: o.Filter, Fallback: filter.String()})
	}
	cfg.Filter = filter

	if o.KeepGoing {
		cfg.Policy = PolicyContinue
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg, warnings, cfg.Validate()
}

// Validate checks the invariants a FrameConfig must hold before any image is processed.
func (c FrameConfig) Validate() error {
	if c.Padding < 0 {
		return wrapErr(ErrInvalidConfiguration, "padding %d is negative", c.Padding)
	}
	if c.Size <= 0 {
		return wrapErr(ErrInvalidConfiguration, "size %d is not positive", c.Size)
	}
	if c.MaxSize() <= 0 {
		return wrapErr(ErrInvalidConfiguration, "size %d must exceed twice the padding %d", c.Size, c.Padding)
	}
	if c.usesQuality() && (c.Quality < 1 || c.Quality > 100) {
		return wrapErr(ErrInvalidConfiguration, "quality %d is out of range 1-100", c.Quality)
	}
	if c.OutDir == "" {
		return wrapErr(ErrInvalidConfiguration, "output directory is empty")
	}
	return nil
}

// usesQuality reports whether the output encoder is lossy.
func (c FrameConfig) usesQuality() bool {
	return c.Format == FormatJPEG || (c.Format == FormatWEBP && !c.Lossless)
}

// ParseColor parses a 6-hex-digit RGB color, optionally prefixed with '#'.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}, nil
}

func normalizeDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return defaultOutDir
	}
	return filepath.Clean(dir)
}
