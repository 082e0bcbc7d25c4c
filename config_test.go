package framy

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Build_defaults(t *testing.T) {
	cfg, warnings, err := DefaultOptions().Build()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 32, cfg.Padding)
	assert.Equal(t, 1920, cfg.Size)
	assert.Equal(t, 1856, cfg.MaxSize())
	assert.Equal(t, FormatJPEG, cfg.Format)
	assert.Equal(t, white, cfg.BorderColor)
	assert.Equal(t, FilterLanczos3, cfg.Filter)
	assert.Equal(t, 75, cfg.Quality)
	assert.Equal(t, ".", cfg.OutDir)
	assert.Equal(t, PolicyAbort, cfg.Policy)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.MirrorOrientations)
}

func TestOptions_Build_cosmeticFallbacks(t *testing.T) {
	opt := DefaultOptions()
	opt.Format = "bogus"
	opt.Color = "zzz"
	opt.Filter = "gaussian"

	cfg, warnings, err := opt.Build()
	require.NoError(t, err)

	assert.Equal(t, FormatPNG, cfg.Format)
	assert.Equal(t, white, cfg.BorderColor)
	assert.Equal(t, FilterLanczos3, cfg.Filter)

	require.Len(t, warnings, 3)
	assert.Equal(t, "format", warnings[0].Field)
	assert.Equal(t, `unknown format "bogus", using png instead`, warnings[0].String())
	assert.Equal(t, "color", warnings[1].Field)
	assert.Equal(t, "filter", warnings[2].Field)
}

func TestOptions_Build_settings(t *testing.T) {
	opt := DefaultOptions()
	opt.Format = "WebP"
	opt.Color = "#102030"
	opt.Filter = "bilinear"
	opt.KeepGoing = true
	opt.Mirror = true
	opt.Workers = 0
	opt.OutDir = "out/../framed/"

	cfg, warnings, err := opt.Build()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, FormatWEBP, cfg.Format)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}, cfg.BorderColor)
	assert.Equal(t, FilterBilinear, cfg.Filter)
	assert.Equal(t, PolicyContinue, cfg.Policy)
	assert.True(t, cfg.MirrorOrientations)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "framed", cfg.OutDir)
}

func TestOptions_Build_invalidGeometry(t *testing.T) {
	for _, tc := range []struct {
		name          string
		padding, size int
		quality       int
	}{
		{name: "padding consumes canvas", padding: 64, size: 32, quality: 75},
		{name: "padding equals half", padding: 16, size: 32, quality: 75},
		{name: "negative padding", padding: -1, size: 32, quality: 75},
		{name: "zero size", padding: 0, size: 0, quality: 75},
		{name: "quality too low", padding: 1, size: 32, quality: 0},
		{name: "quality too high", padding: 1, size: 32, quality: 101},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opt := DefaultOptions()
			opt.Padding = tc.padding
			opt.Size = tc.size
			opt.Quality = tc.quality

			_, _, err := opt.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), err.Error())
		})
	}
}

func TestOptions_Build_zeroPadding(t *testing.T) {
	opt := DefaultOptions()
	opt.Padding = 0
	opt.Size = 1

	cfg, _, err := opt.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxSize())
}

func TestFrameConfig_Validate_qualityOnlyForLossy(t *testing.T) {
	for _, tc := range []struct {
		format   Format
		lossless bool
		valid    bool
	}{
		{format: FormatPNG, valid: true},
		{format: FormatGIF, valid: true},
		{format: FormatTIFF, valid: true},
		{format: FormatWEBP, lossless: true, valid: true},
		{format: FormatWEBP},
		{format: FormatJPEG},
	} {
		cfg := FrameConfig{Padding: 1, Size: 10, OutDir: ".", Format: tc.format, Lossless: tc.lossless}

		err := cfg.Validate()
		if tc.valid {
			assert.NoError(t, err, tc.format.String())
			continue
		}
		require.Error(t, err, tc.format.String())
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "framy.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
padding: 10
format: png
keep_going: true
`), 0o600))

	opt, err := LoadOptions(p, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 10, opt.Padding)
	assert.Equal(t, "png", opt.Format)
	assert.True(t, opt.KeepGoing)
	// Absent keys keep the base value.
	assert.Equal(t, 1920, opt.Size)
	assert.Equal(t, "ffffff", opt.Color)
}

func TestLoadOptions_errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadOptions(filepath.Join(dir, "missing.yaml"), DefaultOptions())
	require.Error(t, err)

	p := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(p, []byte("padding: [1, 2"), 0o600))

	opt, err := LoadOptions(p, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, DefaultOptions(), opt)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x80, A: 0xFF}, c)

	c, err = ParseColor("#00FF7f")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 0xFF, B: 0x7F, A: 0xFF}, c)

	for _, s := range []string{"", "fff", "ff80001", "gg0000", "#"} {
		_, err := ParseColor(s)
		assert.Error(t, err, s)
	}
}

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Format
		ok   bool
	}{
		{in: "png", want: FormatPNG, ok: true},
		{in: "JPG", want: FormatJPEG, ok: true},
		{in: "jpeg", want: FormatJPEG, ok: true},
		{in: "gif", want: FormatGIF, ok: true},
		{in: "webp", want: FormatWEBP, ok: true},
		{in: "tif", want: FormatTIFF, ok: true},
		{in: "bmp", want: FormatPNG, ok: false},
	} {
		got, ok := ParseFormat(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
