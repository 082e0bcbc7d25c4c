package framy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// FramerOptions controls side channels of a Framer.
type FramerOptions struct {
	Logger *slog.Logger
	// Stdout receives the "<path> done" line for every framed image.
	Stdout   io.Writer
	OnResult func(res *Result)
}

// Framer runs the frame pipeline for a fixed FrameConfig.
type Framer struct {
	cfg      FrameConfig
	log      *slog.Logger
	stdout   io.Writer
	onResult func(res *Result)
}

// New validates cfg and returns a Framer.
func New(cfg FrameConfig, opts ...func(o *FramerOptions)) (*Framer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opt := FramerOptions{
		Logger: slog.Default(),
		Stdout: os.Stdout,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return &Framer{
		cfg:      cfg,
		log:      opt.Logger,
		stdout:   opt.Stdout,
		onResult: opt.OnResult,
	}, nil
}

// Config returns the configuration of the Framer.
func (f *Framer) Config() FrameConfig {
	return f.cfg
}

// Process frames a single image: decode, orientation, resize, composite, encode.
func (f *Framer) Process(_ context.Context, path string) (*Result, error) {
	res := &Result{Input: path}

	dec, err := DecodeFile(path)
	if err != nil {
		return nil, &ImageError{Path: path, Stage: StageDecode, Err: err}
	}
	b := dec.Image.Bounds()
	res.SourceWidth, res.SourceHeight = b.Dx(), b.Dy()
	res.Orientation = dec.Orientation
	if dec.OrientationErr != nil {
		f.log.Debug("framy: no orientation, assuming normal", "path", path, "reason", dec.OrientationErr)
	}
	if dec.Orientation.Mirrored() && !f.cfg.MirrorOrientations {
		f.log.Debug("framy: mirrored orientation left uncorrected", "path", path, "orientation", int(dec.Orientation))
	}

	img := Normalize(dec.Image, dec.Orientation, f.cfg.MirrorOrientations)
	b = img.Bounds()
	res.NormalizedWidth, res.NormalizedHeight = b.Dx(), b.Dy()
	if img != dec.Image {
		f.log.Debug("framy: orientation corrected",
			"path", path,
			"orientation", int(dec.Orientation),
			"swapped", dec.Orientation.SwapsAxes(),
		)
	}

	w, h, err := FitDimensions(b.Dx(), b.Dy(), f.cfg.MaxSize())
	if err != nil {
		return nil, &ImageError{Path: path, Stage: StageResize, Err: err}
	}
	resized, err := Resize(img, w, h, f.cfg.Filter, f.cfg.Workers)
	if err != nil {
		return nil, &ImageError{Path: path, Stage: StageResize, Err: err}
	}
	res.ResizedWidth, res.ResizedHeight = w, h

	canvas, offset, err := Composite(resized, f.cfg)
	if err != nil {
		return nil, &ImageError{Path: path, Stage: StageComposite, Err: err}
	}
	res.Offset = offset

	res.Output = OutputPath(path, f.cfg)
	if err := WriteFile(res.Output, canvas, f.cfg); err != nil {
		return nil, &ImageError{Path: path, Stage: StageEncode, Err: err}
	}

	f.log.Debug("framy: image framed",
		"path", path,
		"output", res.Output,
		"source", fmt.Sprintf("%dx%d", res.SourceWidth, res.SourceHeight),
		"orientation", int(res.Orientation),
		"resized", fmt.Sprintf("%dx%d", w, h),
		"offset", fmt.Sprintf("%d,%d", offset.X, offset.Y),
	)

	if f.onResult != nil {
		f.onResult(res)
	}

	return res, nil
}

// Run frames paths one after another.
//
// With PolicyAbort the first failure is returned immediately. With PolicyContinue
// every path is attempted and the failures are joined. The context is only
// checked between images.
func (f *Framer) Run(ctx context.Context, paths []string) error {
	var errs []error

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		if _, err := f.Process(ctx, p); err != nil {
			if f.cfg.Policy == PolicyAbort {
				return err
			}
			f.log.Error("framy: image failed", "path", p, "error", err)
			errs = append(errs, err)
			continue
		}

		fmt.Fprintf(f.stdout, "%s done\n", p)
	}

	return errors.Join(errs...)
}
