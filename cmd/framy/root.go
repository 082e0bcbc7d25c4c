package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vearutop/framy"
)

var version = "dev"

type frameFlags struct {
	opts       framy.Options
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	ff := &frameFlags{opts: framy.DefaultOptions()}

	rootCmd := &cobra.Command{
		Use:   "framy [FILE...]",
		Short: "Add a uniform border around images, centered on a square canvas",
		Long: "Add a uniform border around images, centered on a square canvas.\n" +
			"With no FILE, or when FILE is -, paths are read from standard input.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrame(cmd, ff, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&ff.opts.Padding, "padding", "p", ff.opts.Padding, "Padding pixels")
	pf.IntVarP(&ff.opts.Size, "size", "s", ff.opts.Size, "Output size")
	pf.StringVarP(&ff.opts.OutDir, "outdir", "o", ff.opts.OutDir, "Output directory")
	pf.StringVarP(&ff.opts.Format, "format", "f", ff.opts.Format, "Output format (jpeg, png, gif, webp, tiff)")
	pf.StringVarP(&ff.opts.Color, "color", "c", ff.opts.Color, "Border color as 6 hex digits")
	pf.StringVar(&ff.opts.Filter, "filter", ff.opts.Filter, "Resampling filter (nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3)")
	pf.IntVarP(&ff.opts.Quality, "quality", "q", ff.opts.Quality, "JPEG/WEBP quality (1-100)")
	pf.BoolVar(&ff.opts.Lossless, "lossless", ff.opts.Lossless, "Lossless WEBP")
	pf.BoolVar(&ff.opts.Mirror, "mirror", ff.opts.Mirror, "Also correct mirrored EXIF orientations (2, 4, 5, 7)")
	pf.BoolVar(&ff.opts.KeepGoing, "keep-going", ff.opts.KeepGoing, "Continue with remaining images after a failure")
	pf.IntVar(&ff.opts.Workers, "workers", ff.opts.Workers, "Goroutines used to resample a single image")
	pf.StringVar(&ff.configPath, "config", "", "YAML config file, flags take precedence")
	pf.BoolVarP(&ff.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(newWatchCmd(ff), newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "framy", version)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newFramer resolves the effective options (defaults, then config file, then
// explicitly set flags) and builds a Framer.
func newFramer(cmd *cobra.Command, ff *frameFlags, logger *slog.Logger) (*framy.Framer, error) {
	opts := framy.DefaultOptions()
	if ff.configPath != "" {
		var err error
		if opts, err = framy.LoadOptions(ff.configPath, opts); err != nil {
			return nil, err
		}
	}
	overrideChanged(cmd, &opts, ff.opts)

	cfg, warnings, err := opts.Build()
	for _, w := range warnings {
		logger.Warn("framy: " + w.String())
	}
	if err != nil {
		return nil, err
	}

	return framy.New(cfg, func(o *framy.FramerOptions) {
		o.Logger = logger
		o.Stdout = cmd.OutOrStdout()
	})
}

func overrideChanged(cmd *cobra.Command, dst *framy.Options, src framy.Options) {
	setters := map[string]func(){
		"padding":    func() { dst.Padding = src.Padding },
		"size":       func() { dst.Size = src.Size },
		"outdir":     func() { dst.OutDir = src.OutDir },
		"format":     func() { dst.Format = src.Format },
		"color":      func() { dst.Color = src.Color },
		"filter":     func() { dst.Filter = src.Filter },
		"quality":    func() { dst.Quality = src.Quality },
		"lossless":   func() { dst.Lossless = src.Lossless },
		"mirror":     func() { dst.Mirror = src.Mirror },
		"keep-going": func() { dst.KeepGoing = src.KeepGoing },
		"workers":    func() { dst.Workers = src.Workers },
	}
	for name, set := range setters {
		if cmd.Flags().Changed(name) {
			set()
		}
	}
}

func runFrame(cmd *cobra.Command, ff *frameFlags, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), ff.verbose)

	f, err := newFramer(cmd, ff, logger)
	if err != nil {
		return err
	}

	paths, err := framy.ResolveInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Warn("framy: no input paths")
		return nil
	}

	err = f.Run(cmd.Context(), paths)
	if err == nil {
		return nil
	}

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) && f.Config().Policy == framy.PolicyContinue {
		return fmt.Errorf("%d of %d images failed", len(joined.Unwrap()), len(paths))
	}

	return err
}
