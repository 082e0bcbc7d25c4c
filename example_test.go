package framy_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vearutop/framy"
)

func ExampleFramer_Run() {
	opts := framy.DefaultOptions()
	opts.Format = "png"
	opts.OutDir = "framed"

	cfg, _, err := opts.Build()
	if err != nil {
		return
	}

	f, err := framy.New(cfg, func(o *framy.FramerOptions) {
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	})
	if err != nil {
		return
	}

	_ = f.Run(context.Background(), []string{"testdata/photo.jpg"})
}

func ExampleFitDimensions() {
	w, h, err := framy.FitDimensions(400, 300, 1856)
	if err != nil {
		return
	}
	fmt.Println(w, h)

	// Output:
	// 1856 1392
}

func ExampleNewWatcher() {
	cfg, _, err := framy.DefaultOptions().Build()
	if err != nil {
		return
	}

	f, err := framy.New(cfg)
	if err != nil {
		return
	}

	w, err := framy.NewWatcher(f, "incoming")
	if err != nil {
		return
	}

	_ = w.Run(context.Background())
}
