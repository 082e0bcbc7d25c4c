package framy

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/tiff"
)

// OutputPath returns <OutDir>/<basename>_framed.<ext> for an input path,
// basename being the file name without its last extension.
func OutputPath(input string, cfg FrameConfig) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(cfg.OutDir, base+framedSuffix+"."+cfg.Format.Extension())
}

// Encode serializes canvas in the configured format.
//
// PNG, TIFF and WEBP keep alpha. JPEG and GIF have no (or only binary) alpha,
// so the canvas is first flattened over the border color.
func Encode(w io.Writer, canvas *image.NRGBA, cfg FrameConfig) error {
	var img image.Image = canvas
	if !cfg.Format.HasAlpha() && !canvas.Opaque() {
		img = flatten(canvas, cfg.BorderColor)
	}

	var err error
	switch cfg.Format {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.Quality})
	case FormatGIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
	case FormatWEBP:
		err = webp.Encode(w, img, &webp.Options{Lossless: cfg.Lossless, Quality: float32(cfg.Quality), Exact: true})
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		err = enc.Encode(w, img)
	}
	if err != nil {
		return wrapErr(ErrEncode, "%s: %v", cfg.Format, err)
	}
	return nil
}

// WriteFile encodes canvas to path, creating parent directories as needed.
// The file is written to a temporary name first, a failed encode leaves nothing behind.
func WriteFile(path string, canvas *image.NRGBA, cfg FrameConfig) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrapErr(ErrEncode, "create output directory: %v", err)
	}

	f, err := os.CreateTemp(dir, ".framy-*")
	if err != nil {
		return wrapErr(ErrEncode, "create output file: %v", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, canvas, cfg); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return wrapErr(ErrEncode, "write %s: %v", path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return wrapErr(ErrEncode, "chmod %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return wrapErr(ErrEncode, "close %s: %v", path, err)
	}
	if err := os.Rename(tmp, filepath.Clean(path)); err != nil {
		return wrapErr(ErrEncode, "rename %s: %v", path, err)
	}
	return nil
}

func flatten(src *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	b := src.Rect
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		sp := src.Pix[si : si+b.Dx()*4]
		dp := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()*4]
		for i := 0; i < len(sp); i += 4 {
			a := uint32(sp[i+3])
			dp[i+0] = blend(sp[i+0], bg.R, a)
			dp[i+1] = blend(sp[i+1], bg.G, a)
			dp[i+2] = blend(sp[i+2], bg.B, a)
			dp[i+3] = 0xFF
		}
	}
	return dst
}

func blend(fg, bg uint8, a uint32) uint8 {
	return uint8((uint32(fg)*a + uint32(bg)*(255-a) + 127) / 255)
}
