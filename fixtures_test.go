package framy

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vearutop/framy/internal/exifx/exifxtest"
)

var (
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red   = color.NRGBA{R: 0xFF, A: 0xFF}
	blue  = color.NRGBA{B: 0xFF, A: 0xFF}
)

func testConfig(t *testing.T, padding, size int) FrameConfig {
	t.Helper()

	return FrameConfig{
		Padding:     padding,
		Size:        size,
		Format:      FormatPNG,
		BorderColor: white,
		OutDir:      t.TempDir(),
		Filter:      FilterLanczos3,
		Quality:     90,
		Workers:     1,
	}
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// markedImage is solid blue with a red top-left pixel to track transforms.
func markedImage(w, h int) *image.NRGBA {
	img := solidImage(w, h, blue)
	img.SetNRGBA(0, 0, red)
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return p
}

func jpegWithOrientation(t *testing.T, img image.Image, o int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	if o == 0 {
		return buf.Bytes()
	}

	data, err := exifxtest.InsertJPEG(buf.Bytes(), exifxtest.OrientationBlock(o))
	require.NoError(t, err)
	return data
}

func writeJPEG(t *testing.T, dir, name string, img image.Image, o int) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, jpegWithOrientation(t, img, o), 0o644))
	return p
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func near(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		return v <= tol && v >= -tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}
