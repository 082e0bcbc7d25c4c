package framy

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Filter selects the resampling filter used by Resize.
type Filter int

const (
	// FilterNearest is nearest-neighbor sampling.
	FilterNearest Filter = iota
	// FilterBilinear is linear sampling.
	FilterBilinear
	// FilterBicubic is Catmull-Rom cubic sampling.
	FilterBicubic
	// FilterMitchellNetravali is Mitchell-Netravali sampling.
	FilterMitchellNetravali
	// FilterLanczos2 is Lanczos sampling with a=2.
	FilterLanczos2
	// FilterLanczos3 is Lanczos sampling with a=3.
	FilterLanczos3
)

// ParseFilter parses a case-insensitive filter name.
// The aliases triangle, catmullrom and lanczos are accepted too.
func ParseFilter(s string) (Filter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest":
		return FilterNearest, true
	case "bilinear", "linear", "triangle":
		return FilterBilinear, true
	case "bicubic", "cubic", "catmullrom":
		return FilterBicubic, true
	case "mitchell", "mitchellnetravali":
		return FilterMitchellNetravali, true
	case "lanczos2":
		return FilterLanczos2, true
	case "lanczos3", "lanczos":
		return FilterLanczos3, true
	default:
		return FilterLanczos3, false
	}
}

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterBicubic:
		return "bicubic"
	case FilterMitchellNetravali:
		return "mitchell"
	case FilterLanczos2:
		return "lanczos2"
	default:
		return "lanczos3"
	}
}

func (f Filter) nfnt() resize.InterpolationFunction {
	switch f {
	case FilterNearest:
		return resize.NearestNeighbor
	case FilterBilinear:
		return resize.Bilinear
	case FilterBicubic:
		return resize.Bicubic
	case FilterMitchellNetravali:
		return resize.MitchellNetravali
	case FilterLanczos2:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

// FitDimensions returns the size of a w x h image scaled so that its longer
// edge equals maxSize. The shorter edge is rounded to nearest and is at least 1.
func FitDimensions(w, h, maxSize int) (int, int, error) {
	if maxSize <= 0 {
		return 0, 0, wrapErr(ErrInvalidConfiguration, "target edge %d is not positive", maxSize)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, wrapErr(ErrInvalidConfiguration, "source dimensions %dx%d are empty", w, h)
	}
	if w >= h {
		nh := int(math.Round(float64(h) * float64(maxSize) / float64(w)))
		return maxSize, max(nh, 1), nil
	}
	nw := int(math.Round(float64(w) * float64(maxSize) / float64(h)))
	return max(nw, 1), maxSize, nil
}

// Resize resamples img to exactly w x h.
//
// NRGBA sources, which is what orientation correction produces, go through the
// built-in separable kernels. Other pixel layouts (YCbCr, Gray, Paletted, 16-bit)
// are resampled in their native layout with nfnt/resize and then converted.
func Resize(img image.Image, w, h int, f Filter, workers int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, wrapErr(ErrInvalidConfiguration, "invalid target dimensions %dx%d", w, h)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, wrapErr(ErrInvalidConfiguration, "source image is empty")
	}

	switch src := img.(type) {
	case *image.NRGBA:
		if b.Dx() == w && b.Dy() == h {
			return imaging.Clone(src), nil
		}
		return resizeNRGBAInterpolated(src, w, h, f, workers), nil
	default:
		if b.Dx() == w && b.Dy() == h {
			return imaging.Clone(img), nil
		}
		return imaging.Clone(resize.Resize(uint(w), uint(h), img, f.nfnt())), nil
	}
}
