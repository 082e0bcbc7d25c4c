package framy

import (
	"image/color"
	"strings"
)

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientationUnspecified Orientation = iota
	OrientationNormal
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate90CW
	OrientationTransverse
	OrientationRotate90CCW
)

// Mirrored reports whether the orientation includes a flip.
func (o Orientation) Mirrored() bool {
	switch o {
	case OrientationFlipH, OrientationFlipV, OrientationTranspose, OrientationTransverse:
		return true
	default:
		return false
	}
}

// SwapsAxes reports whether correcting the orientation exchanges width and height.
func (o Orientation) SwapsAxes() bool {
	switch o {
	case OrientationTranspose, OrientationRotate90CW, OrientationTransverse, OrientationRotate90CCW:
		return true
	default:
		return false
	}
}

// Format identifies an output container.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatWEBP
	FormatTIFF
)

// ParseFormat parses a case-insensitive format name, "jpg" is accepted as an alias of "jpeg".
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "gif":
		return FormatGIF, true
	case "webp":
		return FormatWEBP, true
	case "tif", "tiff":
		return FormatTIFF, true
	default:
		return FormatPNG, false
	}
}

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	case FormatTIFF:
		return "tiff"
	default:
		return "png"
	}
}

// Extension returns the file extension used for framed outputs, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatGIF:
		return "gif"
	case FormatWEBP:
		return "webp"
	case FormatTIFF:
		return "tiff"
	default:
		return "png"
	}
}

// HasAlpha reports whether the format can carry an alpha channel.
// Canvases are flattened over the border color before encoding to formats without it.
func (f Format) HasAlpha() bool {
	switch f {
	case FormatPNG, FormatWEBP, FormatTIFF:
		return true
	default:
		return false
	}
}

// FailurePolicy controls batch behavior when one image fails.
type FailurePolicy int

const (
	// PolicyAbort stops the batch at the first failing image.
	PolicyAbort FailurePolicy = iota
	// PolicyContinue processes every image and reports all failures at the end.
	PolicyContinue
)

// FrameConfig is a validated, immutable set of framing parameters.
type FrameConfig struct {
	Padding     int
	Size        int
	Format      Format
	BorderColor color.NRGBA
	OutDir      string

	Filter Filter
	// Quality is used by lossy JPEG and WEBP encoding (1-100), other formats ignore it.
	Quality  int
	Lossless bool
	// MirrorOrientations enables correction of EXIF orientations 2, 4, 5 and 7,
	// which are left untouched otherwise.
	MirrorOrientations bool
	Policy             FailurePolicy
	// Workers bounds row parallelism inside a single resample, 1 keeps it single-threaded.
	Workers int
}

// MaxSize is the length of the long edge of the placed image.
func (c FrameConfig) MaxSize() int {
	return c.Size - 2*c.Padding
}

// Result describes one framed image.
type Result struct {
	Input  string
	Output string

	SourceWidth      int
	SourceHeight     int
	Orientation      Orientation
	NormalizedWidth  int
	NormalizedHeight int
	ResizedWidth     int
	ResizedHeight    int
	Offset           Point
}

// Point is a canvas position in pixels.
type Point struct {
	X, Y int
}
