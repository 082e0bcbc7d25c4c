package framy

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"os"

	"github.com/vearutop/framy/internal/exifx"
	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WEBP decoder.
)

// Decoded is a decoded source image together with its orientation tag.
type Decoded struct {
	Image       image.Image
	Format      string
	Orientation Orientation
	// OrientationErr explains why the orientation defaulted to normal, it is informational only.
	OrientationErr error
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (*Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr(ErrDecode, "%v", err)
	}
	return Decode(data)
}

// Decode decodes an encoded image and reads its orientation from the embedded metadata.
// Missing or unreadable metadata is not an error, it yields OrientationNormal.
func Decode(data []byte) (*Decoded, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, wrapErr(ErrDecode, "%v", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, wrapErr(ErrDecode, "empty image %dx%d", b.Dx(), b.Dy())
	}

	o, oerr := ReadOrientation(data)

	return &Decoded{
		Image:          img,
		Format:         format,
		Orientation:    o,
		OrientationErr: oerr,
	}, nil
}

// ReadOrientation reads the orientation tag of the primary image directory.
// It always returns a usable orientation; the error only explains a fallback to OrientationNormal.
func ReadOrientation(data []byte) (Orientation, error) {
	v, err := exifx.Orientation(data)
	if err != nil {
		return OrientationNormal, err
	}
	if v < int(OrientationNormal) || v > int(OrientationRotate90CCW) {
		return OrientationNormal, nil
	}
	return Orientation(v), nil
}
