package framy

import (
	"image"

	"github.com/disintegration/imaging"
)

// Normalize turns img upright according to its EXIF orientation.
//
// Rotations (3, 6, 8) are always corrected. Mirrored orientations (2, 4, 5, 7)
// are only corrected when mirror is set, otherwise img is returned unchanged.
func Normalize(img image.Image, o Orientation, mirror bool) image.Image {
	switch o {
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationRotate90CW:
		// imaging rotates counter-clockwise.
		return imaging.Rotate270(img)
	case OrientationRotate90CCW:
		return imaging.Rotate90(img)
	}

	if !mirror {
		return img
	}

	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	default:
		return img
	}
}
