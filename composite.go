package framy

import "image"

// Placement returns the top-left canvas position of a w x h image.
// Landscape images sit on the padding horizontally and are centered vertically,
// portrait and square images the other way round. Integer division puts the odd
// remainder pixel on the bottom/right margin.
func Placement(w, h int, cfg FrameConfig) Point {
	if w > h {
		return Point{X: cfg.Padding, Y: (cfg.Size - h) / 2}
	}
	return Point{X: (cfg.Size - w) / 2, Y: cfg.Padding}
}

// Composite places src on a new Size x Size canvas filled with the opaque border color.
//
// Every canvas pixel is written exactly once, either from src or with the border.
func Composite(src *image.NRGBA, cfg FrameConfig) (*image.NRGBA, Point, error) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, Point{}, wrapErr(ErrInvalidConfiguration, "empty source %dx%d", w, h)
	}
	if w > cfg.Size || h > cfg.Size {
		return nil, Point{}, wrapErr(ErrInvalidConfiguration, "source %dx%d exceeds canvas %d", w, h, cfg.Size)
	}

	p := Placement(w, h, cfg)
	if p.X < 0 || p.Y < 0 || p.X+w > cfg.Size || p.Y+h > cfg.Size {
		return nil, Point{}, wrapErr(ErrInvalidConfiguration, "source %dx%d does not fit padding %d", w, h, cfg.Padding)
	}
	size := cfg.Size
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	br, bg, bb := cfg.BorderColor.R, cfg.BorderColor.G, cfg.BorderColor.B
	x0, x1 := p.X, p.X+w

	for y := 0; y < size; y++ {
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+size*4]
		inside := y >= p.Y && y < p.Y+h

		var srcRow []uint8
		if inside {
			off := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y-p.Y)
			srcRow = src.Pix[off : off+w*4]
		}

		for x := 0; x < size; x++ {
			i := x * 4
			if inside && x >= x0 && x < x1 {
				j := (x - x0) * 4
				row[i+0] = srcRow[j+0]
				row[i+1] = srcRow[j+1]
				row[i+2] = srcRow[j+2]
				row[i+3] = srcRow[j+3]
				continue
			}
			row[i+0] = br
			row[i+1] = bg
			row[i+2] = bb
			row[i+3] = 0xFF
		}
	}

	return canvas, p, nil
}
