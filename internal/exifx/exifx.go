// Package exifx locates the EXIF block inside image containers and reads the orientation tag from it.
package exifx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
)

const (
	markerStart = 0xFF
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP1  = 0xE1
)

var (
	// ErrNotFound means the container carries no EXIF block.
	ErrNotFound = errors.New("exif block not found")
	// ErrUnsupportedContainer means the data is not a container that can hold EXIF.
	ErrUnsupportedContainer = errors.New("unsupported metadata container")
)

var (
	exifSig   = []byte{'E', 'x', 'i', 'f', 0, 0}
	pngSig    = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	tiffSigLE = []byte{'I', 'I', 0x2A, 0x00}
	tiffSigBE = []byte{'M', 'M', 0x00, 0x2A}
)

// Payload returns the TIFF-structured EXIF block of a JPEG, PNG, WEBP or TIFF file.
func Payload(data []byte) ([]byte, error) {
	switch {
	case len(data) >= 2 && data[0] == markerStart && data[1] == markerSOI:
		return jpegPayload(data)
	case bytes.HasPrefix(data, pngSig):
		return pngPayload(data)
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return webpPayload(data)
	case bytes.HasPrefix(data, tiffSigLE), bytes.HasPrefix(data, tiffSigBE):
		return data, nil
	default:
		return nil, ErrUnsupportedContainer
	}
}

// Orientation returns the orientation tag of the primary image directory (IFD0).
func Orientation(data []byte) (int, error) {
	payload, err := Payload(data)
	if err != nil {
		return 0, err
	}
	x, err := exif.Decode(bytes.NewReader(payload))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return 0, fmt.Errorf("parse exif: %w", err)
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0, err
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, fmt.Errorf("orientation value: %w", err)
	}
	return v, nil
}

func jpegPayload(data []byte) ([]byte, error) {
	pos := 2
	for pos+3 < len(data) {
		if data[pos] != markerStart {
			pos++
			continue
		}
		for pos < len(data) && data[pos] == markerStart {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++
		if marker == markerSOS || marker == markerEOI {
			break
		}
		if marker >= 0xD0 && marker <= 0xD7 {
			continue
		}
		if pos+1 >= len(data) {
			return nil, errors.New("truncated marker")
		}
		segLen := int(binary.BigEndian.Uint16(data[pos:]))
		if segLen < 2 || pos+segLen > len(data) {
			return nil, errors.New("invalid segment length")
		}
		seg := data[pos+2 : pos+segLen]
		if marker == markerAPP1 && bytes.HasPrefix(seg, exifSig) {
			return seg[len(exifSig):], nil
		}
		pos += segLen
	}
	return nil, ErrNotFound
}

func pngPayload(data []byte) ([]byte, error) {
	pos := len(pngSig)
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos:]))
		typ := string(data[pos+4 : pos+8])
		start := pos + 8
		end := start + n
		if n < 0 || end+4 > len(data) {
			return nil, errors.New("truncated png chunk")
		}
		switch typ {
		case "eXIf":
			return bytes.TrimPrefix(data[start:end], exifSig), nil
		case "IEND":
			return nil, ErrNotFound
		}
		pos = end + 4 // CRC
	}
	return nil, ErrNotFound
}

func webpPayload(data []byte) ([]byte, error) {
	pos := 12
	for pos+8 <= len(data) {
		fourcc := string(data[pos : pos+4])
		n := int(binary.LittleEndian.Uint32(data[pos+4:]))
		start := pos + 8
		end := start + n
		if n < 0 || end > len(data) {
			return nil, errors.New("truncated webp chunk")
		}
		if fourcc == "EXIF" {
			return bytes.TrimPrefix(data[start:end], exifSig), nil
		}
		pos = end + n%2
	}
	return nil, ErrNotFound
}
