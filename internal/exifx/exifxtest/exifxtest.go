// Package exifxtest builds EXIF fixtures for tests.
package exifxtest

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var exifSig = []byte{'E', 'x', 'i', 'f', 0, 0}

// OrientationBlock builds a minimal little-endian TIFF block holding only the
// orientation tag in IFD0.
func OrientationBlock(orientation int) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.Write([]byte{'I', 'I', 0x2A, 0x00})
	_ = binary.Write(&buf, le, uint32(8))      // IFD0 offset
	_ = binary.Write(&buf, le, uint16(1))      // entry count
	_ = binary.Write(&buf, le, uint16(0x0112)) // Orientation
	_ = binary.Write(&buf, le, uint16(3))      // SHORT
	_ = binary.Write(&buf, le, uint32(1))
	_ = binary.Write(&buf, le, uint16(orientation))
	_ = binary.Write(&buf, le, uint16(0)) // value padding
	_ = binary.Write(&buf, le, uint32(0)) // no next IFD

	return buf.Bytes()
}

// InsertJPEG returns jpegData with an APP1 EXIF segment carrying block inserted after SOI.
func InsertJPEG(jpegData, block []byte) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != 0xFF || jpegData[1] != 0xD8 {
		return nil, errors.New("invalid jpeg")
	}
	payload := append(append([]byte(nil), exifSig...), block...)
	if len(payload)+2 > 0xFFFF {
		return nil, errors.New("exif block too large")
	}

	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpegData[2:])
	return out.Bytes(), nil
}
