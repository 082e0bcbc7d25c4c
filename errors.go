package framy

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when an input cannot be read or is not a valid image.
	ErrDecode = errors.New("decode failed")
	// ErrInvalidConfiguration is returned for parameters that cannot produce a frame.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrEncode is returned when the canvas cannot be serialized or written.
	ErrEncode = errors.New("encode failed")
)

// Stage names a pipeline step.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageResize    Stage = "resize"
	StageComposite Stage = "composite"
	StageEncode    Stage = "encode"
)

// ImageError reports a failure of a single image's pipeline run.
type ImageError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *ImageError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func wrapErr(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}
