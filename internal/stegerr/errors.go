// Package stegerr defines the error taxonomy shared by every pipeline
// stage: the container codec, the compression adapter, the filter engine,
// and the steganographic codec all return one of these types so the
// orchestrator can classify a failure without inspecting message text.
package stegerr

import "fmt"

// InvalidArgument reports a malformed or missing CLI argument.
type InvalidArgument struct {
	Msg string
}

func (e *InvalidArgument) Error() string { return "stegano: invalid argument: " + e.Msg }

// NotFound reports a missing input file.
type NotFound struct {
	Path string
}

func (e *NotFound) Error() string { return "stegano: not found: " + e.Path }

// IOError wraps an underlying I/O failure with the operation that triggered it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("stegano: io error during %s: %v", e.Op, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// UnsupportedImage reports an IHDR field outside the supported subset
// (bit depth != 8, color type != 6, interlace != 0, compression != 0,
// filter method != 0).
type UnsupportedImage struct {
	Field string
	Msg   string
}

func (e *UnsupportedImage) Error() string {
	return fmt.Sprintf("stegano: unsupported image: %s: %s", e.Field, e.Msg)
}

// CorruptContainer reports a framing mismatch or a missing required chunk.
type CorruptContainer struct {
	Msg string
}

func (e *CorruptContainer) Error() string { return "stegano: corrupt container: " + e.Msg }

// CompressionError reports a deflate/inflate provider failure.
type CompressionError struct {
	Msg string
}

func (e *CompressionError) Error() string { return "stegano: compression error: " + e.Msg }

// CapacityExceeded reports a payload too large for the image to carry.
type CapacityExceeded struct {
	Have int // bytes the image's channel LSBs can hold
	Need int // bytes required by the payload plus its header
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("stegano: capacity exceeded: need %d bytes, image has %d", e.Need, e.Have)
}

// AllocationFailure reports a buffer that could not be sized as required,
// e.g. a declared dimension that overflows an int on this platform.
type AllocationFailure struct {
	Msg string
}

func (e *AllocationFailure) Error() string { return "stegano: allocation failure: " + e.Msg }
