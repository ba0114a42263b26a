package extrude

import "errors"

var (
	// ErrInvalidFaceID is returned when a face id does not name a triangle
	// of a complete quad in the index buffer.
	ErrInvalidFaceID = errors.New("invalid face id")
	// ErrDegenerateNormal is returned when a face normal has zero length or
	// non-finite components.
	ErrDegenerateNormal = errors.New("degenerate face normal")
	// ErrBufferLengthMismatch is returned when position and index buffers
	// disagree with each other or with a selection.
	ErrBufferLengthMismatch = errors.New("buffer length mismatch")
	// ErrInvalidEvent is returned for pick and move events with missing or
	// non-finite fields.
	ErrInvalidEvent = errors.New("invalid event")
)
