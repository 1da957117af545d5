package testmaker

import "errors"

var (
	// ErrIndexOutOfRange indicates a Remove or Replace aimed at an event
	// position the timeline does not have
	ErrIndexOutOfRange = errors.New("event index out of range")

	// ErrMalformedDocument indicates a native document missing a piece a
	// Timeline cannot be rebuilt without
	ErrMalformedDocument = errors.New("malformed timeline document")

	// ErrUnresolvedFormat indicates an export hint that names no known
	// format and carries no recognizable file extension
	ErrUnresolvedFormat = errors.New("cannot resolve export format")

	// ErrTimelineNotFound indicates the named timeline is not in the store
	ErrTimelineNotFound = errors.New("timeline not found")

	// ErrUnnamedTimeline indicates an attempt to save a timeline without a
	// name to key it by
	ErrUnnamedTimeline = errors.New("timeline has no name")
)
