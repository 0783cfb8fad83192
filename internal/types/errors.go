package types

import "errors"

var (
	// ErrOverflow is returned when a count, length or offset would no longer
	// fit the fixed-width field that stores it.
	ErrOverflow = errors.New("field overflow")

	// ErrDuplicateEntry is returned when an AppleDouble entry id is added twice
	// and the encoder rejects duplicates.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidEntryID is returned for entry ids outside the AppleDouble
	// enumeration, including the reserved id 0.
	ErrInvalidEntryID = errors.New("invalid entry id")

	// ErrNameTooLong is returned for resource names longer than 255 bytes
	// when the encoder does not truncate them.
	ErrNameTooLong = errors.New("resource name too long")

	// ErrInvalidOffset is returned for negative read offsets.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrNoAttribute is returned when an extended attribute has no value.
	ErrNoAttribute = errors.New("attribute not found")
)
