package interfaces

import "github.com/deploymenttheory/go-appledouble/internal/types"

// Encoder produces the final byte sequence of a metadata container.
type Encoder interface {
	// Data returns the serialized container. Calling it again returns the
	// same bytes as long as nothing was added in between.
	Data() []byte
}

// FinderInfoEncoder builds the 32-byte FinderInfo + extended FinderInfo blob.
type FinderInfoEncoder interface {
	Encoder

	// SetFlags sets the Finder flags (FinderFlag* constants OR'd together).
	SetFlags(flags uint16)

	// SetExtendedFlags sets the extended Finder flags.
	SetExtendedFlags(flags uint16)

	// SetTypeCode sets the four-char type code.
	SetTypeCode(code types.FourCharCode)

	// SetCreatorCode sets the four-char creator code.
	SetCreatorCode(code types.FourCharCode)
}

// ResourceForkEncoder accumulates resources and serializes a resource fork.
type ResourceForkEncoder interface {
	Encoder

	// AddResource adds a resource. An empty name means the resource is
	// unnamed. On error the encoder is left unchanged.
	AddResource(resType types.FourCharCode, id int16, name string, data []byte) error

	// Len returns the number of resources added so far.
	Len() int
}

// AppleDoubleEncoder accumulates entries and serializes an AppleDouble file.
type AppleDoubleEncoder interface {
	Encoder

	// AddEntry appends an entry. On error the encoder is left unchanged.
	AddEntry(id types.EntryID, data []byte) error

	// Descriptors returns the descriptor table Data would write.
	Descriptors() []types.EntryDescriptor
}
