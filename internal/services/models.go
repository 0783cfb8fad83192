package services

import (
	appledouble "github.com/deploymenttheory/go-appledouble/internal/encoders/apple_double"
	resourcefork "github.com/deploymenttheory/go-appledouble/internal/encoders/resource_fork"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// FinderAttributes describes the FinderInfo of one file. Nil fields are
// unset; a FinderAttributes with nothing set produces no FinderInfo.
type FinderAttributes struct {
	TypeCode      *types.FourCharCode
	CreatorCode   *types.FourCharCode
	Flags         *uint16
	ExtendedFlags *uint16

	// CustomIcon is raw .icns data. When present the kHasCustomIcon flag is
	// set and the icon is served from the resource fork.
	CustomIcon []byte
}

// IsEmpty reports whether no FinderInfo field is set.
func (a FinderAttributes) IsEmpty() bool {
	return a.TypeCode == nil && a.CreatorCode == nil && a.Flags == nil &&
		a.ExtendedFlags == nil && len(a.CustomIcon) == 0
}

// ResourceAttributes describes the resource fork of one file.
type ResourceAttributes struct {
	// CustomIcon is raw .icns data stored as ('icns', -16455).
	CustomIcon []byte

	// WeblocURL is stored as ('url ', 256). Only meaningful for .webloc files.
	WeblocURL string
}

// IsEmpty reports whether no resource would be created.
func (a ResourceAttributes) IsEmpty() bool {
	return len(a.CustomIcon) == 0 && a.WeblocURL == ""
}

// Options configures the encoders the service creates.
type Options struct {
	Filler     string
	Duplicates appledouble.DuplicatePolicy
	LongNames  resourcefork.NamePolicy
}

// DefaultOptions matches what Mac OS X writes.
func DefaultOptions() Options {
	return Options{
		Filler:     types.DefaultAppleDoubleFiller,
		Duplicates: appledouble.DuplicateReject,
		LongNames:  resourcefork.NameReject,
	}
}
