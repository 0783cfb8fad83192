package encode

import (
	"github.com/deploymenttheory/go-appledouble/pkg/app"
)

// FinderInfoRequest holds the FinderInfo command arguments. Flags accept a
// number (0x4000) or a comma separated list of Finder.h names.
type FinderInfoRequest struct {
	TypeCode      string `validate:"max=4"`
	CreatorCode   string `validate:"max=4"`
	Flags         string
	ExtendedFlags string
}

// ResourceForkRequest holds the resource fork command arguments.
type ResourceForkRequest struct {
	// Resources are TYPE:ID[:NAME]=PAYLOAD specs.
	Resources []string `validate:"dive,required"`

	// Icon is added as the custom icon resource.
	Icon app.Payload

	// WeblocURL is added as the ('url ', 256) resource.
	WeblocURL string `validate:"omitempty,url"`
}

// AppleDoubleRequest holds the AppleDouble command arguments.
type AppleDoubleRequest struct {
	// Entries are KIND=PAYLOAD specs; KIND is an entry name or number.
	Entries []string `validate:"dive,required"`
}

// SidecarRequest describes the metadata of one file whose ._ contents are
// derived the way a user space file system would serve them.
type SidecarRequest struct {
	FinderInfoRequest

	Icon      app.Payload
	WeblocURL string `validate:"omitempty,url"`
}

// Response describes one encoded blob.
type Response struct {
	Kind    string         `json:"kind" yaml:"kind"`
	Length  int            `json:"length" yaml:"length"`
	Digest  string         `json:"digest" yaml:"digest"`
	Regions []RegionResult `json:"regions" yaml:"regions"`
	Hex     string         `json:"hex,omitempty" yaml:"hex,omitempty"`

	// Data is the encoded blob.
	Data []byte `json:"-" yaml:"-"`
}

// RegionResult is one named byte range of the blob.
type RegionResult struct {
	Name   string `json:"name" yaml:"name"`
	Offset uint64 `json:"offset" yaml:"offset"`
	Length uint64 `json:"length" yaml:"length"`
}
