// Package services is the public entry point for building Finder metadata:
// FinderInfo records, resource forks and AppleDouble files.
package services

import (
	"context"

	metadata "github.com/deploymenttheory/go-appledouble/internal/services"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// FourCharCode is a Mac OS type, creator or resource type code.
type FourCharCode = types.FourCharCode

// EntryID identifies the kind of an AppleDouble entry.
type EntryID = types.EntryID

// FinderAttributes and ResourceAttributes describe the metadata of one file.
type (
	FinderAttributes   = metadata.FinderAttributes
	ResourceAttributes = metadata.ResourceAttributes
)

// MetadataService derives xattr values and ._ sidecar contents.
type MetadataService = metadata.MetadataService

// NewFourCharCode builds a code from the first four bytes of s, padding
// shorter strings with spaces.
func NewFourCharCode(s string) FourCharCode {
	return types.NewFourCharCode(s)
}

// SidecarName returns the ._ name that carries the metadata of name.
func SidecarName(name string) string {
	return metadata.SidecarName(name)
}

// IsSidecarName reports whether the last element of name is a ._ sidecar.
func IsSidecarName(name string) bool {
	return metadata.IsSidecarName(name)
}

// FinderInfoRequest holds the FinderInfo fields that can be set.
type FinderInfoRequest struct {
	TypeCode      FourCharCode
	CreatorCode   FourCharCode
	Flags         uint16
	ExtendedFlags uint16
}

// Resource is one resource of a resource fork. An empty Name means unnamed.
type Resource struct {
	Type FourCharCode
	ID   int16
	Name string
	Data []byte
}

// Entry is one AppleDouble entry.
type Entry struct {
	ID   EntryID
	Data []byte
}

// Region names a byte range of an encoded blob.
type Region struct {
	Name   string
	Offset uint64
	Length uint64
}

// Blob is an encoded structure together with its layout.
type Blob struct {
	Kind    string
	Data    []byte
	Regions []Region
}

// Blob kinds.
const (
	KindFinderInfo   = "finderinfo"
	KindResourceFork = "resourcefork"
	KindAppleDouble  = "appledouble"
)

// EncoderService encodes the three structures from explicit field values.
type EncoderService interface {
	// EncodeFinderInfo returns the 32-byte FinderInfo record.
	EncodeFinderInfo(ctx context.Context, req FinderInfoRequest) (Blob, error)

	// EncodeResourceFork returns a resource fork holding resources in order.
	EncodeResourceFork(ctx context.Context, resources []Resource) (Blob, error)

	// EncodeAppleDouble returns an AppleDouble file holding entries in order.
	EncodeAppleDouble(ctx context.Context, entries []Entry) (Blob, error)
}
