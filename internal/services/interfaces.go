package services

import "context"

// MetadataService derives the Finder metadata blobs a user space file system
// exposes for a file: the com.apple.FinderInfo and com.apple.ResourceFork
// extended attributes, and the contents of its ._ sidecar.
type MetadataService interface {
	FinderInfoData(ctx context.Context, finder FinderAttributes) []byte
	ResourceForkData(ctx context.Context, resource ResourceAttributes) ([]byte, error)
	AppleDoubleData(ctx context.Context, finder FinderAttributes, resource ResourceAttributes) ([]byte, error)
	ExtendedAttributeNames(ctx context.Context, finder FinderAttributes, resource ResourceAttributes) ([]string, error)
	ExtendedAttributeValue(ctx context.Context, name string, finder FinderAttributes, resource ResourceAttributes) ([]byte, error)
	ReadExtendedAttribute(ctx context.Context, name string, finder FinderAttributes, resource ResourceAttributes, buf []byte, offset int64) (int, error)
	ReadSidecar(ctx context.Context, finder FinderAttributes, resource ResourceAttributes, buf []byte, offset int64) (int, error)
}
