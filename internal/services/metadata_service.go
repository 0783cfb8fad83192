package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	appledouble "github.com/deploymenttheory/go-appledouble/internal/encoders/apple_double"
	finderinfo "github.com/deploymenttheory/go-appledouble/internal/encoders/finder_info"
	resourcefork "github.com/deploymenttheory/go-appledouble/internal/encoders/resource_fork"
	"github.com/deploymenttheory/go-appledouble/internal/helpers"
	"github.com/deploymenttheory/go-appledouble/internal/logger"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// metadataService implements MetadataService. It holds no per-file state and
// is safe for concurrent use.
type metadataService struct {
	log  *slog.Logger
	opts Options
}

// NewMetadataService creates a MetadataService. A nil logger discards logs.
func NewMetadataService(log *slog.Logger, opts Options) MetadataService {
	if log == nil {
		log = logger.Discard()
	}
	return &metadataService{log: log, opts: opts}
}

// query returns a logger tagged with a fresh query id.
func (s *metadataService) query(op string) *slog.Logger {
	return s.log.With("op", op, "query_id", uuid.NewString())
}

// FinderInfoData returns the 32-byte FinderInfo for finder, or nil when no
// field is set. Custom icon data forces the kHasCustomIcon flag.
func (s *metadataService) FinderInfoData(ctx context.Context, finder FinderAttributes) []byte {
	return s.finderInfo(ctx, s.query("finder_info"), finder)
}

func (s *metadataService) finderInfo(ctx context.Context, log *slog.Logger, finder FinderAttributes) []byte {
	if finder.IsEmpty() {
		log.DebugContext(ctx, "no finder info attributes")
		return nil
	}

	enc := finderinfo.NewEncoder()
	if finder.TypeCode != nil {
		enc.SetTypeCode(*finder.TypeCode)
	}
	if finder.CreatorCode != nil {
		enc.SetCreatorCode(*finder.CreatorCode)
	}
	var flags uint16
	if finder.Flags != nil {
		flags = *finder.Flags
	}
	if len(finder.CustomIcon) > 0 {
		flags |= types.FinderFlagHasCustomIcon
	}
	enc.SetFlags(flags)
	if finder.ExtendedFlags != nil {
		enc.SetExtendedFlags(*finder.ExtendedFlags)
	}

	data := enc.Data()
	log.DebugContext(ctx, "encoded finder info",
		"type", enc.Info().FileType, "creator", enc.Info().FileCreator, "flags", fmt.Sprintf("0x%04x", flags))
	return data
}

// ResourceForkData returns the resource fork for resource, or nil when it
// holds no resources. The custom icon is added before the webloc URL.
func (s *metadataService) ResourceForkData(ctx context.Context, resource ResourceAttributes) ([]byte, error) {
	return s.resourceFork(ctx, s.query("resource_fork"), resource)
}

func (s *metadataService) resourceFork(ctx context.Context, log *slog.Logger, resource ResourceAttributes) ([]byte, error) {
	if resource.IsEmpty() {
		log.DebugContext(ctx, "no resource fork attributes")
		return nil, nil
	}

	enc := resourcefork.NewEncoder(resourcefork.WithNamePolicy(s.opts.LongNames))
	if len(resource.CustomIcon) > 0 {
		if err := enc.AddCustomIcon(resource.CustomIcon); err != nil {
			return nil, fmt.Errorf("failed to add custom icon: %w", err)
		}
	}
	if resource.WeblocURL != "" {
		if err := enc.AddWeblocURL(resource.WeblocURL); err != nil {
			return nil, fmt.Errorf("failed to add webloc url: %w", err)
		}
	}

	data := enc.Data()
	log.DebugContext(ctx, "encoded resource fork", "resources", enc.Len(), "length", len(data))
	return data, nil
}

// AppleDoubleData returns the contents of the ._ sidecar: a FinderInfo entry,
// always present and zeroed when nothing is set, followed by a ResourceFork
// entry when there are resources.
func (s *metadataService) AppleDoubleData(ctx context.Context, finder FinderAttributes, resource ResourceAttributes) ([]byte, error) {
	log := s.query("apple_double")
	finder = withIconFlag(finder, resource)

	fi := s.finderInfo(ctx, log, finder)
	if fi == nil {
		fi = make([]byte, types.FinderInfoSize)
	}
	rf, err := s.resourceFork(ctx, log, resource)
	if err != nil {
		return nil, err
	}

	enc := appledouble.NewEncoder(
		appledouble.WithFiller(s.opts.Filler),
		appledouble.WithDuplicatePolicy(s.opts.Duplicates),
	)
	if err := enc.AddEntry(types.EntryFinderInfo, fi); err != nil {
		return nil, fmt.Errorf("failed to add finder info entry: %w", err)
	}
	if rf != nil {
		if err := enc.AddEntry(types.EntryResourceFork, rf); err != nil {
			return nil, fmt.Errorf("failed to add resource fork entry: %w", err)
		}
	}

	data := enc.Data()
	log.DebugContext(ctx, "encoded apple double", "entries", enc.Len(), "length", len(data))
	return data, nil
}

// ExtendedAttributeNames lists the Finder attributes a file has, FinderInfo
// first.
func (s *metadataService) ExtendedAttributeNames(ctx context.Context, finder FinderAttributes, resource ResourceAttributes) ([]string, error) {
	log := s.query("list_xattr")
	finder = withIconFlag(finder, resource)

	var names []string
	if !finder.IsEmpty() {
		names = append(names, types.XattrFinderInfo)
	}
	if !resource.IsEmpty() {
		names = append(names, types.XattrResourceFork)
	}
	log.DebugContext(ctx, "listed extended attributes", "names", names)
	return names, nil
}

// ExtendedAttributeValue returns the value of one Finder attribute. Unknown
// names and attributes the file does not have fail with types.ErrNoAttribute.
func (s *metadataService) ExtendedAttributeValue(ctx context.Context, name string, finder FinderAttributes, resource ResourceAttributes) ([]byte, error) {
	log := s.query("get_xattr").With("name", name)
	finder = withIconFlag(finder, resource)

	var (
		data []byte
		err  error
	)
	switch name {
	case types.XattrFinderInfo:
		data = s.finderInfo(ctx, log, finder)
	case types.XattrResourceFork:
		data, err = s.resourceFork(ctx, log, resource)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNoAttribute, name)
	}
	return data, nil
}

// ReadExtendedAttribute copies the value of name starting at offset into buf.
// Resource fork xattrs are read in chunks, hence the offset.
func (s *metadataService) ReadExtendedAttribute(ctx context.Context, name string, finder FinderAttributes, resource ResourceAttributes, buf []byte, offset int64) (int, error) {
	data, err := s.ExtendedAttributeValue(ctx, name, finder, resource)
	if err != nil {
		return 0, err
	}
	return helpers.ReadAt(data, buf, offset)
}

// ReadSidecar copies the ._ file contents starting at offset into buf.
func (s *metadataService) ReadSidecar(ctx context.Context, finder FinderAttributes, resource ResourceAttributes, buf []byte, offset int64) (int, error) {
	data, err := s.AppleDoubleData(ctx, finder, resource)
	if err != nil {
		return 0, err
	}
	return helpers.ReadAt(data, buf, offset)
}

// withIconFlag carries an icon given only as a resource over to the Finder
// attributes so the kHasCustomIcon flag is set.
func withIconFlag(finder FinderAttributes, resource ResourceAttributes) FinderAttributes {
	if len(finder.CustomIcon) == 0 && len(resource.CustomIcon) > 0 {
		finder.CustomIcon = resource.CustomIcon
	}
	return finder
}
