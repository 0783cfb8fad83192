package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	appledouble "github.com/deploymenttheory/go-appledouble/internal/encoders/apple_double"
	finderinfo "github.com/deploymenttheory/go-appledouble/internal/encoders/finder_info"
	resourcefork "github.com/deploymenttheory/go-appledouble/internal/encoders/resource_fork"
	"github.com/deploymenttheory/go-appledouble/internal/logger"
	metadata "github.com/deploymenttheory/go-appledouble/internal/services"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// encoderService implements the EncoderService interface
type encoderService struct {
	log  *slog.Logger
	opts metadata.Options
}

// NewEncoderService creates an encoder service. A nil logger discards logs.
func NewEncoderService(log *slog.Logger, opts metadata.Options) EncoderService {
	if log == nil {
		log = logger.Discard()
	}
	return &encoderService{log: log, opts: opts}
}

// EncodeFinderInfo encodes req into a FinderInfo record.
func (es *encoderService) EncodeFinderInfo(ctx context.Context, req FinderInfoRequest) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	enc := finderinfo.NewEncoder()
	enc.SetTypeCode(req.TypeCode)
	enc.SetCreatorCode(req.CreatorCode)
	enc.SetFlags(req.Flags)
	enc.SetExtendedFlags(req.ExtendedFlags)

	blob := Blob{
		Kind: KindFinderInfo,
		Data: enc.Data(),
		Regions: []Region{
			{Name: "fdType", Offset: 0, Length: 4},
			{Name: "fdCreator", Offset: 4, Length: 4},
			{Name: "fdFlags", Offset: 8, Length: 2},
			{Name: "fdLocation", Offset: 10, Length: 4},
			{Name: "fdFldr", Offset: 14, Length: 2},
			{Name: "reserved1", Offset: 16, Length: 8},
			{Name: "extendedFinderFlags", Offset: 24, Length: 2},
			{Name: "reserved2", Offset: 26, Length: 2},
			{Name: "putAwayFolderID", Offset: 28, Length: 4},
		},
	}
	es.logEncoded(ctx, blob)
	return blob, nil
}

// EncodeResourceFork encodes resources into a resource fork. It stops at the
// first resource that cannot be added.
func (es *encoderService) EncodeResourceFork(ctx context.Context, resources []Resource) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	enc := resourcefork.NewEncoder(resourcefork.WithNamePolicy(es.opts.LongNames))
	for i, res := range resources {
		if err := enc.AddResource(res.Type, res.ID, res.Name, res.Data); err != nil {
			return Blob{}, fmt.Errorf("resource %d ('%s' %d): %w", i, res.Type, res.ID, err)
		}
	}

	header := enc.Header()
	regions := []Region{
		{Name: "header", Offset: 0, Length: types.ResourceHeaderSize},
		{Name: "reserved", Offset: types.ResourceHeaderSize, Length: types.ResourceDataStart - types.ResourceHeaderSize},
	}
	offset := uint64(header.DataOffset)
	for _, res := range enc.Resources() {
		length := uint64(types.ResourceDataLengthSize + len(res.Data))
		regions = append(regions, Region{Name: fmt.Sprintf("data '%s' (%d)", res.Type, res.ID), Offset: offset, Length: length})
		offset += length
	}

	mapStart := uint64(header.MapOffset)
	typeList := uint64(2 + enc.NumTypes()*types.TypeListEntrySize)
	refLists := uint64(enc.Len() * types.ReferenceListEntrySize)
	nameList := uint64(header.MapLength) - types.ResourceMapHeaderSize - typeList - refLists
	regions = append(regions,
		Region{Name: "map header", Offset: mapStart, Length: types.ResourceMapHeaderSize},
		Region{Name: "type list", Offset: mapStart + types.ResourceMapHeaderSize, Length: typeList},
		Region{Name: "reference lists", Offset: mapStart + types.ResourceMapHeaderSize + typeList, Length: refLists},
		Region{Name: "name list", Offset: mapStart + types.ResourceMapHeaderSize + typeList + refLists, Length: nameList},
	)

	blob := Blob{Kind: KindResourceFork, Data: enc.Data(), Regions: regions}
	es.logEncoded(ctx, blob)
	return blob, nil
}

// EncodeAppleDouble encodes entries into an AppleDouble file.
func (es *encoderService) EncodeAppleDouble(ctx context.Context, entries []Entry) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}

	enc := appledouble.NewEncoder(
		appledouble.WithFiller(es.opts.Filler),
		appledouble.WithDuplicatePolicy(es.opts.Duplicates),
	)
	for i, entry := range entries {
		if err := enc.AddEntry(entry.ID, entry.Data); err != nil {
			return Blob{}, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	descriptors := enc.Descriptors()
	regions := []Region{
		{Name: "header", Offset: 0, Length: types.AppleDoubleHeaderSize},
		{Name: "descriptors", Offset: types.AppleDoubleHeaderSize, Length: uint64(len(descriptors) * types.EntryDescriptorSize)},
	}
	for _, d := range descriptors {
		regions = append(regions, Region{Name: d.EntryID.String(), Offset: uint64(d.Offset), Length: uint64(d.Length)})
	}

	blob := Blob{Kind: KindAppleDouble, Data: enc.Data(), Regions: regions}
	es.logEncoded(ctx, blob)
	return blob, nil
}

func (es *encoderService) logEncoded(ctx context.Context, blob Blob) {
	es.log.DebugContext(ctx, "encoded blob",
		"query_id", uuid.NewString(), "kind", blob.Kind, "length", len(blob.Data), "regions", len(blob.Regions))
}
