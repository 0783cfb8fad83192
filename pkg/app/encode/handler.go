package encode

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/deploymenttheory/go-appledouble/internal/types"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

// Options shared by every encode command.
type Options struct {
	// Hex adds a hex dump of the blob to the response.
	Hex bool
}

// HandleFinderInfo processes a FinderInfo request
func HandleFinderInfo(ctx *app.Context, factory *services.ServiceFactory, req *FinderInfoRequest, opts Options) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	svc, err := factory.EncoderService()
	if err != nil {
		return nil, app.NewError(app.ErrCodeConfig, "encoder service unavailable", err)
	}

	flags, _ := ParseFlags(req.Flags, types.FinderFlagNames)
	extended, _ := ParseFlags(req.ExtendedFlags, types.ExtendedFlagNames)
	ctx.Log("encoding finder info", "type", req.TypeCode, "creator", req.CreatorCode, "flags", flags)

	blob, err := svc.EncodeFinderInfo(ctx, services.FinderInfoRequest{
		TypeCode:      ParseCode(req.TypeCode),
		CreatorCode:   ParseCode(req.CreatorCode),
		Flags:         flags,
		ExtendedFlags: extended,
	})
	if err != nil {
		return nil, encodeError(err)
	}
	return newResponse(blob, opts), nil
}

// HandleResourceFork processes a resource fork request. Resources from
// Resources come first, then the custom icon, then the webloc URL.
func HandleResourceFork(ctx *app.Context, factory *services.ServiceFactory, req *ResourceForkRequest, opts Options) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	svc, err := factory.EncoderService()
	if err != nil {
		return nil, app.NewError(app.ErrCodeConfig, "encoder service unavailable", err)
	}

	resources := make([]services.Resource, 0, len(req.Resources)+2)
	for _, spec := range req.Resources {
		res, payload, _ := ParseResourceSpec(spec)
		data, err := payload.Bytes()
		if err != nil {
			return nil, err
		}
		res.Data = data
		resources = append(resources, res)
	}
	if req.Icon != "" {
		data, err := req.Icon.Bytes()
		if err != nil {
			return nil, err
		}
		resources = append(resources, services.Resource{
			Type: types.ResTypeIcon,
			ID:   types.CustomIconResourceID,
			Data: data,
		})
	}
	if req.WeblocURL != "" {
		resources = append(resources, services.Resource{
			Type: types.ResTypeURL,
			ID:   types.WeblocURLResourceID,
			Data: []byte(req.WeblocURL),
		})
	}
	ctx.Log("encoding resource fork", "resources", len(resources))

	blob, err := svc.EncodeResourceFork(ctx, resources)
	if err != nil {
		return nil, encodeError(err)
	}
	return newResponse(blob, opts), nil
}

// HandleAppleDouble processes an AppleDouble request
func HandleAppleDouble(ctx *app.Context, factory *services.ServiceFactory, req *AppleDoubleRequest, opts Options) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	svc, err := factory.EncoderService()
	if err != nil {
		return nil, app.NewError(app.ErrCodeConfig, "encoder service unavailable", err)
	}

	entries := make([]services.Entry, 0, len(req.Entries))
	for _, spec := range req.Entries {
		id, payload, _ := ParseEntrySpec(spec)
		data, err := payload.Bytes()
		if err != nil {
			return nil, err
		}
		entries = append(entries, services.Entry{ID: id, Data: data})
	}
	ctx.Log("encoding apple double", "entries", len(entries))

	blob, err := svc.EncodeAppleDouble(ctx, entries)
	if err != nil {
		return nil, encodeError(err)
	}
	return newResponse(blob, opts), nil
}

// HandleSidecar builds the ._ file a user space file system serves for a
// file with the given Finder metadata.
func HandleSidecar(ctx *app.Context, factory *services.ServiceFactory, req *SidecarRequest, opts Options) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	svc, err := factory.MetadataService()
	if err != nil {
		return nil, app.NewError(app.ErrCodeConfig, "metadata service unavailable", err)
	}

	var finder services.FinderAttributes
	if req.TypeCode != "" {
		code := ParseCode(req.TypeCode)
		finder.TypeCode = &code
	}
	if req.CreatorCode != "" {
		code := ParseCode(req.CreatorCode)
		finder.CreatorCode = &code
	}
	if req.Flags != "" {
		flags, _ := ParseFlags(req.Flags, types.FinderFlagNames)
		finder.Flags = &flags
	}
	if req.ExtendedFlags != "" {
		flags, _ := ParseFlags(req.ExtendedFlags, types.ExtendedFlagNames)
		finder.ExtendedFlags = &flags
	}

	var resource services.ResourceAttributes
	if req.Icon != "" {
		icon, err := req.Icon.Bytes()
		if err != nil {
			return nil, err
		}
		finder.CustomIcon = icon
		resource.CustomIcon = icon
	}
	resource.WeblocURL = req.WeblocURL

	data, err := svc.AppleDoubleData(ctx, finder, resource)
	if err != nil {
		return nil, encodeError(err)
	}
	names, err := svc.ExtendedAttributeNames(ctx, finder, resource)
	if err != nil {
		return nil, encodeError(err)
	}
	ctx.Log("derived sidecar", "length", len(data), "xattrs", names)

	regions, err := appleDoubleLayout(data)
	if err != nil {
		return nil, encodeError(err)
	}
	blob := services.Blob{Kind: services.KindAppleDouble, Data: data, Regions: regions}
	return newResponse(blob, opts), nil
}

// appleDoubleLayout reads the descriptor table of an AppleDouble blob back
// into regions.
func appleDoubleLayout(data []byte) ([]services.Region, error) {
	r := bytes.NewReader(data)
	var header types.AppleDoubleHeader
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("reading apple double header: %w", err)
	}
	descriptors := make([]types.EntryDescriptor, header.NumEntries)
	if err := binary.Read(r, binary.BigEndian, descriptors); err != nil {
		return nil, fmt.Errorf("reading entry descriptors: %w", err)
	}

	regions := []services.Region{
		{Name: "header", Offset: 0, Length: types.AppleDoubleHeaderSize},
		{Name: "descriptors", Offset: types.AppleDoubleHeaderSize, Length: uint64(len(descriptors) * types.EntryDescriptorSize)},
	}
	for _, d := range descriptors {
		regions = append(regions, services.Region{Name: d.EntryID.String(), Offset: uint64(d.Offset), Length: uint64(d.Length)})
	}
	return regions, nil
}

func newResponse(blob services.Blob, opts Options) *Response {
	resp := &Response{
		Kind:    blob.Kind,
		Length:  len(blob.Data),
		Digest:  digest.FromBytes(blob.Data).String(),
		Regions: make([]RegionResult, 0, len(blob.Regions)),
		Data:    blob.Data,
	}
	for _, r := range blob.Regions {
		resp.Regions = append(resp.Regions, RegionResult{Name: r.Name, Offset: r.Offset, Length: r.Length})
	}
	if opts.Hex {
		resp.Hex = hex.EncodeToString(blob.Data)
	}
	return resp
}

// encodeError classifies encoder failures. Inputs the formats cannot hold
// are reported as invalid input.
func encodeError(err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidEntryID),
		errors.Is(err, types.ErrDuplicateEntry),
		errors.Is(err, types.ErrNameTooLong),
		errors.Is(err, types.ErrOverflow):
		return app.NewError(app.ErrCodeInvalidInput, "cannot encode input", err)
	default:
		return app.NewError(app.ErrCodeEncodeFailed, "encoding failed", err)
	}
}
