package services

import (
	"context"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-appledouble/internal/config"
	appledouble "github.com/deploymenttheory/go-appledouble/internal/encoders/apple_double"
	resourcefork "github.com/deploymenttheory/go-appledouble/internal/encoders/resource_fork"
	metadata "github.com/deploymenttheory/go-appledouble/internal/services"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

func TestServiceFactory(t *testing.T) {
	factory := NewServiceFactory()
	assert.False(t, factory.IsInitialized())

	encSvc, err := factory.EncoderService()
	require.NoError(t, err)
	assert.NotNil(t, encSvc)
	assert.True(t, factory.IsInitialized())

	metaSvc, err := factory.MetadataService()
	require.NoError(t, err)
	assert.NotNil(t, metaSvc)

	require.NoError(t, factory.Shutdown())
	assert.False(t, factory.IsInitialized())

	assert.Len(t, factory.ListAvailableServices(), 2)
}

func TestServiceFactory_Configure(t *testing.T) {
	factory := NewServiceFactory()
	opts := metadata.DefaultOptions()
	opts.Duplicates = appledouble.DuplicateReplace
	factory.Configure(nil, opts)

	svc, err := factory.EncoderService()
	require.NoError(t, err)

	blob, err := svc.EncodeAppleDouble(context.Background(), []Entry{
		{ID: types.EntryComment, Data: []byte("one")},
		{ID: types.EntryComment, Data: []byte("two")},
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(blob.Data[24:26]))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.ResourceFork.LongNames = "truncate"

	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultAppleDoubleFiller, opts.Filler)
	assert.Equal(t, appledouble.DuplicateReject, opts.Duplicates)
	assert.Equal(t, resourcefork.NameTruncate, opts.LongNames)

	cfg.AppleDouble.DuplicateEntries = "merge"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}

func TestEncodeFinderInfo(t *testing.T) {
	svc := NewEncoderService(nil, metadata.DefaultOptions())

	blob, err := svc.EncodeFinderInfo(context.Background(), FinderInfoRequest{
		TypeCode:    NewFourCharCode("TEXT"),
		CreatorCode: NewFourCharCode("ttxt"),
		Flags:       0x0010,
	})
	require.NoError(t, err)
	assert.Equal(t, KindFinderInfo, blob.Kind)
	require.Len(t, blob.Data, 32)
	assert.Equal(t, []byte("TEXTttxt\x00\x10"), blob.Data[:10])

	var total uint64
	for _, r := range blob.Regions {
		assert.Equal(t, total, r.Offset, r.Name)
		total += r.Length
	}
	assert.Equal(t, uint64(32), total)
}

func TestEncodeResourceFork(t *testing.T) {
	svc := NewEncoderService(nil, metadata.DefaultOptions())

	blob, err := svc.EncodeResourceFork(context.Background(), []Resource{
		{Type: NewFourCharCode("icns"), ID: 256, Data: []byte{1, 2, 3, 4}},
		{Type: NewFourCharCode("TEXT"), ID: 128, Name: "readme", Data: []byte("hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, KindResourceFork, blob.Kind)

	var total uint64
	for _, r := range blob.Regions {
		assert.Equal(t, total, r.Offset, r.Name)
		total += r.Length
	}
	assert.Equal(t, uint64(len(blob.Data)), total, "regions cover the whole fork")
	assert.Equal(t, "name list", blob.Regions[len(blob.Regions)-1].Name)
	assert.Equal(t, uint64(7), blob.Regions[len(blob.Regions)-1].Length)
}

func TestEncodeResourceFork_Error(t *testing.T) {
	svc := NewEncoderService(nil, metadata.DefaultOptions())

	_, err := svc.EncodeResourceFork(context.Background(), []Resource{
		{Type: NewFourCharCode("STR "), ID: 1, Name: strings.Repeat("n", 256)},
	})
	assert.ErrorIs(t, err, types.ErrNameTooLong)
}

func TestEncodeAppleDouble(t *testing.T) {
	svc := NewEncoderService(nil, metadata.DefaultOptions())

	blob, err := svc.EncodeAppleDouble(context.Background(), []Entry{
		{ID: types.EntryDataFork, Data: []byte("hello")},
	})
	require.NoError(t, err)
	require.Len(t, blob.Data, 43)
	require.Len(t, blob.Regions, 3)
	assert.Equal(t, Region{Name: "DataFork", Offset: 38, Length: 5}, blob.Regions[2])

	_, err = svc.EncodeAppleDouble(context.Background(), []Entry{{ID: 0}})
	assert.ErrorIs(t, err, types.ErrInvalidEntryID)
}

func TestEncode_CancelledContext(t *testing.T) {
	svc := NewEncoderService(nil, metadata.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.EncodeFinderInfo(ctx, FinderInfoRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
