package encode

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-appledouble/internal/types"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

func TestHandleFinderInfo(t *testing.T) {
	ctx := app.NewContext()
	factory := services.NewServiceFactory()

	resp, err := HandleFinderInfo(ctx, factory, &FinderInfoRequest{
		TypeCode:    "TEXT",
		CreatorCode: "ttxt",
		Flags:       "0x0010",
	}, Options{Hex: true})
	require.NoError(t, err)

	assert.Equal(t, services.KindFinderInfo, resp.Kind)
	assert.Equal(t, 32, resp.Length)
	require.Len(t, resp.Data, 32)
	assert.Equal(t, []byte("TEXTttxt\x00\x10"), resp.Data[:10])
	assert.Equal(t, digest.FromBytes(resp.Data).String(), resp.Digest)
	assert.True(t, strings.HasPrefix(resp.Hex, "5445585474747874"))
	assert.Len(t, resp.Regions, 9)
}

func TestHandleFinderInfo_Defaults(t *testing.T) {
	resp, err := HandleFinderInfo(app.NewContext(), services.NewServiceFactory(), &FinderInfoRequest{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), resp.Data)
	assert.Empty(t, resp.Hex)
}

func TestHandleResourceFork(t *testing.T) {
	dir := t.TempDir()
	icon := filepath.Join(dir, "icon.icns")
	require.NoError(t, os.WriteFile(icon, []byte("ICON"), 0o644))

	resp, err := HandleResourceFork(app.NewContext(), services.NewServiceFactory(), &ResourceForkRequest{
		Resources: []string{"TEXT:128:readme=hi"},
		Icon:      app.Payload("@" + icon),
		WeblocURL: "https://example.com",
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, services.KindResourceFork, resp.Kind)

	// Data area: TEXT first, then the icon, then the URL.
	data := resp.Data
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(data[256:260]))
	assert.Equal(t, []byte("hi"), data[260:262])
	assert.Equal(t, []byte("ICON"), data[266:270])
	assert.Equal(t, []byte("https://example.com"), data[274:293])

	var names []string
	for _, r := range resp.Regions {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, "data 'icns' (-16455)")
	assert.Contains(t, names, "data 'url ' (256)")
}

func TestHandleResourceFork_Empty(t *testing.T) {
	resp, err := HandleResourceFork(app.NewContext(), services.NewServiceFactory(), &ResourceForkRequest{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 286, resp.Length)
}

func TestHandleResourceFork_MissingIcon(t *testing.T) {
	_, err := HandleResourceFork(app.NewContext(), services.NewServiceFactory(), &ResourceForkRequest{
		Icon: app.Payload("@" + filepath.Join(t.TempDir(), "missing.icns")),
	}, Options{})
	assertInvalidInput(t, err)
}

func TestHandleAppleDouble(t *testing.T) {
	resp, err := HandleAppleDouble(app.NewContext(), services.NewServiceFactory(), &AppleDoubleRequest{
		Entries: []string{"DataFork=hello"},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 43, resp.Length)
	assert.Equal(t, RegionResult{Name: "DataFork", Offset: 38, Length: 5}, resp.Regions[2])
}

func TestHandleAppleDouble_Duplicate(t *testing.T) {
	_, err := HandleAppleDouble(app.NewContext(), services.NewServiceFactory(), &AppleDoubleRequest{
		Entries: []string{"Comment=a", "comment=b"},
	}, Options{})
	assertInvalidInput(t, err)
	assert.True(t, errors.Is(err, types.ErrDuplicateEntry))
}

func TestHandleSidecar(t *testing.T) {
	resp, err := HandleSidecar(app.NewContext(), services.NewServiceFactory(), &SidecarRequest{
		FinderInfoRequest: FinderInfoRequest{Flags: "kIsInvisible"},
		WeblocURL:         "https://example.com",
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, services.KindAppleDouble, resp.Kind)
	require.Len(t, resp.Regions, 4)
	assert.Equal(t, "FinderInfo", resp.Regions[2].Name)
	assert.Equal(t, uint64(32), resp.Regions[2].Length)
	assert.Equal(t, "ResourceFork", resp.Regions[3].Name)

	fi := resp.Data[resp.Regions[2].Offset : resp.Regions[2].Offset+32]
	assert.Equal(t, types.FinderFlagIsInvisible, binary.BigEndian.Uint16(fi[8:10]))
}

func TestHandleSidecar_Empty(t *testing.T) {
	resp, err := HandleSidecar(app.NewContext(), services.NewServiceFactory(), &SidecarRequest{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 26+12+32, resp.Length)
}
