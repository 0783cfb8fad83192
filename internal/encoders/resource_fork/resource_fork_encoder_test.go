package resourcefork

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// parsedRef is a reference list entry read back from encoded output.
type parsedRef struct {
	id         int16
	nameOffset uint16
	attributes uint8
	dataOffset uint32
	name       string
	data       []byte
}

type parsedType struct {
	resType       types.FourCharCode
	countMinusOne uint16
	refListOffset uint16
	refs          []parsedRef
}

type parsedFork struct {
	header    types.ResourceHeader
	mapHeader types.ResourceMapHeader
	typeCount uint16
	types     []parsedType
}

// parseFork reads back the structure Data writes so tests can assert on it.
func parseFork(t *testing.T, data []byte) parsedFork {
	t.Helper()
	var fork parsedFork
	require.NoError(t, binary.Read(bytes.NewReader(data), binary.BigEndian, &fork.header))
	require.Equal(t, int(fork.header.MapOffset+fork.header.MapLength), len(data), "header must account for every byte")

	resMap := data[fork.header.MapOffset:]
	require.NoError(t, binary.Read(bytes.NewReader(resMap), binary.BigEndian, &fork.mapHeader))
	typeList := resMap[fork.mapHeader.TypeListOffset:]
	nameList := resMap[fork.mapHeader.NameListOffset:]
	area := data[fork.header.DataOffset : fork.header.DataOffset+fork.header.DataLength]

	fork.typeCount = binary.BigEndian.Uint16(typeList)
	numTypes := int(fork.typeCount) + 1
	if fork.typeCount == 0xFFFF {
		numTypes = 0
	}
	for i := 0; i < numTypes; i++ {
		entry := typeList[2+i*types.TypeListEntrySize:]
		var pt parsedType
		copy(pt.resType[:], entry[0:4])
		pt.countMinusOne = binary.BigEndian.Uint16(entry[4:])
		pt.refListOffset = binary.BigEndian.Uint16(entry[6:])
		for j := 0; j <= int(pt.countMinusOne); j++ {
			ref := typeList[int(pt.refListOffset)+j*types.ReferenceListEntrySize:]
			pr := parsedRef{
				id:         int16(binary.BigEndian.Uint16(ref[0:])),
				nameOffset: binary.BigEndian.Uint16(ref[2:]),
				attributes: ref[4],
				dataOffset: binary.BigEndian.Uint32(ref[4:]) & 0xFFFFFF,
			}
			assert.Equal(t, uint32(0), binary.BigEndian.Uint32(ref[8:]), "reserved handle must be zero")
			if pr.nameOffset != types.ResourceNoName {
				n := int(nameList[pr.nameOffset])
				pr.name = string(nameList[int(pr.nameOffset)+1 : int(pr.nameOffset)+1+n])
			}
			length := binary.BigEndian.Uint32(area[pr.dataOffset:])
			pr.data = area[pr.dataOffset+4 : pr.dataOffset+4+length]
			pt.refs = append(pt.refs, pr)
		}
		fork.types = append(fork.types, pt)
	}
	return fork
}

func TestEncodeCountMinusOne(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		want    uint16
		wantErr bool
	}{
		{name: "zero encodes as 0xFFFF", count: 0, want: 0xFFFF},
		{name: "one encodes as zero", count: 1, want: 0},
		{name: "two encodes as one", count: 2, want: 1},
		{name: "65536 encodes as 0xFFFF", count: 65536, want: 0xFFFF},
		{name: "65537 overflows", count: 65537, wantErr: true},
		{name: "negative overflows", count: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeCountMinusOne(tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncoder_EmptyFork(t *testing.T) {
	data := NewEncoder().Data()
	require.Len(t, data, types.ResourceDataStart+types.ResourceMapHeaderSize+2)

	fork := parseFork(t, data)
	assert.Equal(t, types.ResourceHeader{DataOffset: 256, MapOffset: 256, DataLength: 0, MapLength: 30}, fork.header)
	assert.Equal(t, fork.header, fork.mapHeader.HeaderCopy)
	assert.Equal(t, uint16(28), fork.mapHeader.TypeListOffset)
	assert.Equal(t, uint16(30), fork.mapHeader.NameListOffset)
	assert.Equal(t, uint16(0xFFFF), fork.typeCount)
	assert.Empty(t, fork.types)
	assert.Equal(t, make([]byte, 240), data[16:256], "reserved area must be zero")
}

func TestEncoder_SingleIconResource(t *testing.T) {
	icon := bytes.Repeat([]byte{0xAB}, 37)
	enc := NewEncoder()
	require.NoError(t, enc.AddResource(types.NewFourCharCode("icns"), 256, "", icon))

	data := enc.Data()
	fork := parseFork(t, data)

	assert.Equal(t, uint32(4+len(icon)), fork.header.DataLength)
	assert.Equal(t, uint32(256), fork.header.DataOffset)
	assert.Equal(t, fork.header.DataOffset+fork.header.DataLength, fork.header.MapOffset, "no gap between data and map")
	assert.Equal(t, uint16(0), fork.typeCount)
	require.Len(t, fork.types, 1)

	pt := fork.types[0]
	assert.Equal(t, "icns", pt.resType.String())
	assert.Equal(t, uint16(0), pt.countMinusOne)
	assert.Equal(t, uint16(10), pt.refListOffset)
	require.Len(t, pt.refs, 1)
	assert.Equal(t, int16(256), pt.refs[0].id)
	assert.Equal(t, types.ResourceNoName, pt.refs[0].nameOffset)
	assert.Equal(t, uint32(0), pt.refs[0].dataOffset)
	assert.Equal(t, uint8(0), pt.refs[0].attributes)
	assert.Equal(t, icon, pt.refs[0].data)

	// Map: 28 byte header, 2 byte count, one type entry, one reference, no names.
	assert.Equal(t, uint32(28+2+8+12), fork.header.MapLength)
	assert.Equal(t, uint16(28+2+8+12), fork.mapHeader.NameListOffset)
}

func TestEncoder_OrderingAndNames(t *testing.T) {
	str := types.NewFourCharCode("STR ")
	icns := types.NewFourCharCode("icns")

	enc := NewEncoder()
	require.NoError(t, enc.AddResource(str, 128, "greeting", []byte("hello")))
	require.NoError(t, enc.AddResource(icns, -16455, "", []byte{1, 2, 3}))
	require.NoError(t, enc.AddResource(str, 129, "", []byte("world!")))
	require.NoError(t, enc.AddResource(str, 130, "farewell", []byte("bye")))
	assert.Equal(t, 4, enc.Len())
	assert.Equal(t, 2, enc.NumTypes())

	fork := parseFork(t, enc.Data())
	require.Len(t, fork.types, 2)
	assert.Equal(t, uint16(1), fork.typeCount)

	t.Run("types follow first insertion", func(t *testing.T) {
		assert.Equal(t, str, fork.types[0].resType)
		assert.Equal(t, icns, fork.types[1].resType)
		assert.Equal(t, uint16(2), fork.types[0].countMinusOne)
		assert.Equal(t, uint16(0), fork.types[1].countMinusOne)
	})

	t.Run("reference lists follow the type list", func(t *testing.T) {
		assert.Equal(t, uint16(2+2*8), fork.types[0].refListOffset)
		assert.Equal(t, uint16(2+2*8+3*12), fork.types[1].refListOffset)
	})

	t.Run("data area is type then insertion order", func(t *testing.T) {
		refs := fork.types[0].refs
		assert.Equal(t, []int16{128, 129, 130}, []int16{refs[0].id, refs[1].id, refs[2].id})
		assert.Equal(t, uint32(0), refs[0].dataOffset)
		assert.Equal(t, uint32(4+5), refs[1].dataOffset)
		assert.Equal(t, uint32(4+5+4+6), refs[2].dataOffset)
		assert.Equal(t, uint32(4+5+4+6+4+3), fork.types[1].refs[0].dataOffset)
		assert.Equal(t, []byte("world!"), refs[1].data)
		assert.Equal(t, []byte{1, 2, 3}, fork.types[1].refs[0].data)
	})

	t.Run("names use offsets into the name list", func(t *testing.T) {
		refs := fork.types[0].refs
		assert.Equal(t, uint16(0), refs[0].nameOffset)
		assert.Equal(t, "greeting", refs[0].name)
		assert.Equal(t, types.ResourceNoName, refs[1].nameOffset)
		assert.Equal(t, uint16(1+len("greeting")), refs[2].nameOffset)
		assert.Equal(t, "farewell", refs[2].name)
		assert.Equal(t, types.ResourceNoName, fork.types[1].refs[0].nameOffset)
	})

	t.Run("header lengths cover the whole fork", func(t *testing.T) {
		h := fork.header
		assert.Equal(t, uint32(4+5+4+6+4+3+4+3), h.DataLength)
		assert.Equal(t, h.DataOffset+h.DataLength, h.MapOffset)
		names := uint32(1 + 8 + 1 + 8)
		assert.Equal(t, uint32(28+2+2*8+4*12)+names, h.MapLength)
	})

	t.Run("resources report layout order", func(t *testing.T) {
		got := enc.Resources()
		require.Len(t, got, 4)
		assert.Equal(t, int16(130), got[2].ID)
		assert.Equal(t, int16(-16455), got[3].ID)
	})
}

func TestEncoder_Helpers(t *testing.T) {
	enc := NewEncoder()
	require.NoError(t, enc.AddCustomIcon([]byte("icns-bytes")))
	require.NoError(t, enc.AddWeblocURL("https://example.com/"))

	fork := parseFork(t, enc.Data())
	require.Len(t, fork.types, 2)
	assert.Equal(t, types.ResTypeIcon, fork.types[0].resType)
	assert.Equal(t, types.CustomIconResourceID, fork.types[0].refs[0].id)
	assert.Equal(t, types.ResTypeURL, fork.types[1].resType)
	assert.Equal(t, types.WeblocURLResourceID, fork.types[1].refs[0].id)
	assert.Equal(t, []byte("https://example.com/"), fork.types[1].refs[0].data)
}

func TestEncoder_LongNames(t *testing.T) {
	rtype := types.NewFourCharCode("TEXT")
	long := strings.Repeat("n", 256)

	t.Run("rejected by default", func(t *testing.T) {
		enc := NewEncoder()
		before := enc.Data()
		err := enc.AddResource(rtype, 1, long, []byte("x"))
		assert.ErrorIs(t, err, types.ErrNameTooLong)
		assert.Equal(t, 0, enc.Len())
		assert.Equal(t, before, enc.Data())
	})

	t.Run("255 bytes is accepted", func(t *testing.T) {
		enc := NewEncoder()
		require.NoError(t, enc.AddResource(rtype, 1, long[:255], []byte("x")))
		fork := parseFork(t, enc.Data())
		assert.Equal(t, long[:255], fork.types[0].refs[0].name)
	})

	t.Run("truncated when configured", func(t *testing.T) {
		enc := NewEncoder(WithNamePolicy(NameTruncate))
		require.NoError(t, enc.AddResource(rtype, 1, long, []byte("x")))
		fork := parseFork(t, enc.Data())
		assert.Len(t, fork.types[0].refs[0].name, 255)
	})
}

func TestEncoder_Overflow(t *testing.T) {
	rtype := types.NewFourCharCode("DATA")

	t.Run("reference lists beyond 16-bit map offsets", func(t *testing.T) {
		enc := NewEncoder()
		// 28 + 2 + 8 + 12n <= 0xFFFF holds up to n = 5458.
		for i := 0; i < 5458; i++ {
			require.NoError(t, enc.AddResource(rtype, int16(i), "", nil))
		}
		before := enc.Header()
		err := enc.AddResource(rtype, 5458, "", nil)
		assert.ErrorIs(t, err, types.ErrOverflow)
		assert.Equal(t, 5458, enc.Len())
		assert.Equal(t, before, enc.Header())
	})

	t.Run("name list beyond 16-bit offsets", func(t *testing.T) {
		enc := NewEncoder()
		name := strings.Repeat("a", 255)
		for i := 0; i < 255; i++ {
			require.NoError(t, enc.AddResource(rtype, int16(i), name, nil))
		}
		err := enc.AddResource(rtype, 255, name, nil)
		assert.ErrorIs(t, err, types.ErrOverflow)
		assert.Equal(t, 255, enc.Len())
		require.NoError(t, enc.AddResource(rtype, 255, "", nil), "unnamed resources still fit")
	})

	t.Run("data offsets beyond 24 bits", func(t *testing.T) {
		enc := NewEncoder()
		big := make([]byte, types.ResourceMaxDataOffset)
		require.NoError(t, enc.AddResource(rtype, 1, "", big), "a large first resource sits at offset zero")
		err := enc.AddResource(rtype, 2, "", []byte("x"))
		assert.ErrorIs(t, err, types.ErrOverflow)

		other := types.NewFourCharCode("MORE")
		err = enc.AddResource(other, 3, "", nil)
		assert.ErrorIs(t, err, types.ErrOverflow)
		assert.Equal(t, 1, enc.Len())
		assert.Equal(t, 1, enc.NumTypes())
	})
}
