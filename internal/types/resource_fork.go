package types

// Resource Manager on-disk structures ("Inside Macintosh: More Macintosh
// Toolbox", Resource Manager, "Format of a Resource Fork").

// ResourceHeader is the 16-byte header at the start of a resource fork.
// All offsets are from the beginning of the fork.
type ResourceHeader struct {
	DataOffset uint32
	MapOffset  uint32
	DataLength uint32
	MapLength  uint32
}

// ResourceMapHeader is the fixed part of the resource map, followed by the
// type count that opens the type list.
type ResourceMapHeader struct {
	// Reserved for a copy of the resource header.
	HeaderCopy ResourceHeader

	// Reserved for the handle to the next resource map.
	NextMap uint32

	// Reserved for the file reference number.
	FileRef uint16

	// Resource fork attributes.
	Attributes uint16

	// Offset from the beginning of the map to the type list.
	TypeListOffset uint16

	// Offset from the beginning of the map to the name list.
	NameListOffset uint16
}

// TypeListEntry describes all resources of one type.
type TypeListEntry struct {
	Type FourCharCode

	// Number of resources of this type, minus one.
	CountMinusOne uint16

	// Offset from the beginning of the type list to this type's reference list.
	RefListOffset uint16
}

// ReferenceListEntry describes one resource. DataOffset is stored in 24 bits.
type ReferenceListEntry struct {
	ID         int16
	NameOffset uint16
	Attributes uint8
	DataOffset uint32
	Reserved   uint32
}

const (
	// ResourceHeaderSize is the size of ResourceHeader.
	ResourceHeaderSize = 16

	// ResourceDataStart is where the data area begins. The bytes between the
	// header and the data area are reserved for system and application use.
	ResourceDataStart = 256

	// ResourceMapHeaderSize is the fixed map part before the type list.
	ResourceMapHeaderSize = ResourceHeaderSize + 4 + 2 + 2 + 2 + 2

	// TypeListEntrySize is the size of one type list entry.
	TypeListEntrySize = 8

	// ReferenceListEntrySize is the size of one reference list entry.
	ReferenceListEntrySize = 12

	// ResourceDataLengthSize is the length prefix before each resource's data.
	ResourceDataLengthSize = 4

	// ResourceNoName is the name offset of a resource without a name.
	ResourceNoName uint16 = 0xFFFF

	// ResourceMaxNameLength is the capacity of the name length byte.
	ResourceMaxNameLength = 255

	// ResourceMaxCount is the most items a count-minus-one field can describe.
	ResourceMaxCount = 0x10000

	// ResourceMaxDataOffset is the largest value the 24-bit data offset holds.
	ResourceMaxDataOffset = 0xFFFFFF

	// ResourceMaxMapOffset is the largest value a 16-bit map offset holds.
	ResourceMaxMapOffset = 0xFFFF
)

// Well known resource types and ids.
var (
	// ResTypeIcon holds a raw .icns file.
	ResTypeIcon = NewFourCharCode("icns")

	// ResTypeURL holds the URL of a .webloc file.
	ResTypeURL = NewFourCharCode("url ")
)

const (
	// CustomIconResourceID is kCustomIconResource from Icons.h.
	CustomIconResourceID int16 = -16455

	// WeblocURLResourceID is the id of the 'url ' resource in a .webloc file.
	WeblocURLResourceID int16 = 256
)
