package types

// FinderInfo is the 32-byte concatenation of FileInfo and ExtendedFileInfo
// stored in the com.apple.FinderInfo attribute (CarbonCore/Finder.h).
type FinderInfo struct {
	FileType    FourCharCode
	FileCreator FourCharCode
	FinderFlags uint16

	// Location in the parent window; always zero when encoding.
	Location [2]int16

	// Reserved; always zero.
	ReservedField uint16

	// ExtendedFileInfo starts here, at byte 16.
	Reserved1           [4]int16
	ExtendedFinderFlags uint16
	Reserved2           int16
	PutAwayFolderID     int32
}

// FinderInfoSize is the encoded size of FinderInfo.
const FinderInfoSize = 32

// Finder flags (FileInfo.finderFlags).
const (
	FinderFlagIsOnDesk      uint16 = 0x0001
	FinderFlagColor         uint16 = 0x000E
	FinderFlagIsShared      uint16 = 0x0040
	FinderFlagHasNoINITs    uint16 = 0x0080
	FinderFlagHasBeenInited uint16 = 0x0100
	FinderFlagHasCustomIcon uint16 = 0x0400
	FinderFlagIsStationery  uint16 = 0x0800
	FinderFlagNameLocked    uint16 = 0x1000
	FinderFlagHasBundle     uint16 = 0x2000
	FinderFlagIsInvisible   uint16 = 0x4000
	FinderFlagIsAlias       uint16 = 0x8000
)

// Extended Finder flags (ExtendedFileInfo.extendedFinderFlags).
const (
	ExtendedFlagsAreInvalid    uint16 = 0x8000
	ExtendedFlagHasCustomBadge uint16 = 0x0100
	ExtendedFlagObjectIsBusy   uint16 = 0x0080
	ExtendedFlagHasRoutingInfo uint16 = 0x0004
)

// FlagName pairs a flag bit with its Finder.h name.
type FlagName struct {
	Name  string
	Value uint16
}

// FinderFlagNames lists the Finder flags in bit order.
var FinderFlagNames = []FlagName{
	{"kIsOnDesk", FinderFlagIsOnDesk},
	{"kColor", FinderFlagColor},
	{"kIsShared", FinderFlagIsShared},
	{"kHasNoINITs", FinderFlagHasNoINITs},
	{"kHasBeenInited", FinderFlagHasBeenInited},
	{"kHasCustomIcon", FinderFlagHasCustomIcon},
	{"kIsStationery", FinderFlagIsStationery},
	{"kNameLocked", FinderFlagNameLocked},
	{"kHasBundle", FinderFlagHasBundle},
	{"kIsInvisible", FinderFlagIsInvisible},
	{"kIsAlias", FinderFlagIsAlias},
}

// ExtendedFlagNames lists the extended Finder flags in bit order.
var ExtendedFlagNames = []FlagName{
	{"kExtendedFlagHasRoutingInfo", ExtendedFlagHasRoutingInfo},
	{"kExtendedFlagObjectIsBusy", ExtendedFlagObjectIsBusy},
	{"kExtendedFlagHasCustomBadge", ExtendedFlagHasCustomBadge},
	{"kExtendedFlagsAreInvalid", ExtendedFlagsAreInvalid},
}

// Extended attribute names used instead of AppleDouble files on 10.5 and later.
const (
	XattrFinderInfo   = "com.apple.FinderInfo"
	XattrResourceFork = "com.apple.ResourceFork"
)
