package types

import "strings"

// AppleDouble header (AppleSingle/AppleDouble Developer's Note, "AppleDouble Header File")

const (
	// AppleDoubleMagic identifies an AppleDouble header file.
	AppleDoubleMagic uint32 = 0x00051607

	// AppleDoubleVersion is version 2 of the format.
	AppleDoubleVersion uint32 = 0x00020000

	// AppleDoubleFillerSize is the size of the filler field that follows the version.
	AppleDoubleFillerSize = 16

	// AppleDoubleHeaderSize is magic + version + filler + entry count.
	AppleDoubleHeaderSize = 4 + 4 + AppleDoubleFillerSize + 2

	// EntryDescriptorSize is the size of one entry descriptor.
	EntryDescriptorSize = 12

	// AppleDoubleMaxEntries is the capacity of the 16-bit entry count.
	AppleDoubleMaxEntries = 0xFFFF

	// DefaultAppleDoubleFiller is the signature Mac OS X writes into the filler.
	DefaultAppleDoubleFiller = "Mac OS X"
)

// EntryID identifies the kind of data an AppleDouble entry holds.
type EntryID uint32

// Predefined entry ids. Id 0 is invalid and 7 was never assigned.
const (
	EntryInvalid           EntryID = 0
	EntryDataFork          EntryID = 1
	EntryResourceFork      EntryID = 2
	EntryRealName          EntryID = 3
	EntryComment           EntryID = 4
	EntryBlackAndWhiteIcon EntryID = 5
	EntryColorIcon         EntryID = 6
	EntryFileDatesInfo     EntryID = 8
	EntryFinderInfo        EntryID = 9
	EntryMacFileInfo       EntryID = 10
	EntryProDOSFileInfo    EntryID = 11
	EntryMSDOSFileInfo     EntryID = 12
	EntryShortName         EntryID = 13
	EntryAFPFileInfo       EntryID = 14
	EntryDirectoryID       EntryID = 15
)

var entryIDNames = map[EntryID]string{
	EntryDataFork:          "DataFork",
	EntryResourceFork:      "ResourceFork",
	EntryRealName:          "RealName",
	EntryComment:           "Comment",
	EntryBlackAndWhiteIcon: "BlackAndWhiteIcon",
	EntryColorIcon:         "ColorIcon",
	EntryFileDatesInfo:     "FileDatesInfo",
	EntryFinderInfo:        "FinderInfo",
	EntryMacFileInfo:       "MacFileInfo",
	EntryProDOSFileInfo:    "ProDOSFileInfo",
	EntryMSDOSFileInfo:     "MSDOSFileInfo",
	EntryShortName:         "ShortName",
	EntryAFPFileInfo:       "AFPFileInfo",
	EntryDirectoryID:       "DirectoryID",
}

// EntryIDs returns every valid entry id in ascending order.
func EntryIDs() []EntryID {
	return []EntryID{
		EntryDataFork, EntryResourceFork, EntryRealName, EntryComment,
		EntryBlackAndWhiteIcon, EntryColorIcon, EntryFileDatesInfo,
		EntryFinderInfo, EntryMacFileInfo, EntryProDOSFileInfo,
		EntryMSDOSFileInfo, EntryShortName, EntryAFPFileInfo, EntryDirectoryID,
	}
}

// Valid reports whether id belongs to the predefined set.
func (id EntryID) Valid() bool {
	_, ok := entryIDNames[id]
	return ok
}

// String returns the entry name, or "Invalid" for unknown ids.
func (id EntryID) String() string {
	if name, ok := entryIDNames[id]; ok {
		return name
	}
	return "Invalid"
}

// ParseEntryID looks up an entry id by its name, ignoring case.
func ParseEntryID(name string) (EntryID, bool) {
	for _, id := range EntryIDs() {
		if strings.EqualFold(name, entryIDNames[id]) {
			return id, true
		}
	}
	return EntryInvalid, false
}

// EntryDescriptor locates one entry within an AppleDouble file.
type EntryDescriptor struct {
	// Entry kind.
	EntryID EntryID

	// Offset of the entry data from the beginning of the file.
	Offset uint32

	// Length of the entry data in bytes.
	Length uint32
}

// AppleDoubleHeader is the fixed portion at the start of an AppleDouble file.
type AppleDoubleHeader struct {
	Magic      uint32
	Version    uint32
	Filler     [AppleDoubleFillerSize]byte
	NumEntries uint16
}

// FileDatesInfo entry (DoubleEntryFileDatesInfo). Dates are signed seconds
// relative to 2000-01-01 00:00:00 GMT.
type FileDatesInfo struct {
	CreateDate int32
	ModifyDate int32
	BackupDate int32
	AccessDate int32
}

const (
	// FileDatesInfoSize is the encoded size of FileDatesInfo.
	FileDatesInfoSize = 16

	// FileDateUnknown marks a date that is not known.
	FileDateUnknown int32 = -0x80000000
)

// MacFileInfo entry flag bits.
const (
	MacFileInfoLocked    uint32 = 1 << 0
	MacFileInfoProtected uint32 = 1 << 1

	// MacFileInfoSize is the encoded size of the MacFileInfo flag word.
	MacFileInfoSize = 4
)
