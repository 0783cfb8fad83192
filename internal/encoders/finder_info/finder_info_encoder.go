package finderinfo

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-appledouble/internal/interfaces"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// Encoder constructs the raw 32-byte FinderInfo for a file.
//
// On 10.4 the FinderInfo lives in the AppleDouble (._) file next to the file;
// on 10.5 and later it is the value of the com.apple.FinderInfo attribute.
// Fields that are never set encode as zero.
type Encoder struct {
	info types.FinderInfo
}

var _ interfaces.FinderInfoEncoder = (*Encoder)(nil)

// Byte offsets within the 32-byte blob. Everything else is reserved and zero.
const (
	offsetType          = 0
	offsetCreator       = 4
	offsetFlags         = 8
	offsetExtendedFlags = 24 // extendedFinderFlags of ExtendedFileInfo, after reserved1 (Finder.h)
)

// NewEncoder returns an encoder with every field zeroed.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// SetFlags sets the Finder flags, e.g. types.FinderFlagHasCustomIcon.
func (e *Encoder) SetFlags(flags uint16) {
	e.info.FinderFlags = flags
}

// SetExtendedFlags sets the extended Finder flags.
func (e *Encoder) SetExtendedFlags(flags uint16) {
	e.info.ExtendedFinderFlags = flags
}

// SetTypeCode sets the four-char type code.
func (e *Encoder) SetTypeCode(code types.FourCharCode) {
	e.info.FileType = code
}

// SetCreatorCode sets the four-char creator code.
func (e *Encoder) SetCreatorCode(code types.FourCharCode) {
	e.info.FileCreator = code
}

// Info returns the FinderInfo as it would be encoded.
func (e *Encoder) Info() types.FinderInfo {
	return e.info
}

// Data returns the 32 bytes of FinderInfo based on the current settings.
func (e *Encoder) Data() []byte {
	data := make([]byte, types.FinderInfoSize)
	copy(data[offsetType:], e.info.FileType[:])
	copy(data[offsetCreator:], e.info.FileCreator[:])
	binary.BigEndian.PutUint16(data[offsetFlags:], e.info.FinderFlags)
	binary.BigEndian.PutUint16(data[offsetExtendedFlags:], e.info.ExtendedFinderFlags)
	return data
}
