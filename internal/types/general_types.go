// Package types implements the on-disk structures and constants shared by the
// AppleDouble, resource fork and FinderInfo encoders.
// The layouts follow "AppleSingle/AppleDouble Formats for Foreign Files
// Developer's Note" (Apple, 1990), "Inside Macintosh: More Macintosh Toolbox",
// chapter 1 (Resource Manager) and CarbonCore/Finder.h.
package types

import (
	"encoding/binary"
	"strconv"
)

// FourCharCode is a four byte code stored as its literal ASCII bytes,
// for example 'TEXT', 'ttxt' or 'icns'. Also known as OSType or ResType.
type FourCharCode [4]byte

// NewFourCharCode builds a code from the first four bytes of s. Shorter
// strings are padded with spaces, the way 'url ' is spelled. No validation
// is performed; any byte sequence is accepted.
func NewFourCharCode(s string) FourCharCode {
	c := FourCharCode{' ', ' ', ' ', ' '}
	copy(c[:], s)
	return c
}

// OSType returns the code as a big-endian numeric OSType.
func (c FourCharCode) OSType() uint32 {
	return binary.BigEndian.Uint32(c[:])
}

// String returns the code as text. Codes holding non-printable bytes are
// rendered as a hex literal instead.
func (c FourCharCode) String() string {
	for _, b := range c {
		if b < 0x20 || b > 0x7e {
			return "0x" + strconv.FormatUint(uint64(c.OSType()), 16)
		}
	}
	return string(c[:])
}
