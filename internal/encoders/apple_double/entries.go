package appledouble

import (
	"math"
	"time"

	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// dateEpoch is the reference point of FileDatesInfo: 2000-01-01 00:00:00 GMT.
var dateEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// EncodeDate converts t into FileDatesInfo seconds. The zero time encodes as
// types.FileDateUnknown; dates outside the SInt32 range are clamped.
func EncodeDate(t time.Time) int32 {
	if t.IsZero() {
		return types.FileDateUnknown
	}
	secs := t.Unix() - dateEpoch.Unix()
	switch {
	case secs > math.MaxInt32:
		return math.MaxInt32
	case secs <= math.MinInt32:
		// MinInt32 is reserved for unknown dates.
		return math.MinInt32 + 1
	}
	return int32(secs)
}

// FileDatesInfo returns the 16-byte payload of an EntryFileDatesInfo entry.
func FileDatesInfo(create, modify, backup, access time.Time) []byte {
	info := types.FileDatesInfo{
		CreateDate: EncodeDate(create),
		ModifyDate: EncodeDate(modify),
		BackupDate: EncodeDate(backup),
		AccessDate: EncodeDate(access),
	}
	w, buf := types.NewBufferWriter(types.FileDatesInfoSize)
	w.Write(&info)
	return buf.Bytes()
}

// MacFileInfo returns the 4-byte payload of an EntryMacFileInfo entry.
func MacFileInfo(locked, protected bool) []byte {
	var flags uint32
	if locked {
		flags |= types.MacFileInfoLocked
	}
	if protected {
		flags |= types.MacFileInfoProtected
	}
	w, buf := types.NewBufferWriter(types.MacFileInfoSize)
	w.WriteUint32(flags)
	return buf.Bytes()
}
