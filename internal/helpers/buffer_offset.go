package helpers

import (
	"fmt"

	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// ReadAt copies bytes of blob starting at offset into buf and returns how many
// were copied. Reads at or past the end of blob copy nothing and succeed, so
// callers serving positioned reads can treat a zero count as end of data.
func ReadAt(blob, buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("%w: %d", types.ErrInvalidOffset, offset)
	}
	if offset >= int64(len(blob)) {
		return 0, nil
	}
	return copy(buf, blob[offset:]), nil
}

// Window returns up to size bytes of blob starting at offset. The result
// aliases blob and is shorter than size when the window runs past the end.
func Window(blob []byte, offset int64, size int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidOffset, offset)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", types.ErrInvalidOffset, size)
	}
	if offset >= int64(len(blob)) {
		return []byte{}, nil
	}
	end := offset + int64(size)
	if end > int64(len(blob)) {
		end = int64(len(blob))
	}
	return blob[offset:end], nil
}
