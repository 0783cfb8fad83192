package resourcefork

import (
	"fmt"

	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// Resource is one typed, identified entry of a resource fork.
type Resource struct {
	// Type is the resource type, e.g. 'icns'.
	Type types.FourCharCode

	// ID is the resource id, e.g. 256 for a webloc 'url ' resource.
	ID int16

	// Name is the optional resource name; empty means unnamed.
	Name string

	// Data is the raw resource data.
	Data []byte
}

// HasName reports whether the resource carries a name.
func (r Resource) HasName() bool {
	return r.Name != ""
}

// String returns a short description such as 'icns' (-16455) "name" 42 bytes.
func (r Resource) String() string {
	if r.HasName() {
		return fmt.Sprintf("'%s' (%d) %q %d bytes", r.Type, r.ID, r.Name, len(r.Data))
	}
	return fmt.Sprintf("'%s' (%d) %d bytes", r.Type, r.ID, len(r.Data))
}

// dataSize is the size the resource occupies in the data area.
func (r Resource) dataSize() uint64 {
	return types.ResourceDataLengthSize + uint64(len(r.Data))
}

// nameSize is the size the resource occupies in the name list.
func (r Resource) nameSize() uint64 {
	if !r.HasName() {
		return 0
	}
	return 1 + uint64(len(r.Name))
}

// NamePolicy decides what happens to names longer than 255 bytes.
type NamePolicy int

const (
	// NameReject fails AddResource with types.ErrNameTooLong.
	NameReject NamePolicy = iota

	// NameTruncate keeps the first 255 bytes of the name.
	NameTruncate
)

// ParseNamePolicy maps "reject" and "truncate" to a NamePolicy.
func ParseNamePolicy(s string) (NamePolicy, error) {
	switch s {
	case "", "reject":
		return NameReject, nil
	case "truncate":
		return NameTruncate, nil
	default:
		return NameReject, fmt.Errorf("unknown resource name policy %q", s)
	}
}

// String returns the configuration spelling of the policy.
func (p NamePolicy) String() string {
	if p == NameTruncate {
		return "truncate"
	}
	return "reject"
}

// encodeCountMinusOne converts a count into the Resource Manager's
// count-minus-one form. Zero encodes as 0xFFFF.
func encodeCountMinusOne(n int) (uint16, error) {
	if n < 0 || n > types.ResourceMaxCount {
		return 0, fmt.Errorf("%w: count %d exceeds %d", types.ErrOverflow, n, types.ResourceMaxCount)
	}
	return uint16(n - 1), nil
}
