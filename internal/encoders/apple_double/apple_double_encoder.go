package appledouble

import (
	"fmt"
	"math"

	"github.com/deploymenttheory/go-appledouble/internal/interfaces"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// Entry is one typed payload of an AppleDouble file.
type Entry struct {
	ID   types.EntryID
	Data []byte
}

// DuplicatePolicy decides what AddEntry does with an id that is already present.
type DuplicatePolicy int

const (
	// DuplicateReject fails AddEntry with types.ErrDuplicateEntry.
	DuplicateReject DuplicatePolicy = iota

	// DuplicateReplace swaps the payload of the existing entry and keeps its position.
	DuplicateReplace
)

// ParseDuplicatePolicy maps "reject" and "replace" to a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "reject":
		return DuplicateReject, nil
	case "replace":
		return DuplicateReplace, nil
	default:
		return DuplicateReject, fmt.Errorf("unknown duplicate entry policy %q", s)
	}
}

// String returns the configuration spelling of the policy.
func (p DuplicatePolicy) String() string {
	if p == DuplicateReplace {
		return "replace"
	}
	return "reject"
}

// Encoder constructs the raw data of an AppleDouble (._) file. Entries are
// written in the order they were added; payloads are opaque.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	entries   []Entry
	dataSize  uint64
	filler    [types.AppleDoubleFillerSize]byte
	duplicate DuplicatePolicy
}

var _ interfaces.AppleDoubleEncoder = (*Encoder)(nil)

// Option configures an Encoder.
type Option func(*Encoder)

// WithFiller sets the filler signature. Longer strings are cut to 16 bytes,
// shorter ones are zero padded. An empty string leaves the filler zeroed.
func WithFiller(s string) Option {
	return func(e *Encoder) {
		e.filler = [types.AppleDoubleFillerSize]byte{}
		copy(e.filler[:], s)
	}
}

// WithDuplicatePolicy sets how a repeated entry id is handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(e *Encoder) {
		e.duplicate = p
	}
}

// NewEncoder returns an encoder with no entries and the "Mac OS X" filler.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	copy(e.filler[:], types.DefaultAppleDoubleFiller)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Len returns the number of entries.
func (e *Encoder) Len() int {
	return len(e.entries)
}

// Entries returns the entries in serialization order.
func (e *Encoder) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// AddEntry appends an entry holding data. The data slice is retained, not copied.
//
// It fails with types.ErrInvalidEntryID for ids outside the predefined set,
// types.ErrDuplicateEntry for repeated ids unless the encoder replaces them,
// and types.ErrOverflow when a count, length or offset field would overflow.
// A failed call leaves the encoder unchanged.
func (e *Encoder) AddEntry(id types.EntryID, data []byte) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", types.ErrInvalidEntryID, uint32(id))
	}
	if err := checkLength(uint64(len(data))); err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}

	if i := e.indexOf(id); i >= 0 {
		if e.duplicate != DuplicateReplace {
			return fmt.Errorf("%w: %s", types.ErrDuplicateEntry, id)
		}
		dataSize := e.dataSize - uint64(len(e.entries[i].Data)) + uint64(len(data))
		if err := checkFileSize(len(e.entries), dataSize); err != nil {
			return fmt.Errorf("entry %s: %w", id, err)
		}
		e.entries[i].Data = data
		e.dataSize = dataSize
		return nil
	}

	if len(e.entries) >= types.AppleDoubleMaxEntries {
		return fmt.Errorf("%w: more than %d entries", types.ErrOverflow, types.AppleDoubleMaxEntries)
	}
	dataSize := e.dataSize + uint64(len(data))
	if err := checkFileSize(len(e.entries)+1, dataSize); err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}
	e.entries = append(e.entries, Entry{ID: id, Data: data})
	e.dataSize = dataSize
	return nil
}

func (e *Encoder) indexOf(id types.EntryID) int {
	for i, entry := range e.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// checkLength verifies a payload length fits the 32-bit length field.
func checkLength(n uint64) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%w: payload of %d bytes exceeds 32 bits", types.ErrOverflow, n)
	}
	return nil
}

// checkFileSize verifies that every entry offset fits the 32-bit offset field.
// The last entry starts furthest in, so its end bounds them all.
func checkFileSize(numEntries int, dataSize uint64) error {
	size := headerSize(numEntries) + dataSize
	if size > math.MaxUint32 {
		return fmt.Errorf("%w: file would be %d bytes", types.ErrOverflow, size)
	}
	return nil
}

// headerSize is the size of the header plus the descriptor table.
func headerSize(numEntries int) uint64 {
	return types.AppleDoubleHeaderSize + uint64(numEntries)*types.EntryDescriptorSize
}

// Header returns the fixed header Data would write.
func (e *Encoder) Header() types.AppleDoubleHeader {
	return types.AppleDoubleHeader{
		Magic:      types.AppleDoubleMagic,
		Version:    types.AppleDoubleVersion,
		Filler:     e.filler,
		NumEntries: uint16(len(e.entries)),
	}
}

// Descriptors returns the entry descriptor table Data would write.
func (e *Encoder) Descriptors() []types.EntryDescriptor {
	descriptors := make([]types.EntryDescriptor, 0, len(e.entries))
	offset := uint32(headerSize(len(e.entries)))
	for _, entry := range e.entries {
		descriptors = append(descriptors, types.EntryDescriptor{
			EntryID: entry.ID,
			Offset:  offset,
			Length:  uint32(len(entry.Data)),
		})
		offset += uint32(len(entry.Data))
	}
	return descriptors
}

// Size returns the number of bytes Data would return.
func (e *Encoder) Size() int {
	return int(headerSize(len(e.entries)) + e.dataSize)
}

// Data constructs the raw AppleDouble file: header, descriptor table, then
// the payloads back to back with no padding.
func (e *Encoder) Data() []byte {
	w, buf := types.NewBufferWriter(e.Size())

	header := e.Header()
	w.Write(&header)
	for _, d := range e.Descriptors() {
		w.Write(&d)
	}
	for _, entry := range e.entries {
		w.WriteBytes(entry.Data)
	}
	return buf.Bytes()
}
