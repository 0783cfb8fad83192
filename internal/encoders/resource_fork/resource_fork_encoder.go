package resourcefork

import (
	"fmt"
	"math"

	"github.com/deploymenttheory/go-appledouble/internal/interfaces"
	"github.com/deploymenttheory/go-appledouble/internal/types"
)

// resourceList holds every resource of one type in insertion order.
type resourceList struct {
	resType   types.FourCharCode
	resources []Resource
}

// Encoder constructs the raw data of a resource fork from a flat list of
// resources. Types keep the order in which they were first added, resources
// keep their insertion order within a type.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	lists      []*resourceList
	byType     map[types.FourCharCode]*resourceList
	count      int
	dataSize   uint64 // bytes in the data area, length prefixes included
	nameSize   uint64 // bytes in the name list, length bytes included
	namePolicy NamePolicy
}

var _ interfaces.ResourceForkEncoder = (*Encoder)(nil)

// Option configures an Encoder.
type Option func(*Encoder)

// WithNamePolicy sets how names longer than 255 bytes are handled.
func WithNamePolicy(p NamePolicy) Option {
	return func(e *Encoder) {
		e.namePolicy = p
	}
}

// NewEncoder returns an empty resource fork encoder.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		byType: make(map[types.FourCharCode]*resourceList),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Len returns the number of resources added so far.
func (e *Encoder) Len() int {
	return e.count
}

// NumTypes returns the number of distinct resource types.
func (e *Encoder) NumTypes() int {
	return len(e.lists)
}

// AddResource adds a resource. An empty name means the resource is unnamed.
// The data slice is retained, not copied.
//
// It fails with types.ErrOverflow when the resource would not fit one of the
// fixed-width fields of the fork, and with types.ErrNameTooLong for names
// over 255 bytes unless the encoder truncates them. A failed call leaves the
// encoder unchanged.
func (e *Encoder) AddResource(resType types.FourCharCode, id int16, name string, data []byte) error {
	if len(name) > types.ResourceMaxNameLength {
		if e.namePolicy != NameTruncate {
			return fmt.Errorf("%w: %d bytes for resource '%s' (%d)", types.ErrNameTooLong, len(name), resType, id)
		}
		name = name[:types.ResourceMaxNameLength]
	}
	res := Resource{Type: resType, ID: id, Name: name, Data: data}
	if err := e.checkFits(res); err != nil {
		return err
	}

	list, ok := e.byType[resType]
	if !ok {
		list = &resourceList{resType: resType}
		e.byType[resType] = list
		e.lists = append(e.lists, list)
	}
	list.resources = append(list.resources, res)
	e.count++
	e.dataSize += res.dataSize()
	e.nameSize += res.nameSize()
	return nil
}

// AddCustomIcon adds the raw contents of an .icns file as the custom icon
// resource ('icns', kCustomIconResource).
func (e *Encoder) AddCustomIcon(icns []byte) error {
	return e.AddResource(types.ResTypeIcon, types.CustomIconResourceID, "", icns)
}

// AddWeblocURL adds the 'url ' resource (id 256) a .webloc file carries.
func (e *Encoder) AddWeblocURL(url string) error {
	return e.AddResource(types.ResTypeURL, types.WeblocURLResourceID, "", []byte(url))
}

// checkFits verifies that the fork would still be encodable with res added.
func (e *Encoder) checkFits(res Resource) error {
	if uint64(len(res.Data)) > math.MaxUint32 {
		return fmt.Errorf("%w: resource '%s' (%d) has %d bytes of data", types.ErrOverflow, res.Type, res.ID, len(res.Data))
	}

	numTypes := len(e.lists)
	inType := 1
	list, existing := e.byType[res.Type]
	if existing {
		inType += len(list.resources)
	} else {
		numTypes++
	}
	if _, err := encodeCountMinusOne(numTypes); err != nil {
		return fmt.Errorf("too many resource types: %w", err)
	}
	if _, err := encodeCountMinusOne(inType); err != nil {
		return fmt.Errorf("too many resources of type '%s': %w", res.Type, err)
	}

	// The name list offset is the furthest 16-bit offset into the map, so
	// every reference list offset fits when it does.
	count := e.count + 1
	if nameListOffset(numTypes, count) > types.ResourceMaxMapOffset {
		return fmt.Errorf("%w: resource map cannot index %d resources of %d types", types.ErrOverflow, count, numTypes)
	}
	nameSize := e.nameSize + res.nameSize()
	if nameSize > types.ResourceMaxMapOffset {
		return fmt.Errorf("%w: name list would grow to %d bytes", types.ErrOverflow, nameSize)
	}

	// Data offsets grow along the layout, so only the resource laid out last
	// can exceed the 24-bit field.
	dataSize := e.dataSize + res.dataSize()
	last := res
	if existing && list != e.lists[len(e.lists)-1] {
		lastList := e.lists[len(e.lists)-1]
		last = lastList.resources[len(lastList.resources)-1]
	}
	if lastOffset := dataSize - last.dataSize(); lastOffset > types.ResourceMaxDataOffset {
		return fmt.Errorf("%w: data offset %d exceeds 24 bits", types.ErrOverflow, lastOffset)
	}

	mapLength := uint64(nameListOffset(numTypes, count)) + nameSize
	if total := types.ResourceDataStart + dataSize + mapLength; total > math.MaxUint32 {
		return fmt.Errorf("%w: resource fork would be %d bytes", types.ErrOverflow, total)
	}
	return nil
}

// typeListSize is the size of the type list including the reference lists
// that follow it.
func typeListSize(numTypes, count int) int {
	return 2 + numTypes*types.TypeListEntrySize + count*types.ReferenceListEntrySize
}

// nameListOffset is the offset of the name list from the start of the map.
func nameListOffset(numTypes, count int) int {
	return types.ResourceMapHeaderSize + typeListSize(numTypes, count)
}

// Resources returns every resource in the order Data lays them out.
func (e *Encoder) Resources() []Resource {
	out := make([]Resource, 0, e.count)
	for _, list := range e.lists {
		out = append(out, list.resources...)
	}
	return out
}

// Header returns the resource fork header Data would write.
func (e *Encoder) Header() types.ResourceHeader {
	mapLength := uint32(nameListOffset(len(e.lists), e.count)) + uint32(e.nameSize)
	return types.ResourceHeader{
		DataOffset: types.ResourceDataStart,
		MapOffset:  types.ResourceDataStart + uint32(e.dataSize),
		DataLength: uint32(e.dataSize),
		MapLength:  mapLength,
	}
}

// Data constructs the raw resource fork containing all added resources.
// With no resources it still returns a well-formed fork whose type list
// holds zero types.
func (e *Encoder) Data() []byte {
	header := e.Header()
	w, buf := types.NewBufferWriter(int(header.MapOffset + header.MapLength))

	// Header, followed by the reserved system and application area.
	w.Write(&header)
	w.WriteZeros(types.ResourceDataStart - types.ResourceHeaderSize)

	// Data area and the offsets the reference lists point at.
	refs := make([]types.ReferenceListEntry, 0, e.count)
	var dataOffset, nameOffset uint32
	for _, list := range e.lists {
		for _, res := range list.resources {
			w.WriteUint32(uint32(len(res.Data)))
			w.WriteBytes(res.Data)

			ref := types.ReferenceListEntry{
				ID:         res.ID,
				NameOffset: types.ResourceNoName,
				DataOffset: dataOffset,
			}
			if res.HasName() {
				ref.NameOffset = uint16(nameOffset)
				nameOffset += uint32(res.nameSize())
			}
			refs = append(refs, ref)
			dataOffset += uint32(res.dataSize())
		}
	}

	// Resource map.
	w.Write(&types.ResourceMapHeader{
		HeaderCopy:     header,
		TypeListOffset: types.ResourceMapHeaderSize,
		NameListOffset: uint16(nameListOffset(len(e.lists), e.count)),
	})

	// Type list. Counts were range checked when each resource was added.
	numTypes, _ := encodeCountMinusOne(len(e.lists))
	w.WriteUint16(numTypes)
	refListOffset := 2 + len(e.lists)*types.TypeListEntrySize
	for _, list := range e.lists {
		countMinusOne, _ := encodeCountMinusOne(len(list.resources))
		w.WriteFourCharCode(list.resType)
		w.WriteUint16(countMinusOne)
		w.WriteUint16(uint16(refListOffset))
		refListOffset += len(list.resources) * types.ReferenceListEntrySize
	}

	// Reference lists, one per type, in type list order.
	for _, ref := range refs {
		w.WriteInt16(ref.ID)
		w.WriteUint16(ref.NameOffset)
		w.WriteUint8(ref.Attributes)
		w.WriteUint24(ref.DataOffset)
		w.WriteUint32(ref.Reserved)
	}

	// Name list.
	for _, list := range e.lists {
		for _, res := range list.resources {
			if res.HasName() {
				w.WritePascalString([]byte(res.Name))
			}
		}
	}

	return buf.Bytes()
}
