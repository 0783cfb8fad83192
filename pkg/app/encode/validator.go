package encode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deploymenttheory/go-appledouble/internal/types"
	"github.com/deploymenttheory/go-appledouble/pkg/app"
	"github.com/deploymenttheory/go-appledouble/pkg/services"
)

var validate = validator.New()

// Validate validates a FinderInfo request
func (r *FinderInfoRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid finder info request", err)
	}
	if _, err := ParseFlags(r.Flags, types.FinderFlagNames); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid finder flags", err)
	}
	if _, err := ParseFlags(r.ExtendedFlags, types.ExtendedFlagNames); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid extended finder flags", err)
	}
	return nil
}

// Validate validates a resource fork request
func (r *ResourceForkRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid resource fork request", err)
	}
	for _, spec := range r.Resources {
		if _, _, err := ParseResourceSpec(spec); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid resource", err)
		}
	}
	return nil
}

// Validate validates an AppleDouble request
func (r *AppleDoubleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid apple double request", err)
	}
	for _, spec := range r.Entries {
		if _, _, err := ParseEntrySpec(spec); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid entry", err)
		}
	}
	return nil
}

// Validate validates a sidecar request
func (r *SidecarRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid sidecar request", err)
	}
	return r.FinderInfoRequest.Validate()
}

// ParseCode converts a command line type code. An empty string is the zero
// code rather than four spaces.
func ParseCode(s string) types.FourCharCode {
	if s == "" {
		return types.FourCharCode{}
	}
	return types.NewFourCharCode(s)
}

// ParseFlags converts a number ("0x4000", "16") or a comma separated list
// of flag names into a flag word. Names match with or without the leading
// "k", ignoring case. An empty string is zero.
func ParseFlags(s string, names []types.FlagName) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		return uint16(v), nil
	}

	var flags uint16
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, ok := lookupFlag(part, names)
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", part)
		}
		flags |= v
	}
	return flags, nil
}

func lookupFlag(name string, names []types.FlagName) (uint16, bool) {
	for _, f := range names {
		if strings.EqualFold(name, f.Name) || strings.EqualFold(name, strings.TrimPrefix(f.Name, "k")) {
			return f.Value, true
		}
	}
	return 0, false
}

// ParseResourceSpec splits TYPE:ID[:NAME]=PAYLOAD into a resource whose
// data is still to be read from the returned payload.
func ParseResourceSpec(spec string) (services.Resource, app.Payload, error) {
	head, payload, ok := strings.Cut(spec, "=")
	if !ok {
		return services.Resource{}, "", fmt.Errorf("%q: expected TYPE:ID[:NAME]=DATA", spec)
	}
	parts := strings.SplitN(head, ":", 3)
	if len(parts) < 2 {
		return services.Resource{}, "", fmt.Errorf("%q: expected TYPE:ID[:NAME]=DATA", spec)
	}
	if l := len(parts[0]); l == 0 || l > 4 {
		return services.Resource{}, "", fmt.Errorf("%q: resource type must be 1 to 4 bytes", spec)
	}
	id, err := strconv.ParseInt(parts[1], 0, 16)
	if err != nil {
		return services.Resource{}, "", fmt.Errorf("%q: resource id must be a 16-bit signed integer", spec)
	}

	res := services.Resource{Type: types.NewFourCharCode(parts[0]), ID: int16(id)}
	if len(parts) == 3 {
		res.Name = parts[2]
	}
	return res, app.Payload(payload), nil
}

// ParseEntrySpec splits KIND=PAYLOAD. KIND is an entry name such as
// FinderInfo (any case) or its numeric id.
func ParseEntrySpec(spec string) (types.EntryID, app.Payload, error) {
	kind, payload, ok := strings.Cut(spec, "=")
	if !ok {
		return types.EntryInvalid, "", fmt.Errorf("%q: expected KIND=DATA", spec)
	}
	id, err := ParseEntryKind(kind)
	if err != nil {
		return types.EntryInvalid, "", fmt.Errorf("%q: %w", spec, err)
	}
	return id, app.Payload(payload), nil
}

// ParseEntryKind resolves an entry name or number to a valid entry id.
func ParseEntryKind(kind string) (types.EntryID, error) {
	if v, err := strconv.ParseUint(kind, 0, 32); err == nil {
		id := types.EntryID(v)
		if !id.Valid() {
			return types.EntryInvalid, fmt.Errorf("%w: %d", types.ErrInvalidEntryID, v)
		}
		return id, nil
	}
	if id, ok := types.ParseEntryID(kind); ok {
		return id, nil
	}
	return types.EntryInvalid, fmt.Errorf("%w: unknown entry kind %q", types.ErrInvalidEntryID, kind)
}
