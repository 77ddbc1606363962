// Package entity models the backend-owned project record.
//
// The backend owns the schema; this side only recognizes a handful of
// well-known fields and passes everything else through untouched. Some
// fields appear under alternate spellings depending on which backend
// revision answered (Mongo-style `_id` vs `id`, snake_case vs camelCase),
// so every accessor probes a fixed priority list of keys.
package entity

import (
	"fmt"
	"strings"
)

// Entity is an opaque field mapping. Values keep whatever JSON type the
// backend sent.
type Entity map[string]any

// Alternate key spellings, probed in order. First non-empty wins.
var (
	idKeys          = []string{"id", "_id"}
	nameKeys        = []string{"projectName", "name"}
	addressKeys     = []string{"address"}
	zoningCodeKeys  = []string{"zoningCode", "zoning_code"}
	zoneTypeKeys    = []string{"zoneType", "zone_type"}
	descriptionKeys = []string{"description"}
)

// From converts a decoded JSON value into an Entity. Returns nil if v is
// not an object.
func From(v any) Entity {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return Entity(m)
}

// field returns the first key in keys whose value stringifies to a
// non-blank string.
func (e Entity) field(keys []string) string {
	for _, k := range keys {
		v, ok := e[k]
		if !ok || v == nil {
			continue
		}
		s := Stringify(v)
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// ID returns the identifier under either accepted spelling, or "".
func (e Entity) ID() string { return e.field(idKeys) }

// Name returns the display name under either accepted spelling, or "".
func (e Entity) Name() string { return e.field(nameKeys) }

// Address returns the address field, or "".
func (e Entity) Address() string { return e.field(addressKeys) }

// ZoningCode returns the zoning code under either spelling, or "".
func (e Entity) ZoningCode() string { return e.field(zoningCodeKeys) }

// ZoneType returns the zone type under either spelling, or "".
func (e Entity) ZoneType() string { return e.field(zoneTypeKeys) }

// Description returns the free-text notes field, or "".
func (e Entity) Description() string { return e.field(descriptionKeys) }

// DisplayName returns the best human label for the entity: its name if
// present, else its identifier, else "".
func (e Entity) DisplayName() string {
	if name := e.Name(); name != "" {
		return name
	}
	return e.ID()
}

// Stringify renders a JSON scalar as a string the way a human would
// write it: strings pass through, numbers drop a trailing ".0" when they
// are integral, everything else goes through fmt.
func Stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		return fmt.Sprintf("%t", x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
