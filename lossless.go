package jsonapi

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// LosslessFields is embedded in the typed structs that may carry members
// this package does not model. Extensions holds extension members (names
// containing ':', e.g. "atomic:operations"); Unknown holds every other
// unrecognised member. Both are populated by UnmarshalJSON and written back
// by MarshalJSON after the typed members.
//
// Each lossless type has a parallel wire struct for encoding. When adding a
// field to a typed struct, update both the public type and its wire
// counterpart, and the known set.
type LosslessFields struct {
	Extensions map[string]json.RawMessage `json:"-"`
	Unknown    map[string]json.RawMessage `json:"-"`
}

// Clone returns a deep copy of the preserved members.
func (l LosslessFields) Clone() LosslessFields {
	return LosslessFields{
		Extensions: cloneRaw(l.Extensions),
		Unknown:    cloneRaw(l.Unknown),
	}
}

func (l LosslessFields) empty() bool {
	return len(l.Extensions) == 0 && len(l.Unknown) == 0
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// isExtensionMember reports whether name is a namespaced extension member.
func isExtensionMember(name string) bool {
	return strings.Contains(name, ":")
}

// splitLossless separates unknown members into:
// - extensions: namespaced extension members
// - unknown: all other keys not in known
func splitLossless(raw map[string]json.RawMessage, known map[string]struct{}) (extensions, unknown map[string]json.RawMessage) {
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if isExtensionMember(k) {
			if extensions == nil {
				extensions = map[string]json.RawMessage{}
			}
			extensions[k] = v
			continue
		}
		if unknown == nil {
			unknown = map[string]json.RawMessage{}
		}
		unknown[k] = v
	}
	return extensions, unknown
}

// knownSet builds a map for constant-time known-member checks.
func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// requireMembers reports the first name in names missing from raw.
func requireMembers(raw map[string]json.RawMessage, names ...string) (string, bool) {
	for _, n := range names {
		if _, ok := raw[n]; !ok {
			return n, false
		}
	}
	return "", true
}

// marshalLossless encodes typed and appends the preserved members sorted by
// key. Members named in known are never emitted from the lossless maps, so
// typed fields win even when they were omitted.
func marshalLossless(fields LosslessFields, known map[string]struct{}, typed any) ([]byte, error) {
	b, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	if fields.empty() {
		return b, nil
	}

	extra := make(map[string]json.RawMessage, len(fields.Unknown)+len(fields.Extensions))
	for k, v := range fields.Unknown {
		extra[k] = v
	}
	for k, v := range fields.Extensions {
		extra[k] = v
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := known[k]; ok {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return b, nil
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(b, []byte("}")))
	first := bytes.Equal(b, []byte("{}"))
	for _, k := range keys {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		v := extra[k]
		if len(v) == 0 {
			v = json.RawMessage("null")
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
