package jsonapi

import (
	"encoding/json"
	"errors"
)

var knownRelationshipSet = knownSet("links", "data", "meta")

// Relationships maps relationship names to relationship objects.
type Relationships map[string]Relationship

// Clone returns a deep copy of r. A nil Relationships stays nil.
func (r Relationships) Clone() Relationships {
	if r == nil {
		return nil
	}
	out := make(Relationships, len(r))
	for k, v := range r {
		out[k] = v.Clone()
	}
	return out
}

// Relationship describes one named relationship of a resource.
//
// Data distinguishes an omitted linkage (NotPresent), an empty to-one
// (Null), a to-one (One) and a to-many (Many, possibly empty).
type Relationship struct {
	Links Links
	Data  OptionalVec[Identifier]
	Meta  Meta

	LosslessFields
}

type relationshipWire struct {
	Links Links                   `json:"links,omitzero"`
	Data  OptionalVec[Identifier] `json:"data,omitzero"`
	Meta  Meta                    `json:"meta,omitzero"`
}

// ToOne returns a relationship linking to a single resource.
func ToOne(id Identifier) Relationship {
	return Relationship{Data: One(id)}
}

// ToMany returns a relationship linking to ids. With no ids the linkage is
// an empty list.
func ToMany(ids ...Identifier) Relationship {
	return Relationship{Data: Many(ids...)}
}

// Clone returns a deep copy of r.
func (r Relationship) Clone() Relationship {
	return Relationship{
		Links:          r.Links.Clone(),
		Data:           r.Data.Clone(Identifier.Clone),
		Meta:           r.Meta.Clone(),
		LosslessFields: r.LosslessFields.Clone(),
	}
}

func (r *Relationship) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("jsonapi: relationship must be an object")
	}

	var w relationshipWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*r = Relationship{
		Links: w.Links,
		Data:  w.Data,
		Meta:  w.Meta,
	}

	r.Extensions, r.Unknown = splitLossless(raw, knownRelationshipSet)
	return nil
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	w := relationshipWire{
		Links: r.Links,
		Data:  r.Data,
		Meta:  r.Meta,
	}
	return marshalLossless(r.LosslessFields, knownRelationshipSet, w)
}
