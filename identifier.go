package jsonapi

import (
	"encoding/json"
	"fmt"
)

var knownIdentifierSet = knownSet("id", "type", "meta")

// Identifier identifies a single resource by its (id, type) pair without
// carrying its attributes. It is the element of relationship linkage.
type Identifier struct {
	ID   string
	Type string
	Meta Meta

	LosslessFields
}

type identifierWire struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Meta Meta   `json:"meta,omitzero"`
}

// NewIdentifier returns an identifier without meta.
func NewIdentifier(id, typ string) Identifier {
	return Identifier{ID: id, Type: typ}
}

// Kind returns the resource type.
func (i Identifier) Kind() string {
	return i.Type
}

// Generic converts i into a resource object with no attributes,
// relationships or links.
func (i Identifier) Generic() GenericObject {
	return GenericObject{
		ID:             i.ID,
		Type:           i.Type,
		Meta:           i.Meta,
		LosslessFields: i.LosslessFields,
	}
}

// Clone returns a deep copy of i.
func (i Identifier) Clone() Identifier {
	return Identifier{
		ID:             i.ID,
		Type:           i.Type,
		Meta:           i.Meta.Clone(),
		LosslessFields: i.LosslessFields.Clone(),
	}
}

func (i *Identifier) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if name, ok := requireMembers(raw, "id", "type"); !ok {
		return fmt.Errorf("jsonapi: resource identifier: missing member %q", name)
	}

	var w identifierWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*i = Identifier{
		ID:   w.ID,
		Type: w.Type,
		Meta: w.Meta,
	}

	i.Extensions, i.Unknown = splitLossless(raw, knownIdentifierSet)
	return nil
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	w := identifierWire{
		ID:   i.ID,
		Type: i.Type,
		Meta: i.Meta,
	}
	return marshalLossless(i.LosslessFields, knownIdentifierSet, w)
}
