package jsonapi

import (
	"encoding/json"
	"fmt"
)

var knownGenericObjectSet = knownSet("id", "type", "attributes", "relationships", "links", "meta")

// GenericObject is a resource object of a type not known at compile time.
// Attributes are kept as a flat Object of dynamic values.
//
// It is the wire-level representation; application code normally converts
// it into a ResourceObject with FromGeneric, or into an Identifier.
type GenericObject struct {
	ID            string
	Type          string
	Attributes    Object
	Relationships Relationships
	Links         Links
	Meta          Meta

	LosslessFields
}

type genericObjectWire struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Attributes    Object        `json:"attributes,omitzero"`
	Relationships Relationships `json:"relationships,omitzero"`
	Links         Links         `json:"links,omitzero"`
	Meta          Meta          `json:"meta,omitzero"`
}

// Kind returns the resource type.
func (g GenericObject) Kind() string {
	return g.Type
}

// Identifier keeps the id, type and meta of g.
func (g GenericObject) Identifier() Identifier {
	return Identifier{
		ID:   g.ID,
		Type: g.Type,
		Meta: g.Meta,
	}
}

// Clone returns a deep copy of g.
func (g GenericObject) Clone() GenericObject {
	return GenericObject{
		ID:             g.ID,
		Type:           g.Type,
		Attributes:     g.Attributes.Clone(),
		Relationships:  g.Relationships.Clone(),
		Links:          g.Links.Clone(),
		Meta:           g.Meta.Clone(),
		LosslessFields: g.LosslessFields.Clone(),
	}
}

func (g *GenericObject) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if name, ok := requireMembers(raw, "id", "type"); !ok {
		return fmt.Errorf("jsonapi: resource object: missing member %q", name)
	}

	var w genericObjectWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*g = GenericObject{
		ID:            w.ID,
		Type:          w.Type,
		Attributes:    w.Attributes,
		Relationships: w.Relationships,
		Links:         w.Links,
		Meta:          w.Meta,
	}

	g.Extensions, g.Unknown = splitLossless(raw, knownGenericObjectSet)
	return nil
}

func (g GenericObject) MarshalJSON() ([]byte, error) {
	w := genericObjectWire{
		ID:            g.ID,
		Type:          g.Type,
		Attributes:    g.Attributes,
		Relationships: g.Relationships,
		Links:         g.Links,
		Meta:          g.Meta,
	}
	return marshalLossless(g.LosslessFields, knownGenericObjectSet, w)
}
