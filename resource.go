package jsonapi

import (
	"encoding/json"
	"fmt"
)

// Attributes is implemented by the strictly typed attribute structs of
// ResourceObject. Kind returns the resource type and is called on the zero
// value, so it must be a constant that does not depend on the receiver.
//
// The attribute type must encode to a JSON object.
type Attributes interface {
	Kind() string
}

// LinkProvider is optionally implemented by an Attributes type to supply
// the default links of a new resource from its id. Like Kind it is called
// on the zero value.
type LinkProvider interface {
	Links(id string) Links
}

// KindOf returns the resource type declared by A.
func KindOf[A Attributes]() string {
	var a A
	return a.Kind()
}

func defaultLinks[A Attributes](id string) Links {
	var a A
	if p, ok := any(a).(LinkProvider); ok {
		return p.Links(id)
	}
	return nil
}

// ResourceObject is a resource whose attributes have the static type A.
// The resource type is not stored; it is always A's Kind.
type ResourceObject[A Attributes] struct {
	ID            string
	Attributes    *A
	Relationships Relationships
	Links         Links
	Meta          Meta

	LosslessFields
}

// NewResourceObject returns a resource with the given id and attributes
// (which may be nil). Links are populated from A when it implements
// LinkProvider.
func NewResourceObject[A Attributes](id string, attributes *A) ResourceObject[A] {
	return ResourceObject[A]{
		ID:         id,
		Attributes: attributes,
		Links:      defaultLinks[A](id),
	}
}

// Kind returns the resource type declared by A.
func (r ResourceObject[A]) Kind() string {
	return KindOf[A]()
}

// AddRelationship inserts or replaces the relationship called name.
func (r *ResourceObject[A]) AddRelationship(name string, rel Relationship) {
	if r.Relationships == nil {
		r.Relationships = Relationships{}
	}
	r.Relationships[name] = rel
}

// AddLink inserts or replaces the link called name.
func (r *ResourceObject[A]) AddLink(name string, link Link) {
	if r.Links == nil {
		r.Links = Links{}
	}
	r.Links[name] = link
}

// Identifier keeps the id, type and meta of r.
func (r ResourceObject[A]) Identifier() Identifier {
	return Identifier{
		ID:   r.ID,
		Type: KindOf[A](),
		Meta: r.Meta,
	}
}

// ToGeneric converts r into a GenericObject. The attributes are re-derived
// as a flat Object through their JSON encoding. It fails only when A does
// not encode to a JSON object.
func (r ResourceObject[A]) ToGeneric() (GenericObject, error) {
	var attrs Object
	if r.Attributes != nil {
		var err error
		attrs, err = toObject(r.Attributes)
		if err != nil {
			return GenericObject{}, fmt.Errorf("jsonapi: %s attributes must encode to a JSON object: %w", KindOf[A](), err)
		}
	}
	return GenericObject{
		ID:             r.ID,
		Type:           KindOf[A](),
		Attributes:     attrs,
		Relationships:  r.Relationships,
		Links:          r.Links,
		Meta:           r.Meta,
		LosslessFields: r.LosslessFields,
	}, nil
}

// Generic is ToGeneric for attribute types that satisfy the Attributes
// contract. It panics if A does not encode to a JSON object.
func (r ResourceObject[A]) Generic() GenericObject {
	g, err := r.ToGeneric()
	if err != nil {
		panic(err)
	}
	return g
}

// Clone returns a copy of r that shares no maps with it. Attributes are
// deep-copied through their JSON encoding; if that fails they are copied
// by value, so maps or pointers inside A may still be shared.
func (r ResourceObject[A]) Clone() ResourceObject[A] {
	out := ResourceObject[A]{
		ID:             r.ID,
		Relationships:  r.Relationships.Clone(),
		Links:          r.Links.Clone(),
		Meta:           r.Meta.Clone(),
		LosslessFields: r.LosslessFields.Clone(),
	}
	if r.Attributes != nil {
		shallow := *r.Attributes
		out.Attributes = &shallow
		if b, err := json.Marshal(r.Attributes); err == nil {
			var a A
			if err := json.Unmarshal(b, &a); err == nil {
				out.Attributes = &a
			}
		}
	}
	return out
}

func (r ResourceObject[A]) MarshalJSON() ([]byte, error) {
	g, err := r.ToGeneric()
	if err != nil {
		return nil, err
	}
	return json.Marshal(g)
}

// UnmarshalJSON decodes a resource object and converts it with FromGeneric.
func (r *ResourceObject[A]) UnmarshalJSON(b []byte) error {
	var g GenericObject
	if err := json.Unmarshal(b, &g); err != nil {
		return err
	}
	out, err := FromGeneric[A](g)
	if err != nil {
		return err
	}
	*r = out
	return nil
}
