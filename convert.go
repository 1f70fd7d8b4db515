package jsonapi

import (
	"errors"
	"fmt"
)

// ErrConversion is matched by every error returned when converting an
// untyped resource into a ResourceObject.
var ErrConversion = errors.New("jsonapi: object conversion error")

// TypeMismatchError reports a source whose type differs from the type
// declared by the target's attributes.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: improper type (expected %q, got %q)", ErrConversion.Error(), e.Expected, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrConversion
}

// AttributesError reports attributes that could not be decoded into the
// target attribute type. Err is the underlying decode error.
type AttributesError struct {
	Type string
	Err  error
}

func (e *AttributesError) Error() string {
	return fmt.Sprintf("%s: failed to decode %s attributes: %v", ErrConversion.Error(), e.Type, e.Err)
}

func (e *AttributesError) Unwrap() error {
	return e.Err
}

func (e *AttributesError) Is(target error) bool {
	return target == ErrConversion
}

func checkKind[A Attributes](got string) error {
	if want := KindOf[A](); got != want {
		return &TypeMismatchError{Expected: want, Got: got}
	}
	return nil
}

// FromGeneric converts g into a ResourceObject with attributes of type A.
//
// The type of g must equal A's Kind, otherwise a *TypeMismatchError is
// returned. Attributes, when present, are decoded into A; a failure yields
// an *AttributesError. Absent attributes leave Attributes nil. On error no
// partial object is returned.
func FromGeneric[A Attributes](g GenericObject) (ResourceObject[A], error) {
	if err := checkKind[A](g.Type); err != nil {
		return ResourceObject[A]{}, err
	}

	var attrs *A
	if g.Attributes != nil {
		var a A
		if err := fromObject(g.Attributes, &a); err != nil {
			return ResourceObject[A]{}, &AttributesError{Type: g.Type, Err: err}
		}
		attrs = &a
	}

	return ResourceObject[A]{
		ID:             g.ID,
		Attributes:     attrs,
		Relationships:  g.Relationships,
		Links:          g.Links,
		Meta:           g.Meta,
		LosslessFields: g.LosslessFields,
	}, nil
}

// FromIdentifier converts id into a ResourceObject with no attributes,
// relationships or links. The type of id must equal A's Kind.
func FromIdentifier[A Attributes](id Identifier) (ResourceObject[A], error) {
	if err := checkKind[A](id.Type); err != nil {
		return ResourceObject[A]{}, err
	}
	return ResourceObject[A]{
		ID:   id.ID,
		Meta: id.Meta,
	}, nil
}
