package jsonapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

type cardinality uint8

const (
	notPresent cardinality = iota
	one
	many
)

// OptionalVec is a member that may be absent, a single nullable value, or
// a list of values. It backs resource linkage and primary data.
//
// The zero value is not present. Wire forms are:
//   - not present: the member is omitted (tag the field `omitzero`)
//   - one, null: null
//   - one, value: the bare encoding of the value
//   - many: an array, possibly empty
type OptionalVec[T any] struct {
	card  cardinality
	value *T
	items []T
}

// NotPresent returns an absent OptionalVec.
func NotPresent[T any]() OptionalVec[T] {
	return OptionalVec[T]{}
}

// Null returns a to-one OptionalVec holding null.
func Null[T any]() OptionalVec[T] {
	return OptionalVec[T]{card: one}
}

// One returns a to-one OptionalVec holding v.
func One[T any](v T) OptionalVec[T] {
	return OptionalVec[T]{card: one, value: &v}
}

// Many returns a to-many OptionalVec. Calling it with no values yields an
// empty list, which is distinct from NotPresent.
func Many[T any](vs ...T) OptionalVec[T] {
	if vs == nil {
		vs = []T{}
	}
	return OptionalVec[T]{card: many, items: vs}
}

func (o OptionalVec[T]) IsNotPresent() bool { return o.card == notPresent }
func (o OptionalVec[T]) IsOne() bool        { return o.card == one }
func (o OptionalVec[T]) IsMany() bool       { return o.card == many }

// IsNull reports whether o is a to-one holding null.
func (o OptionalVec[T]) IsNull() bool { return o.card == one && o.value == nil }

// IsZero reports whether o is not present. encoding/json consults it for
// fields tagged `omitzero`.
func (o OptionalVec[T]) IsZero() bool { return o.card == notPresent }

// Get returns the value of a non-null to-one.
func (o OptionalVec[T]) Get() (T, bool) {
	if o.card != one || o.value == nil {
		var zero T
		return zero, false
	}
	return *o.value, true
}

// Items returns the values of a to-many. It returns nil for any other
// cardinality.
func (o OptionalVec[T]) Items() []T {
	if o.card != many {
		return nil
	}
	return o.items
}

// Len returns the number of values held: 0 or 1 for a to-one, the list
// length for a to-many.
func (o OptionalVec[T]) Len() int {
	switch o.card {
	case one:
		if o.value != nil {
			return 1
		}
	case many:
		return len(o.items)
	}
	return 0
}

// All returns every value held regardless of cardinality.
func (o OptionalVec[T]) All() []T {
	switch o.card {
	case one:
		if o.value != nil {
			return []T{*o.value}
		}
	case many:
		return o.items
	}
	return nil
}

// Equal reports whether o and other have the same cardinality and deeply
// equal contents. Two empty lists are equal regardless of backing slice.
func (o OptionalVec[T]) Equal(other OptionalVec[T]) bool {
	if o.card != other.card {
		return false
	}
	switch o.card {
	case one:
		if o.value == nil || other.value == nil {
			return o.value == nil && other.value == nil
		}
		return reflect.DeepEqual(*o.value, *other.value)
	case many:
		if len(o.items) != len(other.items) {
			return false
		}
		for i := range o.items {
			if !reflect.DeepEqual(o.items[i], other.items[i]) {
				return false
			}
		}
	}
	return true
}

func (o OptionalVec[T]) String() string {
	switch o.card {
	case one:
		if o.value == nil {
			return "One(null)"
		}
		return fmt.Sprintf("One(%v)", *o.value)
	case many:
		return fmt.Sprintf("Many(%v)", o.items)
	}
	return "NotPresent"
}

// MarshalJSON writes the bare wire form. A not-present value encodes as
// null; containers are expected to omit it instead.
func (o OptionalVec[T]) MarshalJSON() ([]byte, error) {
	switch o.card {
	case one:
		if o.value == nil {
			return []byte("null"), nil
		}
		return json.Marshal(*o.value)
	case many:
		if o.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(o.items)
	}
	return []byte("null"), nil
}

// ErrCardinality is matched by errors from decoding an OptionalVec whose
// input is neither null, a single value, nor an array of values.
var ErrCardinality = errors.New("jsonapi: value matches neither one-or-null nor array shape")

// CardinalityError reports a failed OptionalVec decode. One and Many hold
// the errors from the two attempted shapes.
type CardinalityError struct {
	One  error
	Many error
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s (as one: %v; as many: %v)", ErrCardinality.Error(), e.One, e.Many)
}

func (e *CardinalityError) Is(target error) bool {
	return target == ErrCardinality
}

// UnmarshalJSON decodes without a discriminator. The input is first tried
// as null-or-T, then as []T. The order is part of the contract: if T itself
// decodes from an array, an array input yields a to-one.
//
// An absent member never reaches this method; it stays NotPresent.
func (o *OptionalVec[T]) UnmarshalJSON(b []byte) error {
	var single *T
	errOne := json.Unmarshal(b, &single)
	if errOne == nil {
		*o = OptionalVec[T]{card: one, value: single}
		return nil
	}

	var list []T
	errMany := json.Unmarshal(b, &list)
	if errMany == nil {
		if list == nil {
			list = []T{}
		}
		*o = OptionalVec[T]{card: many, items: list}
		return nil
	}
	return &CardinalityError{One: errOne, Many: errMany}
}

// Clone returns a copy of o with its own backing storage. Values are copied
// with clone when it is non-nil, otherwise by assignment.
func (o OptionalVec[T]) Clone(clone func(T) T) OptionalVec[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return MapOptionalVec(o, clone)
}

// MapOptionalVec applies f to every value held by o, keeping its
// cardinality.
func MapOptionalVec[T, U any](o OptionalVec[T], f func(T) U) OptionalVec[U] {
	switch o.card {
	case one:
		if o.value == nil {
			return Null[U]()
		}
		return One(f(*o.value))
	case many:
		out := make([]U, len(o.items))
		for i, v := range o.items {
			out[i] = f(v)
		}
		return OptionalVec[U]{card: many, items: out}
	}
	return NotPresent[U]()
}

// TryMapOptionalVec is MapOptionalVec for fallible functions. It stops at
// the first error.
func TryMapOptionalVec[T, U any](o OptionalVec[T], f func(T) (U, error)) (OptionalVec[U], error) {
	switch o.card {
	case one:
		if o.value == nil {
			return Null[U](), nil
		}
		v, err := f(*o.value)
		if err != nil {
			return NotPresent[U](), err
		}
		return One(v), nil
	case many:
		out := make([]U, len(o.items))
		for i, v := range o.items {
			u, err := f(v)
			if err != nil {
				return NotPresent[U](), fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = u
		}
		return OptionalVec[U]{card: many, items: out}, nil
	}
	return NotPresent[U](), nil
}
