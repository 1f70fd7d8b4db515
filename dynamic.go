package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// Object is a flat JSON object of dynamic values. It backs untyped
// attributes and free-form metadata.
//
// Values are the tree produced by encoding/json with numbers decoded as
// json.Number, so integers survive a decode/encode cycle unchanged.
// Keys are written in sorted order.
type Object map[string]any

// Meta holds non-standard meta information.
type Meta = Object

func (o *Object) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := decodeValue(b, &m); err != nil {
		return err
	}
	*o = m
	return nil
}

// Clone returns a deep copy of o. A nil Object stays nil.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return x
		}
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = cloneValue(item)
		}
		return out
	case Object:
		return x.Clone()
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	case json.RawMessage:
		return append(json.RawMessage(nil), x...)
	default:
		return v
	}
}

// decodeValue decodes a single JSON value into v, keeping numbers as
// json.Number. Trailing data is an error.
func decodeValue(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("jsonapi: invalid JSON: trailing data")
	}
	return nil
}

// toObject re-interprets a structured value as a flat Object by encoding it
// and decoding the result. A value encoding to null yields a nil Object.
func toObject(v any) (Object, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := decodeValue(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromObject materialises o into dst through its JSON encoding.
func fromObject(o Object, dst any) error {
	b, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
