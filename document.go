package jsonapi

import "encoding/json"

var knownDocumentSet = knownSet("data", "errors", "meta", "jsonapi", "links", "included")

// Document is a top-level JSON:API document.
//
// Data is omitted when not present, otherwise encoded as null, a single
// resource object or an array. The other members are omitted when nil; an
// empty non-nil slice or map is written as [] or {}.
type Document struct {
	Data     OptionalVec[GenericObject]
	Errors   []ErrorObject
	Meta     Meta
	JSONAPI  *JSONAPI
	Links    Links
	Included []GenericObject

	LosslessFields
}

type documentWire struct {
	Data     OptionalVec[GenericObject] `json:"data,omitzero"`
	Errors   []ErrorObject              `json:"errors,omitzero"`
	Meta     Meta                       `json:"meta,omitzero"`
	JSONAPI  *JSONAPI                   `json:"jsonapi,omitempty"`
	Links    Links                      `json:"links,omitzero"`
	Included []GenericObject            `json:"included,omitzero"`
}

// NewErrorDocument returns a document holding one error object per err.
func NewErrorDocument(errs ...error) Document {
	out := make([]ErrorObject, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		out = append(out, NewErrorObject(err))
	}
	return Document{Errors: out}
}

// Include appends resources to the included member. Calling it without
// resources leaves d unchanged.
func (d *Document) Include(resources ...GenericObject) {
	if len(resources) == 0 {
		return
	}
	if d.Included == nil {
		d.Included = make([]GenericObject, 0, len(resources))
	}
	d.Included = append(d.Included, resources...)
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{
		Data:           d.Data.Clone(GenericObject.Clone),
		Meta:           d.Meta.Clone(),
		Links:          d.Links.Clone(),
		LosslessFields: d.LosslessFields.Clone(),
	}
	if d.Errors != nil {
		out.Errors = make([]ErrorObject, len(d.Errors))
		for i, e := range d.Errors {
			out.Errors[i] = e.Clone()
		}
	}
	if d.JSONAPI != nil {
		j := d.JSONAPI.Clone()
		out.JSONAPI = &j
	}
	if d.Included != nil {
		out.Included = make([]GenericObject, len(d.Included))
		for i, g := range d.Included {
			out.Included[i] = g.Clone()
		}
	}
	return out
}

// PrimaryData converts the primary data of d into resources of type A,
// keeping its cardinality.
func PrimaryData[A Attributes](d Document) (OptionalVec[ResourceObject[A]], error) {
	return TryMapOptionalVec(d.Data, FromGeneric[A])
}

// SetPrimaryData replaces the primary data of d with the given typed
// resources converted to GenericObject.
func SetPrimaryData[A Attributes](d *Document, data OptionalVec[ResourceObject[A]]) error {
	out, err := TryMapOptionalVec(data, ResourceObject[A].ToGeneric)
	if err != nil {
		return err
	}
	d.Data = out
	return nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var w documentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*d = Document{
		Data:     w.Data,
		Errors:   w.Errors,
		Meta:     w.Meta,
		JSONAPI:  w.JSONAPI,
		Links:    w.Links,
		Included: w.Included,
	}

	d.Extensions, d.Unknown = splitLossless(raw, knownDocumentSet)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	w := documentWire{
		Data:     d.Data,
		Errors:   d.Errors,
		Meta:     d.Meta,
		JSONAPI:  d.JSONAPI,
		Links:    d.Links,
		Included: d.Included,
	}
	return marshalLossless(d.LosslessFields, knownDocumentSet, w)
}
