package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Links is a set of links keyed by name ("self", "related", ...).
type Links map[string]Link

// Clone returns a deep copy of l. A nil Links stays nil.
func (l Links) Clone() Links {
	if l == nil {
		return nil
	}
	out := make(Links, len(l))
	for k, v := range l {
		out[k] = v.Clone()
	}
	return out
}

// Link is either a bare URL string or a link object.
//
// If Object is non-nil the link encodes as an object and URL is ignored;
// otherwise it encodes as the URL string.
type Link struct {
	URL    string
	Object *LinkObject
}

// LinkObject is the object form of a link. A nil Href omits the member;
// an empty one is written as "".
type LinkObject struct {
	Href     *string `json:"href,omitempty"`
	Rel      string  `json:"rel,omitempty"`
	Title    string  `json:"title,omitempty"`
	Type     string  `json:"type,omitempty"`
	Hreflang string  `json:"hreflang,omitempty"`
	Meta     Meta    `json:"meta,omitzero"`
}

// NewLink builds a link to url. With nil meta the result is always the bare
// URL form, never an object holding only href.
func NewLink(url string, meta Meta) Link {
	if meta == nil {
		return Link{URL: url}
	}
	return Link{Object: &LinkObject{Href: &url, Meta: meta}}
}

// IsObject reports whether l uses the object form.
func (l Link) IsObject() bool {
	return l.Object != nil
}

// Href returns the URL of the link regardless of its form.
func (l Link) Href() (string, bool) {
	if l.Object != nil {
		if l.Object.Href == nil {
			return "", false
		}
		return *l.Object.Href, true
	}
	return l.URL, true
}

// Clone returns a deep copy of l.
func (l Link) Clone() Link {
	if l.Object == nil {
		return l
	}
	obj := *l.Object
	if obj.Href != nil {
		href := *obj.Href
		obj.Href = &href
	}
	obj.Meta = obj.Meta.Clone()
	return Link{Object: &obj}
}

func (l Link) MarshalJSON() ([]byte, error) {
	if l.Object != nil {
		return json.Marshal(l.Object)
	}
	return json.Marshal(l.URL)
}

func (l *Link) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return errors.New("jsonapi: link must be a string or an object")
	}
	if len(b) > 0 && b[0] == '"' {
		var url string
		if err := json.Unmarshal(b, &url); err != nil {
			return err
		}
		*l = Link{URL: url}
		return nil
	}

	var obj LinkObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*l = Link{Object: &obj}
	return nil
}
