package jsonapi

import (
	"encoding/json"
	"testing"
)

func TestRelationship_Empty(t *testing.T) {
	assertWire(t, Relationship{}, `{}`)
}

func TestRelationship_Full(t *testing.T) {
	r := Relationship{
		Links: Links{},
		Data:  Many[Identifier](),
		Meta:  Meta{},
	}
	assertWire(t, r, `{"links":{},"data":[],"meta":{}}`)
}

func TestRelationship_EmptyToManyWithMeta(t *testing.T) {
	r := Relationship{Data: Many[Identifier](), Meta: Meta{}}
	assertWire(t, r, `{"data":[],"meta":{}}`)
}

func TestRelationship_Linkage(t *testing.T) {
	assertWire(t, Relationship{Data: Null[Identifier]()}, `{"data":null}`)
	assertWire(t, ToOne(NewIdentifier("9", "people")), `{"data":{"id":"9","type":"people"}}`)
	assertWire(t,
		ToMany(NewIdentifier("5", "comments"), NewIdentifier("12", "comments")),
		`{"data":[{"id":"5","type":"comments"},{"id":"12","type":"comments"}]}`,
	)
}

func TestRelationship_DecodeDistinguishesLinkage(t *testing.T) {
	var absent, null, empty Relationship
	mustUnmarshalJSON(t, []byte(`{"meta":{}}`), &absent)
	mustUnmarshalJSON(t, []byte(`{"data":null}`), &null)
	mustUnmarshalJSON(t, []byte(`{"data":[]}`), &empty)

	if !absent.Data.IsNotPresent() {
		t.Fatalf("expected not present linkage, got %v", absent.Data)
	}
	if !null.Data.IsNull() {
		t.Fatalf("expected null linkage, got %v", null.Data)
	}
	if !empty.Data.IsMany() || empty.Data.Len() != 0 {
		t.Fatalf("expected empty to-many linkage, got %v", empty.Data)
	}
}

func TestRelationships_Wire(t *testing.T) {
	rs := Relationships{
		"a": Relationship{},
		"b": Relationship{Links: Links{}, Data: Many[Identifier](), Meta: Meta{}},
	}
	assertWire(t, rs, `{"a":{},"b":{"links":{},"data":[],"meta":{}}}`)
}

func TestRelationship_LosslessRoundTrip(t *testing.T) {
	var r Relationship
	mustUnmarshalJSON(t, []byte(`{"data":[],"ordering:sort":["-created"],"extra":1}`), &r)
	if len(r.Extensions) != 1 || len(r.Unknown) != 1 {
		t.Fatalf("expected one extension and one unknown, got %#v %#v", r.Extensions, r.Unknown)
	}
	if got := string(mustMarshalJSON(t, r)); got != `{"data":[],"extra":1,"ordering:sort":["-created"]}` {
		t.Fatalf("unexpected encoding %s", got)
	}
}

func TestRelationship_CloneIsIndependent(t *testing.T) {
	src := Relationship{
		Links: Links{"self": NewLink("/a", nil)},
		Data:  Many(NewIdentifier("1", "a")),
		Meta:  Meta{"k": "v"},
	}
	cp := src.Clone()
	cp.Links["self"] = NewLink("/b", nil)
	cp.Data.Items()[0].ID = "2"
	cp.Meta["k"] = "changed"

	if href, _ := src.Links["self"].Href(); href != "/a" {
		t.Fatalf("expected source links untouched, got %q", href)
	}
	if src.Data.Items()[0].ID != "1" {
		t.Fatalf("expected source linkage untouched, got %v", src.Data)
	}
	if src.Meta["k"] != "v" {
		t.Fatalf("expected source meta untouched, got %v", src.Meta)
	}
}

func TestRelationship_RejectsNull(t *testing.T) {
	var r Relationship
	if err := json.Unmarshal([]byte(`null`), &r); err == nil {
		t.Fatalf("expected error for null relationship")
	}
	var rs Relationships
	if err := json.Unmarshal([]byte(`{"a":null}`), &rs); err == nil {
		t.Fatalf("expected error for null relationship member")
	}
	var g GenericObject
	if err := json.Unmarshal([]byte(`{"id":"1","type":"articles","relationships":{"author":null}}`), &g); err == nil {
		t.Fatalf("expected error for null relationship in resource")
	}
}
