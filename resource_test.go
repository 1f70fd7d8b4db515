package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewResourceObject_PopulatesDefaultLinks(t *testing.T) {
	ro := NewResourceObject("1", &article{Title: "t"})
	want := Links{"self": NewLink("/articles/1", nil)}
	if diff := cmp.Diff(want, ro.Links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	if ro.Relationships != nil || ro.Meta != nil {
		t.Fatalf("expected empty relationships and meta, got %#v", ro)
	}
}

func TestNewResourceObject_WithoutLinkProvider(t *testing.T) {
	ro := NewResourceObject[kitty]("a", nil)
	if ro.Links != nil || ro.Attributes != nil {
		t.Fatalf("expected no links and no attributes, got %#v", ro)
	}
	if ro.Kind() != "b" || KindOf[kitty]() != "b" {
		t.Fatalf("expected kind b, got %q", ro.Kind())
	}
}

func TestResourceObject_AddRelationshipAndLink(t *testing.T) {
	ro := NewResourceObject[kitty]("a", nil)

	ro.AddRelationship("owner", ToOne(NewIdentifier("1", "people")))
	ro.AddRelationship("owner", ToOne(NewIdentifier("2", "people")))
	ro.AddLink("self", NewLink("/kitties/a", nil))
	ro.AddLink("self", NewLink("/b/a", nil))

	if len(ro.Relationships) != 1 {
		t.Fatalf("expected upsert to keep one relationship, got %d", len(ro.Relationships))
	}
	if id, _ := ro.Relationships["owner"].Data.Get(); id.ID != "2" {
		t.Fatalf("expected last relationship to win, got %v", ro.Relationships["owner"].Data)
	}
	if href, _ := ro.Links["self"].Href(); href != "/b/a" || len(ro.Links) != 1 {
		t.Fatalf("expected last link to win, got %#v", ro.Links)
	}
}

func TestResourceObject_Generic(t *testing.T) {
	ro := NewResourceObject[kitty]("a", nil)
	want := GenericObject{ID: "a", Type: "b"}
	if diff := cmp.Diff(want, ro.Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ro.Clone().Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}

	ro.Attributes = &kitty{Kitty: true}
	ro.Relationships = Relationships{}
	ro.Links = Links{}
	ro.Meta = Meta{}

	want = GenericObject{
		ID:            "a",
		Type:          "b",
		Attributes:    Object{"kitty": true},
		Relationships: Relationships{},
		Links:         Links{},
		Meta:          Meta{},
	}
	if diff := cmp.Diff(want, ro.Clone().Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ro.Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceObject_EmptyAttributesStayPresent(t *testing.T) {
	ro := ResourceObject[kitty]{ID: "a", Attributes: &kitty{}}
	g := ro.Generic()
	if g.Attributes == nil || g.Attributes["kitty"] != false {
		t.Fatalf("expected attributes present, got %#v", g.Attributes)
	}
}

func TestResourceObject_NonObjectAttributes(t *testing.T) {
	s := scalar("nope")
	ro := ResourceObject[scalar]{ID: "a", Attributes: &s}

	if _, err := ro.ToGeneric(); err == nil {
		t.Fatalf("expected error for attributes encoding to a string")
	}
	if _, err := json.Marshal(ro); err == nil {
		t.Fatalf("expected marshal error")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Generic to panic")
		}
	}()
	_ = ro.Generic()
}

func TestResourceObject_JSON(t *testing.T) {
	ro := NewResourceObject("1", &article{Title: "Hello"})
	ro.Meta = Meta{"views": json.Number("3")}

	out := mustMarshalJSON(t, ro)
	want := `{"id":"1","type":"articles","attributes":{"title":"Hello"},"links":{"self":"/articles/1"},"meta":{"views":3}}`
	if string(out) != want {
		t.Fatalf("encoding mismatch\n got: %s\nwant: %s", out, want)
	}

	var back ResourceObject[article]
	mustUnmarshalJSON(t, out, &back)
	if diff := cmp.Diff(ro, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceObject_UnmarshalRejectsWrongType(t *testing.T) {
	var ro ResourceObject[article]
	err := json.Unmarshal([]byte(`{"id":"1","type":"people"}`), &ro)
	if err == nil {
		t.Fatalf("expected error")
	}
	if ro.ID != "" {
		t.Fatalf("expected target untouched, got %#v", ro)
	}
}

func TestResourceObject_CloneIsIndependent(t *testing.T) {
	src := NewResourceObject("1", &article{Title: "a"})
	src.AddRelationship("author", ToOne(NewIdentifier("9", "people")))

	cp := src.Clone()
	cp.Attributes.Title = "b"
	cp.AddLink("self", NewLink("/changed", nil))
	cp.AddRelationship("comments", ToMany())

	if src.Attributes.Title != "a" {
		t.Fatalf("expected source attributes untouched, got %q", src.Attributes.Title)
	}
	if href, _ := src.Links["self"].Href(); href != "/articles/1" {
		t.Fatalf("expected source links untouched, got %q", href)
	}
	if len(src.Relationships) != 1 {
		t.Fatalf("expected source relationships untouched, got %d", len(src.Relationships))
	}
}

// opaque cannot be encoded, so Clone falls back to copying it by value.
type opaque struct {
	Name string   `json:"name"`
	Ch   chan int `json:"ch"`
}

func (opaque) Kind() string { return "opaques" }

func TestResourceObject_CloneCopiesUnencodableAttributes(t *testing.T) {
	src := NewResourceObject("1", &opaque{Name: "a"})
	cp := src.Clone()
	if cp.Attributes == src.Attributes {
		t.Fatalf("expected attributes pointer not to be shared")
	}
	cp.Attributes.Name = "changed"
	if src.Attributes.Name != "a" {
		t.Fatalf("expected source attributes untouched, got %q", src.Attributes.Name)
	}
}
