package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIdentifier_Wire(t *testing.T) {
	assertWire(t, Identifier{ID: "a", Type: "b"}, `{"id":"a","type":"b"}`)
	assertWire(t, Identifier{ID: "a", Type: "b", Meta: Meta{"c": "d"}}, `{"id":"a","type":"b","meta":{"c":"d"}}`)
}

func TestIdentifier_RequiresIDAndType(t *testing.T) {
	for _, in := range []string{`{"type":"b"}`, `{"id":"a"}`, `{}`, `null`} {
		var id Identifier
		if err := json.Unmarshal([]byte(in), &id); err == nil {
			t.Fatalf("%s: expected error", in)
		}
	}
}

func TestIdentifier_LosslessRoundTrip_PreservesExtensionsAndUnknown(t *testing.T) {
	in := []byte(`{"id":"a","type":"b","lid":"local-1","version:id":"v3"}`)

	var id Identifier
	mustUnmarshalJSON(t, in, &id)
	if _, ok := id.Extensions["version:id"]; !ok {
		t.Fatalf("expected extension member preserved, got %#v", id.Extensions)
	}
	if _, ok := id.Unknown["lid"]; !ok {
		t.Fatalf("expected unknown member preserved, got %#v", id.Unknown)
	}
	if got := string(mustMarshalJSON(t, id)); got != `{"id":"a","type":"b","lid":"local-1","version:id":"v3"}` {
		t.Fatalf("unexpected encoding %s", got)
	}
}

func TestIdentifier_FromGeneric(t *testing.T) {
	meta := Meta{"c": "d"}
	g := GenericObject{ID: "a", Type: "b", Attributes: Object{"x": true}, Meta: meta}

	want := Identifier{ID: "a", Type: "b", Meta: Meta{"c": "d"}}
	if diff := cmp.Diff(want, g.Identifier()); diff != "" {
		t.Fatalf("identifier mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, g.Clone().Identifier()); diff != "" {
		t.Fatalf("identifier mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifier_FromResourceObject(t *testing.T) {
	ro := ResourceObject[kitty]{ID: "a", Meta: Meta{"c": "d"}}

	want := Identifier{ID: "a", Type: "b", Meta: Meta{"c": "d"}}
	if diff := cmp.Diff(want, ro.Identifier()); diff != "" {
		t.Fatalf("identifier mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentifier_Generic(t *testing.T) {
	id := Identifier{ID: "a", Type: "b", Meta: Meta{}}
	want := GenericObject{ID: "a", Type: "b", Meta: Meta{}}
	if diff := cmp.Diff(want, id.Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, id.Clone().Generic()); diff != "" {
		t.Fatalf("generic mismatch (-want +got):\n%s", diff)
	}
}
