package jsonapi

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustUnmarshalJSON[T any](t *testing.T, b []byte, v *T) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
}

func mustMarshalJSON(t *testing.T, v any) []byte {
	t.Helper()
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return out
}

func stringPtr(s string) *string { return &s }

// assertWire checks the exact encoding of v and that decoding it yields v
// again.
func assertWire[T any](t *testing.T, v T, want string) {
	t.Helper()
	out := mustMarshalJSON(t, v)
	if string(out) != want {
		t.Fatalf("encoding mismatch\n got: %s\nwant: %s", out, want)
	}
	var back T
	mustUnmarshalJSON(t, out, &back)
	if diff := cmp.Diff(v, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type kitty struct {
	Kitty bool `json:"kitty"`
}

func (kitty) Kind() string { return "b" }

type article struct {
	Title string `json:"title"`
}

func (article) Kind() string { return "articles" }

func (article) Links(id string) Links {
	return Links{"self": NewLink(fmt.Sprintf("/articles/%s", id), nil)}
}

type person struct {
	FirstName string `json:"first-name"`
	LastName  string `json:"last-name"`
	Contact   string `json:"contact"`
}

func (person) Kind() string { return "people" }

func (person) Links(id string) Links {
	return Links{"self": NewLink(fmt.Sprintf("/people/%s", id), nil)}
}

type comment struct {
	Body string `json:"body"`
}

func (comment) Kind() string { return "comments" }

func (comment) Links(id string) Links {
	return Links{"self": NewLink(fmt.Sprintf("/comments/%s", id), nil)}
}

// counter carries a number that does not fit a float64 mantissa.
type counter struct {
	Count int64 `json:"count"`
}

func (counter) Kind() string { return "counters" }

// scalar violates the Attributes contract by encoding to a string.
type scalar string

func (scalar) Kind() string { return "scalars" }
