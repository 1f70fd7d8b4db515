// Package jsonapi models JSON:API documents in two complementary forms:
// untyped resources usable at the wire level and strictly typed resources
// usable by application code, plus the conversions between them.
//
// # Resources
//
//   - Identifier: the (id, type, meta) triple used as relationship linkage
//   - GenericObject: a resource whose attributes are a flat Object of
//     dynamic values
//   - ResourceObject[A]: a resource whose attributes have the static type A,
//     where A implements Attributes (and optionally LinkProvider)
//
// # Quick Start
//
//	type Article struct {
//	    Title string `json:"title"`
//	}
//
//	func (Article) Kind() string { return "articles" }
//
//	article := jsonapi.NewResourceObject("1", &Article{Title: "Hello"})
//	doc := jsonapi.Document{Data: jsonapi.One(article.Generic())}
//	out, err := json.Marshal(doc)
//
// Decoding goes the other way:
//
//	var doc jsonapi.Document
//	if err := json.Unmarshal(data, &doc); err != nil {
//	    log.Fatal(err)
//	}
//	articles, err := jsonapi.PrimaryData[Article](doc)
//
// # Conversions
//
// Converting a typed resource into a GenericObject or an Identifier cannot
// fail for attribute types that encode to a JSON object. Converting the
// other way checks the stored type against A's Kind (*TypeMismatchError)
// and decodes the attributes into A (*AttributesError). Both errors match
// ErrConversion.
//
// Conversions share maps with their source. Every type has a Clone method
// returning a deep copy when the source must stay untouched.
//
// # Cardinality
//
// OptionalVec represents members that may be absent, a single nullable
// value or an array. Decoding tries the single form first and the array
// form second; struct fields holding it are tagged `omitzero` so that an
// absent value is omitted.
//
// # Lossless JSON (Forward Compatibility)
//
// Document, GenericObject, Identifier and Relationship preserve members
// this package does not model: extension members (names containing ':')
// in LosslessFields.Extensions and everything else in
// LosslessFields.Unknown. Typed members are written first; preserved
// members never override them.
//
// # Concurrency
//
// All types in this package are plain values and safe for concurrent read
// access. Concurrent writes to the same value require external
// synchronization. Validate is read-only.
//
// # Subpackages
//
//   - jsonapiyaml: read and write documents as YAML
package jsonapi
