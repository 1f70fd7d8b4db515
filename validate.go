package jsonapi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type validateOptions struct {
	rejectUnknownMembers    bool
	requireSupportedVersion bool
	requireFullLinkage      bool
	allowMissingIDs         bool
}

// ValidateOption configures Document.Validate.
type ValidateOption func(*validateOptions)

// WithRejectUnknownMembers treats preserved unknown (non-extension) members as errors.
// Default behavior is forward-compatible (unknowns allowed/ignored), so this is an opt-in "strict" mode.
func WithRejectUnknownMembers() ValidateOption {
	return func(o *validateOptions) { o.rejectUnknownMembers = true }
}

// WithRequireSupportedVersion requires jsonapi.version, when set, to be within the supported range.
func WithRequireSupportedVersion() ValidateOption {
	return func(o *validateOptions) { o.requireSupportedVersion = true }
}

// WithRequireFullLinkage requires every included resource to be reachable
// through relationship linkage starting at the primary data.
func WithRequireFullLinkage() ValidateOption {
	return func(o *validateOptions) { o.requireFullLinkage = true }
}

// WithAllowMissingIDs accepts primary resources with an empty id, as sent
// by clients creating resources with server-generated ids.
func WithAllowMissingIDs() ValidateOption {
	return func(o *validateOptions) { o.allowMissingIDs = true }
}

var (
	versionRule = validation.Match(regexp.MustCompile(`^\d+\.\d+$`)).Error("must be MAJOR.MINOR (e.g. 1.1)")
	statusRules = []validation.Rule{
		validation.Length(3, 3).Error("must be a three digit HTTP status code"),
		is.Digit.Error("must be a three digit HTTP status code"),
	}
)

// Validate performs structural checks on d: member presence and
// exclusivity, resource identity, relationship shape and member names.
// It does not validate attribute values.
func (d Document) Validate(opts ...ValidateOption) error {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var errs []string

	if d.Data.IsNotPresent() && d.Errors == nil && d.Meta == nil && len(d.Extensions) == 0 {
		errs = append(errs, "document: must contain at least one of data, errors, meta")
	}
	if !d.Data.IsNotPresent() && d.Errors != nil {
		errs = append(errs, "document: data and errors must not coexist")
	}
	if d.Included != nil && d.Data.IsNotPresent() {
		errs = append(errs, "included: requires data")
	}

	if d.JSONAPI != nil && d.JSONAPI.Version != "" {
		if err := validation.Validate(d.JSONAPI.Version, versionRule); err != nil {
			errs = append(errs, fmt.Sprintf("jsonapi.version: %v", err))
		} else if o.requireSupportedVersion {
			ok, err := IsSupportedVersion(d.JSONAPI.Version)
			if err != nil {
				errs = append(errs, fmt.Sprintf("jsonapi.version: invalid version: %v", err))
			} else if !ok {
				errs = append(errs, fmt.Sprintf("jsonapi.version: unsupported version %q (supported %s-%s)", d.JSONAPI.Version, MinSupportedVersion, MaxTestedVersion))
			}
		}
	}

	primary := d.Data.All()
	paths := make(map[string]string, len(primary)+len(d.Included))
	for idx, g := range primary {
		path := "data"
		if d.Data.IsMany() {
			path = fmt.Sprintf("data[%d]", idx)
		}
		validateResource(&errs, path, g, !o.allowMissingIDs, o)
		checkDuplicate(&errs, paths, path, g)
	}
	for idx, g := range d.Included {
		path := fmt.Sprintf("included[%d]", idx)
		validateResource(&errs, path, g, true, o)
		checkDuplicate(&errs, paths, path, g)
	}

	if o.requireFullLinkage {
		validateFullLinkage(&errs, primary, d.Included)
	}

	for idx, e := range d.Errors {
		if err := validation.Validate(e.Status, statusRules...); err != nil {
			errs = append(errs, fmt.Sprintf("errors[%d].status: %v", idx, err))
		}
	}

	if o.rejectUnknownMembers {
		appendUnknownMemberProblems(&errs, "", d.Unknown)
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs}
}

func resourceKey(g GenericObject) string {
	return g.Type + "\x00" + g.ID
}

func checkDuplicate(errs *[]string, seen map[string]string, path string, g GenericObject) {
	if g.ID == "" {
		return
	}
	key := resourceKey(g)
	if prev, ok := seen[key]; ok {
		*errs = append(*errs, fmt.Sprintf("%s: duplicates %s resource %q at %s", path, g.Type, g.ID, prev))
		return
	}
	seen[key] = path
}

func validateResource(errs *[]string, path string, g GenericObject, requireID bool, o validateOptions) {
	if err := validation.Validate(g.Type, validation.Required); err != nil {
		*errs = append(*errs, fmt.Sprintf("%s.type: %v", path, err))
	}
	if requireID {
		if err := validation.Validate(g.ID, validation.Required); err != nil {
			*errs = append(*errs, fmt.Sprintf("%s.id: %v", path, err))
		}
	}

	for _, k := range sortedKeys(g.Attributes) {
		if k == "id" || k == "type" {
			*errs = append(*errs, fmt.Sprintf("%s.attributes: %q is a reserved member name", path, k))
		}
		if _, ok := g.Relationships[k]; ok {
			*errs = append(*errs, fmt.Sprintf("%s: %q is both an attribute and a relationship", path, k))
		}
	}

	for _, k := range sortedKeys(g.Relationships) {
		rel := g.Relationships[k]
		relPath := fmt.Sprintf("%s.relationships[%q]", path, k)
		if k == "id" || k == "type" {
			*errs = append(*errs, fmt.Sprintf("%s.relationships: %q is a reserved member name", path, k))
		}
		if rel.Links == nil && rel.Data.IsNotPresent() && rel.Meta == nil {
			*errs = append(*errs, fmt.Sprintf("%s: must contain at least one of links, data, meta", relPath))
		}
		for idx, id := range rel.Data.All() {
			idPath := relPath + ".data"
			if rel.Data.IsMany() {
				idPath = fmt.Sprintf("%s[%d]", idPath, idx)
			}
			if err := validation.Validate(id.Type, validation.Required); err != nil {
				*errs = append(*errs, fmt.Sprintf("%s.type: %v", idPath, err))
			}
			if err := validation.Validate(id.ID, validation.Required); err != nil {
				*errs = append(*errs, fmt.Sprintf("%s.id: %v", idPath, err))
			}
			if o.rejectUnknownMembers {
				appendUnknownMemberProblems(errs, idPath, id.Unknown)
			}
		}
		if o.rejectUnknownMembers {
			appendUnknownMemberProblems(errs, relPath, rel.Unknown)
		}
	}

	if o.rejectUnknownMembers {
		appendUnknownMemberProblems(errs, path, g.Unknown)
	}
}

// validateFullLinkage walks relationship linkage from the primary resources
// through the included ones and reports included resources never reached.
func validateFullLinkage(errs *[]string, primary, included []GenericObject) {
	byKey := make(map[string]GenericObject, len(included))
	for _, g := range included {
		byKey[resourceKey(g)] = g
	}

	reached := map[string]struct{}{}
	queue := append([]GenericObject(nil), primary...)
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		for _, rel := range g.Relationships {
			for _, id := range rel.Data.All() {
				key := id.Type + "\x00" + id.ID
				if _, ok := reached[key]; ok {
					continue
				}
				reached[key] = struct{}{}
				if next, ok := byKey[key]; ok {
					queue = append(queue, next)
				}
			}
		}
	}

	for idx, g := range included {
		if _, ok := reached[resourceKey(g)]; !ok {
			*errs = append(*errs, fmt.Sprintf("included[%d]: %s %q is not linked from primary data", idx, g.Type, g.ID))
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendUnknownMemberProblems(errs *[]string, prefix string, unknown map[string]json.RawMessage) {
	if len(unknown) == 0 {
		return
	}
	keys := sortedKeys(unknown)
	if prefix == "" {
		*errs = append(*errs, fmt.Sprintf("unknown members: %s", strings.Join(keys, ", ")))
		return
	}
	*errs = append(*errs, fmt.Sprintf("%s: unknown members: %s", prefix, strings.Join(keys, ", ")))
}

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid document"
	}
	return "invalid document: " + strings.Join(e.Problems, "; ")
}
