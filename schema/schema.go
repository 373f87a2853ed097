// Package schema defines the payload schemas tags may attach to their
// combined values. A tag that declares a schema gets its storage-key value
// validated right after combination, so malformed annotation payloads are
// caught with a position instead of surfacing later in rendering.
package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/duckdoc/go-duckdoc/core"
)

// Member describes the combined payload of a member-defining tag
// (@cfg, @property, @method, @event): an object that may carry a name, a
// type token, a default value and free documentation. Naming is enforced at
// merge time, not here, since the name may also come from the declaration.
func Member() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("doc", openapi3.NewStringSchema())
}

// Params describes the combined payload of the @param group: an ordered list
// of named parameter objects.
func Params() *openapi3.Schema {
	item := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("doc", openapi3.NewStringSchema()).
		WithProperty("optional", openapi3.NewBoolSchema())
	item.Required = []string{"name"}
	arr := openapi3.NewArraySchema()
	arr.Items = openapi3.NewSchemaRef("", item)
	return arr
}

// Return describes the combined payload of @return: an object carrying the
// returned type token and its documentation.
func Return() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("type", openapi3.NewStringSchema()).
		WithProperty("doc", openapi3.NewStringSchema())
	s.Required = []string{"type"}
	return s
}

// Version describes version-carrying payloads (@since): a canonicalized,
// non-empty version string.
func Version() *openapi3.Schema {
	return openapi3.NewStringSchema().WithMinLength(1)
}

// Validate checks a combined value against a tag's declared schema.
// Record values are normalized to plain JSON shape (maps, slices, scalars)
// before visiting, since the validator dispatches on concrete map types.
func Validate(s *openapi3.Schema, value any) error {
	return s.VisitJSON(normalize(value))
}

func normalize(value any) any {
	switch v := value.(type) {
	case core.Record:
		return normalizeMap(v)
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	default:
		return value
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}
