// file: internal/tools/schemas.go
package tools

import (
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
)

// Small builders keep the catalog readable. Defaults are raw JSON literals.

func object(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func emptyObject() *jsonschema.Schema {
	return object(nil, nil)
}

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func nonEmptyStr(desc string) *jsonschema.Schema {
	s := str(desc)
	s.MinLength = ptr(1)
	return s
}

func enum(desc, def string, values ...string) *jsonschema.Schema {
	s := str(desc)
	s.Enum = make([]any, 0, len(values))
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	if def != "" {
		s.Default = []byte(strconv.Quote(def))
	}
	return s
}

func boolean(desc string, def *bool) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "boolean", Description: desc}
	if def != nil {
		s.Default = []byte(strconv.FormatBool(*def))
	}
	return s
}

func integer(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func id(desc string) *jsonschema.Schema {
	s := integer(desc)
	s.Minimum = ptr(1.0)
	return s
}

func bounded(desc string, minimum, maximum, def int) *jsonschema.Schema {
	s := integer(desc)
	s.Minimum = ptr(float64(minimum))
	s.Maximum = ptr(float64(maximum))
	s.Default = []byte(strconv.Itoa(def))
	return s
}

func idList(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items:       id(""),
		MinItems:    ptr(1),
	}
}

// profileRef accepts a quality profile by name or numeric id.
func profileRef(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: desc,
		AnyOf: []*jsonschema.Schema{
			{Type: "string", MinLength: ptr(1)},
			{Type: "integer", Minimum: ptr(1.0)},
		},
	}
}

func ptr[T any](v T) *T { return &v }
