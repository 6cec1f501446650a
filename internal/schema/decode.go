package schema

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Decode parses raw JSON and validates it against the shape of the kind that
// tag resolves to. Unknown tags use the general shape. The first violation
// rejects the whole document; nothing is partially accepted.
func Decode(raw []byte, tag string) (Document, error) {
	kind := Resolve(tag)

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	s := compiled[kind]
	if err := s.VisitJSON(value); err != nil {
		return nil, newSchemaViolation(kind, err)
	}

	// encoding/json matches keys case-insensitively, so only the validated
	// keys may reach the typed document.
	validated, err := json.Marshal(declaredOnly(value, s))
	if err != nil {
		return nil, &SchemaViolation{Kind: kind, Reason: err.Error(), Err: err}
	}
	doc := shapes[kind].newDoc()
	if err := json.Unmarshal(validated, doc); err != nil {
		return nil, &SchemaViolation{Kind: kind, Reason: err.Error(), Err: err}
	}
	return doc, nil
}

// declaredOnly drops every object key that s does not declare, recursively.
func declaredOnly(value any, s *openapi3.Schema) any {
	if s == nil {
		return value
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			if child, ok := v[name]; ok {
				out[name] = declaredOnly(child, prop.Value)
			}
		}
		return out
	case []any:
		if s.Items == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = declaredOnly(item, s.Items.Value)
		}
		return out
	default:
		return value
	}
}

// DecodeKind is Decode for callers that already hold a Kind.
func DecodeKind(raw []byte, kind Kind) (Document, error) {
	if _, ok := shapes[kind]; !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return Decode(raw, string(kind))
}
