package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// MalformedInputError reports a document that is not valid JSON at all.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return "malformed document: " + e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// SchemaViolation reports the first field that does not match the shape
// required by Kind. Field is a dot-joined path such as "steps.2.content";
// it is empty when the document root itself is wrong.
type SchemaViolation struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *SchemaViolation) Error() string {
	field := e.Field
	if field == "" {
		field = "document"
	}
	return fmt.Sprintf("schema violation for %s at %s: %s", e.Kind, field, e.Reason)
}

func (e *SchemaViolation) Unwrap() error {
	return e.Err
}

func newSchemaViolation(kind Kind, err error) *SchemaViolation {
	v := &SchemaViolation{Kind: kind, Reason: err.Error(), Err: err}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		v.Field = strings.Join(se.JSONPointer(), ".")
		v.Reason = se.Reason
	}
	return v
}

// IsValidationError reports whether err is a MalformedInputError or a
// SchemaViolation.
func IsValidationError(err error) bool {
	var malformed *MalformedInputError
	var violation *SchemaViolation
	return errors.As(err, &malformed) || errors.As(err, &violation)
}
