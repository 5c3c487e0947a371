// Package schemas provides JSON Schema validation for structured LLM
// outputs. Every schema the system relies on is embedded at build time, so
// a deployment can never lose the contract the extraction prompts promise.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Schema names accepted by Validate.
const (
	IdentityCard   = "identity_card"
	CreditReport   = "credit_report"
	EnablementPlan = "enablement_plan"
	FinalSummary   = "final_summary"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("schema %s validation failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// A non-nil error is either a *ValidationError (the document is wrong) or a
// schema/parse problem (the call is wrong).
func Validate(schemaName, document string) error {
	schemaBytes, err := schemaFS.ReadFile(schemaName + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", schemaName, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if !result.Valid() {
		ve := &ValidationError{Schema: schemaName}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	return nil
}
