package validation

import (
	"fmt"
	"strings"

	"truecheck/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// SimpleResultSchema is the JSON schema of a v1 result record.
const SimpleResultSchema = `{
  "type": "object",
  "required": ["type", "status", "message"],
  "properties": {
    "type":    {"type": "string", "minLength": 1},
    "status":  {"type": "string", "enum": ["valid", "invalid", "error"]},
    "message": {"type": "string"},
    "details": {"type": "object"}
  }
}`

// ExtendedResultSchema is the JSON schema of a v2 result record.
const ExtendedResultSchema = `{
  "type": "object",
  "required": ["type", "veracity", "confidence", "reasoning", "explanation"],
  "properties": {
    "type":        {"type": "string", "minLength": 1},
    "veracity":    {"type": "string", "enum": ["true", "false", "uncertain"]},
    "confidence":  {"type": "number", "minimum": 0, "maximum": 1},
    "reasoning":   {"type": "string"},
    "explanation": {"type": "string"}
  }
}`

var (
	simpleSchema   = mustCompile(SimpleResultSchema)
	extendedSchema = mustCompile(ExtendedResultSchema)
)

func mustCompile(schemaJSON string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return s
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateDocument validates any Go value, marshalled as JSON, against a
// schema given as a JSON string.
func ValidateDocument(schemaJSON string, doc interface{}) (*ValidationResult, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return validate(schema, doc)
}

// ValidateSimpleResult checks a v1 record against SimpleResultSchema.
func ValidateSimpleResult(r models.SimpleResult) *ValidationResult {
	res, err := validate(simpleSchema, r)
	if err != nil {
		return failed(err)
	}
	return res
}

// ValidateExtendedResult checks a v2 record against ExtendedResultSchema.
func ValidateExtendedResult(r models.ExtendedResult) *ValidationResult {
	res, err := validate(extendedSchema, r)
	if err != nil {
		return failed(err)
	}
	return res
}

func validate(schema *gojsonschema.Schema, doc interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

func failed(err error) *ValidationResult {
	return &ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "SCHEMA_ERROR"}},
	}
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
