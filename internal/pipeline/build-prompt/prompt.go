// Package buildprompt renders the instruction text sent to the model.
// Rendering is pure: the same inputs always produce the same prompt.
package buildprompt

import (
	"fmt"
	"strings"

	"truecheck/internal/models"
)

const preamble = "You are a data verification expert. Analyze the following data and provide a JSON response with verification results."

const simpleFormat = `{
  "status": "valid|invalid|error",
  "message": "Detailed explanation of the verification result",
  "details": {
    "confidence": 0.95,
    "issues": ["list of any issues found"],
    "suggestions": ["list of suggestions for improvement"]
  }
}`

const extendedFormat = `{
  "veracity": "true|false|uncertain",
  "confidence": 0.95,
  "reasoning": "Detailed explanation of the verification result"
}`

// Build renders the prompt for data of the given type. data is embedded
// verbatim between double quotes; it is not escaped.
func Build(data, verificationType string, shape models.Shape) string {
	format := extendedFormat
	if shape == models.ShapeSimple {
		format = simpleFormat
	}

	var b strings.Builder
	b.WriteString(preamble)
	fmt.Fprintf(&b, "\n\nData to verify: \"%s\"\nVerification type: %s\n\n", data, verificationType)
	b.WriteString("Please provide a JSON response in this exact format:\n")
	b.WriteString(format)
	fmt.Fprintf(&b, "\n\nVerification rules for %s:", verificationType)
	b.WriteString(Rules(verificationType))
	return b.String()
}
