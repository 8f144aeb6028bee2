package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resumeSchemaJSON is the structural contract for inference output. Every
// field is optional, so validation only rejects output whose shape (not
// content) is wrong.
const resumeSchemaJSON = `{
	"type": "object",
	"properties": {
		"name":       {"type": "string"},
		"email":      {"type": "string"},
		"phone":      {"type": "string"},
		"skills":     {"type": "array", "items": {"type": "string"}},
		"experience": {"type": "array", "items": {"type": "string"}},
		"education":  {"type": "array", "items": {"type": "string"}}
	}
}`

var resumeSchema = jsonschema.MustCompileString("resume.json", resumeSchemaJSON)

// ValidateResumeOutput checks that data is a JSON document matching the
// resume field shape before it is trusted.
func ValidateResumeOutput(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal inference output: %w", err)
	}
	if err := resumeSchema.Validate(v); err != nil {
		return fmt.Errorf("inference output does not match resume schema: %w", err)
	}
	return nil
}
