package llm

import "context"

// ResumeFields is the normalized shape we want from the LLM. Fields the
// service omits stay at their zero values; nothing is ever fabricated.
type ResumeFields struct {
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience []string `json:"experience,omitempty"`
	Education  []string `json:"education,omitempty"`
}

// FieldExtractor is the interface the pipeline depends on. The returned raw
// bytes are the JSON document the model produced, kept for diagnostics.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (ResumeFields, []byte, error)
}
