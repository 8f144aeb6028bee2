package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResumeOutputAcceptsPartialDocuments(t *testing.T) {
	for _, doc := range []string{
		`{}`,
		`{"name":"Ada Lovelace"}`,
		`{"name":"Ada","email":"ada@example.com","phone":"+44",` +
			`"skills":["Go"],"experience":["Analyst"],"education":["Mathematics"]}`,
	} {
		assert.NoError(t, ValidateResumeOutput([]byte(doc)), doc)
	}
}

func TestValidateResumeOutputRejectsWrongShapes(t *testing.T) {
	for _, doc := range []string{
		`["not","an","object"]`,
		`"just a string"`,
		`{"skills":"Go, SQL"}`,
		`{"name":42}`,
		`{"experience":[1,2]}`,
		`not json at all`,
	} {
		assert.Error(t, ValidateResumeOutput([]byte(doc)), doc)
	}
}
