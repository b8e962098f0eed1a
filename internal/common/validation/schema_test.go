// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["eventId"],
	"properties": {
		"eventId": {"type": "string", "minLength": 1},
		"page":    {"type": "integer", "minimum": 1}
	}
}`

func TestValidateJSON(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"eventId":"e1","page":2}`), testSchema)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.ErrorString())
}

func TestValidateJSON_ReportsFieldErrors(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"page":0}`), testSchema)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, result.ErrorString(), "eventId")
}

func TestValidateJSON_BrokenSchema(t *testing.T) {
	_, err := ValidateJSON([]byte(`{}`), `{not a schema`)
	assert.Error(t, err)
}
