// internal/workers/outreach/send-bulk-inquiries/validation.go
package sendbulkinquiries

import (
	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/validation"
)

const inputSchema = `{
	"type": "object",
	"required": ["eventId", "userId", "vendorIds"],
	"properties": {
		"eventId":   {"type": "string", "minLength": 1},
		"userId":    {"type": "string", "minLength": 1},
		"vendorIds": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"message":   {"type": ["string", "null"]}
	}
}`

func validateInput(raw []byte) error {
	result, err := validation.ValidateJSON(raw, inputSchema)
	if err != nil {
		return errors.NewValidationFailedError(err.Error())
	}
	if !result.Valid {
		return errors.NewValidationFailedError(result.ErrorString())
	}
	return nil
}
