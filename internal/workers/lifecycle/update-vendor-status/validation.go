// internal/workers/lifecycle/update-vendor-status/validation.go
package updatevendorstatus

import (
	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/validation"
)

const inputSchema = `{
	"type": "object",
	"required": ["eventId", "vendorId"],
	"properties": {
		"eventId":    {"type": "string", "minLength": 1},
		"vendorId":   {"type": "string", "minLength": 1},
		"vendorName": {"type": "string"},
		"status":     {"type": "string"},
		"remove":     {"type": "boolean"}
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
