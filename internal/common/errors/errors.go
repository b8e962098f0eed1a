// internal/common/errors/errors.go

// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCatalogFetchFailed ErrorCode = "CATALOG_FETCH_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeInquiryDispatchFailed ErrorCode = "INQUIRY_DISPATCH_FAILED"
	ErrCodeInquiryLogFailed      ErrorCode = "INQUIRY_LOG_FAILED"

	ErrCodeLifecycleStoreFailed   ErrorCode = "LIFECYCLE_STORE_FAILED"
	ErrCodeInvalidLifecycleStatus ErrorCode = "INVALID_LIFECYCLE_STATUS"

	ErrCodeVendorNotFound   ErrorCode = "VENDOR_NOT_FOUND"
	ErrCodeInvalidSortKey   ErrorCode = "INVALID_SORT_KEY"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewCatalogFetchFailedError creates a retryable catalog read error. The
// discovery pipeline fails closed on this: callers get an empty result set,
// never a stale or partial match.
func NewCatalogFetchFailedError(city string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogFetchFailed,
		Message:   "Vendor catalog fetch failed",
		Details:   fmt.Sprintf("city: %s, error: %s", city, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInquiryDispatchFailedError creates a retryable inquiry delivery error.
// Retried dispatches never re-submit vendors already confirmed sent; the
// dedup set is authoritative.
func NewInquiryDispatchFailedError(vendorID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInquiryDispatchFailed,
		Message:   "Inquiry delivery failed",
		Details:   fmt.Sprintf("vendorId: %s, error: %s", vendorID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInquiryLogFailedError creates a retryable inquiry log insert error.
func NewInquiryLogFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInquiryLogFailed,
		Message:   "Inquiry log insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLifecycleStoreFailedError creates a retryable lifecycle store write error.
// Reads never produce this: a missing or malformed store degrades to empty.
func NewLifecycleStoreFailedError(eventID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLifecycleStoreFailed,
		Message:   "Lifecycle store write failed",
		Details:   fmt.Sprintf("eventId: %s, error: %s", eventID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidLifecycleStatusError creates a non-retryable status error. An
// unknown status value is a programming defect in the caller, not data to
// tolerate.
func NewInvalidLifecycleStatusError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLifecycleStatus,
		Message:   "Unknown vendor lifecycle status",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVendorNotFoundError creates a non-retryable vendor lookup error.
func NewVendorNotFoundError(vendorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeVendorNotFound,
		Message:   "Vendor not found",
		Details:   fmt.Sprintf("vendorId: %s", vendorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSortKeyError creates a non-retryable sort key error.
func NewInvalidSortKeyError(sortBy string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSortKey,
		Message:   "Unsupported sort key",
		Details:   fmt.Sprintf("sortBy: %s", sortBy),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogFetchFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeInquiryDispatchFailed,
		ErrCodeInquiryLogFailed,
		ErrCodeLifecycleStoreFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "INQUIRY"):
		return "OUTREACH"
	case strings.Contains(codeStr, "LIFECYCLE"):
		return "LIFECYCLE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "GENERAL"
	}
}
