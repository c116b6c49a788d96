package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypePolicy       ErrorType = "POLICY_VIOLATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidLeaveType ErrorCode = "INVALID_LEAVE_TYPE"

	ErrCodeSessionAlreadyOpen ErrorCode = "SESSION_ALREADY_OPEN"
	ErrCodeNoOpenSession      ErrorCode = "NO_OPEN_SESSION"
	ErrCodeMinimumStayNotMet  ErrorCode = "MINIMUM_STAY_NOT_MET"
	ErrCodeRecordNotFound     ErrorCode = "RECORD_NOT_FOUND"

	ErrCodeLeaveNotFound     ErrorCode = "LEAVE_NOT_FOUND"
	ErrCodeLeaveNotPending   ErrorCode = "LEAVE_NOT_PENDING"
	ErrCodeSelfApproval      ErrorCode = "SELF_APPROVAL_FORBIDDEN"
	ErrCodeNotRequestOwner   ErrorCode = "NOT_REQUEST_OWNER"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED_ACCESS"
	ErrCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewPolicyError marks a business-rule rejection, detected before any write.
func NewPolicyError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypePolicy,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodePersistenceFailed,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrSessionAlreadyOpen = NewConflictError("an open session already exists for this user", ErrCodeSessionAlreadyOpen)
	ErrNoOpenSession      = NewValidationError("no open session to check out of", ErrCodeNoOpenSession)
	ErrRecordNotFound     = NewNotFoundError("attendance record not found", ErrCodeRecordNotFound)

	ErrLeaveNotFound   = NewNotFoundError("leave request not found", ErrCodeLeaveNotFound)
	ErrLeaveNotPending = NewValidationError("leave request has already been decided", ErrCodeLeaveNotPending)
	ErrSelfApproval    = NewForbiddenError("cannot decide your own leave request", ErrCodeSelfApproval)
	ErrNotRequestOwner = NewForbiddenError("only the request owner may withdraw it", ErrCodeNotRequestOwner)

	ErrUserNotFound       = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrUnauthorizedAccess = NewForbiddenError("insufficient permissions for this operation", ErrCodeUnauthorized)

	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

// MinimumStayDetails carries the user-facing wait hint for a rejected
// check-out.
type MinimumStayDetails struct {
	RemainingMinutes int `json:"remaining_minutes"`
}

// NewMinimumStayError reports a check-out attempted before the minimum stay
// elapsed, including how many whole minutes remain.
func NewMinimumStayError(remainingMinutes int) *AppError {
	return NewPolicyError(
		fmt.Sprintf("minimum stay not met, try again in %d minute(s)", remainingMinutes),
		ErrCodeMinimumStayNotMet,
	).WithDetails(MinimumStayDetails{RemainingMinutes: remainingMinutes})
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
