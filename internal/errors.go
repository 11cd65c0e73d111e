package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidName        ErrorCode = "INVALID_NAME"
	ErrCodeInvalidOutletType  ErrorCode = "INVALID_OUTLET_TYPE"
	ErrCodeInvalidUserType    ErrorCode = "INVALID_USER_TYPE"
	ErrCodeInvalidPassword    ErrorCode = "INVALID_PASSWORD"
	ErrCodeInvalidGateway     ErrorCode = "INVALID_PAYMENT_GATEWAY"
	ErrCodeInvalidRooms       ErrorCode = "INVALID_ROOMS"
	ErrCodeUnknownPermission  ErrorCode = "UNKNOWN_PERMISSION"

	ErrCodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeOutletNotFound     ErrorCode = "OUTLET_NOT_FOUND"
	ErrCodeNoPostListNotFound ErrorCode = "NO_POST_LIST_NOT_FOUND"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked       ErrorCode = "TOKEN_REVOKED"

	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	ErrCodeCompanyAdminOnly   ErrorCode = "COMPANY_ADMIN_ONLY"
	ErrCodeQRCodeLimitReached ErrorCode = "QRCODE_LIMIT_REACHED"

	ErrCodeRoleAlreadyExists       ErrorCode = "ROLE_ALREADY_EXISTS"
	ErrCodeDepartmentAlreadyExists ErrorCode = "DEPARTMENT_ALREADY_EXISTS"
	ErrCodeOutletAlreadyExists     ErrorCode = "OUTLET_ALREADY_EXISTS"
	ErrCodeEmailAlreadyRegistered  ErrorCode = "EMAIL_ALREADY_REGISTERED"
	ErrCodeProfileAlreadyExists    ErrorCode = "PROFILE_ALREADY_EXISTS"
	ErrCodeCompanyNameTaken        ErrorCode = "COMPANY_NAME_TAKEN"
	ErrCodePhoneNumberTaken        ErrorCode = "PHONE_NUMBER_TAKEN"
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
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {

			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
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

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
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

// NewDuplicateRoleError reports a (name, company) collision and carries the
// conflicting name so callers can surface it.
func NewDuplicateRoleError(name string) *AppError {
	return NewConflictError(fmt.Sprintf("role %q already exists for this company", name), ErrCodeRoleAlreadyExists)
}

// NewUnknownPermissionError is returned when a permission name does not exist
// in the catalog. The whole operation that referenced it must fail.
func NewUnknownPermissionError(name string) *AppError {
	return NewValidationError(fmt.Sprintf("unknown permission %q", name), ErrCodeUnknownPermission)
}

// NewPermissionDeniedError carries the permission the caller lacked.
func NewPermissionDeniedError(permission string) *AppError {
	return NewForbiddenError(fmt.Sprintf("missing permission %q", permission), ErrCodePermissionDenied)
}

func NewDuplicateDepartmentError(name string) *AppError {
	return NewConflictError(fmt.Sprintf("department %q already exists for this company", name), ErrCodeDepartmentAlreadyExists)
}

func NewDuplicateOutletError(name string) *AppError {
	return NewConflictError(fmt.Sprintf("outlet %q already exists for this company", name), ErrCodeOutletAlreadyExists)
}

var (
	ErrRoleNotFound       = NewNotFoundError("Role not found", ErrCodeRoleNotFound)
	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrDepartmentNotFound = NewNotFoundError("Department not found", ErrCodeDepartmentNotFound)
	ErrOutletNotFound     = NewNotFoundError("Outlet not found", ErrCodeOutletNotFound)
	ErrNoPostListNotFound = NewNotFoundError("No-post list not found", ErrCodeNoPostListNotFound)
	ErrProfileNotFound    = NewNotFoundError("Profile not found", ErrCodeProfileNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrTokenRevoked       = NewUnauthorizedError("Token has been revoked", ErrCodeTokenRevoked)

	ErrCompanyAdminOnly   = NewForbiddenError("Only company accounts may perform this action", ErrCodeCompanyAdminOnly)
	ErrEmailTaken         = NewConflictError("Email is already registered", ErrCodeEmailAlreadyRegistered)
	ErrQRCodeLimitReached = NewForbiddenError("QR code limit reached for this subscription", ErrCodeQRCodeLimitReached)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

// IsDuplicateKey reports whether err is a uniqueness violation from the
// store. The unique constraints are the authoritative backstop for every
// duplicate pre-check, so repositories translate this into the matching
// conflict error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
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
