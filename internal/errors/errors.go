package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   c,
	}
}

var (
	ErrConfigNotFound = &AppError{Code: "CONFIG_001", Message: "configuration not found"}
	ErrConfigInvalid  = &AppError{Code: "CONFIG_002", Message: "invalid configuration"}

	ErrMissingField       = &AppError{Code: "VALID_001", Message: "required field is missing"}
	ErrPastTime           = &AppError{Code: "VALID_002", Message: "time is in the past"}
	ErrPasswordComplexity = &AppError{Code: "VALID_003", Message: "password does not meet complexity requirements"}
	ErrPhoneFormat        = &AppError{Code: "VALID_004", Message: "phone number must be exactly 8 digits"}
	ErrUnknownUnit        = &AppError{Code: "VALID_005", Message: "unknown dosage unit"}
	ErrUnknownForm        = &AppError{Code: "VALID_006", Message: "unknown dosage form"}
	ErrBadTimeSlot        = &AppError{Code: "VALID_007", Message: "time is not an available slot"}
	ErrUnknownFacility    = &AppError{Code: "VALID_008", Message: "unknown healthcare facility"}
	ErrPastDate           = &AppError{Code: "VALID_009", Message: "date is in the past"}

	ErrPastDay = &AppError{Code: "SELECT_001", Message: "cannot select a previous day"}

	ErrPersistRead  = &AppError{Code: "PERSIST_001", Message: "datastore read failed"}
	ErrPersistWrite = &AppError{Code: "PERSIST_002", Message: "datastore write failed"}

	ErrUserExists   = &AppError{Code: "AUTH_001", Message: "username already exists"}
	ErrUserNotFound = &AppError{Code: "AUTH_002", Message: "username does not exist"}
	ErrBadPassword  = &AppError{Code: "AUTH_003", Message: "incorrect password"}
	ErrUnauthorized = &AppError{Code: "AUTH_004", Message: "unauthorized"}

	ErrNotFound   = &AppError{Code: "GEN_001", Message: "resource not found"}
	ErrBadRequest = &AppError{Code: "GEN_002", Message: "bad request"}
	ErrInternal   = &AppError{Code: "GEN_003", Message: "internal error"}
)

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}
