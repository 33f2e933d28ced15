package models

import (
	"fmt"
)

// BaseError is the base type for API errors
type BaseError struct {
	Error string `json:"error" example:"something bad"`
}

func NewApiError(err error) BaseError {
	return BaseError{
		Error: err.Error(),
	}
}

// InternalServerError is returned in the body of an HTTP 500
type InternalServerError = BaseError

// ValidationError is returned in the body of an HTTP 400
type ValidationError struct {
	BaseError
	Field string `json:"field,omitempty"`
}

func NewBadPayloadError() ValidationError {
	return ValidationError{
		BaseError: BaseError{
			Error: "request json is invalid",
		},
	}
}

func NewBadPathParameterError(param string) ValidationError {
	return ValidationError{
		Field: param,
		BaseError: BaseError{
			Error: "path parameter invalid",
		},
	}
}

func NewFieldNotPresentError(field string) ValidationError {
	return ValidationError{
		Field: field,
		BaseError: BaseError{
			Error: "field not present",
		},
	}
}

func NewFieldValidationError(field string, reason string) ValidationError {
	return ValidationError{
		Field: field,
		BaseError: BaseError{
			Error: reason,
		},
	}
}

// String renders the error as a single human-readable line, used when a
// validation failure is folded into a bulk result's error list.
func (e ValidationError) String() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.BaseError.Error)
	}
	return e.BaseError.Error
}

// ConflictsError is returned in the body of an HTTP 409
type ConflictsError struct {
	ID uint `json:"id" example:"1"`
	BaseError
}

func NewConflictsError(id uint) ConflictsError {
	return ConflictsError{
		ID: id,
		BaseError: BaseError{
			Error: "resource already exists",
		},
	}
}

// NotFoundError is returned in the body of an HTTP 404
type NotFoundError struct {
	BaseError
	Resource string `json:"resource,omitempty"`
}

func NewNotFoundError(resource string) NotFoundError {
	return NotFoundError{
		Resource: resource,
		BaseError: BaseError{
			Error: "not found",
		},
	}
}

// UnauthorizedError is returned in the body of an HTTP 401
type UnauthorizedError struct {
	BaseError
	Reason string `json:"reason,omitempty"`
}

func NewUnauthorizedError(reason string) UnauthorizedError {
	return UnauthorizedError{
		Reason: reason,
		BaseError: BaseError{
			Error: "unauthorized",
		},
	}
}
