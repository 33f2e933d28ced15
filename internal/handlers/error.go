package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/switchyard-io/switchyard/internal/models"
)

type ApiResponseError struct {
	Status int
	Body   any
}

func (e ApiResponseError) Error() string {
	data, err := json.Marshal(e.Body)
	if err != nil {
		return "ApiResponseError"
	}
	return string(data)
}

func NewApiResponseError(status int, body any) *ApiResponseError {
	return &ApiResponseError{
		Status: status,
		Body:   body,
	}
}

// describe renders the error body as one human-readable line for a bulk
// result's error list.
func (e ApiResponseError) describe() string {
	switch body := e.Body.(type) {
	case models.ValidationError:
		return body.String()
	case models.NotFoundError:
		if body.Resource != "" {
			return fmt.Sprintf("%s not found", body.Resource)
		}
		return body.BaseError.Error
	case models.ConflictsError:
		return body.BaseError.Error
	case models.BaseError:
		return body.Error
	default:
		return e.Error()
	}
}
