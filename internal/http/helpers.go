package http

import (
	"encoding/json"
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/content"
)

type errorResponse struct {
	Error    string                    `json:"error"`
	Message  string                    `json:"message,omitempty"`
	TextCode string                    `json:"text_code,omitempty"`
	Issues   goerrors.ValidationErrors `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var report *content.ValidationReport
	if errors.As(err, &report) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:    "content_invalid",
			Message:  report.Error(),
			TextCode: content.CodeSchemaInvalid,
			Issues:   report.FieldErrors(),
		}
	}

	if errors.Is(err, collections.ErrUnknownCollection) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	var categorized *goerrors.Error
	if goerrors.As(err, &categorized) {
		response := errorResponse{
			Error:    string(categorized.Category),
			Message:  categorized.Message,
			TextCode: categorized.TextCode,
			Issues:   categorized.ValidationErrors,
		}
		switch categorized.Category {
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			return http.StatusBadRequest, response
		case goerrors.CategoryNotFound:
			return http.StatusNotFound, response
		case goerrors.CategoryConflict:
			return http.StatusConflict, response
		}
		return http.StatusInternalServerError, response
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}
