// Package gateway exposes the data engine over an HTTP API in the X API v2
// style, plus management endpoints and an SSE notification stream.
//
// This file contains helpers for writing JSON response envelopes and error
// bodies. Successful responses wrap their payload in {"data": ...}; errors
// use the problem-details shape {"errors": [...], "title", "detail", "type"}.
package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/logging"
)

const problemBase = "https://chatter.dev/problems/"

// errorBody is the error envelope returned by every failing endpoint.
type errorBody struct {
	Errors []errorDetail `json:"errors"`
	Title  string        `json:"title"`
	Detail string        `json:"detail"`
	Type   string        `json:"type"`
}

type errorDetail struct {
	Message string `json:"message"`
}

// writeJSON writes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode response", map[string]any{"error": err.Error()})
	}
}

// writeData writes {"data": v} with the given status code.
func writeData(w http.ResponseWriter, statusCode int, v any) {
	writeJSON(w, statusCode, map[string]any{"data": v})
}

// writeProblem writes an error envelope.
func writeProblem(w http.ResponseWriter, statusCode int, title, detail, problem string) {
	writeJSON(w, statusCode, errorBody{
		Errors: []errorDetail{{Message: detail}},
		Title:  title,
		Detail: detail,
		Type:   problemBase + problem,
	})
}

// writeInvalidRequest reports a malformed or rejected request body/parameter.
func writeInvalidRequest(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusBadRequest, "Invalid Request", detail, "invalid-request")
}

// writeNotFound reports a missing resource.
func writeNotFound(w http.ResponseWriter, detail string) {
	writeProblem(w, http.StatusNotFound, "Not Found Error", detail, "resource-not-found")
}

// writeEngineError maps an engine error onto the HTTP error taxonomy.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrNotExists):
		writeNotFound(w, err.Error())
	case errors.Is(err, engine.ErrDuplicateHandle):
		writeProblem(w, http.StatusConflict, "Duplicate Handle", err.Error(), "duplicate-handle")
	case errors.Is(err, engine.ErrInvalidFollow):
		writeInvalidRequest(w, err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error(), "internal-error")
	}
}
