// Package httpjson holds the request decoding and response encoding shared
// by the calculation handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"Ducted/internal/calc/calcerr"
)

const MaxBodyBytes = 1 << 20

type ErrorBody struct {
	Kind      string `json:"kind"`
	Field     string `json:"field,omitempty"`
	SegmentID string `json:"segment_id,omitempty"`
	Message   string `json:"message"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Decode reads a single JSON object from the request body, rejecting
// unknown fields so that misspelled inputs are not silently ignored.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, v any) { Write(w, http.StatusOK, v) }

// BadRequest reports a payload that could not be decoded. Typed input
// errors raised while decoding keep their kind.
func BadRequest(w http.ResponseWriter, err error) {
	var ce *calcerr.Error
	if errors.As(err, &ce) {
		writeCalcErr(w, ce)
		return
	}
	Error(w, http.StatusBadRequest, "bad_request", err.Error())
}

// Error writes an error envelope that carries no calculation detail.
func Error(w http.ResponseWriter, status int, kind, msg string) {
	Write(w, status, errorEnvelope{Error: ErrorBody{Kind: kind, Message: msg}})
}

// Fail maps a calculation error to a status code. Unclassified errors are
// logged and reported as 500.
func Fail(w http.ResponseWriter, logger *log.Logger, err error) {
	var ce *calcerr.Error
	if errors.As(err, &ce) {
		writeCalcErr(w, ce)
		return
	}
	if logger != nil {
		logger.Error("calculation failed", "err", err)
	}
	Error(w, http.StatusInternalServerError, "internal", "calculation error")
}

func writeCalcErr(w http.ResponseWriter, ce *calcerr.Error) {
	status := http.StatusBadRequest
	if ce.Kind == calcerr.KindMalformedSegment {
		status = http.StatusUnprocessableEntity
	}
	Write(w, status, errorEnvelope{Error: ErrorBody{
		Kind:      string(ce.Kind),
		Field:     ce.Field,
		SegmentID: ce.SegmentID,
		Message:   ce.Error(),
	}})
}
