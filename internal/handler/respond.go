package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"meeting-scheduler-api/internal/store"
)

var (
	errBadJSON  = errors.New("invalid JSON body")
	errTooLarge = errors.New("request body too large")
)

const maxBodyBytes = 1 << 20

// MissingFieldError reports create-request fields that were absent or
// falsy.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "All fields are required"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Anything unrecognised is
// a 500 and gets logged.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var mf *MissingFieldError
	switch {
	case errors.As(err, &mf):
		writeJSON(w, http.StatusBadRequest, errorBody(mf.Error()))
	case errors.Is(err, store.ErrSlotConflict):
		writeJSON(w, http.StatusBadRequest, errorBody("This time slot is already taken. Please choose another one."))
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("Meeting not found"))
	case errors.Is(err, errBadJSON):
		writeJSON(w, http.StatusBadRequest, errorBody(errBadJSON.Error()))
	case errors.Is(err, errTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(errTooLarge.Error()))
	default:
		h.log.Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// decodeJSON reads exactly one JSON value of at most maxBodyBytes. An empty
// body counts as {}. Numbers stay json.Number so they echo back unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return bodyError(err)
		}
		return errBadJSON
	}
	return nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errTooLarge
	}
	return errBadJSON
}
