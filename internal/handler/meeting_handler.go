package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"meeting-scheduler-api/internal/model"
	"meeting-scheduler-api/internal/store"
)

type meetingRequest struct {
	Title        any `json:"title"`
	Date         any `json:"date"`
	Time         any `json:"time"`
	Duration     any `json:"duration"`
	Participants any `json:"participants"`
}

func (req *meetingRequest) toModel() model.Meeting {
	return model.Meeting{
		Title:        req.Title,
		Date:         req.Date,
		Time:         req.Time,
		Duration:     req.Duration,
		Participants: req.Participants,
	}
}

func (req *meetingRequest) validate() error {
	var missing []string
	if falsy(req.Title) {
		missing = append(missing, "title")
	}
	if falsy(req.Date) {
		missing = append(missing, "date")
	}
	if falsy(req.Time) {
		missing = append(missing, "time")
	}
	if falsy(req.Duration) {
		missing = append(missing, "duration")
	}
	if falsy(req.Participants) {
		missing = append(missing, "participants")
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// falsy reports whether a decoded JSON value counts as "not provided".
// Empty arrays and objects are provided.
func falsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case string:
		return v == ""
	}
	return false
}

// meetingID parses the :meetingId param. A value that is not an integer
// matches no meeting.
func meetingID(ps httprouter.Params) (int, error) {
	id, err := strconv.Atoi(ps.ByName("meetingId"))
	if err != nil {
		return 0, store.ErrNotFound
	}
	return id, nil
}

func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req meetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, err)
		return
	}

	m, err := h.store.CreateMeeting(req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("meeting scheduled",
		zap.Int("id", m.ID),
		zap.Any("title", m.Title),
		zap.Any("date", m.Date),
		zap.Any("time", m.Time),
	)
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.store.ListMeetings())
}

// UpdateMeeting replaces every field but the id. Fields missing from the
// body are cleared.
func (h *Handler) UpdateMeeting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := meetingID(ps)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req meetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	m, err := h.store.UpdateMeeting(id, req.toModel())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("meeting updated",
		zap.Int("id", m.ID),
		zap.Any("title", m.Title),
		zap.Any("date", m.Date),
		zap.Any("time", m.Time),
	)
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) CancelMeeting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := meetingID(ps)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.store.DeleteMeeting(id); err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("meeting canceled", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
