package delivery

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/go-chi/chi/v5"
)

type ReminderHandler struct {
	svc reminder.Service
	now func() time.Time
}

func NewReminderHandler(svc reminder.Service) *ReminderHandler {
	return &ReminderHandler{svc: svc, now: time.Now}
}

// GET /reminders
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []reminder.Reminder{}
	}
	writeJSON(w, http.StatusOK, list)
}

// POST /reminders
// body: { "message": "take aspirin", "at": "2026-03-10T20:30:00Z" }
//
//	или { "message": "...", "in": "20m" }, опционально "repeat": "0 9 * * *"
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
		At      string `json:"at"`
		In      string `json:"in"`
		Repeat  string `json:"repeat"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	at, err := h.resolveTime(body.At, body.In)
	if err != nil {
		writeError(w, err)
		return
	}

	rem, err := h.svc.Create(r.Context(), body.Message, at, body.Repeat)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

// DELETE /reminders/{id}
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReminderHandler) resolveTime(at, in string) (time.Time, error) {
	at, in = strings.TrimSpace(at), strings.TrimSpace(in)
	switch {
	case at != "" && in != "":
		return time.Time{}, fmt.Errorf("%w: use either at or in", reminder.ErrInvalidInput)
	case at != "":
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: at must be RFC3339: %v", reminder.ErrInvalidInput, err)
		}
		return t, nil
	case in != "":
		d, err := time.ParseDuration(in)
		if err != nil || d <= 0 {
			return time.Time{}, fmt.Errorf("%w: in must be a positive duration like 20m", reminder.ErrInvalidInput)
		}
		return h.now().Add(d), nil
	}
	// без времени допустимо только для repeat
	return time.Time{}, nil
}
