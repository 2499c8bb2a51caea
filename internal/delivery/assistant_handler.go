package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/speech"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (speech.TranscriptionResult, error)
}

type Notifier interface {
	Notify(ctx context.Context, err error, details string) error
}

type AssistantHandler struct {
	svc      assistant.Service
	stt      Transcriber
	notifier Notifier // может быть nil
	log      *logger.ZapLogger
}

func NewAssistantHandler(svc assistant.Service, stt Transcriber, notifier Notifier, log *logger.ZapLogger) *AssistantHandler {
	return &AssistantHandler{svc: svc, stt: stt, notifier: notifier, log: log}
}

// POST /query
// body: { "text": "dosage of aspirin" }
func (h *AssistantHandler) Query(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	ans, err := h.svc.Answer(r.Context(), body.Text)
	if errors.Is(err, assistant.ErrEmptyQuery) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
		return
	}
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "query failed", Service: "delivery", Error: err})
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

// POST /ask
// body: аудио (raw или multipart "file") → audio/mpeg
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	audio, contentType, err := readAudio(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.Ask(r.Context(), audio, contentType)
	switch {
	case err == nil:
		w.Header().Set("X-Transcript", headerSafe(res.Transcript))
		w.Header().Set("X-Reply", headerSafe(res.Answer.Reply))
		w.Header().Set("X-Intent", string(res.Answer.Intent))
		writeAudio(w, res.Audio)

	case errors.Is(err, speech.ErrTranscription), errors.Is(err, speech.ErrInvalidInput):
		h.reportVendorError(r.Context(), err, "transcription")
		writeJSON(w, statusFor(err), map[string]string{
			"error": err.Error(),
			"reply": res.Answer.Reply,
		})

	case errors.Is(err, speech.ErrSynthesis):
		h.reportVendorError(r.Context(), err, "synthesis")
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":      err.Error(),
			"transcript": res.Transcript,
			"reply":      res.Answer.Reply,
			"message":    assistant.SynthesisApology,
		})

	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "ask failed", Service: "delivery", Error: err})
		writeError(w, err)
	}
}

// POST /transcribe
func (h *AssistantHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	audio, contentType, err := readAudio(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.stt.Transcribe(r.Context(), audio, contentType)
	if err != nil {
		if errors.Is(err, speech.ErrTranscription) {
			h.reportVendorError(r.Context(), err, "transcription")
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /speak
// body: { "text": "...", "voiceId": "Natalie" }
func (h *AssistantHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text    string `json:"text"`
		VoiceID string `json:"voiceId"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	audio, err := h.svc.Speak(r.Context(), body.Text, body.VoiceID)
	if err != nil {
		if errors.Is(err, speech.ErrSynthesis) {
			h.reportVendorError(r.Context(), err, "synthesis")
		}
		writeError(w, err)
		return
	}
	writeAudio(w, audio)
}

func (h *AssistantHandler) reportVendorError(ctx context.Context, err error, stage string) {
	h.log.Log(logger.LogEntry{Level: "error", Message: stage + " vendor error", Service: "delivery", Error: err})
	if h.notifier == nil || errors.Is(err, speech.ErrInvalidInput) {
		return
	}
	// уведомление не должно тормозить ответ клиенту
	go func() {
		_ = h.notifier.Notify(context.WithoutCancel(ctx), err, fmt.Sprintf("stage: %s", stage))
	}()
}
