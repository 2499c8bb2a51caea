package delivery

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Vovarama1992/medivoice/internal/assistant"
	"github.com/Vovarama1992/medivoice/internal/catalog"
	"github.com/Vovarama1992/medivoice/internal/reminder"
	"github.com/Vovarama1992/medivoice/internal/speech"
	"github.com/Vovarama1992/medivoice/internal/textrules"
	json "github.com/goccy/go-json"
)

// лимит на загружаемое аудио (как у Whisper)
const maxAudioBytes = 25 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeAudio(w http.ResponseWriter, audio []byte) {
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprint(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, speech.ErrInvalidInput),
		errors.Is(err, reminder.ErrInvalidInput),
		errors.Is(err, textrules.ErrInvalidRule),
		errors.Is(err, assistant.ErrEmptyQuery),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrNoInteraction),
		errors.Is(err, reminder.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, speech.ErrTranscription),
		errors.Is(err, speech.ErrSynthesis):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return nil
}

// readAudio: multipart с полем "file" или сырое тело запроса.
func readAudio(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
			return nil, "", fmt.Errorf("%w: invalid multipart: %v", errBadRequest, err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("%w: missing file: %v", errBadRequest, err)
		}
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("%w: read file: %v", errBadRequest, err)
		}
		return audio, header.Header.Get("Content-Type"), checkAudio(audio)
	}

	audio, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	return audio, mediaType, checkAudio(audio)
}

func checkAudio(audio []byte) error {
	if len(audio) == 0 {
		return fmt.Errorf("%w: empty audio", speech.ErrInvalidInput)
	}
	return nil
}

// headerSafe: значение HTTP-заголовка в одну строку.
func headerSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
