package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Handlers struct {
	Assistant *AssistantHandler
	Catalog   *CatalogHandler
	Reminders *ReminderHandler
	TextRules *TextRuleHandler
}

// NewRouter: общий роутер: CORS, request id, recover, лимит на вендорные ручки.
func NewRouter(h Handlers, ratePerMinute int) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"X-Transcript", "X-Reply", "X-Intent"},
		}),
	)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	RegisterRoutes(r, h, ratePerMinute)
	return r
}

func RegisterRoutes(r chi.Router, h Handlers, ratePerMinute int) {
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- ассистент (ходит к платным вендорам) ---
		pr.Group(func(vr chi.Router) {
			vr.Use(httprate.LimitByIP(ratePerMinute, time.Minute))
			vr.Post("/ask", h.Assistant.Ask)
			vr.Post("/transcribe", h.Assistant.Transcribe)
			vr.Post("/speak", h.Assistant.Speak)
		})
		pr.Post("/query", h.Assistant.Query)

		// --- справочник ---
		pr.Get("/medicines", h.Catalog.List)
		pr.Get("/medicines/{name}", h.Catalog.Get)
		pr.Get("/interactions", h.Catalog.Interaction)

		// --- напоминания ---
		pr.Get("/reminders", h.Reminders.List)
		pr.Post("/reminders", h.Reminders.Create)
		pr.Delete("/reminders/{id}", h.Reminders.Delete)

		// --- правила исправления транскрипта ---
		pr.Get("/rules/letters", h.TextRules.ListLetterRules)
		pr.Post("/rules/letters", h.TextRules.AddLetterRule)
		pr.Delete("/rules/letters", h.TextRules.DeleteLetterRule)
		pr.Get("/rules/words", h.TextRules.ListWordRules)
		pr.Post("/rules/words", h.TextRules.AddWordRule)
		pr.Delete("/rules/words", h.TextRules.DeleteWordRule)
	})
}
