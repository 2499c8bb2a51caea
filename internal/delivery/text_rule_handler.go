package delivery

import (
	"net/http"

	tr "github.com/Vovarama1992/medivoice/internal/textrules"
)

// TextRuleHandler: правка словаря исправлений распознанного текста.
type TextRuleHandler struct {
	repo tr.Repo
}

func NewTextRuleHandler(repo tr.Repo) *TextRuleHandler {
	return &TextRuleHandler{repo: repo}
}

type ruleBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

//
// ----------------------
//   LETTER RULES
// ----------------------
//

// GET /rules/letters
func (h *TextRuleHandler) ListLetterRules(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.ListLetterRules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []tr.LetterRule{}
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /rules/letters
// body: { "from": "0", "to": "o" }
func (h *TextRuleHandler) AddLetterRule(w http.ResponseWriter, r *http.Request) {
	var body ruleBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := tr.ValidateLetterRule(body.From, body.To); err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.AddLetterRule(r.Context(), body.From, body.To); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /rules/letters
// body: { "from": "0" }
func (h *TextRuleHandler) DeleteLetterRule(w http.ResponseWriter, r *http.Request) {
	var body ruleBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.DeleteLetterRule(r.Context(), body.From); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// ----------------------
//   WORD RULES
// ----------------------
//

// GET /rules/words
func (h *TextRuleHandler) ListWordRules(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.ListWordRules(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []tr.WordRule{}
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /rules/words
// body: { "from": "para cetamol", "to": "paracetamol" }
func (h *TextRuleHandler) AddWordRule(w http.ResponseWriter, r *http.Request) {
	var body ruleBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if err := tr.ValidateWordRule(body.From, body.To); err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.AddWordRule(r.Context(), body.From, body.To); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /rules/words
// body: { "from": "para cetamol" }
func (h *TextRuleHandler) DeleteWordRule(w http.ResponseWriter, r *http.Request) {
	var body ruleBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.repo.DeleteWordRule(r.Context(), body.From); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
