package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/careerscope/careerscope/internal/answer"
)

// maxQuestionBody bounds the /ask request body.
const maxQuestionBody = 64 * 1024

// askRequest is the JSON body of POST /api/v1/ask.
type askRequest struct {
	Question string `json:"question"`
	// Mode optionally overrides the server default:
	// "prefer-model" or "heuristic".
	Mode string `json:"mode,omitempty"`
}

// askResponse is the JSON reply of POST /api/v1/ask.
type askResponse struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	UsedModel bool   `json:"used_model"`
}

// askHandler serves natural-language questions.
type askHandler struct {
	composer    *answer.Composer
	defaultMode answer.Mode
	logger      *slog.Logger
}

func (h *askHandler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	body := http.MaxBytesReader(w, r.Body, maxQuestionBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON with a question field")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "empty_question", "question must not be empty")
		return
	}

	mode := h.defaultMode
	if req.Mode != "" {
		m, err := answer.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_mode", err.Error())
			return
		}
		mode = m
	}

	// Answer never fails; recoverable conditions arrive as sentences.
	res := h.composer.Answer(r.Context(), question, mode)

	h.logger.Debug("question answered",
		"used_model", res.UsedModel,
		"request_id", requestIDFromContext(r.Context()),
	)
	writeJSON(w, http.StatusOK, askResponse{
		Question:  question,
		Answer:    res.Text,
		UsedModel: res.UsedModel,
	})
}
