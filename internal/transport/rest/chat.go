package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/termtag/internal/adapter/llm"
	"github.com/heartmarshall/termtag/internal/chatfilter"
	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/domain"
)

type chatFilter interface {
	Inlet(ctx context.Context, body chatfilter.Body, opts chatfilter.Options) (*chatfilter.InletResult, error)
	Outlet(body chatfilter.Body, tagContext string, opts chatfilter.Options) chatfilter.Body
}

type llmTranslator interface {
	Translate(ctx context.Context, messages []llm.Message) (string, error)
}

// ChatHandler exposes the chat filter to a chat front end.
type ChatHandler struct {
	filter   chatFilter
	llm      llmTranslator
	defaults chatfilter.Options
	log      *slog.Logger
}

// NewChatHandler creates a ChatHandler. translator may be nil, in which
// case /v1/chat/translate answers 503.
func NewChatHandler(filter chatFilter, translator llmTranslator, cfg config.TagConfig, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		filter:   filter,
		llm:      translator,
		defaults: DefaultOptions(cfg),
		log:      logger.With("handler", "chat"),
	}
}

// DefaultOptions builds the filter switches used when a request omits them.
func DefaultOptions(cfg config.TagConfig) chatfilter.Options {
	return chatfilter.Options{
		ProfileID:        cfg.DefaultProfileID,
		Format:           domain.Format(cfg.DefaultFormat),
		ExactMatchesOnly: cfg.ExactMatchesOnly,
		ShowCitation:     cfg.ShowCitation,
		ShowTagContext:   cfg.ShowTagContext,
	}
}

type inletRequest struct {
	Body    chatfilter.Body    `json:"body"`
	Options chatfilter.Options `json:"options"`
}

type outletRequest struct {
	Body    chatfilter.Body    `json:"body"`
	Context string             `json:"context"`
	Options chatfilter.Options `json:"options"`
}

type translateResponse struct {
	Answer  string             `json:"answer"`
	Body    chatfilter.Body    `json:"body"`
	Events  []chatfilter.Event `json:"events"`
	Context string             `json:"context"`
}

// Inlet handles POST /v1/chat/inlet.
func (h *ChatHandler) Inlet(w http.ResponseWriter, r *http.Request) {
	req := inletRequest{Options: h.defaults}
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.filter.Inlet(r.Context(), req.Body, req.Options)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Outlet handles POST /v1/chat/outlet.
func (h *ChatHandler) Outlet(w http.ResponseWriter, r *http.Request) {
	req := outletRequest{Options: h.defaults}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.filter.Outlet(req.Body, req.Context, req.Options))
}

// Translate handles POST /v1/chat/translate: inlet, model call and outlet
// in one round trip.
func (h *ChatHandler) Translate(w http.ResponseWriter, r *http.Request) {
	if h.llm == nil {
		writeError(w, http.StatusServiceUnavailable, "llm translation is not configured")
		return
	}

	req := inletRequest{Options: h.defaults}
	if !decodeJSON(w, r, &req) {
		return
	}

	in, err := h.filter.Inlet(r.Context(), req.Body, req.Options)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	messages := make([]llm.Message, 0, len(in.Body.Messages))
	for _, m := range in.Body.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	answer, err := h.llm.Translate(r.Context(), messages)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	body := in.Body.Clone()
	body.Messages = append(body.Messages, chatfilter.Message{Role: "assistant", Content: answer})

	writeJSON(w, http.StatusOK, translateResponse{
		Answer:  answer,
		Body:    h.filter.Outlet(body, in.Context, req.Options),
		Events:  in.Events,
		Context: in.Context,
	})
}
