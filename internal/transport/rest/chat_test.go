package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/termtag/internal/adapter/llm"
	"github.com/heartmarshall/termtag/internal/chatfilter"
	"github.com/heartmarshall/termtag/internal/domain"
)

type chatFilterMock struct {
	InletFunc  func(ctx context.Context, body chatfilter.Body, opts chatfilter.Options) (*chatfilter.InletResult, error)
	OutletFunc func(body chatfilter.Body, tagContext string, opts chatfilter.Options) chatfilter.Body
}

func (m *chatFilterMock) Inlet(ctx context.Context, body chatfilter.Body, opts chatfilter.Options) (*chatfilter.InletResult, error) {
	return m.InletFunc(ctx, body, opts)
}

func (m *chatFilterMock) Outlet(body chatfilter.Body, tagContext string, opts chatfilter.Options) chatfilter.Body {
	return m.OutletFunc(body, tagContext, opts)
}

type llmMock struct {
	TranslateFunc func(ctx context.Context, messages []llm.Message) (string, error)
}

func (m *llmMock) Translate(ctx context.Context, messages []llm.Message) (string, error) {
	return m.TranslateFunc(ctx, messages)
}

func augmentingInlet(_ context.Context, body chatfilter.Body, _ chatfilter.Options) (*chatfilter.InletResult, error) {
	out := body.Clone()
	last := &out.Messages[len(out.Messages)-1]
	last.Content = "<tag>\nctx\n</tag>\n\n" + last.Content
	return &chatfilter.InletResult{
		Body:    out,
		Events:  []chatfilter.Event{{Type: chatfilter.EventStatus, Data: chatfilter.StatusData{Description: "Found 1 concept.", Done: true}}},
		Context: "ctx",
	}, nil
}

func echoOutlet(body chatfilter.Body, tagContext string, opts chatfilter.Options) chatfilter.Body {
	out := body.Clone()
	if opts.ShowTagContext {
		out.Messages[len(out.Messages)-1].Content += " [" + tagContext + "]"
	}
	return out
}

func TestChatHandler_Inlet_MergesOptionsOverDefaults(t *testing.T) {
	t.Parallel()

	var got chatfilter.Options
	filter := &chatFilterMock{InletFunc: func(ctx context.Context, body chatfilter.Body, opts chatfilter.Options) (*chatfilter.InletResult, error) {
		got = opts
		return augmentingInlet(ctx, body, opts)
	}}
	h := NewChatHandler(filter, nil, testTagConfig(), discardLogger())

	rec := postJSON(h.Inlet, "/v1/chat/inlet",
		`{"body":{"messages":[{"role":"user","content":"Translate from English to German: nut"}]},"options":{"format":"yaml"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, chatfilter.Options{ProfileID: 17, Format: domain.FormatYAML, ShowCitation: true}, got)

	var resp struct {
		Body    chatfilter.Body `json:"body"`
		Context string          `json:"context"`
		Events  []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ctx", resp.Context)
	assert.Equal(t, "<tag>\nctx\n</tag>\n\nTranslate from English to German: nut", resp.Body.Messages[0].Content)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, chatfilter.EventStatus, resp.Events[0].Type)
}

func TestChatHandler_Inlet_Error(t *testing.T) {
	t.Parallel()

	filter := &chatFilterMock{InletFunc: func(context.Context, chatfilter.Body, chatfilter.Options) (*chatfilter.InletResult, error) {
		return nil, domain.NewValidationError("messages", "at least one required")
	}}
	h := NewChatHandler(filter, nil, testTagConfig(), discardLogger())

	rec := postJSON(h.Inlet, "/v1/chat/inlet", `{"body":{"messages":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_Outlet(t *testing.T) {
	t.Parallel()

	h := NewChatHandler(&chatFilterMock{OutletFunc: echoOutlet}, nil, testTagConfig(), discardLogger())

	rec := postJSON(h.Outlet, "/v1/chat/outlet",
		`{"body":{"messages":[{"role":"assistant","content":"Mutter"}]},"context":"ctx","options":{"show_tag_context":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body chatfilter.Body
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Mutter [ctx]", body.Messages[0].Content)
}

func TestChatHandler_Translate(t *testing.T) {
	t.Parallel()

	var sent []llm.Message
	model := &llmMock{TranslateFunc: func(_ context.Context, messages []llm.Message) (string, error) {
		sent = messages
		return "Mutter", nil
	}}
	filter := &chatFilterMock{InletFunc: augmentingInlet, OutletFunc: echoOutlet}
	h := NewChatHandler(filter, model, testTagConfig(), discardLogger())

	rec := postJSON(h.Translate, "/v1/chat/translate",
		`{"body":{"messages":[{"role":"system","content":"Be brief."},{"role":"user","content":"Translate from English to German: nut"}]},"options":{"show_tag_context":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, []llm.Message{
		{Role: "system", Content: "Be brief."},
		{Role: "user", Content: "<tag>\nctx\n</tag>\n\nTranslate from English to German: nut"},
	}, sent)

	var resp struct {
		Answer string          `json:"answer"`
		Body   chatfilter.Body `json:"body"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Mutter", resp.Answer)
	require.Len(t, resp.Body.Messages, 3)
	assert.Equal(t, chatfilter.Message{Role: "assistant", Content: "Mutter [ctx]"}, resp.Body.Messages[2])
}

func TestChatHandler_Translate_LLMFailure(t *testing.T) {
	t.Parallel()

	model := &llmMock{TranslateFunc: func(context.Context, []llm.Message) (string, error) {
		return "", &domain.RemoteError{StatusCode: 529, Body: "overloaded"}
	}}
	filter := &chatFilterMock{InletFunc: augmentingInlet, OutletFunc: echoOutlet}
	h := NewChatHandler(filter, model, testTagConfig(), discardLogger())

	rec := postJSON(h.Translate, "/v1/chat/translate",
		`{"body":{"messages":[{"role":"user","content":"Translate from English to German: nut"}]}}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChatHandler_Translate_NotConfigured(t *testing.T) {
	t.Parallel()

	h := NewChatHandler(&chatFilterMock{}, nil, testTagConfig(), discardLogger())

	rec := postJSON(h.Translate, "/v1/chat/translate", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
