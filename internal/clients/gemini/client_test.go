package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/model/assistant"
)

type testConfig struct {
	url        string
	structured bool
}

func (c testConfig) BaseURL() string               { return c.url }
func (c testConfig) Model() string                 { return "gemini-test" }
func (c testConfig) ApiKey() string                { return "secret" }
func (c testConfig) RequestTimeout() time.Duration { return time.Second }
func (c testConfig) StructuredOutput() bool        { return c.structured }

var testPrompt = assistant.Prompt{
	Instruction: "be helpful",
	Snapshot:    "[]",
	Message:     "add coffee 5",
}

func newServer(t *testing.T, status int, body string, check func(r *http.Request, req generateRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if check != nil {
			check(r, req)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func Test_Complete_ShouldReturnFirstCandidateText(t *testing.T) {
	var gotPath, gotKey string
	var got generateRequest
	srv := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"create_expense('Coffee', 5)"}],"role":"model"}}]}`,
		func(r *http.Request, req generateRequest) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			got = req
		})

	text, err := New(testConfig{url: srv.URL}).Complete(context.Background(), testPrompt)

	require.NoError(t, err)
	assert.Equal(t, "create_expense('Coffee', 5)", text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be helpful", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "Current expenses: []", got.Contents[0].Parts[0].Text)
	assert.Equal(t, `User command: "add coffee 5"`, got.Contents[0].Parts[1].Text)
	assert.Nil(t, got.GenerationConfig)
}

func Test_Complete_WithStructuredOutput_ShouldRequestJSON(t *testing.T) {
	var got generateRequest
	srv := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"{\"action\":\"reply\",\"message\":\"hi\"}"}]}}]}`,
		func(_ *http.Request, req generateRequest) { got = req })

	_, err := New(testConfig{url: srv.URL, structured: true}).Complete(context.Background(), testPrompt)

	require.NoError(t, err)
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, jsonMIMEType, got.GenerationConfig.ResponseMIMEType)
	assert.Equal(t, "OBJECT", got.GenerationConfig.ResponseSchema.Type)
}

func Test_Complete_OnErrorStatus_ShouldReturnTransportError(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, `{"error":"boom"}`, nil)

	_, err := New(testConfig{url: srv.URL}).Complete(context.Background(), testPrompt)

	assert.ErrorIs(t, err, customerr.ErrTransport)
}

func Test_Complete_OnUnreachableServer_ShouldReturnTransportError(t *testing.T) {
	srv := newServer(t, http.StatusOK, "", nil)
	srv.Close()

	_, err := New(testConfig{url: srv.URL}).Complete(context.Background(), testPrompt)

	assert.ErrorIs(t, err, customerr.ErrTransport)
}

func Test_Complete_OnBadBody_ShouldReturnMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      "<html>",
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, body, nil)

			_, err := New(testConfig{url: srv.URL}).Complete(context.Background(), testPrompt)

			assert.ErrorIs(t, err, customerr.ErrMalformedResponse)
		})
	}
}
