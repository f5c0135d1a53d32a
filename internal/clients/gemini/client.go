package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/assistant"
)

const (
	jsonMIMEType    = "application/json"
	maxErrorBodyLen = 512
)

type config interface {
	BaseURL() string
	Model() string
	ApiKey() string
	RequestTimeout() time.Duration
	StructuredOutput() bool
}

type Client struct {
	http       *http.Client
	endpoint   string
	apiKey     string
	structured bool
}

func New(cfg config) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.RequestTimeout()},
		endpoint:   fmt.Sprintf("%s/models/%s:generateContent", cfg.BaseURL(), url.PathEscape(cfg.Model())),
		apiKey:     cfg.ApiKey(),
		structured: cfg.StructuredOutput(),
	}
}

// Complete sends one generateContent request and returns the text of the
// first candidate.
func (c *Client) Complete(ctx context.Context, prompt assistant.Prompt) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "geminiComplete")
	defer span.Finish()

	text, err := c.complete(ctx, prompt)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return text, err
}

func (c *Client) complete(ctx context.Context, prompt assistant.Prompt) (string, error) {
	payload, err := json.Marshal(c.buildRequest(prompt))
	if err != nil {
		return "", errors.Wrap(err, "marshal gemini request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "create gemini request")
	}
	req.Header.Set("Content-Type", jsonMIMEType)
	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(customerr.ErrTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(customerr.ErrTransport, "read body: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("gemini returned non OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body)))
		return "", errors.Wrapf(customerr.ErrTransport, "status %s", resp.Status)
	}

	var parsed generateResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(customerr.ErrMalformedResponse, err.Error())
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		logger.Warn("gemini response has no candidates", zap.ByteString("body", truncate(body)))
		return "", errors.Wrap(customerr.ErrMalformedResponse, "no candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	logger.Debug("gemini reply", zap.String("text", text))
	return text, nil
}

func (c *Client) buildRequest(prompt assistant.Prompt) generateRequest {
	req := generateRequest{
		SystemInstruction: &requestContent{
			Parts: []requestPart{{Text: prompt.Instruction}},
		},
		Contents: []requestContent{
			{
				Role: "user",
				Parts: []requestPart{
					{Text: "Current expenses: " + prompt.Snapshot},
					{Text: fmt.Sprintf("User command: %q", prompt.Message)},
				},
			},
		},
	}
	if c.structured {
		req.GenerationConfig = &generationConfig{
			ResponseMIMEType: jsonMIMEType,
			ResponseSchema:   commandSchema,
		}
	}
	return req
}

func truncate(body []byte) []byte {
	if len(body) > maxErrorBodyLen {
		return body[:maxErrorBodyLen]
	}
	return body
}
