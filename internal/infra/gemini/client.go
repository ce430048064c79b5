// Package gemini calls the Gemini generateContent endpoint that backs message suggestions.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

const (
	defaultTimeout = 8 * time.Second
	maxErrorBody   = 2048
	maxReplyBody   = 1 << 20
)

// ErrUnexpectedStatus is returned for any non-2xx reply.
var ErrUnexpectedStatus = errors.New("gemini: unexpected status")

// Client implements port.TextGenerator against the Gemini REST API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *zap.Logger
	tracer     trace.Tracer
}

func NewClient(cfg config.GeminiSettings, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("gemini: model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(cfg.BaseURL, "/"), model)

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		logger:     logger,
		tracer:     otel.Tracer("github.com/Amlan029/FeedFormly/internal/infra/gemini"),
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt as a single user turn and returns the first candidate's text, trimmed.
// An empty string means the model produced no candidate text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.generateContent",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("gemini.prompt_length", len(prompt))),
	)
	defer span.End()

	text, err := c.generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", err
	}
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("gemini returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBody)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}

var _ port.TextGenerator = (*Client)(nil)
