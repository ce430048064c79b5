package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

const (
	// DefaultSuggestionPrompt is sent when the caller supplies no prompt.
	DefaultSuggestionPrompt = "Suggest 3 friendly anonymous messages separated by ||"
	// NoSuggestionText is returned when the model produced no candidate text.
	NoSuggestionText = "No response generated."

	suggestionSeparator      = "||"
	defaultSuggestionTimeout = 8 * time.Second
)

// Suggestion outcomes reported to metrics.
const (
	SuggestionOK       = "ok"
	SuggestionEmpty    = "empty"
	SuggestionUpstream = "upstream_error"
)

var (
	// preamblePattern matches a leading "Here are ...:" introduction up to the first colon.
	preamblePattern = regexp.MustCompile(`(?i)^Here[\s\S]*?:`)
	numberedMarker  = regexp.MustCompile(`\d+\.\s+`)
)

// SuggestionService proxies prompts to a text generator and cleans up the reply.
type SuggestionService struct {
	generator     port.TextGenerator
	metrics       port.MetricsRecorder
	logger        *zap.Logger
	defaultPrompt string
	timeout       time.Duration
}

// NewSuggestionService constructs a suggestion service. A nil generator makes every request
// fail with ErrUpstream.
func NewSuggestionService(generator port.TextGenerator, metrics port.MetricsRecorder, cfg config.GeminiSettings, log *zap.Logger) *SuggestionService {
	prompt := strings.TrimSpace(cfg.DefaultPrompt)
	if prompt == "" {
		prompt = DefaultSuggestionPrompt
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSuggestionTimeout
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SuggestionService{
		generator:     generator,
		metrics:       metrics,
		logger:        log,
		defaultPrompt: prompt,
		timeout:       timeout,
	}
}

// Suggest returns generated suggestion text with any introductory preamble removed.
func (s *SuggestionService) Suggest(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = s.defaultPrompt
	}
	if s.generator == nil {
		s.metrics.SuggestionRequested(SuggestionUpstream)
		return "", fmt.Errorf("%w: text generator not configured", ErrUpstream)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.metrics.SuggestionRequested(SuggestionUpstream)
		s.logger.Warn("suggestion generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.SuggestionRequested(SuggestionEmpty)
		return NoSuggestionText, nil
	}

	s.metrics.SuggestionRequested(SuggestionOK)
	return StripPreamble(text), nil
}

// StripPreamble removes a leading "Here ...:" introduction. The match is case-insensitive and
// stops at the first colon, so suggestions that themselves start with "Here" and contain a
// colon lose their first clause.
func StripPreamble(text string) string {
	return strings.TrimSpace(preamblePattern.ReplaceAllString(strings.TrimSpace(text), ""))
}

// ParseSuggestions splits suggestion text into individual messages. It splits on "||" when
// present and on numbered-list markers otherwise; blank fragments are dropped.
func ParseSuggestions(text string) []string {
	cleaned := StripPreamble(text)

	var parts []string
	if strings.Contains(cleaned, suggestionSeparator) {
		parts = strings.Split(cleaned, suggestionSeparator)
	} else {
		parts = numberedMarker.Split(cleaned, -1)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
