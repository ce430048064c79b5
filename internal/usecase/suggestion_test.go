package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

func TestSuggestUsesDefaultPrompt(t *testing.T) {
	gen := &stubGenerator{text: "Here are three ideas: A||B||C"}
	metrics := &recordingMetrics{}
	svc := NewSuggestionService(gen, metrics, config.GeminiSettings{}, nil)

	text, err := svc.Suggest(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if gen.prompt != DefaultSuggestionPrompt {
		t.Fatalf("expected default prompt, got %q", gen.prompt)
	}
	if text != "A||B||C" {
		t.Fatalf("preamble not stripped: %q", text)
	}
	if len(metrics.suggestions) != 1 || metrics.suggestions[0] != SuggestionOK {
		t.Fatalf("unexpected metrics %v", metrics.suggestions)
	}
}

func TestSuggestForwardsCustomPrompt(t *testing.T) {
	gen := &stubGenerator{text: "one||two"}
	svc := NewSuggestionService(gen, nil, config.GeminiSettings{DefaultPrompt: "configured"}, nil)

	if _, err := svc.Suggest(context.Background(), "write about cats"); err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if gen.prompt != "write about cats" {
		t.Fatalf("unexpected prompt %q", gen.prompt)
	}

	if _, err := svc.Suggest(context.Background(), ""); err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if gen.prompt != "configured" {
		t.Fatalf("expected configured default prompt, got %q", gen.prompt)
	}
}

func TestSuggestEmptyReply(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := NewSuggestionService(&stubGenerator{text: "  "}, metrics, config.GeminiSettings{}, nil)

	text, err := svc.Suggest(context.Background(), "")
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if text != NoSuggestionText {
		t.Fatalf("expected fallback text, got %q", text)
	}
	if metrics.suggestions[0] != SuggestionEmpty {
		t.Fatalf("unexpected metrics %v", metrics.suggestions)
	}
}

func TestSuggestUpstreamFailure(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := NewSuggestionService(&stubGenerator{err: errors.New("status 503")}, metrics, config.GeminiSettings{}, nil)

	if _, err := svc.Suggest(context.Background(), ""); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if metrics.suggestions[0] != SuggestionUpstream {
		t.Fatalf("unexpected metrics %v", metrics.suggestions)
	}

	unconfigured := NewSuggestionService(nil, nil, config.GeminiSettings{}, nil)
	if _, err := unconfigured.Suggest(context.Background(), ""); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream without generator, got %v", err)
	}
}

func TestStripPreamble(t *testing.T) {
	cases := map[string]string{
		"Here are three ideas: A||B":     "A||B",
		"HERE you go:\nA||B":             "A||B",
		"Here: first: second":            "first: second",
		"You're great||Keep going":       "You're great||Keep going",
		"  padded text  ":                "padded text",
		"Nothing to strip: colon inside": "Nothing to strip: colon inside",
	}

	for in, want := range cases {
		if got := StripPreamble(in); got != want {
			t.Fatalf("StripPreamble(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSuggestions(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "separator with preamble", in: "Here are three ideas: A||B||C", want: []string{"A", "B", "C"}},
		{name: "numbered list", in: "1. A\n2. B\n3. C", want: []string{"A", "B", "C"}},
		{name: "empty", in: "", want: []string{}},
		{name: "blank fragments dropped", in: "A|| ||B||", want: []string{"A", "B"}},
		{name: "single suggestion", in: "Just one", want: []string{"Just one"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseSuggestions(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseSuggestions(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
