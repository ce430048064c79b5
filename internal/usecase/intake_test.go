package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	uuid "github.com/google/uuid"

	"github.com/Amlan029/FeedFormly/internal/repository"
)

func TestSubmitAppendsMessage(t *testing.T) {
	repo := &mockAccountRepository{}
	events := &recordingPublisher{}
	metrics := &recordingMetrics{}
	svc := NewIntakeService(repo, events, metrics, nil)
	svc.now = fixedClock(verificationNow)

	msg, err := svc.Submit(context.Background(), "alice", "you did great today")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if repo.appendUser != "alice" {
		t.Fatalf("unexpected target %q", repo.appendUser)
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Fatalf("expected uuid message id, got %q", msg.ID)
	}
	if !msg.CreatedAt.Equal(verificationNow) || repo.appended.ID != msg.ID {
		t.Fatalf("unexpected stored message %+v", repo.appended)
	}
	if metrics.received != 1 {
		t.Fatalf("expected received metric")
	}
	if len(events.received) != 1 || events.received[0].Username != "alice" || events.received[0].Length != len("you did great today") {
		t.Fatalf("unexpected events %+v", events.received)
	}
}

func TestSubmitFailures(t *testing.T) {
	cases := []struct {
		name    string
		content string
		repoErr error
		want    error
		reason  string
	}{
		{name: "unknown recipient", content: "hi", repoErr: repository.ErrNotFound, want: ErrAccountNotFound, reason: RejectUnknownRecipient},
		{name: "gate closed", content: "hi", repoErr: repository.ErrNotAccepting, want: ErrNotAcceptingMessages, reason: RejectNotAccepting},
		{name: "blank content", content: "   ", want: ErrInvalidInput},
		{name: "too long", content: strings.Repeat("x", MaxMessageLength+1), want: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockAccountRepository{appendErr: tc.repoErr}
			events := &recordingPublisher{}
			metrics := &recordingMetrics{}
			svc := NewIntakeService(repo, events, metrics, nil)

			_, err := svc.Submit(context.Background(), "alice", tc.content)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(events.received) != 0 || metrics.received != 0 {
				t.Fatalf("rejected message must not be reported as received")
			}
			if tc.reason != "" && (len(metrics.rejected) != 1 || metrics.rejected[0] != tc.reason) {
				t.Fatalf("expected rejection %s, got %v", tc.reason, metrics.rejected)
			}
			if tc.reason == "" && repo.appendCalls != 0 {
				t.Fatalf("invalid content must not reach the store")
			}
		})
	}
}

func TestSubmitMatchesUsernameExactly(t *testing.T) {
	repo := &mockAccountRepository{appendErr: repository.ErrNotFound}
	svc := NewIntakeService(repo, nil, nil, nil)

	_, err := svc.Submit(context.Background(), " alice", "hi")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if repo.appendUser != " alice" {
		t.Fatalf("expected the username to reach the store untouched, got %q", repo.appendUser)
	}
}

func TestSubmitWrapsStoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := NewIntakeService(&mockAccountRepository{appendErr: storeErr}, nil, nil, nil)

	_, err := svc.Submit(context.Background(), "alice", "hi")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
