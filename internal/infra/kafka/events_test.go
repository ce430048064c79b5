package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
)

type fakeAsyncProducer struct {
	input  chan *sarama.ProducerMessage
	errors chan *sarama.ProducerError
}

func newFakeAsyncProducer() *fakeAsyncProducer {
	return &fakeAsyncProducer{
		input:  make(chan *sarama.ProducerMessage, 1),
		errors: make(chan *sarama.ProducerError, 1),
	}
}

func (f *fakeAsyncProducer) AsyncClose() {}

func (f *fakeAsyncProducer) Close() error { return nil }

func (f *fakeAsyncProducer) Input() chan<- *sarama.ProducerMessage { return f.input }

func (f *fakeAsyncProducer) Successes() <-chan *sarama.ProducerMessage { return nil }

func (f *fakeAsyncProducer) Errors() <-chan *sarama.ProducerError { return f.errors }

func (f *fakeAsyncProducer) IsTransactional() bool { return false }

func (f *fakeAsyncProducer) BeginTxn() error { return nil }

func (f *fakeAsyncProducer) CommitTxn() error { return nil }

func (f *fakeAsyncProducer) AbortTxn() error { return nil }

func (f *fakeAsyncProducer) AddOffsetsToTxn(offsets map[string][]*sarama.PartitionOffsetMetadata, groupID string) error {
	return nil
}

func (f *fakeAsyncProducer) AddMessageToTxn(msg *sarama.ConsumerMessage, groupID string, metadata *string) error {
	return nil
}

func (f *fakeAsyncProducer) TxnStatus() sarama.ProducerTxnStatusFlag {
	return sarama.ProducerTxnStatusFlag(0)
}

func newTestPublisher(t *testing.T) (*EventPublisher, *fakeAsyncProducer) {
	t.Helper()

	asyncProducer := newFakeAsyncProducer()
	producer := newProducer(asyncProducer, config.KafkaSettings{TopicPrefix: "feedformly"}, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = producer.Close() })

	publisher := NewEventPublisher(producer, config.AppSettings{
		Name: "feedformly",
		Env:  "test",
	}, zaptest.NewLogger(t))

	return publisher, asyncProducer
}

func receiveEnvelope(t *testing.T, asyncProducer *fakeAsyncProducer) (*sarama.ProducerMessage, map[string]any) {
	t.Helper()

	select {
	case msg := <-asyncProducer.input:
		bytes, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("Value.Encode returned error: %v", err)
		}

		var envelope map[string]any
		if err := json.Unmarshal(bytes, &envelope); err != nil {
			t.Fatalf("failed to unmarshal envelope: %v", err)
		}
		return msg, envelope
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message on async producer input channel")
	}
	return nil, nil
}

func TestPublishAccountRegistered(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t)

	registeredAt := time.Date(2025, 10, 31, 12, 0, 0, 0, time.UTC)
	event := domain.AccountRegisteredEvent{
		EventID:      "event-123",
		AccountID:    "account-456",
		Username:     "alice",
		Reregistered: true,
		RegisteredAt: registeredAt,
		CodeExpiry:   registeredAt.Add(15 * time.Minute),
	}

	if err := publisher.PublishAccountRegistered(context.Background(), event); err != nil {
		t.Fatalf("PublishAccountRegistered returned error: %v", err)
	}

	msg, envelope := receiveEnvelope(t, asyncProducer)
	if msg.Topic != "feedformly.account.registered" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}

	key, err := msg.Key.Encode()
	if err != nil {
		t.Fatalf("Key.Encode returned error: %v", err)
	}
	if string(key) != event.AccountID {
		t.Fatalf("expected messages keyed by account, got %s", key)
	}

	if got := envelope["event_id"]; got != event.EventID {
		t.Fatalf("unexpected event_id: %v", got)
	}
	if got := envelope["account_id"]; got != event.AccountID {
		t.Fatalf("unexpected account_id: %v", got)
	}
	if got := envelope["timestamp"]; got != registeredAt.Format(time.RFC3339Nano) {
		t.Fatalf("unexpected timestamp: %v", got)
	}

	payload, ok := envelope["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload not a map: %T", envelope["payload"])
	}
	if payload["username"] != "alice" {
		t.Fatalf("unexpected username: %v", payload["username"])
	}
	if payload["reregistered"] != true {
		t.Fatalf("expected reregistered flag, got %v", payload["reregistered"])
	}

	metadata, ok := envelope["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("envelope metadata not a map: %T", envelope["metadata"])
	}
	if metadata["service"] != "feedformly" || metadata["environment"] != "test" {
		t.Fatalf("unexpected metadata: %v", metadata)
	}
}

func TestPublishMessageReceivedOmitsContent(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t)

	event := domain.MessageReceivedEvent{
		Username:   "alice",
		MessageID:  "message-1",
		Length:     42,
		ReceivedAt: time.Date(2025, 11, 18, 8, 30, 0, 0, time.UTC),
	}

	if err := publisher.PublishMessageReceived(context.Background(), event); err != nil {
		t.Fatalf("PublishMessageReceived returned error: %v", err)
	}

	msg, envelope := receiveEnvelope(t, asyncProducer)
	if msg.Topic != "feedformly.message.received" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}
	if key, _ := msg.Key.Encode(); string(key) != "alice" {
		t.Fatalf("expected username key, got %q", key)
	}
	if _, ok := envelope["account_id"]; ok {
		t.Fatalf("account_id should be omitted for message events")
	}
	if id, _ := envelope["event_id"].(string); id == "" {
		t.Fatalf("expected generated event id")
	}

	payload := envelope["payload"].(map[string]any)
	if _, ok := payload["content"]; ok {
		t.Fatalf("message content must not be published")
	}
	if length, _ := payload["length"].(float64); int(length) != 42 {
		t.Fatalf("unexpected length: %v", payload["length"])
	}
}

func TestPublishRespectsCancelledContext(t *testing.T) {
	publisher, asyncProducer := newTestPublisher(t)
	asyncProducer.input <- &sarama.ProducerMessage{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.PublishAccountVerified(ctx, domain.AccountVerifiedEvent{AccountID: "a", VerifiedAt: time.Now()})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTopicName(t *testing.T) {
	p := &Producer{cfg: config.KafkaSettings{TopicPrefix: "feedformly"}}

	if got := p.TopicName("account.verified"); got != "feedformly.account.verified" {
		t.Fatalf("unexpected topic %s", got)
	}
	if got := p.TopicName("feedformly.account.verified"); got != "feedformly.account.verified" {
		t.Fatalf("prefix applied twice: %s", got)
	}

	p.cfg.TopicPrefix = ""
	if got := p.TopicName("account.verified"); got != "account.verified" {
		t.Fatalf("unexpected topic without prefix %s", got)
	}
}

func TestStubPublisherLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stub := NewStubPublisher(zap.New(core))

	if err := stub.PublishMessageReceived(context.Background(), domain.MessageReceivedEvent{Username: "alice", MessageID: "m", Length: 3}); err != nil {
		t.Fatalf("PublishMessageReceived returned error: %v", err)
	}

	entries := logs.FilterMessage("stub event published").All()
	if len(entries) != 1 {
		t.Fatalf("expected one stub log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["event_type"]; got != EventMessageReceived {
		t.Fatalf("unexpected event_type %v", got)
	}
}
