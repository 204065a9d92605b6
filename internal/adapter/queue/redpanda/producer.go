// Package redpanda carries audit events over Kafka-compatible brokers and
// consumes them to keep cached shortlists warm.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

const headerEventType = "event_type"

// recordProducer is the slice of *kgo.Client the producer uses.
type recordProducer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

// AuditProducer publishes domain.AuditEvent records keyed by job id so one
// job's events stay ordered on a partition. Publish never blocks on the broker.
type AuditProducer struct {
	client recordProducer
	topic  string
}

// NewAuditProducer connects to brokers and makes sure topic exists.
func NewAuditProducer(ctx context.Context, brokers []string, topic string) (*AuditProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=audit_producer.new: no seed brokers provided")
	}
	k := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequestRetries(10),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.WithHooks(k.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=audit_producer.new: %w", err)
	}
	if err := ensureTopic(ctx, client, topic, 3, 1); err != nil {
		slog.Warn("audit topic not ensured; relying on broker auto-create", slog.String("topic", topic), slog.Any("error", err))
	}
	slog.Info("audit producer ready", slog.Any("brokers", brokers), slog.String("topic", topic))
	return &AuditProducer{client: client, topic: topic}, nil
}

// Publish implements domain.AuditPublisher.
func (p *AuditProducer) Publish(ctx context.Context, ev domain.AuditEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		observability.RecordAuditEvent(ev.Type, "error")
		slog.Error("audit event marshal failed", slog.String("type", ev.Type), slog.Any("error", err))
		return
	}
	rec := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(ev.JobID),
		Value:   b,
		Headers: []kgo.RecordHeader{{Key: headerEventType, Value: []byte(ev.Type)}},
	}
	// the request context may end before the broker acks
	p.client.Produce(context.WithoutCancel(ctx), rec, func(r *kgo.Record, err error) {
		if err != nil {
			observability.RecordAuditEvent(ev.Type, "error")
			slog.Error("audit event publish failed",
				slog.String("type", ev.Type),
				slog.String("job_id", ev.JobID),
				slog.Any("error", err))
			return
		}
		observability.RecordAuditEvent(ev.Type, "ok")
	})
}

// Ping reports whether any seed broker answers.
func (p *AuditProducer) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return fmt.Errorf("op=audit_producer.ping: %w", err)
	}
	return nil
}

// Close flushes buffered records and closes the client.
func (p *AuditProducer) Close(ctx context.Context) error {
	defer p.client.Close()
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("op=audit_producer.close: %w", err)
	}
	return nil
}

// NopPublisher drops events; used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev domain.AuditEvent) {
	observability.RecordAuditEvent(ev.Type, "dropped")
	observability.LoggerFromContext(ctx).Debug("audit event dropped", slog.String("type", ev.Type), slog.String("job_id", ev.JobID))
}
