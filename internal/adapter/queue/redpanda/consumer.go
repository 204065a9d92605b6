package redpanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// Refresher regenerates and caches one job's shortlist.
type Refresher interface {
	Generate(ctx context.Context, jobID string) (domain.Ranking, error)
}

// fetchClient is the slice of *kgo.Client the consumer uses.
type fetchClient interface {
	PollFetches(ctx context.Context) kgo.Fetches
	MarkCommitRecords(rs ...*kgo.Record)
	Close()
}

// refreshTriggers are the audit events that make a cached shortlist stale.
var refreshTriggers = map[string]bool{
	domain.AuditCriteriaSaved:        true,
	domain.AuditApplicationSubmitted: true,
}

// RefreshConsumer reads the audit topic and regenerates shortlists for jobs
// whose criteria or applications changed.
type RefreshConsumer struct {
	client    fetchClient
	refresher Refresher
	poller    *AdaptivePoller
	timeout   time.Duration
}

// NewRefreshConsumer joins groupID on topic.
func NewRefreshConsumer(ctx context.Context, brokers []string, groupID, topic string, r Refresher) (*RefreshConsumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=refresh_consumer.new: no seed brokers provided")
	}
	if groupID == "" {
		return nil, fmt.Errorf("op=refresh_consumer.new: missing group id")
	}
	k := kotel.NewKotel(kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))))
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
		kgo.AutoCommitMarks(),
		kgo.AutoCommitInterval(time.Second),
		kgo.SessionTimeout(30*time.Second),
		kgo.HeartbeatInterval(3*time.Second),
		kgo.FetchMaxWait(5*time.Second),
		kgo.WithHooks(k.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=refresh_consumer.new: %w", err)
	}
	if err := ensureTopic(ctx, client, topic, 3, 1); err != nil {
		slog.Warn("audit topic not ensured", slog.String("topic", topic), slog.Any("error", err))
	}
	slog.Info("refresh consumer ready", slog.String("group_id", groupID), slog.String("topic", topic))
	return newRefreshConsumer(client, r), nil
}

func newRefreshConsumer(client fetchClient, r Refresher) *RefreshConsumer {
	return &RefreshConsumer{client: client, refresher: r, poller: NewAdaptivePoller(200 * time.Millisecond), timeout: 30 * time.Second}
}

// Run polls until ctx is cancelled. Records are marked for commit after
// handling, whatever the outcome, so a poison event cannot wedge the group.
func (c *RefreshConsumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if fetches.IsClientClosed() {
			return nil
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, fe := range errs {
				if errors.Is(fe.Err, context.Canceled) {
					return ctx.Err()
				}
				slog.Warn("fetch error", slog.String("topic", fe.Topic), slog.Int("partition", int(fe.Partition)), slog.Any("error", fe.Err))
			}
			c.poller.RecordFailure()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.poller.NextInterval()):
			}
			continue
		}
		c.poller.RecordSuccess()

		// several events for one job in a batch need one regeneration
		seen := map[string]bool{}
		fetches.EachRecord(func(rec *kgo.Record) {
			if jobID, ok := c.jobToRefresh(rec); ok && !seen[jobID] {
				seen[jobID] = true
				c.refresh(ctx, jobID)
			}
			c.client.MarkCommitRecords(rec)
		})
	}
}

// jobToRefresh decodes rec and reports the job id when the event is a trigger.
func (c *RefreshConsumer) jobToRefresh(rec *kgo.Record) (string, bool) {
	var ev domain.AuditEvent
	if err := json.Unmarshal(rec.Value, &ev); err != nil {
		slog.Warn("skipping undecodable audit record", slog.Int64("offset", rec.Offset), slog.Any("error", err))
		return "", false
	}
	if !refreshTriggers[ev.Type] || ev.JobID == "" {
		return "", false
	}
	return ev.JobID, true
}

func (c *RefreshConsumer) refresh(ctx context.Context, jobID string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()
	r, err := c.refresher.Generate(ctx, jobID)
	if err != nil {
		slog.Error("shortlist refresh failed", slog.String("job_id", jobID), slog.Any("error", err))
		return
	}
	slog.Info("shortlist refreshed",
		slog.String("job_id", jobID),
		slog.Int("entries", len(r.Entries)),
		slog.Int("failures", len(r.Failures)),
		slog.Duration("took", time.Since(start)))
}

func (c *RefreshConsumer) Close() { c.client.Close() }
