// Package usecase contains application business logic services.
package usecase

import (
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// emit stamps and publishes an audit event. A nil publisher drops it.
func emit(ctx domain.Context, pub domain.AuditPublisher, ev domain.AuditEvent) {
	if pub == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if rid := observability.RequestIDFromContext(ctx); rid != "" {
		if ev.Attributes == nil {
			ev.Attributes = map[string]string{}
		}
		ev.Attributes["requestId"] = rid
	}
	pub.Publish(ctx, ev)
}
