package usecase_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func auditOf(typ string) any {
	return mock.MatchedBy(func(ev domain.AuditEvent) bool { return ev.Type == typ })
}

func settingsRequiring(keys ...string) []domain.ProfileFieldSetting {
	out := domain.DefaultFieldSettings()
	req := map[string]bool{}
	for _, k := range keys {
		req[k] = true
	}
	for i := range out {
		out[i].Apply(true, req[out[i].FieldName])
	}
	return out
}
