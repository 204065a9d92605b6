package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// FieldSettingRepo persists ProfileFieldSetting rows.
type FieldSettingRepo struct{ Pool PgxPool }

// NewFieldSettingRepo constructs a FieldSettingRepo with the given pool.
func NewFieldSettingRepo(p PgxPool) *FieldSettingRepo { return &FieldSettingRepo{Pool: p} }

// List returns every setting ordered by display order.
func (r *FieldSettingRepo) List(ctx domain.Context) ([]domain.ProfileFieldSetting, error) {
	ctx, span := otel.Tracer("repo.field_settings").Start(ctx, "field_settings.List")
	defer span.End()
	q := `SELECT id, field_name, category, label, description, is_visible, is_required, display_order
	      FROM profile_field_settings ORDER BY display_order, field_name`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=field_setting.list: %w", err)
	}
	defer rows.Close()
	out := []domain.ProfileFieldSetting{}
	for rows.Next() {
		var s domain.ProfileFieldSetting
		var category string
		if err := rows.Scan(&s.ID, &s.FieldName, &category, &s.Label, &s.Description, &s.IsVisible, &s.IsRequired, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("op=field_setting.list: %w", err)
		}
		s.Category = domain.FieldCategory(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=field_setting.list: %w", err)
	}
	return out, nil
}

// BulkUpdate writes visibility and requirement per id in one transaction.
// An unknown id rolls the whole batch back with ErrNotFound.
func (r *FieldSettingRepo) BulkUpdate(ctx domain.Context, settings []domain.ProfileFieldSetting) (err error) {
	ctx, span := otel.Tracer("repo.field_settings").Start(ctx, "field_settings.BulkUpdate")
	defer span.End()
	span.SetAttributes(attribute.Int("settings.count", len(settings)))

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("op=field_setting.bulk_update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	q := `UPDATE profile_field_settings SET is_visible=$2, is_required=$3, updated_at=$4 WHERE id=$1`
	for _, s := range settings {
		tag, err := tx.Exec(ctx, q, s.ID, s.IsVisible, s.IsRequired && s.IsVisible, now)
		if err != nil {
			return fmt.Errorf("op=field_setting.bulk_update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("op=field_setting.bulk_update: %w: setting %q", domain.ErrNotFound, s.ID)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("op=field_setting.bulk_update: %w", err)
	}
	return nil
}

// Seed inserts settings whose field_name is not stored yet and reports how many were added.
func (r *FieldSettingRepo) Seed(ctx domain.Context, settings []domain.ProfileFieldSetting) (int, error) {
	ctx, span := otel.Tracer("repo.field_settings").Start(ctx, "field_settings.Seed")
	defer span.End()

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("op=field_setting.seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := `INSERT INTO profile_field_settings (id, field_name, category, label, description, is_visible, is_required, display_order)
	      VALUES ($1,$2,$3,$4,$5,$6,$7,$8) ON CONFLICT (field_name) DO NOTHING`
	inserted := 0
	for _, s := range settings {
		tag, err := tx.Exec(ctx, q, s.ID, s.FieldName, string(s.Category), s.Label, s.Description, s.IsVisible, s.IsRequired && s.IsVisible, s.DisplayOrder)
		if err != nil {
			return 0, fmt.Errorf("op=field_setting.seed: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("op=field_setting.seed: %w", err)
	}
	return inserted, nil
}
