// Package ledger persists per-entry enrichment outcomes in PostgreSQL.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/dictmeta/internal/adapter/postgres"
	"github.com/heartmarshall/dictmeta/internal/domain"
)

const table = "enrichment_records"

var columns = []string{"id", "run_id", "word", "field", "outcome", "detail", "created_at"}

// ErrDisabled is returned by Nop for reads.
var ErrDisabled = errors.New("ledger: disabled")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo records enrichment outcomes.
type Repo struct {
	q   postgres.Querier
	now func() time.Time
}

// New creates a ledger repository on top of q.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q, now: time.Now}
}

// Record inserts rec. A nil ID or a zero CreatedAt is filled in.
func (r *Repo) Record(ctx context.Context, rec domain.EnrichmentRecord) error {
	if err := validate(rec); err != nil {
		return fmt.Errorf("ledger.Record: %w", err)
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.RunID, domain.NormalizeWord(rec.Word), rec.Field.String(),
			rec.Outcome.String(), rec.Detail, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("ledger.Record: build query: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ledger.Record: %w", postgres.MapError(err, "enrichment_record", rec.ID.String()))
	}
	return nil
}

// ListByWord returns the latest records for word, newest first.
func (r *Repo) ListByWord(ctx context.Context, word string, limit int) ([]domain.EnrichmentRecord, error) {
	word = domain.NormalizeWord(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"word": word}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ledger.ListByWord: build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.ListByWord: %w", postgres.MapError(err, "word", word))
	}
	defer rows.Close()

	var out []domain.EnrichmentRecord
	for rows.Next() {
		var (
			rec     domain.EnrichmentRecord
			field   string
			outcome string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Word, &field, &outcome, &rec.Detail, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledger.ListByWord: scan: %w", err)
		}
		rec.Field = domain.EnrichmentField(field)
		rec.Outcome = domain.EnrichmentOutcome(outcome)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger.ListByWord: %w", postgres.MapError(err, "word", word))
	}
	return out, nil
}

func validate(rec domain.EnrichmentRecord) error {
	var errs []domain.FieldError
	if domain.NormalizeWord(rec.Word) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if !rec.Field.IsValid() {
		errs = append(errs, domain.FieldError{Field: "field", Message: fmt.Sprintf("unknown field %q", rec.Field)})
	}
	if !rec.Outcome.IsValid() {
		errs = append(errs, domain.FieldError{Field: "outcome", Message: fmt.Sprintf("unknown outcome %q", rec.Outcome)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Nop is the ledger used when no database is configured. Writes are
// dropped and reads return ErrDisabled.
type Nop struct{}

// Record discards rec.
func (Nop) Record(context.Context, domain.EnrichmentRecord) error { return nil }

// ListByWord always fails with ErrDisabled.
func (Nop) ListByWord(context.Context, string, int) ([]domain.EnrichmentRecord, error) {
	return nil, ErrDisabled
}
