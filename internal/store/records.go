package store

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/madeengine/memoryd/internal/models"
)

// uniqueViolationCode is the Postgres SQLSTATE for a unique-constraint
// violation.
const uniqueViolationCode = "23505"

// Put inserts a new cognitive record. ReportID must be unique; a
// duplicate returns ErrAlreadyExists. StoreID and CreatedAt are assigned
// here if not already set.
func (c *Client) Put(ctx context.Context, rec models.CognitiveRecord) (models.CognitiveRecord, error) {
	if rec.ReportID == "" {
		return models.CognitiveRecord{}, NewValidationError("report_id", "report_id is required")
	}
	if rec.StoreID == "" {
		rec.StoreID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const q = `
		INSERT INTO ocean_scores (
			store_id, report_id,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			openness_norm, conscientiousness_norm, extraversion_norm, agreeableness_norm, neuroticism_norm,
			p_factor, initial_priority_hint, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err := c.db.ExecContext(ctx, q,
		rec.StoreID, rec.ReportID,
		rec.OceanRaw.Openness, rec.OceanRaw.Conscientiousness, rec.OceanRaw.Extraversion, rec.OceanRaw.Agreeableness, rec.OceanRaw.Neuroticism,
		rec.OceanNorm.Openness, rec.OceanNorm.Conscientiousness, rec.OceanNorm.Extraversion, rec.OceanNorm.Agreeableness, rec.OceanNorm.Neuroticism,
		rec.PFactor, rec.InitialPriorityHint, rec.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CognitiveRecord{}, ErrAlreadyExists
		}
		return models.CognitiveRecord{}, fmt.Errorf("insert cognitive record: %w", err)
	}

	return rec, nil
}

// GetByReport fetches the cognitive record for a given report ID.
func (c *Client) GetByReport(ctx context.Context, reportID string) (models.CognitiveRecord, error) {
	const q = recordSelectColumns + ` WHERE report_id = $1`
	row := c.db.QueryRowContext(ctx, q, reportID)
	return scanRecord(row)
}

// Latest fetches the most recently created cognitive record, or
// ErrNotFound if the store is empty.
func (c *Client) Latest(ctx context.Context) (models.CognitiveRecord, error) {
	const q = recordSelectColumns + ` ORDER BY created_at DESC LIMIT 1`
	row := c.db.QueryRowContext(ctx, q)
	return scanRecord(row)
}

// ListAll returns every cognitive record, most recently created first.
func (c *Client) ListAll(ctx context.Context) ([]models.CognitiveRecord, error) {
	const q = recordSelectColumns + ` ORDER BY created_at DESC`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list cognitive records: %w", err)
	}
	defer rows.Close()

	var out []models.CognitiveRecord
	for rows.Next() {
		rec, err := scanRecordRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteByReport removes the cognitive record for reportID. Returns
// ErrNotFound if no such record exists.
func (c *Client) DeleteByReport(ctx context.Context, reportID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM ocean_scores WHERE report_id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("delete cognitive record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cognitive record: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUtteranceFields applies the Linguistic Dispatcher's group-write
// atomically: last utterance text, its retention/confidence/phase
// snapshot, and the timestamp all move together or not at all.
func (c *Client) UpdateUtteranceFields(ctx context.Context, reportID string, update models.UtteranceUpdate) error {
	const q = `
		UPDATE ocean_scores SET
			last_utterance = $1,
			last_utterance_retention = $2,
			last_utterance_confidence = $3,
			last_utterance_confidence_band = $4,
			last_utterance_phase = $5,
			last_utterance_at = $6
		WHERE report_id = $7
	`
	res, err := c.db.ExecContext(ctx, q,
		update.LastUtterance, update.LastUtteranceRetention, update.LastUtteranceConfidenceScore,
		update.LastUtteranceConfidenceBand, update.LastUtterancePhase, update.LastUtteranceAt, reportID,
	)
	if err != nil {
		return fmt.Errorf("update utterance fields: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update utterance fields: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const recordSelectColumns = `
	SELECT
		store_id, report_id,
		openness, conscientiousness, extraversion, agreeableness, neuroticism,
		openness_norm, conscientiousness_norm, extraversion_norm, agreeableness_norm, neuroticism_norm,
		p_factor, initial_priority_hint,
		last_utterance, last_utterance_retention, last_utterance_confidence,
		last_utterance_confidence_band, last_utterance_phase, last_utterance_at,
		created_at
	FROM ocean_scores
`

// rowScanner is the common subset of *sql.Row and *sql.Rows used by the
// two scan helpers below.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row *stdsql.Row) (models.CognitiveRecord, error) {
	rec, err := scanRecordInto(row)
	if errors.Is(err, stdsql.ErrNoRows) {
		return models.CognitiveRecord{}, ErrNotFound
	}
	return rec, err
}

func scanRecordRows(rows *stdsql.Rows) (models.CognitiveRecord, error) {
	return scanRecordInto(rows)
}

func scanRecordInto(s rowScanner) (models.CognitiveRecord, error) {
	var rec models.CognitiveRecord
	var (
		lastUtterance, lastConfidenceBand, lastPhase stdsql.NullString
		lastRetention, lastConfidence                stdsql.NullFloat64
		lastUtteranceAt                               stdsql.NullTime
		priorityHint                                  stdsql.NullFloat64
	)

	err := s.Scan(
		&rec.StoreID, &rec.ReportID,
		&rec.OceanRaw.Openness, &rec.OceanRaw.Conscientiousness, &rec.OceanRaw.Extraversion, &rec.OceanRaw.Agreeableness, &rec.OceanRaw.Neuroticism,
		&rec.OceanNorm.Openness, &rec.OceanNorm.Conscientiousness, &rec.OceanNorm.Extraversion, &rec.OceanNorm.Agreeableness, &rec.OceanNorm.Neuroticism,
		&rec.PFactor, &priorityHint,
		&lastUtterance, &lastRetention, &lastConfidence, &lastConfidenceBand, &lastPhase, &lastUtteranceAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return models.CognitiveRecord{}, err
	}

	rec.InitialPriorityHint = priorityHint.Float64
	rec.LastUtterance = lastUtterance.String
	rec.LastUtteranceRetention = lastRetention.Float64
	rec.LastUtteranceConfidenceScore = lastConfidence.Float64
	rec.LastUtteranceConfidenceBand = lastConfidenceBand.String
	rec.LastUtterancePhase = lastPhase.String
	rec.LastUtteranceAt = lastUtteranceAt.Time

	return rec, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
