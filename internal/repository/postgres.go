package repository

import (
	"context"
	"fmt"

	"jusho-client/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the table bulk normalization results are written to.
const Schema = `
	CREATE TABLE IF NOT EXISTS normalized_addresses (
		id BIGSERIAL PRIMARY KEY,
		input TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		error TEXT,
		full_address TEXT,
		post_code VARCHAR(7),
		pref VARCHAR(255),
		city VARCHAR(255),
		town VARCHAR(255),
		city_code VARCHAR(16),
		match_type VARCHAR(32),
		match_level SMALLINT,
		confidence DOUBLE PRECISION,
		lat TEXT,
		lng TEXT,
		imported_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS normalized_addresses_post_code_idx ON normalized_addresses (post_code);
`

// Repository implements the repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the results table and its indexes if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// SaveOutcomes bulk inserts batch outcomes and returns the number of rows written
func (r *Repository) SaveOutcomes(ctx context.Context, outcomes []models.BatchOutcome) (int64, error) {
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"normalized_addresses"},
		[]string{
			"input", "success", "error", "full_address", "post_code", "pref", "city", "town",
			"city_code", "match_type", "match_level", "confidence", "lat", "lng",
		},
		pgx.CopyFromSlice(len(outcomes), func(i int) ([]any, error) {
			return outcomeRow(outcomes[i]), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy outcomes: %w", err)
	}

	return n, nil
}

func outcomeRow(o models.BatchOutcome) []any {
	row := []any{o.Input, o.Success, o.Error}
	if o.Result == nil {
		return append(row, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	}

	res := o.Result
	return append(row,
		res.FullAddress,
		res.PostCode,
		res.Pref,
		res.City,
		res.Town,
		res.CityCode,
		res.MatchType,
		int16(res.MatchLevel),
		res.Confidence,
		res.Lat,
		res.Lng,
	)
}

// CountOutcomes returns the number of stored outcomes, split by success
func (r *Repository) CountOutcomes(ctx context.Context) (succeeded, failed int, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE success),
			COUNT(*) FILTER (WHERE NOT success)
		FROM normalized_addresses
	`).Scan(&succeeded, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("repository: failed to count outcomes: %w", err)
	}

	return succeeded, failed, nil
}

// FindByPostalCode returns the stored successful results for a postal code
func (r *Repository) FindByPostalCode(ctx context.Context, postCode string) ([]models.NormalizationResult, error) {
	sql := `
		SELECT full_address, post_code, pref, city, town, city_code, match_type, match_level, confidence, lat, lng
		FROM normalized_addresses
		WHERE success AND post_code = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql, postCode)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute postal code query: %w", err)
	}
	defer rows.Close()

	results := []models.NormalizationResult{}
	for rows.Next() {
		var res models.NormalizationResult
		var level int16
		err := rows.Scan(
			&res.FullAddress,
			&res.PostCode,
			&res.Pref,
			&res.City,
			&res.Town,
			&res.CityCode,
			&res.MatchType,
			&level,
			&res.Confidence,
			&res.Lat,
			&res.Lng,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan result: %w", err)
		}
		res.MatchLevel = int(level)
		res.Citycode = res.CityCode
		res.MatchLevelLabel = models.MatchLevelLabel(res.MatchLevel)
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return results, nil
}
