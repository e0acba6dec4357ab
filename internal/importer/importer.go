package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"jusho-client/internal/models"
)

// BatchNormalizer interface for dependency injection
type BatchNormalizer interface {
	NormalizeBatch(ctx context.Context, addresses []string) (models.BatchSummary, error)
}

// OutcomeStore interface for dependency injection
type OutcomeStore interface {
	SaveOutcomes(ctx context.Context, outcomes []models.BatchOutcome) (int64, error)
}

// Stats summarizes an import run.
type Stats struct {
	Read      int
	Succeeded int
	Failed    int
	Stored    int64
}

// Importer normalizes addresses in chunks and stores every outcome.
type Importer struct {
	client BatchNormalizer
	store  OutcomeStore
	// OnChunk, if set, is called with the number of addresses finished after each chunk.
	OnChunk func(done int)
}

// New creates a new importer
func New(client BatchNormalizer, store OutcomeStore) *Importer {
	return &Importer{client: client, store: store}
}

// ReadAddresses reads the first column of every row after the header. Blank
// addresses are skipped.
func ReadAddresses(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("importer: failed to read header: %w", err)
	}

	var addresses []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: failed to read record: %w", err)
		}

		if len(record) == 0 {
			continue
		}
		address := strings.TrimSpace(record[0])
		if address == "" {
			continue
		}
		addresses = append(addresses, address)
	}

	return addresses, nil
}

// Run sends addresses in chunks of models.MaxBatchSize. A chunk the service
// rejects as a whole stops the run; per-address failures are stored like successes.
func (im *Importer) Run(ctx context.Context, addresses []string) (Stats, error) {
	stats := Stats{Read: len(addresses)}

	for start := 0; start < len(addresses); start += models.MaxBatchSize {
		end := min(start+models.MaxBatchSize, len(addresses))

		summary, err := im.client.NormalizeBatch(ctx, addresses[start:end])
		if err != nil {
			return stats, fmt.Errorf("importer: chunk %d-%d: %w", start+1, end, err)
		}

		n, err := im.store.SaveOutcomes(ctx, summary.Results)
		if err != nil {
			return stats, fmt.Errorf("importer: chunk %d-%d: %w", start+1, end, err)
		}

		stats.Succeeded += summary.SuccessCount
		stats.Failed += summary.ErrorCount
		stats.Stored += n

		if im.OnChunk != nil {
			im.OnChunk(end - start)
		}
	}

	return stats, nil
}
