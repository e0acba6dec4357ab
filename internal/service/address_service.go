package service

import (
	"context"
	"fmt"
	"strings"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"

	"github.com/rs/zerolog"
)

// AddressService contains the request validation in front of the normalization client
type AddressService struct {
	client AddressClient
	log    zerolog.Logger
}

// AddressClient interface for dependency injection
type AddressClient interface {
	Normalize(ctx context.Context, address string) (models.NormalizationResult, error)
	NormalizeBatch(ctx context.Context, addresses []string) (models.BatchSummary, error)
	Validate(ctx context.Context, address string) (models.ValidationResult, error)
	Suggest(ctx context.Context, query string) (models.SuggestResult, error)
}

// NewAddressService creates a new address service
func NewAddressService(client AddressClient, logger zerolog.Logger) *AddressService {
	return &AddressService{client: client, log: logger}
}

// Normalize normalizes a single address
func (s *AddressService) Normalize(ctx context.Context, address string) (models.NormalizationResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.NormalizationResult{}, apierror.Validation("address cannot be empty")
	}

	res, err := s.client.Normalize(ctx, address)
	if err != nil {
		s.log.Debug().Err(err).Str("address", address).Msg("normalize failed")
		return models.NormalizationResult{}, fmt.Errorf("service: failed to normalize address: %w", err)
	}

	return res, nil
}

// NormalizeBatch normalizes up to models.MaxBatchSize addresses
func (s *AddressService) NormalizeBatch(ctx context.Context, addresses []string) (models.BatchSummary, error) {
	summary, err := s.client.NormalizeBatch(ctx, addresses)
	if err != nil {
		return models.BatchSummary{}, fmt.Errorf("service: failed to normalize batch: %w", err)
	}

	if summary.ErrorCount > 0 {
		s.log.Info().
			Int("total", summary.Total).
			Int("errors", summary.ErrorCount).
			Msg("batch finished with per-address failures")
	}

	return summary, nil
}

// Validate checks whether an address is valid
func (s *AddressService) Validate(ctx context.Context, address string) (models.ValidationResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.ValidationResult{}, apierror.Validation("address cannot be empty")
	}

	res, err := s.client.Validate(ctx, address)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("service: failed to validate address: %w", err)
	}

	return res, nil
}

// Suggest returns completion candidates for a partial address
func (s *AddressService) Suggest(ctx context.Context, query string) (models.SuggestResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.SuggestResult{Suggestions: []models.Suggestion{}}, nil
	}

	res, err := s.client.Suggest(ctx, query)
	if err != nil {
		return models.SuggestResult{}, fmt.Errorf("service: failed to get suggestions: %w", err)
	}

	return res, nil
}
