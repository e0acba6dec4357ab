package service

import (
	"context"
	"fmt"
	"strings"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"
)

// LookupService contains the business logic for postal code and reverse lookups
type LookupService struct {
	client LookupClient
}

// LookupClient interface for dependency injection
type LookupClient interface {
	Postal(ctx context.Context, code string) (models.PostalResult, error)
	Reverse(ctx context.Context, address string) (models.ReverseResult, error)
}

// NewLookupService creates a new lookup service
func NewLookupService(client LookupClient) *LookupService {
	return &LookupService{client: client}
}

// Postal finds the address registered for a postal code
func (s *LookupService) Postal(ctx context.Context, code string) (models.PostalResult, error) {
	if strings.TrimSpace(code) == "" {
		return models.PostalResult{}, apierror.Validation("postal code cannot be empty")
	}

	res, err := s.client.Postal(ctx, code)
	if err != nil {
		return models.PostalResult{}, fmt.Errorf("service: failed to look up postal code: %w", err)
	}

	return res, nil
}

// Reverse finds the postal code and administrative codes of an address
func (s *LookupService) Reverse(ctx context.Context, address string) (models.ReverseResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.ReverseResult{}, apierror.Validation("address cannot be empty")
	}

	res, err := s.client.Reverse(ctx, address)
	if err != nil {
		return models.ReverseResult{}, fmt.Errorf("service: failed to reverse lookup address: %w", err)
	}

	return res, nil
}
