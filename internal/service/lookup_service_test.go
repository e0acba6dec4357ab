package service

import (
	"context"
	"testing"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLookupClient is a mock implementation of the LookupClient interface
type MockLookupClient struct {
	mock.Mock
}

func (m *MockLookupClient) Postal(ctx context.Context, code string) (models.PostalResult, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.PostalResult), args.Error(1)
}

func (m *MockLookupClient) Reverse(ctx context.Context, address string) (models.ReverseResult, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.ReverseResult), args.Error(1)
}

func TestLookupService_Postal(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		mockResult  models.PostalResult
		mockError   error
		expected    models.PostalResult
		expectError bool
	}{
		{
			name:        "empty code",
			code:        "",
			expectError: true,
		},
		{
			name:       "successful lookup",
			code:       "150-0002",
			mockResult: models.PostalResult{PostalCode: "1500002", Address: models.AddressInfo{Pref: "東京都"}},
			expected:   models.PostalResult{PostalCode: "1500002", Address: models.AddressInfo{Pref: "東京都"}},
		},
		{
			name:        "not found",
			code:        "9999999",
			mockError:   apierror.Classify(404, nil, nil),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockClient := new(MockLookupClient)
			service := NewLookupService(mockClient)

			if tt.code != "" {
				mockClient.On("Postal", mock.Anything, tt.code).Return(tt.mockResult, tt.mockError)
			}

			// Execute
			result, err := service.Postal(context.Background(), tt.code)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockClient.AssertExpectations(t)
		})
	}
}

func TestLookupService_Reverse(t *testing.T) {
	tests := []struct {
		name        string
		address     string
		mockResult  models.ReverseResult
		mockError   error
		expected    models.ReverseResult
		expectError bool
		expectKind  apierror.Kind
	}{
		{
			name:        "empty address",
			address:     "",
			expectError: true,
			expectKind:  apierror.KindValidation,
		},
		{
			name:       "successful reverse lookup",
			address:    "東京都渋谷区渋谷2-21-1",
			mockResult: models.ReverseResult{PostalCode: "1500002"},
			expected:   models.ReverseResult{PostalCode: "1500002"},
		},
		{
			name:        "not found",
			address:     "nowhere",
			mockError:   apierror.Classify(404, nil, nil),
			expectError: true,
			expectKind:  apierror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockClient := new(MockLookupClient)
			service := NewLookupService(mockClient)

			if tt.address != "" {
				mockClient.On("Reverse", mock.Anything, tt.address).Return(tt.mockResult, tt.mockError)
			}

			// Execute
			result, err := service.Reverse(context.Background(), tt.address)

			// Assert
			if tt.expectError {
				assert.True(t, apierror.Is(err, tt.expectKind))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockClient.AssertExpectations(t)
		})
	}
}
