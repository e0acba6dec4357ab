package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"jusho-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBatchNormalizer is a mock implementation of the BatchNormalizer interface
type MockBatchNormalizer struct {
	mock.Mock
}

func (m *MockBatchNormalizer) NormalizeBatch(ctx context.Context, addresses []string) (models.BatchSummary, error) {
	args := m.Called(ctx, addresses)
	return args.Get(0).(models.BatchSummary), args.Error(1)
}

// MockOutcomeStore is a mock implementation of the OutcomeStore interface
type MockOutcomeStore struct {
	mock.Mock
}

func (m *MockOutcomeStore) SaveOutcomes(ctx context.Context, outcomes []models.BatchOutcome) (int64, error) {
	args := m.Called(ctx, outcomes)
	return args.Get(0).(int64), args.Error(1)
}

func summaryFor(addresses []string, failed int) models.BatchSummary {
	s := models.BatchSummary{Total: len(addresses)}
	for i, a := range addresses {
		if i < failed {
			msg := "Address not found"
			s.Results = append(s.Results, models.BatchOutcome{Input: a, Error: &msg})
			s.ErrorCount++
			continue
		}
		s.Results = append(s.Results, models.BatchOutcome{Input: a, Success: true, Result: &models.NormalizationResult{FullAddress: a}})
		s.SuccessCount++
	}
	return s
}

func TestReadAddresses(t *testing.T) {
	input := "address,note\n東京都渋谷区渋谷2-21-1,office\n\n  ,blank\n\"大阪府大阪市北区梅田3-1-1\"\n"

	got, err := ReadAddresses(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"東京都渋谷区渋谷2-21-1", "大阪府大阪市北区梅田3-1-1"}, got)

	got, err = ReadAddresses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImporter_Run(t *testing.T) {
	addresses := make([]string, 250)
	for i := range addresses {
		addresses[i] = fmt.Sprintf("東京都千代田区千代田%d", i)
	}
	chunks := [][]string{addresses[:100], addresses[100:200], addresses[200:]}

	client := new(MockBatchNormalizer)
	store := new(MockOutcomeStore)
	for i, chunk := range chunks {
		s := summaryFor(chunk, i)
		client.On("NormalizeBatch", mock.Anything, chunk).Return(s, nil).Once()
		store.On("SaveOutcomes", mock.Anything, s.Results).Return(int64(len(chunk)), nil).Once()
	}

	var progress []int
	im := New(client, store)
	im.OnChunk = func(done int) { progress = append(progress, done) }

	stats, err := im.Run(context.Background(), addresses)

	require.NoError(t, err)
	assert.Equal(t, Stats{Read: 250, Succeeded: 247, Failed: 3, Stored: 250}, stats)
	assert.Equal(t, []int{100, 100, 50}, progress)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestImporter_Run_ChunkError(t *testing.T) {
	addresses := []string{"a", "b"}

	client := new(MockBatchNormalizer)
	client.On("NormalizeBatch", mock.Anything, addresses).Return(models.BatchSummary{}, assert.AnError)
	store := new(MockOutcomeStore)

	stats, err := New(client, store).Run(context.Background(), addresses)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "chunk 1-2")
	assert.Equal(t, Stats{Read: 2}, stats)
	store.AssertNotCalled(t, "SaveOutcomes", mock.Anything, mock.Anything)
}
