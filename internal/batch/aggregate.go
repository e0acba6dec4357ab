// Package batch reshapes the service's per-address batch outcomes into a BatchSummary.
package batch

import (
	"encoding/json"
	"fmt"
	"strings"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"
)

// NormalizeFunc turns one raw per-item result into the canonical shape.
type NormalizeFunc func(json.RawMessage) (models.NormalizationResult, error)

const (
	msgMissingItem   = "no result returned for this address"
	msgMissingResult = "result missing from successful entry"
	msgFailed        = "normalization failed"
)

// CheckInputs rejects batches the service would refuse as a whole.
func CheckInputs(inputs []string) error {
	if len(inputs) == 0 {
		return apierror.Validation("at least one address is required")
	}
	if len(inputs) > models.MaxBatchSize {
		return apierror.Validation(fmt.Sprintf("too many addresses: %d (max %d)", len(inputs), models.MaxBatchSize))
	}
	return nil
}

// Aggregate pairs inputs with resp.Results by position and builds one outcome per
// input. An entry never carries both a result and an error, and the counts are
// recomputed from the outcomes rather than trusted from the response.
func Aggregate(inputs []string, resp models.BatchResponse, normalize NormalizeFunc) models.BatchSummary {
	summary := models.BatchSummary{
		Total:   len(inputs),
		Results: make([]models.BatchOutcome, 0, len(inputs)),
	}

	for i, input := range inputs {
		var item *models.BatchItem
		if i < len(resp.Results) {
			item = &resp.Results[i]
		}

		outcome := reshape(input, item, normalize)
		if outcome.Success {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}
		summary.Results = append(summary.Results, outcome)
	}

	return summary
}

func reshape(input string, item *models.BatchItem, normalize NormalizeFunc) models.BatchOutcome {
	if item == nil {
		return failure(input, msgMissingItem)
	}

	if !item.Success {
		msg := msgFailed
		if item.Error != nil && strings.TrimSpace(*item.Error) != "" {
			msg = *item.Error
		}
		return failure(input, msg)
	}

	if len(item.Result) == 0 || string(item.Result) == "null" {
		return failure(input, msgMissingResult)
	}

	res, err := normalize(item.Result)
	if err != nil {
		return failure(input, err.Error())
	}

	return models.BatchOutcome{Input: input, Success: true, Result: &res}
}

func failure(input, msg string) models.BatchOutcome {
	return models.BatchOutcome{Input: input, Error: &msg}
}
