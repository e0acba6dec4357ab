package models

import "encoding/json"

// MaxBatchSize is the largest number of addresses accepted by POST /normalize/batch.
const MaxBatchSize = 100

// BatchRequest is the body of POST /normalize/batch.
type BatchRequest struct {
	Addresses []string `json:"addresses"`
}

// BatchItem is one per-address entry as sent by the service. Result stays raw so it
// can go through the same normalizer as single-address responses.
type BatchItem struct {
	Input   string          `json:"input"`
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *string         `json:"error"`
}

// BatchResponse is the body returned by POST /normalize/batch.
type BatchResponse struct {
	Total        int         `json:"total"`
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	Results      []BatchItem `json:"results"`
}

// BatchOutcome is the canonical outcome for one input address. Exactly one of Result
// and Error is non-nil.
type BatchOutcome struct {
	Input   string               `json:"input"`
	Success bool                 `json:"success"`
	Result  *NormalizationResult `json:"result"`
	Error   *string              `json:"error"`
}

// BatchSummary reports every outcome of a batch call in input order.
type BatchSummary struct {
	Total        int            `json:"total"`
	SuccessCount int            `json:"success_count"`
	ErrorCount   int            `json:"error_count"`
	Results      []BatchOutcome `json:"results"`
}
