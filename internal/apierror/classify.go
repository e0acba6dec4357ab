package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"jusho-client/internal/models"
)

// Classify maps a non-success response onto the taxonomy. A body that is not valid
// JSON is treated as absent; classification itself never fails.
func Classify(status int, header http.Header, body []byte) *Error {
	var parsed *models.ErrorBody
	if len(body) > 0 {
		var eb models.ErrorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			parsed = &eb
		}
	}

	e := &Error{
		Message:    resolveMessage(status, parsed),
		StatusCode: status,
	}
	if parsed != nil {
		e.Body = json.RawMessage(body)
	}

	switch status {
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	default:
		e.Kind = KindHTTP
	}

	return e
}

// resolveMessage prefers a string detail, then error, then a synthesized status line.
func resolveMessage(status int, body *models.ErrorBody) string {
	if body != nil {
		var detail string
		if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
			return detail
		}
		if body.Error != "" {
			return body.Error
		}
		if amb, ok := models.ParseAmbiguousMatch(body.Detail); ok && amb.Message != "" {
			return amb.Message
		}
	}

	return fmt.Sprintf("HTTP %d", status)
}

// parseRetryAfter reads the leading integer of a Retry-After value, so "1.5"
// yields 1. HTTP-date values have no leading digits and yield nil.
func parseRetryAfter(v string) *int {
	v = strings.TrimSpace(v)
	end := strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(v)
	}
	if end == 0 {
		return nil
	}

	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return nil
	}

	return &n
}
