package models

// NormalizeRequest is the body of POST /normalize.
type NormalizeRequest struct {
	Address string `json:"address"`
}

// PostalResult is the address registered for a postal code.
type PostalResult struct {
	PostalCode string      `json:"postal_code"`
	Address    AddressInfo `json:"address"`
	Kana       KanaInfo    `json:"kana"`
	Codes      CodesInfo   `json:"codes"`
	Geo        GeoInfo     `json:"geo"`
}

// Suggestion is a single completion candidate for a partial address.
type Suggestion struct {
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// SuggestResult lists suggestions in the order returned by the service. Suggestions is
// never nil.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// ValidationResult reports whether an address is valid. Normalized is set only when
// Valid is true.
type ValidationResult struct {
	Valid      bool                 `json:"valid"`
	Normalized *NormalizationResult `json:"normalized"`
	MatchLevel string               `json:"match_level"`
}

// ReverseResult is the postal code and codes resolved for an address.
type ReverseResult struct {
	PostalCode string      `json:"postal_code"`
	Address    AddressInfo `json:"address"`
	Codes      CodesInfo   `json:"codes"`
}
