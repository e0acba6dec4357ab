package normalizer

import (
	"encoding/json"
	"fmt"

	"jusho-client/internal/models"
)

// flatPostal is the legacy flat postal payload.
type flatPostal struct {
	PostCode    string `json:"post_code"`
	PostalCode  string `json:"postal_code"`
	Pref        string `json:"pref"`
	City        string `json:"city"`
	Town        string `json:"town"`
	FullAddress string `json:"full_address"`
	PrefKana    string `json:"pref_kana"`
	CityKana    string `json:"city_kana"`
	TownKana    string `json:"town_kana"`
	PrefCode    string `json:"pref_code"`
	CityCode    string `json:"city_code"`
	TownCode    string `json:"town_code"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

// Postal converts a /postal/{code} payload into a PostalResult. requested fills the
// postal code when the payload omits it.
func Postal(raw json.RawMessage, requested string) (models.PostalResult, error) {
	var probe struct {
		Address json.RawMessage `json:"address"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.PostalResult{}, fmt.Errorf("normalizer: invalid postal payload: %w", err)
	}

	var res models.PostalResult
	if len(probe.Address) > 0 && probe.Address[0] == '{' {
		if err := json.Unmarshal(raw, &res); err != nil {
			return models.PostalResult{}, fmt.Errorf("normalizer: invalid postal payload: %w", err)
		}
	} else {
		var flat flatPostal
		if err := json.Unmarshal(raw, &flat); err != nil {
			return models.PostalResult{}, fmt.Errorf("normalizer: invalid flat postal payload: %w", err)
		}
		res = models.PostalResult{
			PostalCode: firstNonEmpty(flat.PostalCode, flat.PostCode),
			Address: models.AddressInfo{
				Full: flat.FullAddress,
				Pref: flat.Pref,
				City: flat.City,
				Town: flat.Town,
			},
			Kana:  models.KanaInfo{Pref: flat.PrefKana, City: flat.CityKana, Town: flat.TownKana},
			Codes: models.CodesInfo{PostCode: flat.PostCode, PrefCode: flat.PrefCode, CityCode: flat.CityCode, TownCode: flat.TownCode},
			Geo:   models.GeoInfo{Lat: flat.Lat, Lng: flat.Lng},
		}
	}

	res.PostalCode = firstNonEmpty(res.PostalCode, res.Codes.PostCode, requested)
	if res.Codes.PostCode == "" {
		res.Codes.PostCode = res.PostalCode
	}
	if res.Address.Full == "" {
		res.Address.Full = res.Address.Pref + res.Address.City + res.Address.Town
	}

	return res, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
