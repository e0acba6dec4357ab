// Package normalizer reconciles the flat legacy and nested canonical response shapes
// into the single structures consumers read. It performs no I/O.
package normalizer

import (
	"encoding/json"
	"fmt"

	"jusho-client/internal/models"
)

// Normalize converts a /normalize payload in either shape into a NormalizationResult.
//
// A payload carrying a top-level "full_address" key is already flat and is only
// default-filled. Anything else is read as the nested address/kana/codes/geo/meta
// shape. Normalizing the marshaled output again yields the same value.
func Normalize(raw json.RawMessage) (models.NormalizationResult, error) {
	var probe struct {
		FullAddress *string `json:"full_address"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return models.NormalizationResult{}, fmt.Errorf("normalizer: invalid payload: %w", err)
	}

	var res models.NormalizationResult
	if probe.FullAddress != nil {
		if err := json.Unmarshal(raw, &res); err != nil {
			return models.NormalizationResult{}, fmt.Errorf("normalizer: invalid flat payload: %w", err)
		}
	} else {
		var nested models.NormalizeResponse
		if err := json.Unmarshal(raw, &nested); err != nil {
			return models.NormalizationResult{}, fmt.Errorf("normalizer: invalid nested payload: %w", err)
		}
		res = FromNested(nested)
	}

	finalize(&res)
	return res, nil
}

// FromNested projects the nested shape onto the flat result. Absent groups leave
// their fields at the zero value.
func FromNested(n models.NormalizeResponse) models.NormalizationResult {
	var res models.NormalizationResult

	if a := n.Address; a != nil {
		res.FullAddress = a.Full
		res.Pref = a.Pref
		res.City = a.City
		res.Town = a.Town
		res.Koaza = a.Koaza
		res.Banchi = a.Banchi
		res.Go = a.Go
		res.BuildingName = a.Building
	}

	if k := n.Kana; k != nil {
		res.PrefKana = k.Pref
		res.CityKana = k.City
		res.TownKana = k.Town
	}

	if c := n.Codes; c != nil {
		res.PostCode = c.PostCode
		res.PrefCode = c.PrefCode
		res.CityCode = c.CityCode
		res.Citycode = c.CityCode
		res.TownCode = c.TownCode
	}

	if g := n.Geo; g != nil {
		res.Lat = g.Lat
		res.Lng = g.Lng
	}

	if m := n.Meta; m != nil {
		res.MatchType = m.MatchType
		res.MatchLevelLabel = m.MatchLevelLabel
		res.IsJigyosyo = m.IsJigyosyo
		res.IsTatemono = m.IsTatemono
		res.Version = m.Version
		res.KokudoVersion = m.KokudoVersion
		res.KenallVersion = m.KenallVersion
		if m.MatchLevel != nil {
			res.MatchLevel = *m.MatchLevel
		}
		if m.Confidence != nil {
			res.Confidence = *m.Confidence
		}
	}

	if t := n.Toorina; t != nil {
		res.Toorina = t.Value
		res.NormalizedAddressType1WithToorina = t.FullAddressWithToorina
	}

	if r := n.Romaji; r != nil {
		romaji := *r
		res.Romaji = &romaji
	}
	if v := n.AddressVariants; v != nil {
		variants := *v
		res.AddressVariants = &variants
	}
	if j := n.JigyosyoInfo; j != nil {
		info := *j
		res.JigyosyoInfo = &info
	}
	if b := n.BuildingInfo; b != nil {
		info := *b
		res.BuildingInfo = &info
	}

	return res
}

// finalize applies the invariants shared by both shapes.
func finalize(res *models.NormalizationResult) {
	if res.Citycode == "" {
		res.Citycode = res.CityCode
	}
	if res.CityCode == "" {
		res.CityCode = res.Citycode
	}

	if !res.IsJigyosyo {
		res.JigyosyoInfo = nil
	}
	if !res.IsTatemono {
		res.BuildingInfo = nil
	}
}
