package models

// Match levels reported by the service.
const (
	MatchLevelNone = iota
	MatchLevelPref
	MatchLevelCity
	MatchLevelTown
	MatchLevelBlock
	MatchLevelFull
)

var matchLevelLabels = [...]string{"none", "pref", "city", "town", "block", "full"}

// MatchLevelLabel returns the label for a numeric match level, or "" when out of range.
func MatchLevelLabel(level int) string {
	if level < 0 || level >= len(matchLevelLabels) {
		return ""
	}
	return matchLevelLabels[level]
}

// NormalizationResult is the canonical flat result handed to consumers.
// Every key is always present when marshaled; absent values are "", false, 0 or null.
type NormalizationResult struct {
	FullAddress  string `json:"full_address"`
	Pref         string `json:"pref"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Koaza        string `json:"koaza"`
	Banchi       string `json:"banchi"`
	Go           string `json:"go"`
	BuildingName string `json:"building_name"`
	LongName     string `json:"long_name"`

	PrefKana string      `json:"pref_kana"`
	CityKana string      `json:"city_kana"`
	TownKana string      `json:"town_kana"`
	Romaji   *RomajiInfo `json:"romaji"`

	PostCode  string `json:"post_code"`
	PrefCode  string `json:"pref_code"`
	CityCode  string `json:"city_code"`
	Citycode  string `json:"citycode"`
	TownCode  string `json:"town_code"`
	PhoneCode string `json:"phone_code"`

	Lat string `json:"lat"`
	Lng string `json:"lng"`

	MatchType       string  `json:"match_type"`
	MatchLevel      int     `json:"match_level"`
	MatchLevelLabel string  `json:"match_level_label"`
	Confidence      float64 `json:"confidence"`

	IsJigyosyo   bool          `json:"is_jigyosyo"`
	IsTatemono   bool          `json:"is_tatemono"`
	JigyosyoInfo *JigyosyoInfo `json:"jigyosyo_info"`
	BuildingInfo *BuildingInfo `json:"building_info"`

	AddressVariants *AddressVariants `json:"address_variants"`

	Toorina                           string `json:"toorina"`
	NormalizedAddressWithToorina      string `json:"normalized_address_with_toorina"`
	NormalizedAddressType1WithToorina string `json:"normalized_address_type1_with_toorina"`
	NormalizedAddressType5WithToorina string `json:"normalized_address_type5_with_toorina"`

	Version       string `json:"version"`
	KokudoVersion string `json:"kokudo_version"`
	KenallVersion string `json:"kenall_version"`
}
