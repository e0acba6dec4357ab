package models

import "encoding/json"

// AddressInfo holds the representative address components of a normalized address.
type AddressInfo struct {
	Full     string `json:"full"`
	Pref     string `json:"pref"`
	City     string `json:"city"`
	Town     string `json:"town"`
	Koaza    string `json:"koaza"`
	Banchi   string `json:"banchi"`
	Go       string `json:"go"`
	Building string `json:"building"`
}

// VariantAddress is the pref/city/town spelling used by a single upstream data source.
type VariantAddress struct {
	Pref string `json:"pref"`
	City string `json:"city"`
	Town string `json:"town"`
}

// AddressVariants carries the MLIT (kokudo) and Japan Post (kenall) spellings of the same address.
type AddressVariants struct {
	Kokudo VariantAddress `json:"kokudo"`
	Kenall VariantAddress `json:"kenall"`
}

// KanaInfo holds katakana readings.
type KanaInfo struct {
	Pref string `json:"pref"`
	City string `json:"city"`
	Town string `json:"town"`
}

// CodesInfo holds postal and administrative codes.
type CodesInfo struct {
	PostCode string `json:"post_code"`
	PrefCode string `json:"pref_code"`
	CityCode string `json:"city_code"`
	TownCode string `json:"town_code"`
}

// GeoInfo holds coordinates as decimal strings, exactly as the service returns them.
type GeoInfo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// MetaInfo describes how an address was matched.
type MetaInfo struct {
	MatchType       string  `json:"match_type"`
	MatchLevel      int     `json:"match_level"`
	MatchLevelLabel string  `json:"match_level_label"`
	Confidence      float64 `json:"confidence"`
	IsJigyosyo      bool    `json:"is_jigyosyo"`
	IsTatemono      bool    `json:"is_tatemono"`
	Version         string  `json:"version"`
	KokudoVersion   string  `json:"kokudo_version"`
	KenallVersion   string  `json:"kenall_version"`
}

// RomajiInfo holds romanized readings.
type RomajiInfo struct {
	Pref string `json:"pref"`
	City string `json:"city"`
	Town string `json:"town"`
	Full string `json:"full"`
}

// ToorinaInfo is the Kyoto street-name qualifier of an address.
type ToorinaInfo struct {
	Value                  string `json:"value"`
	FullAddressWithToorina string `json:"full_address_with_toorina"`
}

// JigyosyoInfo describes a business office that owns a dedicated postal code.
type JigyosyoInfo struct {
	JigyosyoName     string `json:"jigyosyo_name"`
	JigyosyoNameKana string `json:"jigyosyo_name_kana"`
	HandlingOffice   string `json:"handling_office"`
	AddressDetail    string `json:"address_detail"`
}

// BuildingInfo describes a large building with floor-specific postal codes.
type BuildingInfo struct {
	Building      string `json:"building"`
	BuildingShort string `json:"building_short"`
	Floor         string `json:"floor"`
	FloorKanji    string `json:"floor_kanji"`
	Room          string `json:"room"`
}

// NormalizeResponse is the nested shape returned by POST /normalize.
// Every group is a pointer because the service may omit any of them.
type NormalizeResponse struct {
	Address         *AddressInfo     `json:"address"`
	AddressVariants *AddressVariants `json:"address_variants"`
	Kana            *KanaInfo        `json:"kana"`
	Romaji          *RomajiInfo      `json:"romaji"`
	Codes           *CodesInfo       `json:"codes"`
	Geo             *GeoInfo         `json:"geo"`
	Meta            *NestedMeta      `json:"meta"`
	Toorina         *ToorinaInfo     `json:"toorina"`
	JigyosyoInfo    *JigyosyoInfo    `json:"jigyosyo_info"`
	BuildingInfo    *BuildingInfo    `json:"building_info"`
}

// NestedMeta mirrors MetaInfo but keeps track of which numeric fields were sent.
type NestedMeta struct {
	MatchType       string   `json:"match_type"`
	MatchLevel      *int     `json:"match_level"`
	MatchLevelLabel string   `json:"match_level_label"`
	Confidence      *float64 `json:"confidence"`
	IsJigyosyo      bool     `json:"is_jigyosyo"`
	IsTatemono      bool     `json:"is_tatemono"`
	Version         string   `json:"version"`
	KokudoVersion   string   `json:"kokudo_version"`
	KenallVersion   string   `json:"kenall_version"`
}

// ErrorBody is the error payload of a non-success response. Detail is kept raw because
// it is either a string or a structured object such as an ambiguous match.
type ErrorBody struct {
	Error  string          `json:"error,omitempty"`
	Detail json.RawMessage `json:"detail,omitempty"`
}
