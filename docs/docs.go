// Package docs registers the OpenAPI document of the gateway with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/normalize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Normalize a single address",
                "parameters": [
                    {"description": "address to normalize", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/models.NormalizeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.NormalizationResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.AmbiguousMatch"}}
                }
            }
        },
        "/normalize/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Normalize up to 100 addresses",
                "parameters": [
                    {"description": "addresses to normalize", "name": "request", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/models.BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BatchSummary"}}
                }
            }
        },
        "/postal/{code}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Look up an address by postal code",
                "parameters": [
                    {"type": "string", "description": "postal code, hyphen optional", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PostalResult"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/suggest": {
            "get": {
                "produces": ["application/json"],
                "summary": "Suggest addresses for a partial input",
                "parameters": [
                    {"type": "string", "description": "partial address", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuggestResult"}}
                }
            }
        },
        "/validate": {
            "get": {
                "produces": ["application/json"],
                "summary": "Validate an address",
                "parameters": [
                    {"type": "string", "description": "address to validate", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ValidationResult"}}
                }
            }
        },
        "/reverse": {
            "get": {
                "produces": ["application/json"],
                "summary": "Resolve the postal code of an address",
                "parameters": [
                    {"type": "string", "description": "address", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ReverseResult"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.NormalizeRequest": {
            "type": "object",
            "properties": {"address": {"type": "string"}}
        },
        "models.BatchRequest": {
            "type": "object",
            "properties": {"addresses": {"type": "array", "items": {"type": "string"}}}
        },
        "models.NormalizationResult": {
            "type": "object",
            "properties": {
                "full_address": {"type": "string"},
                "pref": {"type": "string"},
                "city": {"type": "string"},
                "town": {"type": "string"},
                "koaza": {"type": "string"},
                "banchi": {"type": "string"},
                "go": {"type": "string"},
                "building_name": {"type": "string"},
                "pref_kana": {"type": "string"},
                "city_kana": {"type": "string"},
                "town_kana": {"type": "string"},
                "post_code": {"type": "string"},
                "pref_code": {"type": "string"},
                "city_code": {"type": "string"},
                "citycode": {"type": "string"},
                "town_code": {"type": "string"},
                "lat": {"type": "string"},
                "lng": {"type": "string"},
                "match_type": {"type": "string"},
                "match_level": {"type": "integer"},
                "match_level_label": {"type": "string"},
                "confidence": {"type": "number"},
                "is_jigyosyo": {"type": "boolean"},
                "is_tatemono": {"type": "boolean"},
                "toorina": {"type": "string"},
                "normalized_address_type1_with_toorina": {"type": "string"},
                "version": {"type": "string"},
                "kokudo_version": {"type": "string"},
                "kenall_version": {"type": "string"}
            }
        },
        "models.AmbiguousMatch": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "candidates": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.BatchOutcome": {
            "type": "object",
            "properties": {
                "input": {"type": "string"},
                "success": {"type": "boolean"},
                "result": {"$ref": "#/definitions/models.NormalizationResult"},
                "error": {"type": "string"}
            }
        },
        "models.BatchSummary": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "success_count": {"type": "integer"},
                "error_count": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.BatchOutcome"}}
            }
        },
        "models.PostalResult": {
            "type": "object",
            "properties": {
                "postal_code": {"type": "string"},
                "address": {"type": "object"},
                "kana": {"type": "object"},
                "codes": {"type": "object"},
                "geo": {"type": "object"}
            }
        },
        "models.SuggestResult": {
            "type": "object",
            "properties": {
                "suggestions": {"type": "array", "items": {"type": "object",
                    "properties": {"address": {"type": "string"}, "postal_code": {"type": "string"}}}}
            }
        },
        "models.ValidationResult": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "normalized": {"$ref": "#/definitions/models.NormalizationResult"},
                "match_level": {"type": "string"}
            }
        },
        "models.ReverseResult": {
            "type": "object",
            "properties": {
                "postal_code": {"type": "string"},
                "address": {"type": "object"},
                "codes": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Jusho gateway",
	Description:      "Japanese address normalization gateway with canonical flat results.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
