package synthesis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"noir-api-mapper/internal/types"
)

// CollectionSchema is the JSON Schema the synthesis service's response must
// satisfy. It is embedded verbatim in the prompt so the model sees exactly
// the contract DecodeCollection enforces.
const CollectionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ApiCollection",
  "type": "object",
  "additionalProperties": false,
  "required": ["title", "version", "baseUrl", "endpoints"],
  "properties": {
    "title": {"type": "string"},
    "version": {"type": "string"},
    "baseUrl": {"type": "string", "minLength": 1},
    "endpoints": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": [
          "method", "path", "summary", "description",
          "pathParams", "queryParams", "headers", "responses", "source"
        ],
        "properties": {
          "method": {"type": "string"},
          "path": {"type": "string"},
          "summary": {"type": "string"},
          "description": {"type": "string"},
          "pathParams": {"type": "array", "items": {"$ref": "#/definitions/ApiParam"}},
          "queryParams": {"type": "array", "items": {"$ref": "#/definitions/ApiParam"}},
          "headers": {"type": "array", "items": {"$ref": "#/definitions/ApiParam"}},
          "requestBody": {"type": ["object", "null"], "additionalProperties": true},
          "responses": {"type": "array", "items": {"$ref": "#/definitions/ApiResponse"}, "minItems": 1},
          "source": {"type": "object", "additionalProperties": true}
        }
      }
    }
  },
  "definitions": {
    "ApiParam": {
      "type": "object",
      "additionalProperties": false,
      "required": ["name", "in", "required"],
      "properties": {
        "name": {"type": "string"},
        "in": {"type": "string", "enum": ["path", "query", "header"]},
        "required": {"type": "boolean"},
        "type": {"type": "string", "default": "string"},
        "description": {"type": "string", "default": ""}
      }
    },
    "ApiResponse": {
      "type": "object",
      "additionalProperties": false,
      "required": ["status"],
      "properties": {
        "status": {"type": "integer"},
        "contentType": {"type": "string", "default": "application/json"},
        "schema": {"type": "object", "default": {}, "additionalProperties": true},
        "example": {}
      }
    }
  }
}`

// Wire types mirror the schema with pointer fields so a missing required
// field is distinguishable from a zero value. DisallowUnknownFields on the
// decoder rejects any field the schema does not know about; hallucinated
// extras fail here instead of leaking downstream.

type wireCollection struct {
	Title     *string         `json:"title"`
	Version   *string         `json:"version"`
	BaseURL   *string         `json:"baseUrl"`
	Endpoints *[]wireEndpoint `json:"endpoints"`
}

type wireEndpoint struct {
	Method      *string                 `json:"method"`
	Path        *string                 `json:"path"`
	Summary     *string                 `json:"summary"`
	Description *string                 `json:"description"`
	PathParams  *[]wireParam            `json:"pathParams"`
	QueryParams *[]wireParam            `json:"queryParams"`
	Headers     *[]wireParam            `json:"headers"`
	RequestBody map[string]interface{}  `json:"requestBody"`
	Responses   *[]wireResponse         `json:"responses"`
	Source      *map[string]interface{} `json:"source"`
}

type wireParam struct {
	Name        *string `json:"name"`
	In          *string `json:"in"`
	Required    *bool   `json:"required"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

type wireResponse struct {
	Status      *int                   `json:"status"`
	ContentType *string                `json:"contentType"`
	Schema      map[string]interface{} `json:"schema"`
	Example     interface{}            `json:"example"`
}

// DecodeCollection strictly validates data against the collection schema
// and returns the decoded collection with schema defaults applied.
func DecodeCollection(data []byte) (*types.ApiCollection, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var wire wireCollection
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("response does not match the collection schema: %v", err)
	}
	return collectionFromWire(wire)
}

func collectionFromWire(wire wireCollection) (*types.ApiCollection, error) {
	switch {
	case wire.Title == nil:
		return nil, missingField("title")
	case wire.Version == nil:
		return nil, missingField("version")
	case wire.BaseURL == nil:
		return nil, missingField("baseUrl")
	case *wire.BaseURL == "":
		return nil, fmt.Errorf("baseUrl must not be empty")
	case wire.Endpoints == nil:
		return nil, missingField("endpoints")
	}

	collection := &types.ApiCollection{
		Title:     *wire.Title,
		Version:   *wire.Version,
		BaseURL:   *wire.BaseURL,
		Endpoints: make([]types.ApiEndpoint, 0, len(*wire.Endpoints)),
	}
	for i, we := range *wire.Endpoints {
		endpoint, err := endpointFromWire(we)
		if err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %v", i, err)
		}
		collection.Endpoints = append(collection.Endpoints, endpoint)
	}
	return collection, nil
}

func endpointFromWire(wire wireEndpoint) (types.ApiEndpoint, error) {
	switch {
	case wire.Method == nil:
		return types.ApiEndpoint{}, missingField("method")
	case wire.Path == nil:
		return types.ApiEndpoint{}, missingField("path")
	case wire.Summary == nil:
		return types.ApiEndpoint{}, missingField("summary")
	case wire.Description == nil:
		return types.ApiEndpoint{}, missingField("description")
	case wire.PathParams == nil:
		return types.ApiEndpoint{}, missingField("pathParams")
	case wire.QueryParams == nil:
		return types.ApiEndpoint{}, missingField("queryParams")
	case wire.Headers == nil:
		return types.ApiEndpoint{}, missingField("headers")
	case wire.Responses == nil:
		return types.ApiEndpoint{}, missingField("responses")
	case wire.Source == nil:
		return types.ApiEndpoint{}, missingField("source")
	}
	if len(*wire.Responses) == 0 {
		return types.ApiEndpoint{}, fmt.Errorf("responses must not be empty")
	}

	endpoint := types.ApiEndpoint{
		Method:      *wire.Method,
		Path:        *wire.Path,
		Summary:     *wire.Summary,
		Description: *wire.Description,
		RequestBody: wire.RequestBody,
		Source:      *wire.Source,
	}

	var err error
	if endpoint.PathParams, err = paramsFromWire(*wire.PathParams); err != nil {
		return types.ApiEndpoint{}, fmt.Errorf("pathParams: %v", err)
	}
	if endpoint.QueryParams, err = paramsFromWire(*wire.QueryParams); err != nil {
		return types.ApiEndpoint{}, fmt.Errorf("queryParams: %v", err)
	}
	if endpoint.Headers, err = paramsFromWire(*wire.Headers); err != nil {
		return types.ApiEndpoint{}, fmt.Errorf("headers: %v", err)
	}

	endpoint.Responses = make([]types.ApiResponse, 0, len(*wire.Responses))
	for i, wr := range *wire.Responses {
		response, err := responseFromWire(wr)
		if err != nil {
			return types.ApiEndpoint{}, fmt.Errorf("responses[%d]: %v", i, err)
		}
		endpoint.Responses = append(endpoint.Responses, response)
	}
	return endpoint, nil
}

func paramsFromWire(wire []wireParam) ([]types.ApiParam, error) {
	params := make([]types.ApiParam, 0, len(wire))
	for i, wp := range wire {
		param, err := paramFromWire(wp)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %v", i, err)
		}
		params = append(params, param)
	}
	return params, nil
}

func paramFromWire(wire wireParam) (types.ApiParam, error) {
	switch {
	case wire.Name == nil:
		return types.ApiParam{}, missingField("name")
	case wire.In == nil:
		return types.ApiParam{}, missingField("in")
	case wire.Required == nil:
		return types.ApiParam{}, missingField("required")
	}
	switch *wire.In {
	case "path", "query", "header":
	default:
		return types.ApiParam{}, fmt.Errorf("in must be one of path, query, header; got %q", *wire.In)
	}

	param := types.ApiParam{
		Name:     *wire.Name,
		In:       *wire.In,
		Required: *wire.Required,
		Type:     "string",
	}
	if wire.Type != nil {
		param.Type = *wire.Type
	}
	if wire.Description != nil {
		param.Description = *wire.Description
	}
	return param, nil
}

func responseFromWire(wire wireResponse) (types.ApiResponse, error) {
	if wire.Status == nil {
		return types.ApiResponse{}, missingField("status")
	}
	response := types.ApiResponse{
		Status:      *wire.Status,
		ContentType: "application/json",
		Schema:      map[string]interface{}{},
		Example:     wire.Example,
	}
	if wire.ContentType != nil {
		response.ContentType = *wire.ContentType
	}
	if wire.Schema != nil {
		response.Schema = wire.Schema
	}
	return response, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}
