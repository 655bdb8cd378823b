package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"noir-api-mapper/internal/types"

	"github.com/google/uuid"
)

const (
	collectionSchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
	baseURLVariable     = "baseUrl"
)

// Postman collection v2.1 shapes, trimmed to what the importer needs.

type PostmanCollection struct {
	Info     PostmanInfo       `json:"info"`
	Item     []PostmanItem     `json:"item"`
	Variable []PostmanVariable `json:"variable"`
}

type PostmanInfo struct {
	PostmanID string `json:"_postman_id"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
	Version   string `json:"version"`
}

type PostmanItem struct {
	Name     string         `json:"name"`
	Request  PostmanRequest `json:"request"`
	Response []interface{}  `json:"response"`
}

type PostmanRequest struct {
	Method      string          `json:"method"`
	Header      []PostmanHeader `json:"header"`
	URL         PostmanURL      `json:"url"`
	Description string          `json:"description"`
	Body        *PostmanBody    `json:"body,omitempty"`
}

type PostmanHeader struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type PostmanURL struct {
	Raw   string         `json:"raw"`
	Host  []string       `json:"host"`
	Path  []string       `json:"path"`
	Query []PostmanQuery `json:"query,omitempty"`
}

type PostmanQuery struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Disabled    bool   `json:"disabled"`
}

type PostmanBody struct {
	Mode    string             `json:"mode"`
	Raw     string             `json:"raw"`
	Options PostmanBodyOptions `json:"options"`
}

type PostmanBodyOptions struct {
	Raw PostmanRawOption `json:"raw"`
}

type PostmanRawOption struct {
	Language string `json:"language"`
}

type PostmanVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BuildPostmanCollection renders the merged collection as a Postman v2.1
// collection. The base URL becomes a {{baseUrl}} collection variable so the
// import stays environment-switchable.
func BuildPostmanCollection(collection *types.ApiCollection) PostmanCollection {
	items := make([]PostmanItem, 0, len(collection.Endpoints))
	for _, endpoint := range collection.Endpoints {
		items = append(items, endpointToItem(endpoint))
	}

	return PostmanCollection{
		Info: PostmanInfo{
			PostmanID: uuid.New().String(),
			Name:      collection.Title,
			Schema:    collectionSchemaURL,
			Version:   collection.Version,
		},
		Item: items,
		Variable: []PostmanVariable{
			{Key: baseURLVariable, Value: collection.BaseURL},
		},
	}
}

func endpointToItem(endpoint types.ApiEndpoint) PostmanItem {
	headers := make([]PostmanHeader, 0, len(endpoint.Headers))
	for _, header := range endpoint.Headers {
		headers = append(headers, PostmanHeader{
			Key:         header.Name,
			Type:        "text",
			Description: header.Description,
		})
	}

	url := buildURL(endpoint.Path)
	for _, param := range endpoint.QueryParams {
		url.Query = append(url.Query, PostmanQuery{
			Key:         param.Name,
			Description: param.Description,
			Disabled:    !param.Required,
		})
	}

	name := endpoint.Summary
	if name == "" {
		name = endpoint.Path
	}

	return PostmanItem{
		Name: name,
		Request: PostmanRequest{
			Method:      strings.ToUpper(endpoint.Method),
			Header:      headers,
			URL:         url,
			Description: endpoint.Description,
			Body:        buildBody(endpoint.RequestBody),
		},
		Response: []interface{}{},
	}
}

func buildURL(path string) PostmanURL {
	normalized := strings.TrimLeft(path, "/")
	raw := "{{" + baseURLVariable + "}}"
	if normalized != "" {
		raw += "/" + normalized
	}

	segments := make([]string, 0)
	for _, segment := range strings.Split(normalized, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return PostmanURL{
		Raw:  raw,
		Host: []string{"{{" + baseURLVariable + "}}"},
		Path: segments,
	}
}

func buildBody(requestBody map[string]interface{}) *PostmanBody {
	if requestBody == nil {
		return nil
	}
	example, ok := requestBody["example"]
	if !ok || example == nil {
		example = requestBody
	}
	raw, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return nil
	}
	return &PostmanBody{
		Mode:    "raw",
		Raw:     string(raw),
		Options: PostmanBodyOptions{Raw: PostmanRawOption{Language: "json"}},
	}
}

// SavePostmanCollection writes the collection as indented JSON, creating
// parent directories as needed.
func SavePostmanCollection(collection PostmanCollection, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal Postman collection: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write Postman collection: %w", err)
	}
	return nil
}
