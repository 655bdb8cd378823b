package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"noir-api-mapper/internal/types"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// BuildOpenAPIDocument converts the merged collection into an OpenAPI 3
// document, the second import format most API tools accept.
func BuildOpenAPIDocument(collection *types.ApiCollection) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   collection.Title,
			Version: collection.Version,
		},
		Servers: openapi3.Servers{
			&openapi3.Server{URL: collection.BaseURL},
		},
		Paths: openapi3.NewPaths(),
	}

	for _, endpoint := range collection.Endpoints {
		operation := openapi3.NewOperation()
		operation.Summary = endpoint.Summary
		operation.Description = endpoint.Description

		for _, param := range endpoint.PathParams {
			operation.AddParameter(buildParameter(param))
		}
		for _, param := range endpoint.QueryParams {
			operation.AddParameter(buildParameter(param))
		}
		for _, param := range endpoint.Headers {
			operation.AddParameter(buildParameter(param))
		}

		if endpoint.RequestBody != nil {
			operation.RequestBody = buildRequestBody(endpoint.RequestBody)
		}

		for _, response := range endpoint.Responses {
			operation.AddResponse(response.Status, buildResponse(response))
		}

		doc.AddOperation(endpoint.Path, strings.ToUpper(endpoint.Method), operation)
	}

	return doc, nil
}

func buildParameter(param types.ApiParam) *openapi3.Parameter {
	return &openapi3.Parameter{
		Name:        param.Name,
		In:          param.In,
		Required:    param.Required,
		Description: param.Description,
		Schema:      openapi3.NewSchemaRef("", schemaForType(param.Type)),
	}
}

func schemaForType(paramType string) *openapi3.Schema {
	switch paramType {
	case "integer":
		return openapi3.NewIntegerSchema()
	case "number":
		return openapi3.NewFloat64Schema()
	case "boolean":
		return openapi3.NewBoolSchema()
	default:
		return openapi3.NewStringSchema()
	}
}

func buildRequestBody(requestBody map[string]interface{}) *openapi3.RequestBodyRef {
	example, ok := requestBody["example"]
	if !ok || example == nil {
		example = requestBody
	}
	mediaType := openapi3.NewMediaType()
	mediaType.Example = example
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithContent(openapi3.Content{
			"application/json": mediaType,
		}),
	}
}

func buildResponse(response types.ApiResponse) *openapi3.Response {
	result := openapi3.NewResponse().WithDescription(fmt.Sprintf("Status %d", response.Status))
	if len(response.Schema) == 0 && response.Example == nil {
		return result
	}

	mediaType := openapi3.NewMediaType()
	if len(response.Schema) > 0 {
		// The synthesized schema is an opaque JSON Schema object; let
		// kin-openapi interpret it rather than rebuilding it field by field.
		if data, err := json.Marshal(response.Schema); err == nil {
			var schema openapi3.Schema
			if err := schema.UnmarshalJSON(data); err == nil {
				mediaType.Schema = openapi3.NewSchemaRef("", &schema)
			}
		}
	}
	if response.Example != nil {
		mediaType.Example = response.Example
	}

	contentType := response.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	result.Content = openapi3.Content{contentType: mediaType}
	return result
}

// SaveOpenAPIDocument writes the document as JSON, or as YAML when the
// output path has a .yaml/.yml extension.
func SaveOpenAPIDocument(doc *openapi3.T, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".yaml", ".yml":
		jsonData, err := doc.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal OpenAPI document: %w", err)
		}
		var tree interface{}
		if err := json.Unmarshal(jsonData, &tree); err != nil {
			return fmt.Errorf("failed to convert OpenAPI document to YAML: %w", err)
		}
		data, err = yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to convert OpenAPI document to YAML: %w", err)
		}
	default:
		var err error
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal OpenAPI document: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write OpenAPI document: %w", err)
	}
	return nil
}
