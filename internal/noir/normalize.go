package noir

import (
	"fmt"
	"sort"

	"noir-api-mapper/internal/types"
)

// Diagnostics summarizes what Normalize saw without deciding how to report
// it; the orchestrator owns that.
type Diagnostics struct {
	// Matched is the number of records that validated into endpoints.
	Matched int
	// Skipped lists candidate records that failed shape validation.
	Skipped []SkippedRecord
	// TopLevelKeys captures the payload's top-level keys when no candidate
	// matched at all, to help diagnose a changed Noir output shape.
	TopLevelKeys []string
}

// SkippedRecord is a candidate endpoint that was dropped during validation.
type SkippedRecord struct {
	Node   map[string]interface{}
	Reason string
}

// Normalize walks an arbitrarily shaped Noir JSON payload and collects every
// mapping that looks like an endpoint record. Noir has historically emitted
// endpoints under a variety of keys and nesting levels (endpoints,
// active_results, nested under data/results), so instead of trusting any
// particular layout we take every map carrying both "method" and "url" keys.
// Malformed candidates are skipped, never fatal. Descent continues into
// matched nodes, so duplicates are possible; deduplication happens at merge
// time.
func Normalize(raw interface{}) ([]types.NoirEndpoint, Diagnostics) {
	var endpoints []types.NoirEndpoint
	var diag Diagnostics

	walk(raw, func(node map[string]interface{}) {
		endpoint, err := endpointFromNode(node)
		if err != nil {
			diag.Skipped = append(diag.Skipped, SkippedRecord{Node: node, Reason: err.Error()})
			return
		}
		endpoints = append(endpoints, endpoint)
	})

	diag.Matched = len(endpoints)
	if len(endpoints) == 0 {
		if m, ok := raw.(map[string]interface{}); ok {
			diag.TopLevelKeys = sortedKeys(m)
		}
	}
	return endpoints, diag
}

// walk performs a depth-first traversal, visiting every map node that has
// both a method and a url key. Map keys are visited in sorted order: Go
// randomizes map iteration, and the batcher downstream needs identical runs
// to produce identical batches.
func walk(node interface{}, visit func(map[string]interface{})) {
	switch v := node.(type) {
	case map[string]interface{}:
		_, hasMethod := v["method"]
		_, hasURL := v["url"]
		if hasMethod && hasURL {
			visit(v)
		}
		for _, key := range sortedKeys(v) {
			walk(v[key], visit)
		}
	case []interface{}:
		for _, item := range v {
			walk(item, visit)
		}
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func endpointFromNode(node map[string]interface{}) (types.NoirEndpoint, error) {
	method, ok := node["method"].(string)
	if !ok || method == "" {
		return types.NoirEndpoint{}, fmt.Errorf("method must be a non-empty string")
	}
	url, ok := node["url"].(string)
	if !ok || url == "" {
		return types.NoirEndpoint{}, fmt.Errorf("url must be a non-empty string")
	}

	endpoint := types.NoirEndpoint{Method: method, URL: url}

	if raw, present := node["params"]; present && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return types.NoirEndpoint{}, fmt.Errorf("params must be an array")
		}
		for i, item := range list {
			param, err := paramFromNode(item)
			if err != nil {
				return types.NoirEndpoint{}, fmt.Errorf("params[%d]: %v", i, err)
			}
			endpoint.Params = append(endpoint.Params, param)
		}
	}

	if raw, present := node["sources"]; present && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return types.NoirEndpoint{}, fmt.Errorf("sources must be an array")
		}
		for i, item := range list {
			source, ok := item.(string)
			if !ok {
				return types.NoirEndpoint{}, fmt.Errorf("sources[%d] must be a string", i)
			}
			endpoint.Sources = append(endpoint.Sources, source)
		}
	}

	return endpoint, nil
}

func paramFromNode(item interface{}) (types.NoirParam, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return types.NoirParam{}, fmt.Errorf("must be an object")
	}
	name, ok := m["name"].(string)
	if !ok {
		return types.NoirParam{}, fmt.Errorf("name must be a string")
	}
	paramType, ok := m["type"].(string)
	if !ok {
		return types.NoirParam{}, fmt.Errorf("type must be a string")
	}
	param := types.NoirParam{Name: name, Type: paramType}
	if extra, ok := m["extra"].(map[string]interface{}); ok {
		param.Extra = extra
	}
	return param, nil
}
