package noir

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return value
}

func TestNormalizeFindsEndpointsAtAnyDepth(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{
			name:    "top-level endpoints key",
			payload: `{"endpoints": [{"method": "GET", "url": "/users"}]}`,
			want:    1,
		},
		{
			name:    "nested under data and results",
			payload: `{"data": {"results": [{"method": "POST", "url": "/orders"}]}}`,
			want:    1,
		},
		{
			name:    "top-level array",
			payload: `[{"method": "GET", "url": "/a"}, {"method": "PUT", "url": "/b"}]`,
			want:    2,
		},
		{
			name: "endpoint embedded inside a matched endpoint",
			payload: `{"method": "GET", "url": "/outer",
				"details": {"method": "DELETE", "url": "/inner"}}`,
			want: 2,
		},
		{
			name:    "scalar payload",
			payload: `"just a string"`,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints, diag := Normalize(decode(t, tt.payload))
			if len(endpoints) != tt.want {
				t.Errorf("Normalize() found %d endpoints, want %d", len(endpoints), tt.want)
			}
			if diag.Matched != len(endpoints) {
				t.Errorf("Diagnostics.Matched = %d, want %d", diag.Matched, len(endpoints))
			}
		})
	}
}

func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	payload := decode(t, `{"endpoints": [
		{"method": "GET", "url": "/ok"},
		{"method": 42, "url": "/bad-method"},
		{"method": "POST", "url": ""},
		{"method": "PUT", "url": "/bad-params", "params": "nope"},
		{"method": "PATCH", "url": "/bad-sources", "sources": [1]}
	]}`)

	endpoints, diag := Normalize(payload)
	if len(endpoints) != 1 {
		t.Fatalf("Normalize() found %d endpoints, want 1", len(endpoints))
	}
	if endpoints[0].URL != "/ok" {
		t.Errorf("kept endpoint URL = %q, want %q", endpoints[0].URL, "/ok")
	}
	if len(diag.Skipped) != 4 {
		t.Errorf("Diagnostics.Skipped has %d records, want 4", len(diag.Skipped))
	}
	for _, endpoint := range endpoints {
		if endpoint.Method == "" || endpoint.URL == "" {
			t.Errorf("output contains endpoint with empty method or url: %+v", endpoint)
		}
	}
}

func TestNormalizeParsesParamsAndSources(t *testing.T) {
	payload := decode(t, `{"endpoints": [{
		"method": "GET",
		"url": "/users/{id}",
		"params": [{"name": "id", "type": "path", "extra": {"format": "int"}}],
		"sources": ["app/routes.py"]
	}]}`)

	endpoints, _ := Normalize(payload)
	if len(endpoints) != 1 {
		t.Fatalf("Normalize() found %d endpoints, want 1", len(endpoints))
	}
	endpoint := endpoints[0]
	if len(endpoint.Params) != 1 || endpoint.Params[0].Name != "id" || endpoint.Params[0].Type != "path" {
		t.Errorf("unexpected params: %+v", endpoint.Params)
	}
	if endpoint.Params[0].Extra["format"] != "int" {
		t.Errorf("extra attributes not preserved: %+v", endpoint.Params[0].Extra)
	}
	if len(endpoint.Sources) != 1 || endpoint.Sources[0] != "app/routes.py" {
		t.Errorf("unexpected sources: %+v", endpoint.Sources)
	}
}

func TestNormalizeReportsEmptyPayload(t *testing.T) {
	payload := decode(t, `{"meta": {"version": "1.0"}, "active_results": []}`)

	endpoints, diag := Normalize(payload)
	if len(endpoints) != 0 {
		t.Fatalf("Normalize() found %d endpoints, want 0", len(endpoints))
	}
	if len(diag.TopLevelKeys) != 2 {
		t.Fatalf("Diagnostics.TopLevelKeys = %v, want the payload's two keys", diag.TopLevelKeys)
	}
	// Sorted, so the report is stable across runs.
	if diag.TopLevelKeys[0] != "active_results" || diag.TopLevelKeys[1] != "meta" {
		t.Errorf("Diagnostics.TopLevelKeys = %v, want sorted keys", diag.TopLevelKeys)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	payload := decode(t, `{
		"b": [{"method": "GET", "url": "/b"}],
		"a": [{"method": "GET", "url": "/a"}],
		"c": [{"method": "GET", "url": "/c"}]
	}`)

	first, _ := Normalize(payload)
	for i := 0; i < 10; i++ {
		again, _ := Normalize(payload)
		for j := range first {
			if first[j].URL != again[j].URL {
				t.Fatalf("ordering changed between runs: %v vs %v", first, again)
			}
		}
	}
	if first[0].URL != "/a" || first[1].URL != "/b" || first[2].URL != "/c" {
		t.Errorf("endpoints not in sorted key order: %+v", first)
	}
}
