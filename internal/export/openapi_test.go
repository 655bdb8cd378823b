package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestBuildOpenAPIDocument(t *testing.T) {
	doc, err := BuildOpenAPIDocument(sampleCollection())
	if err != nil {
		t.Fatalf("BuildOpenAPIDocument() failed: %v", err)
	}

	if doc.Info.Title != "Demo API" || doc.Info.Version != "1.2.0" {
		t.Errorf("unexpected info: %+v", doc.Info)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "https://api.example.com" {
		t.Errorf("unexpected servers: %+v", doc.Servers)
	}

	userPath := doc.Paths.Value("/users/{id}")
	if userPath == nil || userPath.Get == nil {
		t.Fatal("GET /users/{id} missing from document")
	}
	if userPath.Get.Summary != "Get user" {
		t.Errorf("operation summary = %q", userPath.Get.Summary)
	}
	if len(userPath.Get.Parameters) != 3 {
		t.Errorf("operation has %d parameters, want 3", len(userPath.Get.Parameters))
	}
	if userPath.Get.Responses == nil || userPath.Get.Responses.Value("200") == nil {
		t.Error("200 response missing")
	}

	createPath := doc.Paths.Value("/users")
	if createPath == nil || createPath.Post == nil {
		t.Fatal("POST /users missing from document")
	}
	if createPath.Post.RequestBody == nil || createPath.Post.RequestBody.Value == nil {
		t.Fatal("request body missing")
	}
	media := createPath.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Example == nil {
		t.Error("request body example missing")
	}
}

func TestSaveOpenAPIDocumentFormats(t *testing.T) {
	doc, err := BuildOpenAPIDocument(sampleCollection())
	if err != nil {
		t.Fatalf("BuildOpenAPIDocument() failed: %v", err)
	}

	t.Run("json", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "openapi.json")
		if err := SaveOpenAPIDocument(doc, outputPath); err != nil {
			t.Fatalf("SaveOpenAPIDocument() failed: %v", err)
		}
		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if parsed["openapi"] != "3.0.3" {
			t.Errorf("openapi version = %v", parsed["openapi"])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "openapi.yaml")
		if err := SaveOpenAPIDocument(doc, outputPath); err != nil {
			t.Fatalf("SaveOpenAPIDocument() failed: %v", err)
		}
		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		var parsed map[string]interface{}
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("output is not valid YAML: %v", err)
		}
		if parsed["openapi"] != "3.0.3" {
			t.Errorf("openapi version = %v", parsed["openapi"])
		}
	})
}
