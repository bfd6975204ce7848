package ollamaclient

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetModelRegistry_Singleton(t *testing.T) {
	if GetModelRegistry() != GetModelRegistry() {
		t.Error("GetModelRegistry() returned distinct instances")
	}
}

func TestModelRegistry_EmbeddedCatalog(t *testing.T) {
	registry := GetModelRegistry()

	meta, ok := registry.Lookup("llama3.1:8b")
	if !ok {
		t.Fatal("embedded catalog is missing llama3.1:8b")
	}
	if meta.Family != "llama" {
		t.Errorf("family = %q, want %q", meta.Family, "llama")
	}
	if meta.ContextWindow != 131072 {
		t.Errorf("context window = %d, want 131072", meta.ContextWindow)
	}

	if _, ok := registry.Lookup("no-such-model"); ok {
		t.Error("Lookup succeeded for an unknown model")
	}
}

func TestModelRegistry_Features(t *testing.T) {
	registry := GetModelRegistry()

	tests := []struct {
		model  string
		vision bool
		tools  bool
	}{
		{"llama3.2-vision:11b", true, false},
		{"llava:7b", true, false},
		{"llama3.1:8b", false, true},
		{"gemma2:9b", false, false},
		{"unknown-model", false, false},
	}
	for _, tt := range tests {
		if got := registry.SupportsVision(tt.model); got != tt.vision {
			t.Errorf("SupportsVision(%q) = %v, want %v", tt.model, got, tt.vision)
		}
		if got := registry.SupportsTools(tt.model); got != tt.tools {
			t.Errorf("SupportsTools(%q) = %v, want %v", tt.model, got, tt.tools)
		}
	}
}

func TestModelRegistry_ContextWindowFallback(t *testing.T) {
	registry := GetModelRegistry()

	if got := registry.ContextWindow("llava:7b", 2048); got != 4096 {
		t.Errorf("ContextWindow(llava:7b) = %d, want 4096", got)
	}
	if got := registry.ContextWindow("unknown-model", 2048); got != 2048 {
		t.Errorf("ContextWindow(unknown) = %d, want the 2048 fallback", got)
	}
}

func TestModelRegistry_RegisterModel(t *testing.T) {
	registry := GetModelRegistry()
	registry.RegisterModel("custom:1b", ModelMetadata{
		Family:        "custom",
		ContextWindow: 8192,
		Features:      ModelFeatures{Tools: true},
	})

	meta, ok := registry.Lookup("custom:1b")
	if !ok {
		t.Fatal("registered model not found")
	}
	if meta.ContextWindow != 8192 || !meta.Features.Tools {
		t.Errorf("metadata = %+v, want what was registered", meta)
	}
}

func TestModelRegistry_LoadModelsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	catalog := `version: "1.0.0"
last_updated: "2026-08-01"
models:
  acme:70b:
    family: acme
    parameter_size: 70B
    context_window: 32768
    features:
      vision: true
      tools: true
`
	if err := os.WriteFile(path, []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	registry := GetModelRegistry()
	if err := registry.LoadModelsFromFile(path); err != nil {
		t.Fatalf("LoadModelsFromFile() error = %v", err)
	}

	meta, ok := registry.Lookup("acme:70b")
	if !ok {
		t.Fatal("loaded model not found")
	}
	if meta.ContextWindow != 32768 || !meta.Features.Vision {
		t.Errorf("metadata = %+v, want the file contents", meta)
	}

	// Merging does not drop the embedded entries.
	if _, ok := registry.Lookup("llama3.1:8b"); !ok {
		t.Error("loading a file dropped the embedded catalog")
	}
}

func TestModelRegistry_LoadModelsFromFileErrors(t *testing.T) {
	registry := GetModelRegistry()

	if err := registry.LoadModelsFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("models: [not a map"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := registry.LoadModelsFromFile(bad); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
