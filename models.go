package ollamaclient

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/models/ollama.yaml
var modelMetadataYAML []byte

// Model metadata philosophy:
//
// This registry provides MODEL METADATA for UX and informational purposes.
// It does NOT enforce validation - the server is the source of truth for
// which models exist and what they accept.
//
// Use cases:
//  - Display context windows and parameter sizes in UI
//  - Check vision/tool support before attaching images
//  - Pick sensible num_ctx values per model
//
// The embedded catalog may lag behind new model releases. Library users can
// override it by calling LoadModelsFromFile() with custom YAML or
// RegisterModel() programmatically.

// ModelCatalog represents the full metadata catalog loaded from YAML.
type ModelCatalog struct {
	Version     string                   `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                   `yaml:"last_updated"` // ISO 8601 date
	Models      map[string]ModelMetadata `yaml:"models"`
}

// ModelMetadata describes one known model.
type ModelMetadata struct {
	Family        string        `yaml:"family"`
	ParameterSize string        `yaml:"parameter_size"`
	ContextWindow int           `yaml:"context_window"`
	Features      ModelFeatures `yaml:"features"`
}

// ModelFeatures indicates which features a model supports.
type ModelFeatures struct {
	Vision bool `yaml:"vision"`
	Tools  bool `yaml:"tools"`
}

// ModelRegistry manages model metadata.
type ModelRegistry struct {
	mu     sync.RWMutex
	models map[string]ModelMetadata
}

var (
	globalModelRegistry     *ModelRegistry
	globalModelRegistryOnce sync.Once
)

// GetModelRegistry returns the global model registry (singleton), seeded
// with the embedded catalog.
func GetModelRegistry() *ModelRegistry {
	globalModelRegistryOnce.Do(func() {
		globalModelRegistry = &ModelRegistry{
			models: make(map[string]ModelMetadata),
		}
		if err := globalModelRegistry.loadEmbeddedCatalog(); err != nil {
			// Lookups will simply miss; metadata is advisory.
			fmt.Fprintf(os.Stderr, "Warning: failed to load embedded model catalog: %v\n", err)
		}
	})
	return globalModelRegistry
}

// loadEmbeddedCatalog loads the embedded YAML catalog.
func (r *ModelRegistry) loadEmbeddedCatalog() error {
	var catalog ModelCatalog
	if err := yaml.Unmarshal(modelMetadataYAML, &catalog); err != nil {
		return fmt.Errorf("unmarshal embedded catalog: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, meta := range catalog.Models {
		r.models[name] = meta
	}
	return nil
}

// Lookup returns the metadata for a model, if known.
func (r *ModelRegistry) Lookup(model string) (ModelMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.models[model]
	return meta, ok
}

// SupportsVision reports whether the model is known to accept images.
// Unknown models report false; the server remains the source of truth.
func (r *ModelRegistry) SupportsVision(model string) bool {
	meta, ok := r.Lookup(model)
	return ok && meta.Features.Vision
}

// SupportsTools reports whether the model is known to support tool calling.
func (r *ModelRegistry) SupportsTools(model string) bool {
	meta, ok := r.Lookup(model)
	return ok && meta.Features.Tools
}

// ContextWindow returns the model's context window in tokens, or the given
// fallback when the model is not in the catalog.
func (r *ModelRegistry) ContextWindow(model string, fallback int) int {
	meta, ok := r.Lookup(model)
	if !ok || meta.ContextWindow == 0 {
		return fallback
	}
	return meta.ContextWindow
}

// RegisterModel programmatically registers or overrides model metadata.
func (r *ModelRegistry) RegisterModel(name string, meta ModelMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = meta
}

// LoadModelsFromFile loads a model catalog from a YAML file, merging it over
// the registry's current contents. The file format matches the embedded
// catalog structure.
func (r *ModelRegistry) LoadModelsFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model catalog: %w", err)
	}

	var catalog ModelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("unmarshal model catalog: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, meta := range catalog.Models {
		r.models[name] = meta
	}
	return nil
}

// LoadModelsFromFile is a convenience function that calls the global
// registry's LoadModelsFromFile.
func LoadModelsFromFile(path string) error {
	return GetModelRegistry().LoadModelsFromFile(path)
}

// RegisterModel is a convenience function that calls the global registry's
// RegisterModel.
func RegisterModel(name string, meta ModelMetadata) {
	GetModelRegistry().RegisterModel(name, meta)
}
