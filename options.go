package ollamaclient

// Options contains model generation parameters for a chat request.
// All fields are optional; zero values are omitted from the wire payload and
// the server falls back to the model's defaults.
type Options struct {
	// Sampling parameters
	Temperature      float64 `json:"temperature,omitempty"`       // 0.0-2.0
	TopK             int     `json:"top_k,omitempty"`             // top-K sampling
	TopP             float64 `json:"top_p,omitempty"`             // 0.0-1.0 nucleus sampling
	MinP             float64 `json:"min_p,omitempty"`             // minimum probability cutoff
	RepeatPenalty    float64 `json:"repeat_penalty,omitempty"`    // penalize repeated tokens
	PresencePenalty  float64 `json:"presence_penalty,omitempty"`  // penalize seen topics
	FrequencyPenalty float64 `json:"frequency_penalty,omitempty"` // penalize frequent tokens

	// Context parameters
	NumCtx     int `json:"num_ctx,omitempty"`     // context window size
	NumPredict int `json:"num_predict,omitempty"` // max tokens to generate, -1 for unlimited

	// Stopping
	Stop []string `json:"stop,omitempty"` // stop sequences

	// Seed for reproducible sampling
	Seed int `json:"seed,omitempty"`
}
