package ollamaclient

// ChatRequest contains the parameters for one chat completion call.
// Build one per call with NewChatRequest and the With* setters; the client
// only touches the Messages slice and the Stream flag before dispatch.
type ChatRequest struct {
	// Model is the model identifier (e.g., "llama3.1:8b").
	// When empty, the client's configured default model is used.
	Model string `json:"model"`

	// Messages is the conversation sent on the wire, oldest first.
	Messages []ChatMessage `json:"messages"`

	// Stream selects the response mode. Chat and ChatStream overwrite this
	// field on the transmitted request regardless of what the caller set.
	Stream bool `json:"stream"`

	// Format constrains the response format (e.g., "json").
	Format string `json:"format,omitempty"`

	// KeepAlive controls how long the model stays loaded after the call
	// (e.g., "5m", "0" to unload immediately).
	KeepAlive string `json:"keep_alive,omitempty"`

	// Template overrides the model's prompt template.
	Template string `json:"template,omitempty"`

	// Options carries generation parameters. Opaque to the call logic.
	Options *Options `json:"options,omitempty"`
}

// NewChatRequest creates a request for the given model and messages.
func NewChatRequest(model string, messages []ChatMessage) *ChatRequest {
	return &ChatRequest{
		Model:    model,
		Messages: messages,
	}
}

// WithFormat sets the response format and returns the request.
func (r *ChatRequest) WithFormat(format string) *ChatRequest {
	r.Format = format
	return r
}

// WithKeepAlive sets the keep-alive duration and returns the request.
func (r *ChatRequest) WithKeepAlive(keepAlive string) *ChatRequest {
	r.KeepAlive = keepAlive
	return r
}

// WithTemplate sets a prompt template override and returns the request.
func (r *ChatRequest) WithTemplate(template string) *ChatRequest {
	r.Template = template
	return r
}

// WithOptions sets the generation parameters and returns the request.
func (r *ChatRequest) WithOptions(options *Options) *ChatRequest {
	r.Options = options
	return r
}
