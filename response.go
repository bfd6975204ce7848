package ollamaclient

import "time"

// ChatResponse is one chat completion result. In non-streaming mode a call
// yields exactly one ChatResponse; in streaming mode each frame decodes into
// one, and only the frame with Done set carries the final statistics.
type ChatResponse struct {
	// Model is the model that produced the completion.
	Model string `json:"model"`

	// CreatedAt is the server-side creation timestamp, in the server's own
	// format (e.g., "2023-08-04T08:52:19.385406455-07:00"). Kept as a string
	// because the format is owned by the server.
	CreatedAt string `json:"created_at"`

	// Message is the generated chat turn. Present on the terminal value of a
	// non-streaming call; on streaming frames it carries the incremental
	// content for that frame.
	Message *ChatMessage `json:"message,omitempty"`

	// Done reports whether this is the final value of the completion.
	Done bool `json:"done"`

	// ChatFinalData is inlined into the JSON object when Done is true and is
	// nil on every earlier frame.
	*ChatFinalData
}

// ChatFinalData holds the completion statistics present only on the final
// response value.
type ChatFinalData struct {
	// TotalDuration is the total time spent, in nanoseconds.
	TotalDuration int64 `json:"total_duration"`

	// PromptEvalCount is the number of tokens in the prompt.
	PromptEvalCount int `json:"prompt_eval_count"`

	// PromptEvalDuration is the time spent evaluating the prompt, in nanoseconds.
	PromptEvalDuration int64 `json:"prompt_eval_duration"`

	// EvalCount is the number of tokens in the response.
	EvalCount int `json:"eval_count"`

	// EvalDuration is the time spent generating the response, in nanoseconds.
	EvalDuration int64 `json:"eval_duration"`
}

// FinalData returns the completion statistics, or nil if this response is
// not the final value.
func (r *ChatResponse) FinalData() *ChatFinalData {
	return r.ChatFinalData
}

// TotalTime returns the total generation time, or zero when the statistics
// are not present.
func (r *ChatResponse) TotalTime() time.Duration {
	if r.ChatFinalData == nil {
		return 0
	}
	return time.Duration(r.TotalDuration)
}

// TokensPerSecond calculates the generation speed, or zero when the
// statistics are not present.
func (r *ChatResponse) TokensPerSecond() float64 {
	if r.ChatFinalData == nil || r.EvalDuration == 0 {
		return 0
	}
	return float64(r.EvalCount) / (float64(r.EvalDuration) / 1e9)
}
