package ollamaclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
)

// StreamEvent is one item of a streaming response. Exactly one of Response
// and Err is set.
//
// An event with Err set is terminal: the channel closes immediately after it
// and consumers must treat it as end-of-stream. Errors never surface
// mid-iteration any other way.
type StreamEvent struct {
	// Response is one decoded frame (nil when Err is set).
	Response *ChatResponse

	// Err is a terminal decode or transport failure (nil when Response is set).
	Err error
}

// ChatStream sends a chat completion request in streaming mode and returns a
// channel emitting one StreamEvent per frame. The transmitted request always
// has the streaming flag forced on, regardless of what the caller set.
//
// The channel closes when the server sends the frame with Done set, when the
// connection ends, or after a terminal error event. The sequence is consumed
// by a single reader and is not restartable. To abandon the stream early,
// cancel ctx: walking away from the channel without cancelling leaves the
// producer goroutine and the connection alive until the stream ends on its
// own.
//
// Usage:
//
//	events, err := client.ChatStream(ctx, req)
//	if err != nil { return err }
//	for event := range events {
//	    if event.Err != nil { handle terminal error }
//	    process(event.Response)
//	}
func (c *Client) ChatStream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	r := *req
	r.Stream = true
	if r.Model == "" {
		r.Model = c.config.Model
	}

	resp, err := c.post(ctx, c.streamClient, &r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newStatusError(resp)
	}

	events := make(chan StreamEvent, 8)

	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var frame ChatResponse
			if err := json.Unmarshal(line, &frame); err != nil {
				sendEvent(ctx, events, StreamEvent{Err: &DecodeError{Err: err}})
				return
			}

			if !sendEvent(ctx, events, StreamEvent{Response: &frame}) {
				return
			}
			if frame.Done {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			sendEvent(ctx, events, StreamEvent{Err: &TransportError{Op: "read", Err: err}})
		}
	}()

	return events, nil
}

// sendEvent delivers an event unless the context is cancelled first.
// Returns false when the consumer is gone.
func sendEvent(ctx context.Context, events chan<- StreamEvent, event StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
