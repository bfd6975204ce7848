package ollamaclient

import "encoding/base64"

// MessageRole identifies who produced a chat turn.
// Using a typed constant prevents typos and provides compile-time safety.
type MessageRole string

// Known message roles.
const (
	// RoleUser is a turn written by the end user.
	RoleUser MessageRole = "user"

	// RoleAssistant is a turn generated by the model.
	RoleAssistant MessageRole = "assistant"

	// RoleSystem is an instruction turn that steers the model.
	RoleSystem MessageRole = "system"
)

// String returns the string representation of the role.
func (r MessageRole) String() string {
	return string(r)
}

// IsValid returns true if the role is one of the known roles.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// Image is a base64-encoded image attachment carried on a chat turn.
// The payload is opaque to this library; the server decodes it.
type Image string

// NewImageFromBytes encodes raw image data into an Image.
func NewImageFromBytes(data []byte) Image {
	return Image(base64.StdEncoding.EncodeToString(data))
}

// ChatMessage is a single turn in a conversation.
//
// Messages are value types; construct them with NewChatMessage or one of
// the role-specific helpers and treat them as immutable afterwards.
type ChatMessage struct {
	// Role is who produced this turn: "user", "assistant" or "system".
	Role MessageRole `json:"role"`

	// Content is the text of the turn.
	Content string `json:"content"`

	// Images holds optional image attachments, in the order they were added.
	Images []Image `json:"images,omitempty"`
}

// NewChatMessage creates a message with the given role and content.
func NewChatMessage(role MessageRole, content string) ChatMessage {
	return ChatMessage{Role: role, Content: content}
}

// UserMessage creates a user turn.
func UserMessage(content string) ChatMessage {
	return NewChatMessage(RoleUser, content)
}

// AssistantMessage creates an assistant turn.
func AssistantMessage(content string) ChatMessage {
	return NewChatMessage(RoleAssistant, content)
}

// SystemMessage creates a system turn.
func SystemMessage(content string) ChatMessage {
	return NewChatMessage(RoleSystem, content)
}

// WithImages returns a copy of the message with the given attachments,
// replacing any previously attached images.
func (m ChatMessage) WithImages(images []Image) ChatMessage {
	m.Images = images
	return m
}

// AddImage returns a copy of the message with one more attachment appended.
func (m ChatMessage) AddImage(image Image) ChatMessage {
	images := make([]Image, 0, len(m.Images)+1)
	images = append(images, m.Images...)
	m.Images = append(images, image)
	return m
}
