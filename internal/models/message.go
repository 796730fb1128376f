// ABOUTME: Role-tagged chat messages sent to the completion endpoint
// ABOUTME: Only system and user roles are produced by this program
package models

// Role identifies who authored a chat message
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ChatMessage is one entry of a chat completion request
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system instruction message
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user message
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}
