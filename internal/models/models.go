package models

// Chat roles understood by the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single conversational message sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound request body for the chat endpoints. Caller
// supplied roles are ignored; every message is treated as user input.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse is the outbound response body for the chat endpoints.
type ChatResponse struct {
	Message    string `json:"message"`
	TokensUsed int    `json:"tokens_used"`
}

// Usage records token accounting information reported upstream.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
