package domain

import "context"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// ChatMessage is one turn of a chat session.
type ChatMessage struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // set on assistant turns that call tools
	ToolCallID string     // set on tool turns
	Name       string     // tool name on tool turns
}

// ToolDefinition declares a callable function to the model.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema
}

// ChatRequest is a single completion request over the full session history.
type ChatRequest struct {
	Messages []ChatMessage
	Tools    []ToolDefinition
	JSONMode bool // ask the provider for a JSON object response
}

// ChatResponse is the first choice of a completion plus its usage.
type ChatResponse struct {
	Message      ChatMessage
	PromptTokens int
	TotalTokens  int
}

// ChatModel is a chat completion provider.
type ChatModel interface {
	Complete(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
