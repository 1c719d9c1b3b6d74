package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the generated text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Empty for the worksheet generator, whose
	// instruction travels as a single user message.
	System string

	// Messages is the conversation history. For single-turn generation
	// (the common case here), this contains one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request carrying prompt as the only
// user message.
func UserPrompt(prompt string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

// Prompt returns the concatenated user message text of the request.
func (r Request) Prompt() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleUser {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated text, returned verbatim.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
