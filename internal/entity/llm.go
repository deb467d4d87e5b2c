package entity

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// DefaultSystemPrompt is sent when a caller passes an empty system prompt.
const DefaultSystemPrompt = "You are a helpful AI assistant."

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

type ChatCompletionResponse struct {
	Choices []ChatChoice `json:"choices"`
}

// UpstreamErrorBody is the error envelope returned by the upstream service
// on non-2xx responses.
type UpstreamErrorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
