package model

// CompletionRequest is a single prompt for the generation collaborator.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// Usage is token accounting reported by the generation collaborator.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is generated text with its usage.
type Completion struct {
	Text  string
	Usage Usage
}
