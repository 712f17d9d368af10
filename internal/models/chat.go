package models

// ChatMessage represents a single turn in a conversation transcript.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the audit chat endpoint. The client
// always sends its full accumulated history; the relay holds no session
// state of its own.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Stage    int           `json:"stage,omitempty"`
}

// AnalyzeRequest is the payload for the one-shot audit analysis endpoint.
type AnalyzeRequest struct {
	WebsiteURL   string `json:"websiteUrl"`
	BusinessType string `json:"businessType"`
	Challenges   string `json:"challenges"`
}

// AnalyzeResponse carries the buffered analysis text.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
