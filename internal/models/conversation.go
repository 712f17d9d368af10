package models

import "time"

// ChatConversation is a finished audit-chat exchange persisted for CRM
// visibility. Written asynchronously; never on the streaming path.
type ChatConversation struct {
	ID         int           `json:"id"`
	Stage      int           `json:"stage"`
	Transcript []ChatMessage `json:"transcript"`
	Reply      string        `json:"reply"`
	CreatedAt  time.Time     `json:"created_at"`
}
