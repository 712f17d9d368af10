package models

import "time"

type PageView struct {
	ID        int       `json:"id"`
	Path      string    `json:"path"`
	Referrer  *string   `json:"referrer"`
	UserAgent *string   `json:"user_agent"`
	IPAddress *string   `json:"ip_address"`
	SessionID *string   `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PageViewRequest is the client payload; user agent and IP are taken from
// the request itself, never trusted from the body.
type PageViewRequest struct {
	Path      string  `json:"path"`
	Referrer  *string `json:"referrer"`
	SessionID *string `json:"sessionId"`
}
