package models

import "time"

// AgentIntel is one message in the inter-agent mailbox.
type AgentIntel struct {
	ID          int       `json:"id"`
	FromAgentID string    `json:"from_agent_id"`
	ToAgentID   string    `json:"to_agent_id"`
	Topic       string    `json:"topic"`
	Payload     string    `json:"payload"`
	LeadID      *string   `json:"lead_id"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type AgentIntelRequest struct {
	FromAgentID string  `json:"from_agent_id"`
	ToAgentID   string  `json:"to_agent_id"`
	Topic       string  `json:"topic"`
	Payload     string  `json:"payload"`
	LeadID      *string `json:"lead_id"`
}

// AgentAvailability tracks the last reported status of an automated agent.
type AgentAvailability struct {
	AgentID     string    `json:"agent_id"`
	Status      string    `json:"status"`
	CurrentTask *string   `json:"current_task"`
	Metadata    *string   `json:"metadata"`
	LastSeen    time.Time `json:"last_seen"`
}

type AgentAvailabilityRequest struct {
	AgentID     string  `json:"agent_id"`
	Status      string  `json:"status"`
	CurrentTask *string `json:"current_task"`
	Metadata    *string `json:"metadata"`
}
