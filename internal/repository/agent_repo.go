package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"edify-backend/internal/models"
)

type AgentRepo struct {
	pool *pgxpool.Pool
}

func NewAgentRepo(pool *pgxpool.Pool) *AgentRepo {
	return &AgentRepo{pool: pool}
}

func (r *AgentRepo) CreateIntel(ctx context.Context, in *models.AgentIntelRequest) (*models.AgentIntel, error) {
	intel := &models.AgentIntel{
		FromAgentID: in.FromAgentID,
		ToAgentID:   in.ToAgentID,
		Topic:       in.Topic,
		Payload:     in.Payload,
		LeadID:      in.LeadID,
	}

	query := `INSERT INTO agent_intel (from_agent_id, to_agent_id, topic, payload, lead_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, read, created_at`

	err := r.pool.QueryRow(ctx, query,
		in.FromAgentID, in.ToAgentID, in.Topic, in.Payload, in.LeadID,
	).Scan(&intel.ID, &intel.Read, &intel.CreatedAt)
	if err != nil {
		return nil, err
	}
	return intel, nil
}

// ListIntel returns intel addressed to agentID, oldest first. A non-nil
// since narrows to intel created after that instant.
func (r *AgentRepo) ListIntel(ctx context.Context, agentID string, since *time.Time) ([]*models.AgentIntel, error) {
	query := `SELECT id, from_agent_id, to_agent_id, topic, payload, lead_id, read, created_at
		FROM agent_intel WHERE to_agent_id = $1`
	args := []interface{}{agentID}

	if since != nil {
		query += " AND created_at > $2"
		args = append(args, *since)
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intel []*models.AgentIntel
	for rows.Next() {
		i := &models.AgentIntel{}
		err := rows.Scan(&i.ID, &i.FromAgentID, &i.ToAgentID, &i.Topic,
			&i.Payload, &i.LeadID, &i.Read, &i.CreatedAt)
		if err != nil {
			return nil, err
		}
		intel = append(intel, i)
	}
	return intel, rows.Err()
}

func (r *AgentRepo) MarkIntelRead(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, "UPDATE agent_intel SET read = TRUE WHERE id = $1", id)
	return err
}

func (r *AgentRepo) UpsertAvailability(ctx context.Context, in *models.AgentAvailabilityRequest) (*models.AgentAvailability, error) {
	a := &models.AgentAvailability{
		AgentID:     in.AgentID,
		Status:      in.Status,
		CurrentTask: in.CurrentTask,
		Metadata:    in.Metadata,
	}

	query := `INSERT INTO agent_availability (agent_id, status, current_task, metadata, last_seen)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (agent_id) DO UPDATE SET
			status = EXCLUDED.status,
			current_task = EXCLUDED.current_task,
			metadata = EXCLUDED.metadata,
			last_seen = NOW()
		RETURNING last_seen`

	err := r.pool.QueryRow(ctx, query, in.AgentID, in.Status, in.CurrentTask, in.Metadata).
		Scan(&a.LastSeen)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AgentRepo) GetAvailability(ctx context.Context, agentID string) (*models.AgentAvailability, error) {
	a := &models.AgentAvailability{}
	query := `SELECT agent_id, status, current_task, metadata, last_seen
		FROM agent_availability WHERE agent_id = $1`

	err := r.pool.QueryRow(ctx, query, agentID).
		Scan(&a.AgentID, &a.Status, &a.CurrentTask, &a.Metadata, &a.LastSeen)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AgentRepo) ListAvailability(ctx context.Context) ([]*models.AgentAvailability, error) {
	query := `SELECT agent_id, status, current_task, metadata, last_seen
		FROM agent_availability ORDER BY agent_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*models.AgentAvailability
	for rows.Next() {
		a := &models.AgentAvailability{}
		if err := rows.Scan(&a.AgentID, &a.Status, &a.CurrentTask, &a.Metadata, &a.LastSeen); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}
