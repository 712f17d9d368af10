package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"edify-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.ChatConversation) error {
	transcript, err := json.Marshal(c.Transcript)
	if err != nil {
		return err
	}

	query := `INSERT INTO chat_conversations (stage, transcript, reply)
		VALUES ($1, $2, $3) RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, c.Stage, transcript, c.Reply).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *ConversationRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatConversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, stage, transcript, reply, created_at
		FROM chat_conversations ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*models.ChatConversation
	for rows.Next() {
		c := &models.ChatConversation{}
		var transcript []byte
		if err := rows.Scan(&c.ID, &c.Stage, &transcript, &c.Reply, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(transcript, &c.Transcript); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
