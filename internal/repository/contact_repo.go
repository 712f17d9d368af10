package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edify-backend/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, c *models.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (name, email, message)
		VALUES ($1, $2, $3) RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, c.Name, c.Email, c.Message).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *ContactRepo) GetByID(ctx context.Context, id int) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{}
	query := `SELECT id, name, email, message, created_at
		FROM contact_submissions WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepo) ListRecent(ctx context.Context, limit int) ([]*models.ContactSubmission, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT id, name, email, message, created_at
		FROM contact_submissions ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.ContactSubmission
	for rows.Next() {
		c := &models.ContactSubmission{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, c)
	}
	return submissions, rows.Err()
}
