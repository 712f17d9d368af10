package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"edify-backend/internal/models"
)

type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) CreatePageView(ctx context.Context, v *models.PageView) error {
	query := `INSERT INTO page_views (path, referrer, user_agent, ip_address, session_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		v.Path, v.Referrer, v.UserAgent, v.IPAddress, v.SessionID,
	).Scan(&v.ID, &v.CreatedAt)
}

// TopPages aggregates view counts per path since the given instant.
func (r *AnalyticsRepo) TopPages(ctx context.Context, since time.Time, limit int) (map[string]int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT path, COUNT(*) FROM page_views
		WHERE created_at >= $1 GROUP BY path ORDER BY COUNT(*) DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var path string
		var n int
		if err := rows.Scan(&path, &n); err != nil {
			return nil, err
		}
		counts[path] = n
	}
	return counts, rows.Err()
}
