package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edify-backend/internal/models"
)

type BlogRepo struct {
	pool *pgxpool.Pool
}

func NewBlogRepo(pool *pgxpool.Pool) *BlogRepo {
	return &BlogRepo{pool: pool}
}

// ListPublished returns published posts, newest first.
func (r *BlogRepo) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	query := `SELECT id, slug, title, excerpt, content, category, author,
		published, featured_image, created_at, updated_at
		FROM blog_posts WHERE published = TRUE ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.BlogPost
	for rows.Next() {
		p := &models.BlogPost{}
		err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Category,
			&p.Author, &p.Published, &p.FeaturedImage, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *BlogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	query := `SELECT id, slug, title, excerpt, content, category, author,
		published, featured_image, created_at, updated_at
		FROM blog_posts WHERE slug = $1`

	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Category,
		&p.Author, &p.Published, &p.FeaturedImage, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *BlogRepo) Create(ctx context.Context, p *models.BlogPost) error {
	if p.Author == "" {
		p.Author = "Edify Team"
	}

	query := `INSERT INTO blog_posts (slug, title, excerpt, content, category, author, published, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.Slug, p.Title, p.Excerpt, p.Content, p.Category, p.Author, p.Published, p.FeaturedImage,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}
