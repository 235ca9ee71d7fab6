package blogs

import (
	"context"
	"fmt"

	"github.com/avagulans/inkpost/internal/dbx"
	"github.com/avagulans/inkpost/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {

	query :=
		`INSERT INTO blogs (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		blog.UserID, blog.Title, blog.Content).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return blog, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Blog, error) {
	query :=
		`SELECT b.id, b.user_id, b.title, b.content, b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at DESC
		 `

	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Blog, error) {
	query :=
		`SELECT b.id, b.user_id, b.title, b.content, b.created_at, b.updated_at, u.username
		 FROM blogs b
		 JOIN users u ON u.id = b.user_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC
		 `

	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Blog{}
	for rows.Next() {
		blog := &models.Blog{}
		if err := rows.Scan(&blog.ID, &blog.UserID, &blog.Title, &blog.Content,
			&blog.CreatedAt, &blog.UpdatedAt, &blog.AuthorUsername); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
