package blogs

import (
	"context"

	"github.com/avagulans/inkpost/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, blog *models.Blog) (*models.Blog, error)
	ListAll(ctx context.Context) ([]*models.Blog, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Blog, error)
}
