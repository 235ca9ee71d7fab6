package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avagulans/inkpost/internal/common"
	"github.com/avagulans/inkpost/internal/server/models"
	"github.com/avagulans/inkpost/internal/server/repositories/repomanager"
)

const maxBlogTitleLen = 200

// BlogService provides operations on user-authored posts.
type BlogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBlogService(db *sql.DB, m repomanager.RepositoryManager) *BlogService {
	return &BlogService{db: db, repomanager: m}
}

// Create validates and stores a new post owned by userID.
func (s *BlogService) Create(ctx context.Context, userID, title, content string) (*models.Blog, error) {
	if strings.TrimSpace(title) == "" || len(title) > maxBlogTitleLen {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", common.ErrorValidation, maxBlogTitleLen)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", common.ErrorValidation)
	}

	blog := &models.Blog{UserID: userID, Title: title, Content: content}
	created, err := s.repomanager.Blogs(s.db).Create(ctx, blog)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

// ListAll returns every post, newest first.
func (s *BlogService) ListAll(ctx context.Context) ([]*models.Blog, error) {
	result, err := s.repomanager.Blogs(s.db).ListAll(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// ListByAuthor returns the posts owned by userID, newest first.
func (s *BlogService) ListByAuthor(ctx context.Context, userID string) ([]*models.Blog, error) {
	result, err := s.repomanager.Blogs(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}
