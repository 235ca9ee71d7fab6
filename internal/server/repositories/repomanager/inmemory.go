package repomanager

import (
	"context"
	"database/sql"

	"github.com/avagulans/inkpost/internal/dbx"
	"github.com/avagulans/inkpost/internal/server/repositories/blogs"
	"github.com/avagulans/inkpost/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends map-backed repositories sharing one store.
// The db arguments are ignored; there is no database behind it.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	blogs *blogs.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	u := users.NewInMemoryRepository()
	return &InMemoryRepositoryManager{
		users: u,
		blogs: blogs.NewInMemoryRepository(u.UsernameByID),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Blogs(db dbx.DBTX) blogs.Repository {
	return m.blogs
}
