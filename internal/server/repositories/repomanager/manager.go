package repomanager

import (
	"context"
	"database/sql"

	"github.com/avagulans/inkpost/internal/dbx"
	"github.com/avagulans/inkpost/internal/server/repositories/blogs"
	"github.com/avagulans/inkpost/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Blogs(db dbx.DBTX) blogs.Repository
}
