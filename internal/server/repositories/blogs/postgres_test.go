package blogs

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avagulans/inkpost/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+blogs\s*\(user_id,\s*title,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

const listQ = `(?s)^SELECT\s+b\.id,\s*b\.user_id,\s*b\.title,\s*b\.content,\s*b\.created_at,\s*b\.updated_at,\s*u\.username\s+FROM\s+blogs\s+b\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*b\.user_id\s+`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("b-1", now, now)
	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "First post", "hello").
		WillReturnRows(rows)

	b := &models.Blog{UserID: "u-1", Title: "First post", Content: "hello"}
	got, err := repo.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "b-1" || got.Title != "First post" {
		t.Fatalf("unexpected blog: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "t", "c").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Blog{UserID: "u-1", Title: "t", Content: "c"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at", "username"}).
		AddRow("b-2", "u-1", "Second", "more", now, now, "alice").
		AddRow("b-1", "u-2", "First", "hello", now.Add(-time.Hour), now.Add(-time.Hour), "bob")
	mock.ExpectQuery(listQ + `ORDER\s+BY\s+b\.created_at\s+DESC\s*$`).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 blogs, got %d", len(got))
	}
	if got[0].ID != "b-2" || got[0].AuthorUsername != "alice" {
		t.Fatalf("unexpected first blog: %+v", got[0])
	}
	if got[1].AuthorUsername != "bob" {
		t.Fatalf("unexpected second blog: %+v", got[1])
	}
}

func TestListAll_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at", "username"})
	mock.ExpectQuery(listQ).WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at", "username"}).
		AddRow("b-1", "u-1", "Mine", "body", now, now, "alice")
	mock.ExpectQuery(listQ + `WHERE\s+b\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+b\.created_at\s+DESC\s*$`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).
		WithArgs("u-1").
		WillReturnError(errors.New("db err"))

	_, err := repo.ListByUser(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
