package identities

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	qExists = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+identities\s+WHERE\s+id\s*=\s*\$1\)$`
	qInsert = `(?s)^INSERT\s+INTO\s+identities\s*\(id,\s*y1,\s*y2\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+NOTHING\s*RETURNING\s+created_at\s*$`
	qGet    = `(?s)^SELECT\s+id,\s*y1,\s*y2,\s*created_at\s+FROM\s+identities\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qExists).WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(qExists).WithArgs("id-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.Exists(context.Background(), "id-1")
	if err != nil || !ok {
		t.Fatalf("Exists(id-1) = %v, %v; want true, nil", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "id-2")
	if err != nil || ok {
		t.Fatalf("Exists(id-2) = %v, %v; want false, nil", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExists_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qExists).WithArgs("id-1").WillReturnError(errors.New("db down"))

	_, err := repo.Exists(context.Background(), "id-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPutIfAbsent_Created(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(qInsert).WithArgs("id-1", "2", "3").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(ts))

	identity := &models.Identity{ID: "id-1", Y1: "2", Y2: "3"}
	created, err := repo.PutIfAbsent(context.Background(), identity)
	if err != nil {
		t.Fatalf("PutIfAbsent error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true")
	}
	if !identity.CreatedAt.Equal(ts) {
		t.Fatalf("CreatedAt = %v, want %v", identity.CreatedAt, ts)
	}
}

func TestPutIfAbsent_AlreadyPresent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WithArgs("id-1", "2", "3").WillReturnError(sql.ErrNoRows)

	created, err := repo.PutIfAbsent(context.Background(), &models.Identity{ID: "id-1", Y1: "2", Y2: "3"})
	if err != nil {
		t.Fatalf("PutIfAbsent error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for an existing id")
	}
}

func TestPutIfAbsent_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WithArgs("id-1", "2", "3").WillReturnError(errors.New("db down"))

	_, err := repo.PutIfAbsent(context.Background(), &models.Identity{ID: "id-1", Y1: "2", Y2: "3"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(qGet).WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "y1", "y2", "created_at"}).AddRow("id-1", "2", "3", ts))

	got, err := repo.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "id-1" || got.Y1 != "2" || got.Y2 != "3" {
		t.Fatalf("unexpected identity: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs("id-1").WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), "id-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
