package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/SmileCare/internal/db"
	"github.com/atinyakov/SmileCare/internal/storage"
)

func setupMock(t *testing.T) (*SQLStorage, sqlmock.Sqlmock, func()) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewSQLStorage(conn, Postgres)
	cleanup := func() { conn.Close() }
	return repo, mock, cleanup
}

func TestGet_Success(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("currentUser").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`"user-1"`)))

	got, err := repo.Get(context.Background(), "currentUser")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `"user-1"` {
		t.Errorf("Get = %s; want %q", got, `"user-1"`)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("cart").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "cart")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestGet_Error(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("allUsers").
		WillReturnError(errors.New("query failed"))

	_, err := repo.Get(context.Background(), "allUsers")
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected wrapped query error, got %v", err)
	}
}

func TestSet_Success(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())`)).
		WithArgs("allUsers", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Set(context.Background(), "allUsers", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSet_Error(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WillReturnError(errors.New("insert failed"))

	if err := repo.Set(context.Background(), "allUsers", []byte(`[]`)); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestRemove(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = $1`)).
		WithArgs("currentUser").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Remove(context.Background(), "currentUser"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	conn, err := db.InitSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("InitSQLite: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	repo := NewSQLStorage(conn, SQLite)

	if _, err := repo.Get(ctx, "cart"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on empty table err = %v; want ErrNotFound", err)
	}
	if err := repo.Set(ctx, "cart", []byte(`[{"quantity":1}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "cart")
	if err != nil || string(got) != "[]" {
		t.Fatalf("Get = %q, %v; want \"[]\"", got, err)
	}
	if err := repo.Remove(ctx, "cart"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := repo.Get(ctx, "cart"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Remove err = %v; want ErrNotFound", err)
	}
}
