package store

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/identity/models"
	"github.com/idclxvi/identity-store/internal/identity/repositories/repomanager"
	"github.com/idclxvi/identity-store/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := New(db, repomanager.NewPostgresRepositoryManager(), log)
	return s, mock, db
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "ALICE"},
		{"  Alice  ", "ALICE"},
		{"a@X.com", "A@X.COM"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateUser_NormalizesAndStamps(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectCommit()

	user := &models.User{UserName: "alice", Email: "a@x.com"}
	got, err := s.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if got.NormalizedUserName != "ALICE" || got.NormalizedEmail != "A@X.COM" {
		t.Fatalf("normalization missing: %+v", got)
	}
	if got.ConcurrencyStamp == "" || got.SecurityStamp == "" {
		t.Fatalf("stamps not issued: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUser_WithDefaultRole_SingleTransaction(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+roles\s+WHERE\s+normalized_name`).
		WithArgs("USER").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "normalized_name", "concurrency_stamp"}).
			AddRow(int64(2), "user", "USER", "s1"))
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users_roles\s*\(`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := s.CreateUser(context.Background(), &models.User{UserName: "alice", Email: "a@x.com"}, "user")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUser_MissingDefaultRole_RollsBack(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+roles\s+WHERE\s+normalized_name`).
		WithArgs("GHOST").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.CreateUser(context.Background(), &models.User{UserName: "alice", Email: "a@x.com"}, "ghost")
	if !errors.Is(err, common.ErrRoleRequired) {
		t.Fatalf("want ErrRoleRequired, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUser_DuplicateName_RollsBack(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username"})
	mock.ExpectRollback()

	_, err := s.CreateUser(context.Background(), &models.User{UserName: "alice", Email: "a@x.com"})
	if !errors.Is(err, common.ErrDuplicateUserName) {
		t.Fatalf("want ErrDuplicateUserName, got %v", err)
	}
}

func TestCreateUser_ValueTooLong_RejectedBeforeWrite(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	for _, long := range []string{
		strings.Repeat("x", MaxBoundedLen+1),
		strings.Repeat("Ж", MaxBoundedLen+1),
	} {
		_, err := s.CreateUser(context.Background(), &models.User{UserName: long, Email: "a@x.com"})
		if !errors.Is(err, common.ErrValueTooLong) {
			t.Fatalf("want ErrValueTooLong, got %v", err)
		}
	}
	// no SQL must have been attempted
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected SQL: %v", err)
	}
}

func TestCreateUser_MultibyteNameWithinBound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
	mock.ExpectCommit()

	// 100 characters but 200 bytes: the bound counts characters, so the
	// write must go through.
	name := strings.Repeat("Ж", 100)
	_, err := s.CreateUser(context.Background(), &models.User{UserName: name, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindUserByName_NormalizesLookup(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM\s+users\s+WHERE\s+normalized_user_name`).
		WithArgs("ALICE").
		WillReturnError(sql.ErrNoRows)

	_, err := s.FindUserByName(context.Background(), "  Alice ")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateUser_IssuesFreshStamp(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{ID: 1, UserName: "alice", Email: "a@x.com", ConcurrencyStamp: "stamp-1"}
	if err := s.UpdateUser(context.Background(), user); err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if user.ConcurrencyStamp == "stamp-1" || user.ConcurrencyStamp == "" {
		t.Fatalf("expected fresh stamp, got %q", user.ConcurrencyStamp)
	}
}

func TestUpdateUser_StaleStamp(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	user := &models.User{ID: 1, UserName: "alice", Email: "a@x.com", ConcurrencyStamp: "stale"}
	err := s.UpdateUser(context.Background(), user)
	if !errors.Is(err, common.ErrConcurrencyConflict) {
		t.Fatalf("want ErrConcurrencyConflict, got %v", err)
	}
}
