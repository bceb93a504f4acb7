package roles

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/identity/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+roles\s*\(name,\s*normalized_name,\s*concurrency_stamp\)`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(3))
	mock.ExpectQuery(insertQ).
		WithArgs("admin", "ADMIN", "stamp-1").
		WillReturnRows(rows)

	role := &models.Role{Name: "admin", NormalizedName: "ADMIN", ConcurrencyStamp: "stamp-1"}
	got, err := repo.Create(context.Background(), role)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("unexpected role: %+v", got)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "roles_name"})

	_, err := repo.Create(context.Background(), &models.Role{Name: "admin", NormalizedName: "ADMIN"})
	if !errors.Is(err, common.ErrDuplicateRoleName) {
		t.Fatalf("want ErrDuplicateRoleName, got %v", err)
	}
}

func TestGetByNormalizedName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+roles\s+WHERE\s+normalized_name\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("GHOST").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByNormalizedName(context.Background(), "GHOST")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

const updateQ = `(?s)^UPDATE\s+roles\s+SET\s+.*WHERE\s+id\s*=\s*\$4\s+AND\s+concurrency_stamp\s*=\s*\$5`

func TestUpdate_Success_ReplacesStamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).
		WithArgs("ops", "OPS", "stamp-2", int64(3), "stamp-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	role := &models.Role{ID: 3, Name: "ops", NormalizedName: "OPS", ConcurrencyStamp: "stamp-1"}
	if err := repo.Update(context.Background(), role, "stamp-2"); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if role.ConcurrencyStamp != "stamp-2" {
		t.Fatalf("stamp not replaced: %q", role.ConcurrencyStamp)
	}
}

func TestUpdate_StaleStamp_Conflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).WillReturnResult(sqlmock.NewResult(0, 0))

	role := &models.Role{ID: 3, Name: "ops", NormalizedName: "OPS", ConcurrencyStamp: "stale"}
	err := repo.Update(context.Background(), role, "stamp-2")
	if !errors.Is(err, common.ErrConcurrencyConflict) {
		t.Fatalf("want ErrConcurrencyConflict, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+roles\s+ORDER\s+BY\s+normalized_name$`
	rows := sqlmock.NewRows([]string{"id", "name", "normalized_name", "concurrency_stamp"}).
		AddRow(int64(1), "admin", "ADMIN", "s1").
		AddRow(int64(2), "user", "USER", "s2")
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].NormalizedName != "ADMIN" {
		t.Fatalf("unexpected roles: %+v", got)
	}
}
