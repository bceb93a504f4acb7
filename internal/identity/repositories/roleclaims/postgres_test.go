package roleclaims

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

const insertQ = `(?s)^INSERT\s+INTO\s+role_claims\s*\(role_id,\s*claim_type,\s*claim_value\)`

func TestAdd_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(5))
	mock.ExpectQuery(insertQ).
		WithArgs(int64(3), "scope", "reports:read").
		WillReturnRows(rows)

	claim := &models.RoleClaim{RoleID: 3, ClaimType: "scope", ClaimValue: "reports:read"}
	got, err := repo.Add(context.Background(), claim)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("unexpected claim: %+v", got)
	}
}

func TestAdd_MissingRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "role_claims_role_fk"})

	_, err := repo.Add(context.Background(), &models.RoleClaim{RoleID: 404, ClaimType: "scope"})
	if !errors.Is(err, common.ErrRoleRequired) {
		t.Fatalf("want ErrRoleRequired, got %v", err)
	}
}

func TestListByRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*FROM\s+role_claims\s+WHERE\s+role_id\s*=\s*\$1`
	rows := sqlmock.NewRows([]string{"id", "role_id", "claim_type", "claim_value"}).
		AddRow(int64(1), int64(3), "scope", "reports:read")
	mock.ExpectQuery(q).WithArgs(int64(3)).WillReturnRows(rows)

	got, err := repo.ListByRole(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListByRole error: %v", err)
	}
	if len(got) != 1 || got[0].ClaimValue != "reports:read" {
		t.Fatalf("unexpected claims: %+v", got)
	}
}
