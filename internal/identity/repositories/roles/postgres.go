package roles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/idclxvi/identity-store/internal/common"
	"github.com/idclxvi/identity-store/internal/dbx"
	"github.com/idclxvi/identity-store/internal/identity/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func translateWriteError(err error) error {
	switch {
	case dbx.IsUniqueViolation(err, "roles_name"):
		return common.ErrDuplicateRoleName
	case dbx.IsUniqueViolation(err, ""):
		return common.ErrAlreadyExists
	case dbx.IsTooLong(err):
		return common.ErrValueTooLong
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, role *models.Role) (*models.Role, error) {

	query :=
		`INSERT INTO roles (name, normalized_name, concurrency_stamp)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		role.Name, role.NormalizedName, role.ConcurrencyStamp).Scan(&role.ID)

	if err != nil {
		return nil, translateWriteError(err)
	}

	return role, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	query := `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByNormalizedName(ctx context.Context, normalized string) (*models.Role, error) {
	query := `SELECT id, name, normalized_name, concurrency_stamp FROM roles WHERE normalized_name = $1`
	return r.getOne(ctx, query, normalized)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&role.ID, &role.Name, &role.NormalizedName, &role.ConcurrencyStamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return role, nil
}

func (r *PostgresRepository) Update(ctx context.Context, role *models.Role, newStamp string) error {

	query :=
		`UPDATE roles
		 SET name = $1, normalized_name = $2, concurrency_stamp = $3
		 WHERE id = $4 AND concurrency_stamp = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		role.Name, role.NormalizedName, newStamp, role.ID, role.ConcurrencyStamp)
	if err != nil {
		return translateWriteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrConcurrencyConflict
	}

	role.ConcurrencyStamp = newStamp
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {

	query := `DELETE FROM roles WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Role, error) {

	query := `SELECT id, name, normalized_name, concurrency_stamp FROM roles ORDER BY normalized_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.NormalizedName, &role.ConcurrencyStamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
