package userroles

import (
	"context"
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

func (r *PostgresRepository) Add(ctx context.Context, userID, roleID int64) error {

	query :=
		`INSERT INTO users_roles (user_id, role_id)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, "users_roles_pk"):
			return common.ErrDuplicateUserRole
		case dbx.IsForeignKeyViolation(err):
			if dbx.ConstraintName(err) == "users_roles_role_fk" {
				return common.ErrRoleRequired
			}
			return common.ErrUserRequired
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, roleID int64) error {

	query :=
		`DELETE FROM users_roles
		 WHERE user_id = $1 AND role_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, roleID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IsInRole(ctx context.Context, userID, roleID int64) (bool, error) {

	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM users_roles WHERE user_id = $1 AND role_id = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, roleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ListRolesForUser(ctx context.Context, userID int64) ([]*models.Role, error) {

	query :=
		`SELECT r.id, r.name, r.normalized_name, r.concurrency_stamp
		 FROM roles r
		 JOIN users_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.normalized_name
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
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

func (r *PostgresRepository) ListUserIDsInRole(ctx context.Context, roleID int64) ([]int64, error) {

	query :=
		`SELECT user_id FROM users_roles WHERE role_id = $1 ORDER BY user_id`

	rows, err := r.db.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
