package data

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// ResolveRoleByName returns the role id for a role name, or ErrNotFound
// when the role does not exist.
func (r *UserRepository) ResolveRoleByName(ctx context.Context, name string) (int64, error) {
	query := `
SELECT id
FROM roles
WHERE role_name = $1
`
	var id int64
	err := pgxscan.Get(ctx, r.db, &id, query, name)
	if err != nil {
		return 0, handleError(err)
	}
	return id, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, name, email, passwordHash string, roleID int64) (*model.User, error) {
	query := `
INSERT INTO users (name, email, password_hash, role_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	var id int64
	err := pgxscan.Get(ctx, r.db, &id, query, name, email, passwordHash, roleID)
	if err != nil {
		return nil, handleError(err)
	}
	return r.GetUser(ctx, id)
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	query := `
SELECT users.id, users.name, users.email, users.password_hash, roles.role_name
FROM users
JOIN roles ON users.role_id = roles.id
WHERE users.id = $1
`
	var user model.User
	err := pgxscan.Get(ctx, r.db, &user, query, id)
	if err != nil {
		return nil, handleError(err)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
SELECT users.id, users.name, users.email, users.password_hash, roles.role_name
FROM users
JOIN roles ON users.role_id = roles.id
WHERE users.email = $1
`
	var user model.User
	err := pgxscan.Get(ctx, r.db, &user, query, email)
	if err != nil {
		return nil, handleError(err)
	}
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
SELECT users.id, users.name, users.email, users.password_hash, roles.role_name
FROM users
JOIN roles ON users.role_id = roles.id
ORDER BY users.id ASC
`
	var users []*model.User
	err := pgxscan.Select(ctx, r.db, &users, query)
	if err != nil {
		return nil, handleError(err)
	}
	return users, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	query := `
DELETE FROM users
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return handleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errdefs.ErrNotFound
	}
	return nil
}
