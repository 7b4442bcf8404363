package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	qb "github.com/riskibarqy/football-dashboard/internal/platform/querybuilder"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "name", "password_hash", "created_at"}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent relies on the unique email index; a conflicting insert returns no row.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u user.User) (bool, error) {
	query, args, err := buildCreateUserQuery(u)
	if err != nil {
		return false, err
	}

	var insertedID string
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&insertedID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, fmt.Errorf("create user: id collision: %w", err)
		}
		return false, fmt.Errorf("create user: %w", err)
	}

	return true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getOne(ctx, "email", user.NormalizeEmail(email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) getOne(ctx context.Context, column, value string) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTable).
		Where(qb.Eq(column, value)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by %s: %w", column, err)
	}

	return userFromRow(row), true, nil
}

func buildCreateUserQuery(u user.User) (string, []any, error) {
	if err := u.Validate(); err != nil {
		return "", nil, fmt.Errorf("validate user: %w", err)
	}

	query, args, err := qb.InsertModel(usersTable, userInsertModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}, "ON CONFLICT (email) DO NOTHING RETURNING id")
	if err != nil {
		return "", nil, fmt.Errorf("build create user query: %w", err)
	}
	return query, args, nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
