package database

import (
	"context"
	"errors"
	"kasjer/internal/auth"
	"kasjer/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text, username, email, password_hash, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type CreateUserParams struct {
	Username string
	Email    string
	Password string
}

// CreateUser hashes the password and inserts the user. A second user with the
// same email is rejected by the users_email_key index with ErrConflict.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(arg.Password)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, uuid.New(), arg.Username, arg.Email, hash))
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return nil, ErrConflict
		}
		return nil, classify(err)
	}
	return user, nil
}

// GetUserByEmail returns nil, nil when no user has the email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(q.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return user, nil
}

// FindUserByCredentials returns the user only when both the email and the
// password match, and nil, nil otherwise.
func (q *Queries) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := q.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, classify(err)
		}
		users = append(users, *user)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return users, nil
}
