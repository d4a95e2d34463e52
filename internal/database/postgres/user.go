package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

const userColumns = `id, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertUser creates a new account
func (c *Client) InsertUser(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	start := time.Now()
	operation := "insertUser"

	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(c.pool.QueryRow(ctx, query, email, passwordHash, role))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "user", err)
	}

	return user, nil
}

// FindUserByEmail fetches an account by exact email
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	operation := "findUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(c.pool.QueryRow(ctx, query, email))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "user", err)
	}

	return user, nil
}

// FindUserByID fetches an account by id
func (c *Client) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	start := time.Now()
	operation := "findUserByID"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(c.pool.QueryRow(ctx, query, id))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "user", err)
	}

	return user, nil
}

// ListUsers returns all accounts ordered by email
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	return c.listUsers(ctx, "listUsers",
		`SELECT `+userColumns+` FROM users ORDER BY email ASC`)
}

// ListUsersByRole returns accounts with the given role ordered by email
func (c *Client) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return c.listUsers(ctx, "listUsersByRole",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY email ASC`, role)
}

func (c *Client) listUsers(ctx context.Context, operation, query string, args ...any) ([]*models.User, error) {
	start := time.Now()

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		c.observe(operation, start, err)
		return nil, translateError(operation, "user", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			c.observe(operation, start, err)
			return nil, translateError(operation, "user", err)
		}
		users = append(users, user)
	}

	err = rows.Err()
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "user", err)
	}

	return users, nil
}

// UpdateUserRole changes the role of an account
func (c *Client) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	start := time.Now()
	operation := "updateUserRole"

	tag, err := c.pool.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	c.observe(operation, start, err)
	if err != nil {
		return translateError(operation, "user", err)
	}

	return nil
}

// DeleteUser removes an account; foreign keys cascade to dependent rows
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	operation := "deleteUser"

	tag, err := c.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err == nil && tag.RowsAffected() == 0 {
		err = pgx.ErrNoRows
	}
	c.observe(operation, start, err)
	if err != nil {
		return translateError(operation, "user", err)
	}

	return nil
}
