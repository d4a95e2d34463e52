package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

const sessionColumns = `id, title, description, mentee_id, mentor_id, scheduled_at, created_at`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.MenteeID, &s.MentorID, &s.ScheduledAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// InsertSession records a new session. No overlap checks are made.
func (c *Client) InsertSession(ctx context.Context, s *models.Session) (*models.Session, error) {
	start := time.Now()
	operation := "insertSession"

	query := `
		INSERT INTO sessions (title, description, mentee_id, mentor_id, scheduled_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sessionColumns

	session, err := scanSession(c.pool.QueryRow(ctx, query,
		s.Title, s.Description, s.MenteeID, s.MentorID, s.ScheduledAt))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "session", err)
	}

	return session, nil
}

// ListSessions returns every session with both participant emails, earliest first
func (c *Client) ListSessions(ctx context.Context) ([]*models.SessionWithEmails, error) {
	start := time.Now()
	operation := "listSessions"

	query := `
		SELECT s.id, s.title, s.description, s.mentee_id, s.mentor_id, s.scheduled_at, s.created_at,
			COALESCE(mentee.email, ''), COALESCE(mentor.email, '')
		FROM sessions s
		LEFT JOIN users mentee ON s.mentee_id = mentee.id
		LEFT JOIN users mentor ON s.mentor_id = mentor.id
		ORDER BY s.scheduled_at ASC
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		c.observe(operation, start, err)
		return nil, translateError(operation, "session", err)
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.SessionWithEmails, error) {
		var s models.SessionWithEmails
		err := row.Scan(&s.ID, &s.Title, &s.Description, &s.MenteeID, &s.MentorID, &s.ScheduledAt, &s.CreatedAt,
			&s.MenteeEmail, &s.MentorEmail)
		return &s, err
	})
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "session", err)
	}

	return sessions, nil
}

// UpdateSession overwrites a session
func (c *Client) UpdateSession(ctx context.Context, s *models.Session) (*models.Session, error) {
	start := time.Now()
	operation := "updateSession"

	query := `
		UPDATE sessions
		SET title = $1, description = $2, mentee_id = $3, mentor_id = $4, scheduled_at = $5
		WHERE id = $6
		RETURNING ` + sessionColumns

	session, err := scanSession(c.pool.QueryRow(ctx, query,
		s.Title, s.Description, s.MenteeID, s.MentorID, s.ScheduledAt, s.ID))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "session", err)
	}

	return session, nil
}
