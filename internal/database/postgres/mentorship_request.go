package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

const requestColumns = `id, mentee_id, mentor_id, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.MentorshipRequest, error) {
	var r models.MentorshipRequest
	if err := row.Scan(&r.ID, &r.MenteeID, &r.MentorID, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertMentorshipRequest creates a pending request from a mentee to a mentor
func (c *Client) InsertMentorshipRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "insertMentorshipRequest"

	query := `
		INSERT INTO mentorship_requests (mentee_id, mentor_id, status)
		VALUES ($1, $2, $3)
		RETURNING ` + requestColumns

	req, err := scanRequest(c.pool.QueryRow(ctx, query, menteeID, mentorID, models.StatusPending))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "mentorship request", err)
	}

	return req, nil
}

// GetMentorshipRequest fetches a request by id
func (c *Client) GetMentorshipRequest(ctx context.Context, id uuid.UUID) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "getMentorshipRequest"

	query := `SELECT ` + requestColumns + ` FROM mentorship_requests WHERE id = $1`

	req, err := scanRequest(c.pool.QueryRow(ctx, query, id))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "mentorship request", err)
	}

	return req, nil
}

// ListMentorshipRequestsForMentor returns requests addressed to the mentor, newest first
func (c *Client) ListMentorshipRequestsForMentor(ctx context.Context, mentorID uuid.UUID) ([]*models.IncomingRequest, error) {
	start := time.Now()
	operation := "listMentorshipRequestsForMentor"

	query := `
		SELECT r.id, r.mentee_id, u.email, r.status, r.created_at
		FROM mentorship_requests r
		JOIN users u ON u.id = r.mentee_id
		WHERE r.mentor_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := c.pool.Query(ctx, query, mentorID)
	if err != nil {
		c.observe(operation, start, err)
		return nil, translateError(operation, "mentorship request", err)
	}

	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.IncomingRequest, error) {
		var r models.IncomingRequest
		err := row.Scan(&r.ID, &r.MenteeID, &r.MenteeEmail, &r.Status, &r.CreatedAt)
		return &r, err
	})
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "mentorship request", err)
	}

	return requests, nil
}

// ListMentorshipRequestsForMentee returns requests submitted by the mentee, newest first
func (c *Client) ListMentorshipRequestsForMentee(ctx context.Context, menteeID uuid.UUID) ([]*models.OutgoingRequest, error) {
	start := time.Now()
	operation := "listMentorshipRequestsForMentee"

	query := `
		SELECT r.id, r.mentor_id, u.email, r.status, r.created_at, r.updated_at
		FROM mentorship_requests r
		JOIN users u ON u.id = r.mentor_id
		WHERE r.mentee_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := c.pool.Query(ctx, query, menteeID)
	if err != nil {
		c.observe(operation, start, err)
		return nil, translateError(operation, "mentorship request", err)
	}

	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.OutgoingRequest, error) {
		var r models.OutgoingRequest
		err := row.Scan(&r.ID, &r.MentorID, &r.MentorEmail, &r.Status, &r.CreatedAt, &r.UpdatedAt)
		return &r, err
	})
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "mentorship request", err)
	}

	return requests, nil
}

// UpdateMentorshipRequestStatus moves a request to a new status only while it still has the
// expected one. Concurrent responders race on the WHERE clause; exactly one wins.
func (c *Client) UpdateMentorshipRequestStatus(ctx context.Context, id uuid.UUID, from, to models.RequestStatus) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "updateMentorshipRequestStatus"

	query := `
		UPDATE mentorship_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + requestColumns

	req, err := scanRequest(c.pool.QueryRow(ctx, query, to, id, from))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "mentorship request", err)
	}

	return req, nil
}

// HasAcceptedRequest reports whether the pair has at least one accepted request
func (c *Client) HasAcceptedRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (bool, error) {
	start := time.Now()
	operation := "hasAcceptedRequest"

	query := `
		SELECT EXISTS (
			SELECT 1 FROM mentorship_requests
			WHERE mentee_id = $1 AND mentor_id = $2 AND status = $3
		)
	`

	var exists bool
	err := c.pool.QueryRow(ctx, query, menteeID, mentorID, models.StatusAccepted).Scan(&exists)
	c.observe(operation, start, err)
	if err != nil {
		return false, translateError(operation, "mentorship request", err)
	}

	return exists, nil
}
