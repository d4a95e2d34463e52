package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

const profileColumns = `user_id, name, bio, goals, COALESCE(skills, '{}'), image, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.UserID, &p.Name, &p.Bio, &p.Goals, &p.Skills, &p.Image, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

// skillsParam keeps NULL out of the skills column
func skillsParam(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}

// GetProfile fetches the profile of a user
func (c *Client) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	start := time.Now()
	operation := "getProfile"

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	profile, err := scanProfile(c.pool.QueryRow(ctx, query, userID))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "profile", err)
	}

	return profile, nil
}

// InsertProfile creates the profile of a user
func (c *Client) InsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	start := time.Now()
	operation := "insertProfile"

	query := `
		INSERT INTO profiles (user_id, name, bio, goals, skills, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns

	profile, err := scanProfile(c.pool.QueryRow(ctx, query,
		p.UserID, p.Name, p.Bio, p.Goals, skillsParam(p.Skills), p.Image))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "profile", err)
	}

	return profile, nil
}

// UpdateProfile overwrites the descriptive fields and keeps the stored image
func (c *Client) UpdateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	start := time.Now()
	operation := "updateProfile"

	query := `
		UPDATE profiles
		SET name = $1, bio = $2, goals = $3, skills = $4, updated_at = NOW()
		WHERE user_id = $5
		RETURNING ` + profileColumns

	profile, err := scanProfile(c.pool.QueryRow(ctx, query,
		p.Name, p.Bio, p.Goals, skillsParam(p.Skills), p.UserID))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "profile", err)
	}

	return profile, nil
}

// DeleteProfile removes the profile of a user and returns the removed row
func (c *Client) DeleteProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	start := time.Now()
	operation := "deleteProfile"

	query := `DELETE FROM profiles WHERE user_id = $1 RETURNING ` + profileColumns

	profile, err := scanProfile(c.pool.QueryRow(ctx, query, userID))
	c.observe(operation, start, err)
	if err != nil {
		return nil, translateError(operation, "profile", err)
	}

	return profile, nil
}
