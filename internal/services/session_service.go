package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SessionService manages the session ledger
type SessionService struct {
	sessions repository.SessionStore
	requests repository.MentorshipRequestStore
	config   *config.Config
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions repository.SessionStore, requests repository.MentorshipRequestStore, cfg *config.Config) *SessionService {
	return &SessionService{
		sessions: sessions,
		requests: requests,
		config:   cfg,
	}
}

// Book records a session requested by a mentee. Overlapping sessions are not detected.
// With Workflow.BookingRequiresAcceptedRequest the pair must have an accepted mentorship request.
func (s *SessionService) Book(ctx context.Context, menteeID uuid.UUID, req *models.BookSessionRequest) (session *models.Session, err error) {
	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		return nil, apperrors.InvalidInputError("mentor_id", "must be a UUID")
	}

	ctx, span := tracing.StartSpan(ctx, "session.book",
		attribute.String("mentee_id", menteeID.String()),
		attribute.String("mentor_id", mentorID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	if s.config.Workflow.BookingRequiresAcceptedRequest {
		accepted, err := s.requests.HasAcceptedRequest(ctx, menteeID, mentorID)
		if err != nil {
			logger.Error("Failed to check accepted mentorship request",
				zap.String("mentee_id", menteeID.String()),
				zap.String("mentor_id", mentorID.String()),
				zap.Error(err))
			return nil, err
		}
		if !accepted {
			logger.Warn("Booking rejected without accepted request",
				zap.String("mentee_id", menteeID.String()),
				zap.String("mentor_id", mentorID.String()))
			return nil, ErrNoAcceptedRequest
		}
	}

	session, err = s.insert(ctx, &models.Session{
		Title:       req.Title,
		Description: req.Description,
		MenteeID:    menteeID,
		MentorID:    mentorID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsBooked.WithLabelValues("mentee").Inc()
	logger.Info("Session booked",
		zap.String("session_id", session.ID.String()),
		zap.String("mentee_id", menteeID.String()),
		zap.String("mentor_id", mentorID.String()),
		zap.Time("scheduled_at", session.ScheduledAt))

	return session, nil
}

// Create records a session on behalf of an admin
func (s *SessionService) Create(ctx context.Context, input *models.SessionInput) (session *models.Session, err error) {
	ctx, span := tracing.StartSpan(ctx, "session.create")
	defer func() { tracing.EndSpan(span, err) }()

	fields, err := sessionFromInput(input)
	if err != nil {
		return nil, err
	}

	session, err = s.insert(ctx, fields)
	if err != nil {
		return nil, err
	}

	metrics.SessionsBooked.WithLabelValues("admin").Inc()
	logger.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("mentee_id", session.MenteeID.String()),
		zap.String("mentor_id", session.MentorID.String()))

	return session, nil
}

// ListAll returns every session with participant emails, earliest first
func (s *SessionService) ListAll(ctx context.Context) (sessions []*models.SessionWithEmails, err error) {
	ctx, span := tracing.StartSpan(ctx, "session.list")
	defer func() { tracing.EndSpan(span, err) }()

	sessions, err = s.sessions.ListSessions(ctx)
	if err != nil {
		logger.Error("Failed to list sessions", zap.Error(err))
		return nil, err
	}

	return sessions, nil
}

// Update overwrites every field of an existing session
func (s *SessionService) Update(ctx context.Context, sessionID uuid.UUID, input *models.SessionInput) (session *models.Session, err error) {
	ctx, span := tracing.StartSpan(ctx, "session.update",
		attribute.String("session_id", sessionID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	fields, err := sessionFromInput(input)
	if err != nil {
		return nil, err
	}
	fields.ID = sessionID

	session, err = s.sessions.UpdateSession(ctx, fields)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, ErrSessionNotFound
		case errors.Is(err, apperrors.ErrInvalidInput):
			return nil, ErrUnknownParticipant
		}
		logger.Error("Failed to update session",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Session updated", zap.String("session_id", sessionID.String()))

	return session, nil
}

func (s *SessionService) insert(ctx context.Context, fields *models.Session) (*models.Session, error) {
	session, err := s.sessions.InsertSession(ctx, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, ErrUnknownParticipant
		}
		logger.Error("Failed to insert session",
			zap.String("mentee_id", fields.MenteeID.String()),
			zap.String("mentor_id", fields.MentorID.String()),
			zap.Error(err))
		return nil, err
	}
	return session, nil
}

func sessionFromInput(input *models.SessionInput) (*models.Session, error) {
	menteeID, err := uuid.Parse(input.MenteeID)
	if err != nil {
		return nil, apperrors.InvalidInputError("mentee_id", "must be a UUID")
	}
	mentorID, err := uuid.Parse(input.MentorID)
	if err != nil {
		return nil, apperrors.InvalidInputError("mentor_id", "must be a UUID")
	}

	return &models.Session{
		Title:       input.Title,
		Description: input.Description,
		MenteeID:    menteeID,
		MentorID:    mentorID,
		ScheduledAt: input.ScheduledAt,
	}, nil
}
