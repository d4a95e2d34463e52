package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"github.com/mentoapp/mentoapp-api/pkg/metrics"
	"github.com/mentoapp/mentoapp-api/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MentorshipService runs the mentorship request workflow:
// pending -> accepted | rejected, where both outcomes are terminal.
type MentorshipService struct {
	requests repository.MentorshipRequestStore
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(requests repository.MentorshipRequestStore) *MentorshipService {
	return &MentorshipService{
		requests: requests,
	}
}

// SubmitRequest creates a pending request from the mentee to the mentor.
// Duplicate requests for the same pair are allowed.
func (s *MentorshipService) SubmitRequest(ctx context.Context, menteeID, mentorID uuid.UUID) (req *models.MentorshipRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "mentorship.submit",
		attribute.String("mentee_id", menteeID.String()),
		attribute.String("mentor_id", mentorID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	req, err = s.requests.InsertMentorshipRequest(ctx, menteeID, mentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, ErrUnknownParticipant
		}
		logger.Error("Failed to submit mentorship request",
			zap.String("mentee_id", menteeID.String()),
			zap.String("mentor_id", mentorID.String()),
			zap.Error(err))
		return nil, err
	}

	metrics.MentorshipRequestsSubmitted.Inc()
	logger.Info("Mentorship request submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("mentee_id", menteeID.String()),
		zap.String("mentor_id", mentorID.String()))

	return req, nil
}

// ListIncoming returns every request addressed to the mentor, newest first
func (s *MentorshipService) ListIncoming(ctx context.Context, mentorID uuid.UUID) (requests []*models.IncomingRequest, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "mentorship.list_incoming",
		attribute.String("mentor_id", mentorID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	requests, err = s.requests.ListMentorshipRequestsForMentor(ctx, mentorID)
	if err != nil {
		logger.Error("Failed to fetch incoming requests",
			zap.String("mentor_id", mentorID.String()),
			zap.Error(err))
		return nil, err
	}

	metrics.MentorshipRequestsListDuration.Observe(metrics.MeasureDuration(start))
	logger.Debug("Fetched incoming requests",
		zap.String("mentor_id", mentorID.String()),
		zap.Int("count", len(requests)),
		zap.Duration("duration", time.Since(start)))

	return requests, nil
}

// ListOutgoing returns every request the mentee submitted, newest first
func (s *MentorshipService) ListOutgoing(ctx context.Context, menteeID uuid.UUID) (requests []*models.OutgoingRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "mentorship.list_outgoing",
		attribute.String("mentee_id", menteeID.String()))
	defer func() { tracing.EndSpan(span, err) }()

	requests, err = s.requests.ListMentorshipRequestsForMentee(ctx, menteeID)
	if err != nil {
		logger.Error("Failed to fetch outgoing requests",
			zap.String("mentee_id", menteeID.String()),
			zap.Error(err))
		return nil, err
	}

	return requests, nil
}

// Respond accepts or rejects a pending request on behalf of the mentor it is addressed to
func (s *MentorshipService) Respond(ctx context.Context, requestID, responderID uuid.UUID, newStatus models.RequestStatus) (req *models.MentorshipRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "mentorship.respond",
		attribute.String("request_id", requestID.String()),
		attribute.String("responder_id", responderID.String()),
		attribute.String("status", string(newStatus)))
	defer func() {
		tracing.EndSpan(span, err)
		statusLabel := string(newStatus)
		if !newStatus.IsResponse() {
			statusLabel = "invalid"
		}
		metrics.MentorshipRequestResponses.WithLabelValues(statusLabel, responseResult(err)).Inc()
	}()

	if !newStatus.IsResponse() {
		return nil, ErrInvalidStatus
	}

	current, err := s.requests.GetMentorshipRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if current.MentorID != responderID {
		logger.Warn("Access denied to mentorship request",
			zap.String("request_id", requestID.String()),
			zap.String("request_mentor", current.MentorID.String()),
			zap.String("responder", responderID.String()))
		return nil, ErrAccessDenied
	}

	if !current.Status.CanTransitionTo(newStatus) {
		logger.Warn("Mentorship request already resolved",
			zap.String("request_id", requestID.String()),
			zap.String("current_status", string(current.Status)),
			zap.String("new_status", string(newStatus)))
		return nil, ErrAlreadyResolved
	}

	req, err = s.requests.UpdateMentorshipRequestStatus(ctx, requestID, current.Status, newStatus)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The read saw pending, so another responder won the race
			return nil, ErrConcurrentModification
		}
		logger.Error("Failed to update mentorship request status",
			zap.String("request_id", requestID.String()),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Mentorship request resolved",
		zap.String("request_id", requestID.String()),
		zap.String("mentor_id", responderID.String()),
		zap.String("status", string(newStatus)))

	return req, nil
}

func responseResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(err, ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
