package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/database/memory"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/services"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedPair(t *testing.T, store *memory.Store) (mentee, mentor *models.User) {
	t.Helper()
	ctx := context.Background()

	mentee, err := store.InsertUser(ctx, "mentee@example.com", "hash", models.RoleMentee)
	require.NoError(t, err)
	mentor, err = store.InsertUser(ctx, "mentor@example.com", "hash", models.RoleMentor)
	require.NoError(t, err)
	return mentee, mentor
}

func TestMentorshipService_SubmitThenListIncoming(t *testing.T) {
	store := memory.NewStore()
	mentee, mentor := seedPair(t, store)
	svc := services.NewMentorshipService(store)
	ctx := context.Background()

	req, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)

	incoming, err := svc.ListIncoming(ctx, mentor.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, req.ID, incoming[0].ID)
	assert.Equal(t, "mentee@example.com", incoming[0].MenteeEmail)
	assert.Equal(t, models.StatusPending, incoming[0].Status)

	outgoing, err := svc.ListOutgoing(ctx, mentee.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "mentor@example.com", outgoing[0].MentorEmail)

	// Other mentors see nothing
	other, err := svc.ListIncoming(ctx, mentee.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMentorshipService_SubmitDuplicatesAllowed(t *testing.T) {
	store := memory.NewStore()
	mentee, mentor := seedPair(t, store)
	svc := services.NewMentorshipService(store)
	ctx := context.Background()

	first, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
	require.NoError(t, err)
	second, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	incoming, err := svc.ListIncoming(ctx, mentor.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, second.ID, incoming[0].ID)
}

func TestMentorshipService_SubmitUnknownMentor(t *testing.T) {
	store := memory.NewStore()
	mentee, _ := seedPair(t, store)
	svc := services.NewMentorshipService(store)

	_, err := svc.SubmitRequest(context.Background(), mentee.ID, uuid.New())
	assert.ErrorIs(t, err, services.ErrUnknownParticipant)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMentorshipService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("accept pending", func(t *testing.T) {
		store := memory.NewStore()
		mentee, mentor := seedPair(t, store)
		svc := services.NewMentorshipService(store)

		req, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
		require.NoError(t, err)

		updated, err := svc.Respond(ctx, req.ID, mentor.ID, models.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)

		incoming, err := svc.ListIncoming(ctx, mentor.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, incoming[0].Status)
	})

	t.Run("accepted then rejected is refused", func(t *testing.T) {
		store := memory.NewStore()
		mentee, mentor := seedPair(t, store)
		svc := services.NewMentorshipService(store)

		req, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
		require.NoError(t, err)
		_, err = svc.Respond(ctx, req.ID, mentor.ID, models.StatusAccepted)
		require.NoError(t, err)

		_, err = svc.Respond(ctx, req.ID, mentor.ID, models.StatusRejected)
		assert.ErrorIs(t, err, services.ErrAlreadyResolved)
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		stored, err := store.GetMentorshipRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, stored.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		store := memory.NewStore()
		mentee, mentor := seedPair(t, store)
		svc := services.NewMentorshipService(store)

		req, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
		require.NoError(t, err)

		for _, status := range []models.RequestStatus{"maybe", models.StatusPending, ""} {
			_, err = svc.Respond(ctx, req.ID, mentor.ID, status)
			assert.ErrorIs(t, err, services.ErrInvalidStatus, "status %q", status)
		}

		stored, err := store.GetMentorshipRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		store := memory.NewStore()
		_, mentor := seedPair(t, store)
		svc := services.NewMentorshipService(store)

		_, err := svc.Respond(ctx, uuid.New(), mentor.ID, models.StatusAccepted)
		assert.ErrorIs(t, err, services.ErrRequestNotFound)
	})

	t.Run("other mentor is denied", func(t *testing.T) {
		store := memory.NewStore()
		mentee, mentor := seedPair(t, store)
		intruder, err := store.InsertUser(ctx, "other-mentor@example.com", "hash", models.RoleMentor)
		require.NoError(t, err)
		svc := services.NewMentorshipService(store)

		req, err := svc.SubmitRequest(ctx, mentee.ID, mentor.ID)
		require.NoError(t, err)

		_, err = svc.Respond(ctx, req.ID, intruder.ID, models.StatusRejected)
		assert.ErrorIs(t, err, services.ErrAccessDenied)

		stored, err := store.GetMentorshipRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, stored.Status)
	})
}

func TestMentorshipService_Respond_ConcurrentModification(t *testing.T) {
	requests := new(MockMentorshipRequestStore)
	svc := services.NewMentorshipService(requests)

	requestID := uuid.New()
	mentorID := uuid.New()
	pending := &models.MentorshipRequest{
		ID:        requestID,
		MenteeID:  uuid.New(),
		MentorID:  mentorID,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	requests.On("GetMentorshipRequest", mock.Anything, requestID).Return(pending, nil)
	requests.On("UpdateMentorshipRequestStatus", mock.Anything, requestID, models.StatusPending, models.StatusRejected).
		Return(nil, apperrors.NotFoundError("mentorship request"))

	_, err := svc.Respond(context.Background(), requestID, mentorID, models.StatusRejected)

	assert.ErrorIs(t, err, services.ErrConcurrentModification)
	requests.AssertExpectations(t)
}

func TestMentorshipService_Respond_StorageFailure(t *testing.T) {
	requests := new(MockMentorshipRequestStore)
	svc := services.NewMentorshipService(requests)

	requestID := uuid.New()
	requests.On("GetMentorshipRequest", mock.Anything, requestID).
		Return(nil, apperrors.StorageError("getMentorshipRequest", assert.AnError))

	_, err := svc.Respond(context.Background(), requestID, uuid.New(), models.StatusAccepted)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	requests.AssertNotCalled(t, "UpdateMentorshipRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMentorshipService_Respond_InvalidStatusSkipsStorage(t *testing.T) {
	requests := new(MockMentorshipRequestStore)
	svc := services.NewMentorshipService(requests)

	_, err := svc.Respond(context.Background(), uuid.New(), uuid.New(), "done")

	assert.ErrorIs(t, err, services.ErrInvalidStatus)
	requests.AssertNotCalled(t, "GetMentorshipRequest", mock.Anything, mock.Anything)
}
