package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/models"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	apperrors "github.com/mentoapp/mentoapp-api/pkg/errors"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
)

var _ repository.Store = (*Store)(nil)

type requestRow struct {
	models.MentorshipRequest
	seq uint64
}

// Store is an in-process implementation of repository.Store used when the service works offline.
// Data lives only as long as the process.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	users    map[uuid.UUID]*models.User
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID]*models.Profile
	requests map[uuid.UUID]*requestRow
	sessions map[uuid.UUID]*models.Session
}

// NewStore creates an empty store
func NewStore() *Store {
	logger.Info("Using in-memory store, data is not persisted")

	return &Store{
		now:      time.Now,
		users:    make(map[uuid.UUID]*models.User),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]*models.Profile),
		requests: make(map[uuid.UUID]*requestRow),
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() {}

// Users

func (s *Store) InsertUser(_ context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, apperrors.ConflictError("email already registered")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	s.users[user.ID] = user
	s.byEmail[email] = user.ID

	return copyUser(user), nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.NotFoundError("user")
	}
	return copyUser(s.users[id]), nil
}

func (s *Store) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFoundError("user")
	}
	return copyUser(user), nil
}

func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	return s.listUsers(func(*models.User) bool { return true }), nil
}

func (s *Store) ListUsersByRole(_ context.Context, role models.Role) ([]*models.User, error) {
	return s.listUsers(func(u *models.User) bool { return u.Role == role }), nil
}

func (s *Store) listUsers(keep func(*models.User) bool) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if keep(u) {
			users = append(users, copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users
}

func (s *Store) UpdateUserRole(_ context.Context, id uuid.UUID, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return apperrors.NotFoundError("user")
	}
	user.Role = role
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return apperrors.NotFoundError("user")
	}

	delete(s.users, id)
	delete(s.byEmail, user.Email)
	delete(s.profiles, id)
	for rid, r := range s.requests {
		if r.MenteeID == id || r.MentorID == id {
			delete(s.requests, rid)
		}
	}
	for sid, sess := range s.sessions {
		if sess.MenteeID == id || sess.MentorID == id {
			delete(s.sessions, sid)
		}
	}
	return nil
}

// Profiles

func (s *Store) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.NotFoundError("profile")
	}
	return copyProfile(p), nil
}

func (s *Store) InsertProfile(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[profile.UserID]; !ok {
		return nil, apperrors.InvalidInputError("user_id", "unknown user")
	}
	if _, exists := s.profiles[profile.UserID]; exists {
		return nil, apperrors.ConflictError("profile already exists")
	}

	p := copyProfile(profile)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.UpdatedAt = s.now().UTC()
	s.profiles[p.UserID] = p

	return copyProfile(p), nil
}

func (s *Store) UpdateProfile(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.UserID]
	if !ok {
		return nil, apperrors.NotFoundError("profile")
	}

	existing.Name = profile.Name
	existing.Bio = profile.Bio
	existing.Goals = profile.Goals
	existing.Skills = append([]string{}, profile.Skills...)
	existing.UpdatedAt = s.now().UTC()

	return copyProfile(existing), nil
}

func (s *Store) DeleteProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.NotFoundError("profile")
	}
	delete(s.profiles, userID)
	return p, nil
}

// Mentorship requests

func (s *Store) InsertMentorshipRequest(_ context.Context, menteeID, mentorID uuid.UUID) (*models.MentorshipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUsersLocked(menteeID, mentorID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	s.seq++
	row := &requestRow{
		MentorshipRequest: models.MentorshipRequest{
			ID:        uuid.New(),
			MenteeID:  menteeID,
			MentorID:  mentorID,
			Status:    models.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.seq,
	}
	s.requests[row.ID] = row

	req := row.MentorshipRequest
	return &req, nil
}

func (s *Store) GetMentorshipRequest(_ context.Context, id uuid.UUID) (*models.MentorshipRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.requests[id]
	if !ok {
		return nil, apperrors.NotFoundError("mentorship request")
	}
	req := row.MentorshipRequest
	return &req, nil
}

func (s *Store) ListMentorshipRequestsForMentor(_ context.Context, mentorID uuid.UUID) ([]*models.IncomingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sortedRequestsLocked(func(r *requestRow) bool { return r.MentorID == mentorID })
	out := make([]*models.IncomingRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, &models.IncomingRequest{
			ID:          r.ID,
			MenteeID:    r.MenteeID,
			MenteeEmail: s.users[r.MenteeID].Email,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) ListMentorshipRequestsForMentee(_ context.Context, menteeID uuid.UUID) ([]*models.OutgoingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.sortedRequestsLocked(func(r *requestRow) bool { return r.MenteeID == menteeID })
	out := make([]*models.OutgoingRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, &models.OutgoingRequest{
			ID:          r.ID,
			MentorID:    r.MentorID,
			MentorEmail: s.users[r.MentorID].Email,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out, nil
}

// sortedRequestsLocked returns matching requests newest first. Caller holds s.mu.
func (s *Store) sortedRequestsLocked(keep func(*requestRow) bool) []*requestRow {
	rows := make([]*requestRow, 0)
	for _, r := range s.requests {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	return rows
}

func (s *Store) UpdateMentorshipRequestStatus(_ context.Context, id uuid.UUID, from, to models.RequestStatus) (*models.MentorshipRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.requests[id]
	if !ok || row.Status != from {
		return nil, apperrors.NotFoundError("mentorship request")
	}
	row.Status = to
	row.UpdatedAt = s.now().UTC()

	req := row.MentorshipRequest
	return &req, nil
}

func (s *Store) HasAcceptedRequest(_ context.Context, menteeID, mentorID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.MenteeID == menteeID && r.MentorID == mentorID && r.Status == models.StatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

// Sessions

func (s *Store) InsertSession(_ context.Context, session *models.Session) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUsersLocked(session.MenteeID, session.MentorID); err != nil {
		return nil, err
	}

	sess := *session
	sess.ID = uuid.New()
	sess.CreatedAt = s.now().UTC()
	s.sessions[sess.ID] = &sess

	out := sess
	return &out, nil
}

func (s *Store) ListSessions(_ context.Context) ([]*models.SessionWithEmails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.SessionWithEmails, 0, len(s.sessions))
	for _, sess := range s.sessions {
		row := &models.SessionWithEmails{Session: *sess}
		if u, ok := s.users[sess.MenteeID]; ok {
			row.MenteeEmail = u.Email
		}
		if u, ok := s.users[sess.MentorID]; ok {
			row.MentorEmail = u.Email
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (s *Store) UpdateSession(_ context.Context, session *models.Session) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if !ok {
		return nil, apperrors.NotFoundError("session")
	}
	if err := s.requireUsersLocked(session.MenteeID, session.MentorID); err != nil {
		return nil, err
	}

	existing.Title = session.Title
	existing.Description = session.Description
	existing.MenteeID = session.MenteeID
	existing.MentorID = session.MentorID
	existing.ScheduledAt = session.ScheduledAt

	out := *existing
	return &out, nil
}

// requireUsersLocked mirrors the foreign keys of the relational schema. Caller holds s.mu.
func (s *Store) requireUsersLocked(ids ...uuid.UUID) error {
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return apperrors.InvalidInputError("user_id", "referenced user does not exist")
		}
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyProfile(p *models.Profile) *models.Profile {
	c := *p
	c.Skills = make([]string, len(p.Skills))
	copy(c.Skills, p.Skills)
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	return &c
}
