package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mentoapp/mentoapp-api/internal/cache"
	"github.com/mentoapp/mentoapp-api/internal/models"
)

// UserRepositoryInterface defines account data access with a cached mentor directory
type UserRepositoryInterface interface {
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetMentors(ctx context.Context) ([]models.PublicUser, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository handles account data access.
// Writes go straight to the store and invalidate the mentor cache.
type UserRepository struct {
	store       UserStore
	mentorCache cache.MentorCacheInterface
}

// NewUserRepository creates a new user repository
func NewUserRepository(store UserStore, mentorCache cache.MentorCacheInterface) *UserRepository {
	return &UserRepository{
		store:       store,
		mentorCache: mentorCache,
	}
}

// Create stores a new account
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error) {
	user, err := r.store.InsertUser(ctx, email, passwordHash, role)
	if err != nil {
		return nil, err
	}
	if role == models.RoleMentor {
		r.mentorCache.Invalidate()
	}
	return user, nil
}

// GetByEmail looks an account up by its exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.store.FindUserByEmail(ctx, email)
}

// GetByID looks an account up by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.store.FindUserByID(ctx, id)
}

// GetAll lists every account
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.store.ListUsers(ctx)
}

// GetMentors returns the mentor directory ordered by email
func (r *UserRepository) GetMentors(ctx context.Context) ([]models.PublicUser, error) {
	return r.mentorCache.Get(ctx)
}

// UpdateRole changes the role of an account
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	if err := r.store.UpdateUserRole(ctx, id, role); err != nil {
		return err
	}
	r.mentorCache.Invalidate()
	return nil
}

// Delete removes an account and everything that references it
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	r.mentorCache.Invalidate()
	return nil
}
