package services_test

import (
	"github.com/mentoapp/mentoapp-api/config"
	"github.com/mentoapp/mentoapp-api/internal/cache"
	"github.com/mentoapp/mentoapp-api/internal/database/memory"
	"github.com/mentoapp/mentoapp-api/internal/repository"
	"github.com/mentoapp/mentoapp-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-key-that-is-long-enough-123",
			JWTIssuer:  "mentoapp-api",
			BcryptCost: bcrypt.MinCost,
		},
	}
}

// newStoreBackedRepo wires the in-memory store the same way main does
func newStoreBackedRepo() (*memory.Store, *repository.UserRepository) {
	store := memory.NewStore()
	mentorCache := cache.NewMentorCache(store, 60)
	return store, repository.NewUserRepository(store, mentorCache)
}
