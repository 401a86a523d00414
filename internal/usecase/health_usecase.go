package usecase

import (
	"context"
	"time"

	"contacts-api/internal/domain"
	"contacts-api/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type HealthUsecase interface {
	// Check reports component status and whether the service can serve requests.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	repo  domain.ContactRepository
	cache *goredis.Client
}

// NewHealthUsecase builds the health check; cache may be nil when redis is disabled.
func NewHealthUsecase(repo domain.ContactRepository, cache *goredis.Client) HealthUsecase {
	return &healthUsecase{repo: repo, cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":  "ok",
		"storage": "up",
		"redis":   "disabled",
	}
	healthy := true

	if err := u.repo.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["storage"] = "down"
		healthy = false
	}

	if u.cache != nil {
		// redis only backs rate limiting, which falls back to memory
		if err := redis.HealthCheck(ctx, u.cache); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}

	return status, healthy
}
