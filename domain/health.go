package domain

import "context"

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

type Health struct {
	Database bool
	Cache    bool
}

func (h Health) Healthy() bool {
	return h.Database && h.Cache
}

type HealthUseCase interface {
	Check(ctx context.Context) *Health
}

func HealthStatus(healthy bool) string {
	if healthy {
		return HealthStatusHealthy
	}
	return HealthStatusUnhealthy
}
