package repository

import (
	"context"

	"guestgate-service/internal/domain/entity"
)

// TimezoneRepository defines the interface for destination timezone lookups
type TimezoneRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Timezone, error)
	GetByCity(ctx context.Context, city string) (*entity.Timezone, error)
}
