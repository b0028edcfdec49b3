package repository

import (
	"context"

	"guestgate-service/internal/domain/entity"
)

// FlightInfoRepository defines the interface for the remote flight-info
// submission endpoint
type FlightInfoRepository interface {
	Submit(ctx context.Context, submission *entity.FlightSubmission) error
}
