package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/pkg/logger"
)

// FlightInfoRepository submits flight details to the remote endpoint.
// Authentication is a shared token plus a sender field, both injected
// from config; rotate them per deployment.
type FlightInfoRepository struct {
	logger   logger.Logger
	endpoint string
	token    string
	sender   string
	client   *http.Client
}

// NewFlightInfoRepository creates a new flight info repository
func NewFlightInfoRepository(endpoint, token, sender string, logger logger.Logger) repository.FlightInfoRepository {
	return &FlightInfoRepository{
		logger:   logger,
		endpoint: endpoint,
		token:    token,
		sender:   sender,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit posts a flight submission to the remote endpoint
func (r *FlightInfoRepository) Submit(ctx context.Context, submission *entity.FlightSubmission) error {
	jsonData, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", r.token)
	req.Header.Set("candidate", r.sender)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("flight info endpoint returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Flight info submitted",
		"flightNumber", submission.FlightNumber,
		"arrivalDate", submission.ArrivalDate,
		"numOfGuests", submission.NumOfGuests)

	return nil
}
