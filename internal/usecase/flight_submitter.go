package usecase

import (
	"context"
	"fmt"
	"time"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/pkg/logger"
	"guestgate-service/pkg/metrics"
)

// FlightSubmitter validates the session's flight draft, enriches it
// from reference data and sends it to the remote endpoint. The draft
// stays cached whatever happens, so the guest can edit and resubmit.
type FlightSubmitter struct {
	flightInfo repository.FlightInfoRepository
	airlines   repository.AirlineRepository
	timezones  repository.TimezoneRepository
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewFlightSubmitter creates a new flight submitter. The airline and
// timezone repositories are optional; without them drafts are submitted
// as entered.
func NewFlightSubmitter(
	flightInfo repository.FlightInfoRepository,
	airlines repository.AirlineRepository,
	timezones repository.TimezoneRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FlightSubmitter {
	return &FlightSubmitter{
		flightInfo: flightInfo,
		airlines:   airlines,
		timezones:  timezones,
		metrics:    metrics,
		logger:     logger,
	}
}

// Submit sends the session's current draft. Validation problems come
// back as plain errors; a remote failure wraps ErrSubmissionFailed.
func (s *FlightSubmitter) Submit(ctx context.Context, session *Session) error {
	draft := session.Cache().CurrentDraft()
	if draft == nil {
		return fmt.Errorf("no flight details to submit")
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	reservation := session.Cache().CurrentReservation()
	arrival, _ := draft.ArrivalLocal()

	if reservation != nil && !reservation.TripEnd.IsZero() {
		// Compare calendar days: arriving on the trip's last day is fine.
		if draft.ArrivalDate > reservation.TripEnd.Format("2006-01-02") {
			return fmt.Errorf("arrival date is after the end of the trip")
		}
	}

	submission := &entity.FlightSubmission{
		Airline:      draft.Airline,
		FlightNumber: draft.FlightNumber,
		ArrivalDate:  draft.ArrivalDate,
		ArrivalTime:  draft.ArrivalTime,
		NumOfGuests:  draft.NumOfGuests,
		Comments:     draft.Comments,
	}
	if reservation != nil {
		submission.TripID = reservation.TripID
	}

	s.enrich(ctx, submission, reservation, arrival)

	if err := s.flightInfo.Submit(ctx, submission); err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("Flight info submission failed",
			"session", session.ID(),
			"error", err)
		return fmt.Errorf("%w: %v", entity.ErrSubmissionFailed, err)
	}

	s.metrics.SubmissionsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Flight info submitted", "session", session.ID())
	return nil
}

// enrich expands the airline code into its full name and derives the
// arrival instant in UTC from the destination's timezone. Reference
// data misses leave the guest's input untouched.
func (s *FlightSubmitter) enrich(ctx context.Context, submission *entity.FlightSubmission, reservation *entity.Reservation, arrival time.Time) {
	if s.airlines != nil {
		if airline, err := s.airlines.GetByCode(ctx, submission.Airline); err == nil {
			submission.Airline = airline.Name
		} else {
			s.logger.Debug("Airline not in reference data", "airline", submission.Airline)
		}
	}

	if s.timezones == nil || reservation == nil || reservation.Destination == "" {
		return
	}
	// Destinations are usually city names, but some reservations carry
	// the airport code instead.
	tz, err := s.timezones.GetByCity(ctx, reservation.Destination)
	if err != nil {
		tz, err = s.timezones.GetByAirportCode(ctx, reservation.Destination)
	}
	if err != nil {
		s.logger.Debug("Destination not in timezone reference data",
			"destination", reservation.Destination)
		return
	}
	loc, err := time.LoadLocation(tz.TzName)
	if err != nil {
		s.logger.Warn("Unknown timezone in reference data", "tzName", tz.TzName)
		return
	}

	utc := time.Date(arrival.Year(), arrival.Month(), arrival.Day(),
		arrival.Hour(), arrival.Minute(), 0, 0, loc).UTC()
	submission.ArrivalUTC = &utc
}
