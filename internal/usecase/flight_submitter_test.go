package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/pkg/logger"
)

type FlightSubmitterSuite struct {
	suite.Suite
	flightInfo *fakeFlightInfo
	airlines   *fakeAirlines
	timezones  *fakeTimezones
	submitter  *FlightSubmitter
	session    *Session
	ctx        context.Context
}

func (s *FlightSubmitterSuite) SetupTest() {
	s.flightInfo = &fakeFlightInfo{}
	s.airlines = &fakeAirlines{byCode: map[string]string{"AM": "Aeromexico"}}
	s.timezones = &fakeTimezones{byCity: map[string]string{"Cancun": "America/Cancun"}}
	s.session = NewRegistry(time.Hour, logger.NewNop()).Create()
	s.ctx = context.Background()

	s.submitter = NewFlightSubmitter(
		s.flightInfo, s.airlines, s.timezones, newTestMetrics(), logger.NewNop())
}

func (s *FlightSubmitterSuite) draft() *entity.FlightDraft {
	return &entity.FlightDraft{
		Airline:      "AM",
		FlightNumber: "AM123",
		ArrivalDate:  "2026-09-05",
		ArrivalTime:  "14:30",
		NumOfGuests:  2,
	}
}

func TestFlightSubmitterSuite(t *testing.T) {
	suite.Run(t, new(FlightSubmitterSuite))
}

func (s *FlightSubmitterSuite) TestNoDraft() {
	err := s.submitter.Submit(s.ctx, s.session)

	s.Error(err)
	s.Empty(s.flightInfo.submissions)
}

func (s *FlightSubmitterSuite) TestValidation() {
	cases := []struct {
		name   string
		mutate func(*entity.FlightDraft)
	}{
		{"missing airline", func(d *entity.FlightDraft) { d.Airline = "" }},
		{"missing flight number", func(d *entity.FlightDraft) { d.FlightNumber = "" }},
		{"missing arrival date", func(d *entity.FlightDraft) { d.ArrivalDate = "" }},
		{"missing arrival time", func(d *entity.FlightDraft) { d.ArrivalTime = "" }},
		{"zero guests", func(d *entity.FlightDraft) { d.NumOfGuests = 0 }},
		{"negative guests", func(d *entity.FlightDraft) { d.NumOfGuests = -1 }},
		{"malformed date", func(d *entity.FlightDraft) { d.ArrivalDate = "05/09/2026" }},
		{"malformed time", func(d *entity.FlightDraft) { d.ArrivalTime = "2:30 PM" }},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			draft := s.draft()
			tc.mutate(draft)
			s.session.Cache().SetDraft(draft)

			err := s.submitter.Submit(s.ctx, s.session)

			s.Error(err)
			s.Empty(s.flightInfo.submissions)
		})
	}
}

// TestArrivalAfterTripEnd: the guest cannot arrive after the trip is
// over, but arriving on the trip's last day is allowed.
func (s *FlightSubmitterSuite) TestArrivalAfterTripEnd() {
	s.session.Cache().SetReservation(reservation("C-1"))

	draft := s.draft()
	draft.ArrivalDate = "2026-09-09"
	s.session.Cache().SetDraft(draft)

	err := s.submitter.Submit(s.ctx, s.session)
	s.Error(err)
	s.Empty(s.flightInfo.submissions)

	draft.ArrivalDate = "2026-09-08"
	s.session.Cache().SetDraft(draft)

	s.NoError(s.submitter.Submit(s.ctx, s.session))
	s.Len(s.flightInfo.submissions, 1)
}

func (s *FlightSubmitterSuite) TestEnrichment() {
	record := reservation("C-1")
	record.TripID = "T-42"
	record.Destination = "Cancun"
	s.session.Cache().SetReservation(record)
	s.session.Cache().SetDraft(s.draft())

	s.NoError(s.submitter.Submit(s.ctx, s.session))

	s.Require().Len(s.flightInfo.submissions, 1)
	sent := s.flightInfo.submissions[0]
	s.Equal("Aeromexico", sent.Airline)
	s.Equal("T-42", sent.TripID)
	s.Require().NotNil(sent.ArrivalUTC)
	// 14:30 in Cancun (UTC-5, no DST) is 19:30 UTC.
	s.Equal(time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC), sent.ArrivalUTC.UTC())
}

// TestEnrichmentAirportCodeFallback: a destination stored as an airport
// code still derives the arrival instant.
func (s *FlightSubmitterSuite) TestEnrichmentAirportCodeFallback() {
	s.timezones.byAirport = map[string]string{"CUN": "America/Cancun"}
	record := reservation("C-1")
	record.Destination = "CUN"
	s.session.Cache().SetReservation(record)
	s.session.Cache().SetDraft(s.draft())

	s.NoError(s.submitter.Submit(s.ctx, s.session))

	s.Require().Len(s.flightInfo.submissions, 1)
	sent := s.flightInfo.submissions[0]
	s.Require().NotNil(sent.ArrivalUTC)
	s.Equal(time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC), sent.ArrivalUTC.UTC())
}

// TestUnknownReferenceData: a code or city missing from reference data
// leaves the guest's input as entered.
func (s *FlightSubmitterSuite) TestUnknownReferenceData() {
	record := reservation("C-1")
	record.Destination = "Atlantis"
	s.session.Cache().SetReservation(record)

	draft := s.draft()
	draft.Airline = "ZZ"
	s.session.Cache().SetDraft(draft)

	s.NoError(s.submitter.Submit(s.ctx, s.session))

	s.Require().Len(s.flightInfo.submissions, 1)
	sent := s.flightInfo.submissions[0]
	s.Equal("ZZ", sent.Airline)
	s.Nil(sent.ArrivalUTC)
}

// TestRemoteFailure: the error wraps ErrSubmissionFailed and the draft
// stays cached for a retry.
func (s *FlightSubmitterSuite) TestRemoteFailure() {
	s.flightInfo.err = errors.New("503 service unavailable")
	s.session.Cache().SetReservation(reservation("C-1"))
	draft := s.draft()
	s.session.Cache().SetDraft(draft)

	err := s.submitter.Submit(s.ctx, s.session)

	s.ErrorIs(err, entity.ErrSubmissionFailed)
	s.Equal(draft, s.session.Cache().CurrentDraft())
}

// TestWithoutReferenceData: the submitter works with nil airline and
// timezone repositories.
func (s *FlightSubmitterSuite) TestWithoutReferenceData() {
	submitter := NewFlightSubmitter(s.flightInfo, nil, nil, newTestMetrics(), logger.NewNop())
	s.session.Cache().SetDraft(s.draft())

	s.NoError(submitter.Submit(s.ctx, s.session))

	s.Require().Len(s.flightInfo.submissions, 1)
	s.Equal("AM", s.flightInfo.submissions[0].Airline)
}
