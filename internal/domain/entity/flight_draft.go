// internal/domain/entity/flight_draft.go
package entity

import (
	"fmt"
	"time"
)

// FlightDraft holds guest-entered arrival details pending submission.
// It carries no identity linkage and lives only inside the session cache.
type FlightDraft struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	ArrivalDate  string `json:"arrivalDate"` // YYYY-MM-DD
	ArrivalTime  string `json:"arrivalTime"` // HH:MM, 24h
	NumOfGuests  int    `json:"numOfGuests"`
	Comments     string `json:"comments,omitempty"`
}

// Validate checks the required form fields. The arrival-before-trip-end
// rule is enforced by the submitter, which has the reservation at hand.
func (d *FlightDraft) Validate() error {
	if d.Airline == "" || d.FlightNumber == "" || d.ArrivalDate == "" || d.ArrivalTime == "" {
		return fmt.Errorf("airline, flight number, arrival date and arrival time are required")
	}
	if d.NumOfGuests < 1 {
		return fmt.Errorf("number of guests must be at least 1")
	}
	if _, err := d.ArrivalLocal(); err != nil {
		return err
	}
	return nil
}

// ArrivalLocal parses the arrival date and time as a wall-clock value
// with no timezone attached.
func (d *FlightDraft) ArrivalLocal() (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", d.ArrivalDate+" "+d.ArrivalTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid arrival date or time")
	}
	return t, nil
}

// FlightSubmission is the payload sent to the remote flight-info
// endpoint: the draft plus values derived at submission time.
type FlightSubmission struct {
	Airline      string     `json:"airline"`
	FlightNumber string     `json:"flightNumber"`
	ArrivalDate  string     `json:"arrivalDate"`
	ArrivalTime  string     `json:"arrivalTime"`
	NumOfGuests  int        `json:"numOfGuests"`
	Comments     string     `json:"comments,omitempty"`
	ArrivalUTC   *time.Time `json:"arrivalUtc,omitempty"`
	TripID       string     `json:"tripId,omitempty"`
}
