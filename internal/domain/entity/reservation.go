// internal/domain/entity/reservation.go
package entity

import (
	"strings"
	"time"
)

// Reservation represents a booked trip stored in the Customers collection.
// Records are keyed by the guest's contact info; most fields are optional
// because bookings arrive from several upstream channels.
type Reservation struct {
	ID          string     `bson:"_id,omitempty" json:"-"`
	CustomerID  string     `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Email       string     `bson:"email,omitempty" json:"-"`
	Phone       string     `bson:"phone,omitempty" json:"-"`
	FirstName   string     `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName    string     `bson:"lastName,omitempty" json:"lastName,omitempty"`
	TripID      string     `bson:"tripId,omitempty" json:"tripId,omitempty"`
	TripStart   time.Time  `bson:"tripStart" json:"tripStart"`
	TripEnd     time.Time  `bson:"tripEnd" json:"tripEnd"`
	Destination string     `bson:"destination,omitempty" json:"destination,omitempty"`
	ValidUntil  *time.Time `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
}

// GuestName returns the guest's display name, or empty if none recorded.
func (r *Reservation) GuestName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}
