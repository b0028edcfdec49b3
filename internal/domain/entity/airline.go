package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is a row of the airline master table, used to expand the
// carrier code a guest types into the full airline name.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
