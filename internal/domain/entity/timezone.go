package entity

import (
	"time"

	"gorm.io/gorm"
)

// Timezone is a row of the timezone master table, mapping airports and
// cities to their IANA zone. TzName is what arrival-UTC derivation uses.
type Timezone struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	GmtTz       string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
