package domain

import (
	"time"
)

// UnitOfMeasure is a measurement unit usable across the application
// (e.g. kilogram/kg, centimeter/cm).
type UnitOfMeasure struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
