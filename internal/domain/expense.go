package domain

import "time"

type Expense struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	Category       string    `json:"category"`
	Date           time.Time `json:"date"`
	TravelLogID    *string   `json:"travelLog,omitempty"`
	TravelLogTitle string    `json:"travelLogTitle,omitempty"`
	GroupTripID    *string   `json:"groupTrip,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
