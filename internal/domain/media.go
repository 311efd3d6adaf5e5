package domain

import "time"

type Media struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption"`
	Location  string    `json:"location"`
	IsPublic  bool      `json:"isPublic"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
