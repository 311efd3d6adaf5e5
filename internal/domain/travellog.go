package domain

import "time"

// Estados permitidos para un travel log.
const (
	StatusWishlist = "wishlist"
	StatusOngoing  = "ongoing"
	StatusVisited  = "visited"
)

type TravelLog struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	OwnerUsername string    `json:"ownerUsername,omitempty"`
	Title         string    `json:"title"`
	Destination   string    `json:"destination"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	Date          time.Time `json:"date"`
	Members       []string  `json:"members"`
	Likes         []string  `json:"likes"`
	Bookmarks     []string  `json:"bookmarks"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidStatus valida el estado de un travel log.
func ValidStatus(s string) bool {
	switch s {
	case StatusWishlist, StatusOngoing, StatusVisited:
		return true
	}
	return false
}

// HasMember indica si el usuario figura como miembro del log.
func (t TravelLog) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
