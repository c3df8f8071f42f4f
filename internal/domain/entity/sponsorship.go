package entity

import (
	"time"
)

const (
	SponsorshipStatusActive  = "active"
	SponsorshipStatusFunded  = "funded"
	SponsorshipStatusPaused  = "paused"
	SponsorshipStatusExpired = "expired"
)

// SponsorshipCategories are the selectable funding categories.
var SponsorshipCategories = []string{"equipment", "event", "facility", "travel", "training", "general"}

type Sponsorship struct {
	ID       string `json:"id" firestore:"id"`
	ClubID   string `json:"club_id" firestore:"clubId"`
	ClubName string `json:"club_name" firestore:"clubName"`

	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"` // equipment, event, facility, travel, training, general
	Amount      float64 `json:"amount" firestore:"amount"`
	Urgency     string  `json:"urgency" firestore:"urgency"` // low, medium, high
	Status      string  `json:"status" firestore:"status"`   // active, funded, paused, expired

	Deadline *time.Time `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	Benefits string     `json:"benefits,omitempty" firestore:"benefits,omitempty"`
	Location string     `json:"location,omitempty" firestore:"location,omitempty"`

	ViewCount            int      `json:"view_count" firestore:"viewCount"`
	InterestedBusinesses []string `json:"interested_businesses" firestore:"interestedBusinesses"`

	FundedBy string     `json:"funded_by,omitempty" firestore:"fundedBy,omitempty"`
	FundedAt *time.Time `json:"funded_at,omitempty" firestore:"fundedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidSponsorshipStatus(status string) bool {
	switch status {
	case SponsorshipStatusActive, SponsorshipStatusFunded, SponsorshipStatusPaused, SponsorshipStatusExpired:
		return true
	}
	return false
}

func ValidSponsorshipCategory(category string) bool {
	for _, c := range SponsorshipCategories {
		if c == category {
			return true
		}
	}
	return false
}
