package entity

import (
	"time"
)

const (
	AgreementStatusActive    = "active"
	AgreementStatusCompleted = "completed"
	AgreementStatusDisputed  = "disputed"
	AgreementStatusRefunded  = "refunded"
)

// Agreement is the durable record of a completed payment linking a business,
// a club, and a sponsorship request. Invariant: ClubAmount + PlatformFee ==
// Amount to the penny.
type Agreement struct {
	ID string `json:"id" firestore:"id"`

	SponsorshipID    string `json:"sponsorship_id" firestore:"sponsorshipId"`
	SponsorshipTitle string `json:"sponsorship_title" firestore:"sponsorshipTitle"`

	ClubID       string `json:"club_id" firestore:"clubId"`
	ClubName     string `json:"club_name" firestore:"clubName"`
	BusinessID   string `json:"business_id" firestore:"businessId"`
	BusinessName string `json:"business_name" firestore:"businessName"`

	Amount      float64 `json:"amount" firestore:"amount"`
	PlatformFee float64 `json:"platform_fee" firestore:"platformFee"`
	ClubAmount  float64 `json:"club_amount" firestore:"clubAmount"`

	PaymentReference string `json:"payment_reference" firestore:"paymentReference"`
	Status           string `json:"status" firestore:"status"` // active, completed, disputed, refunded

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidAgreementStatus(status string) bool {
	switch status {
	case AgreementStatusActive, AgreementStatusCompleted, AgreementStatusDisputed, AgreementStatusRefunded:
		return true
	}
	return false
}
