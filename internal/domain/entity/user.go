package entity

import (
	"time"
)

const (
	RoleClub     = "club"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

type User struct {
	ID     string `json:"id" firestore:"id"`
	Email  string `json:"email" firestore:"email"`
	Name   string `json:"name" firestore:"name"`
	Role   string `json:"role" firestore:"role"`   // club, business, admin
	Status string `json:"status" firestore:"status"` // active, deactivated

	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Postcode    string `json:"postcode,omitempty" firestore:"postcode,omitempty"`
	Location    string `json:"location,omitempty" firestore:"location,omitempty"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	BudgetRange string `json:"budget_range,omitempty" firestore:"budgetRange,omitempty"`
	LogoURL     string `json:"logo_url,omitempty" firestore:"logoURL,omitempty"`

	ProfileCompleted bool `json:"profile_completed" firestore:"profileCompleted"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
