package entity

import "time"

type Conversation struct {
	ID           string   `json:"id" firestore:"id"`
	Participants []string `json:"participants" firestore:"participants"`

	// Denormalized so conversation lists render without extra user lookups.
	ParticipantNames map[string]string `json:"participant_names" firestore:"participantNames"`
	ParticipantRoles map[string]string `json:"participant_roles" firestore:"participantRoles"`

	Subject       string `json:"subject,omitempty" firestore:"subject,omitempty"`
	SponsorshipID string `json:"sponsorship_id,omitempty" firestore:"sponsorshipId,omitempty"`

	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
