package domain_models

import "time"

type SessionState string

const (
	StateIdle              SessionState = "idle"
	StateSearching         SessionState = "searching"
	StateResults           SessionState = "results"
	StateAnsweringFollowup SessionState = "answering_followup"
)

// Session owns one user's end-to-end interaction. Recommendations are replaced
// wholesale by each search; Turns are append-only.
type Session struct {
	ID              string                `json:"id"`
	State           SessionState          `json:"state"`
	Request         *GroupRequest         `json:"request,omitempty"`
	AnchorLabel     string                `json:"anchor,omitempty"`
	Unresolved      []string              `json:"unresolved_locations,omitempty"`
	Recommendations []VenueRecommendation `json:"recommendations,omitempty"`
	Turns           []ConversationTurn    `json:"turns,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
