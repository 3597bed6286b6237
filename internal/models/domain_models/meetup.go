package domain_models

import (
	"fmt"
	"strings"
	"time"
)

// TransportMode is how one person travels to the venue.
type TransportMode string

const (
	ModeDriving   TransportMode = "driving"
	ModeTransit   TransportMode = "transit"
	ModeWalking   TransportMode = "walking"
	ModeBicycling TransportMode = "bicycling"
	ModeAny       TransportMode = "any"
)

func (m TransportMode) Valid() bool {
	switch m {
	case ModeDriving, ModeTransit, ModeWalking, ModeBicycling, ModeAny:
		return true
	}
	return false
}

// Effective resolves "any" to the mode actually sent to the routing provider.
func (m TransportMode) Effective() TransportMode {
	if m == ModeAny {
		return ModeDriving
	}
	return m
}

type Person struct {
	Location string        `json:"location"`
	Mode     TransportMode `json:"transport"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

const (
	MinGroupSize = 2
	MaxGroupSize = 4
)

type GroupRequest struct {
	People       []Person  `json:"people"`
	Activity     string    `json:"activity"`
	Mood         string    `json:"mood"`
	MeetingTime  time.Time `json:"meeting_time"`
	ExplicitArea string    `json:"meeting_area,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// TravelLeg is one person's journey to one venue. Unavailable legs keep the
// navigation link since it is built without a provider call.
type TravelLeg struct {
	Available       bool   `json:"available"`
	Duration        string `json:"duration"`
	Distance        string `json:"distance"`
	DurationSeconds int    `json:"duration_seconds"`
	LeaveBy         string `json:"leave_by,omitempty"`
	NavLink         string `json:"nav_link"`
}

type VenueRecommendation struct {
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	Category  string            `json:"category"`
	Rationale string            `json:"rationale"`
	Travel    map[int]TravelLeg `json:"travel,omitempty"`

	AvgMinutes int `json:"avg_minutes,omitempty"`
	MaxMinutes int `json:"max_minutes,omitempty"`
	// Lower is better: weighs the longest journey over the aggregate so one
	// person is never left with an outsized trip.
	Suitability float64 `json:"-"`
}

type ConversationTurn struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	VenueNames []string  `json:"venue_names,omitempty"`
	AskedAt    time.Time `json:"asked_at"`
}

// Summary renders a prompt-friendly line for one person.
func (p Person) Summary(index int) string {
	return fmt.Sprintf("%d. %s (%s)", index+1, strings.TrimSpace(p.Location), p.Mode)
}
