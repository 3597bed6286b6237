package request_models

type PersonInput struct {
	Location  string `json:"location" binding:"required"`
	Transport string `json:"transport"`
}

type SearchRequest struct {
	SessionID string        `json:"session_id"`
	People    []PersonInput `json:"people" binding:"required"`
	Activity  string        `json:"activity"`
	Mood      string        `json:"mood"`
	// "2006-01-02" and "15:04"; both empty means "now".
	MeetingDate string `json:"meeting_date"`
	MeetingTime string `json:"meeting_time"`
	MeetingArea string `json:"meeting_area"`
	Notes       string `json:"notes"`
}

type FollowupRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}
