package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meetspot/internal/models/domain_models"
	"meetspot/internal/models/request_models"
	"meetspot/internal/models/response_models"
	"meetspot/internal/services"
	"meetspot/pkg/utils"
)

type MeetupController struct {
	meetupService services.MeetupServiceInterface
}

func NewMeetupController(meetupService services.MeetupServiceInterface) *MeetupController {
	return &MeetupController{
		meetupService: meetupService,
	}
}

func (m *MeetupController) SearchHandler(c *gin.Context) {
	var req request_models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	group, err := toGroupRequest(req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := m.meetupService.Search(c.Request.Context(), req.SessionID, group)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewSearchResponse(session), "Venues recommended successfully")
}

func (m *MeetupController) FollowupHandler(c *gin.Context) {
	var req request_models.FollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "session_id and question are required")
		return
	}

	turn, err := m.meetupService.Followup(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewFollowupResponse(req.SessionID, *turn), "Follow-up answered")
}

func (m *MeetupController) GetSessionHandler(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := m.meetupService.GetSession(sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewSessionResponse(session), "Session fetched successfully")
}

func toGroupRequest(req request_models.SearchRequest) (*domain_models.GroupRequest, error) {
	people := make([]domain_models.Person, 0, len(req.People))
	for _, p := range req.People {
		mode := domain_models.TransportMode(p.Transport)
		if p.Transport == "" {
			mode = domain_models.ModeAny
		}
		people = append(people, domain_models.Person{
			Location: p.Location,
			Mode:     mode,
		})
	}

	meetingTime, err := parseMeetingTime(req.MeetingDate, req.MeetingTime)
	if err != nil {
		return nil, err
	}

	return &domain_models.GroupRequest{
		People:       people,
		Activity:     req.Activity,
		Mood:         req.Mood,
		MeetingTime:  meetingTime,
		ExplicitArea: req.MeetingArea,
		Notes:        req.Notes,
	}, nil
}

func parseMeetingTime(date, clock string) (time.Time, error) {
	if date == "" && clock == "" {
		return time.Time{}, nil
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if clock == "" {
		clock = time.Now().Format("15:04")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("meeting_date must be YYYY-MM-DD and meeting_time HH:MM")
	}
	return t, nil
}
