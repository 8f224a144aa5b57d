package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"groupmeet/internal/delivery/http/helpers"
	"groupmeet/internal/delivery/http/middleware"
	"groupmeet/internal/domain"
)

// AvailabilityCountsSuccessResponse is the success response envelope for GET /events/{eventID}/availability (200).
type AvailabilityCountsSuccessResponse struct {
	Data  domain.AvailabilityCount `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RecommendationsSuccessResponse is the success response envelope for GET /events/{eventID}/recommendations (200).
type RecommendationsSuccessResponse struct {
	Data  []domain.Tier     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ConfirmMeetingRequest is the request body for POST /events/{eventID}/meeting.
type ConfirmMeetingRequest struct {
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Duration float64 `json:"duration"`
	Location string  `json:"location"`
	Notes    string  `json:"notes"`
}

// Validate implements Validator.
func (cm ConfirmMeetingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(cm.Date) == "" {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(cm.Time) == "" {
		errs = append(errs, "time is required")
	}
	if !domain.ValidDuration(cm.Duration) {
		errs = append(errs, "duration must be between 0.5 and 8 hours in half-hour steps")
	}
	return errs
}

// MeetingSuccessResponse is the success response envelope for meeting endpoints.
type MeetingSuccessResponse struct {
	Data  *domain.ConfirmedMeeting `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// MeetingSummaryResponse is the data payload for GET /events/{eventID}/meeting/summary (200).
type MeetingSummaryResponse struct {
	Summary string `json:"summary"`
}

// MeetingSummarySuccessResponse is the success response envelope for GET /events/{eventID}/meeting/summary (200).
type MeetingSummarySuccessResponse struct {
	Data  MeetingSummaryResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type PlannerController struct {
	Logger  *slog.Logger
	Service domain.PlannerService
}

func NewPlannerController(logger *slog.Logger, svc domain.PlannerService) *PlannerController {
	return &PlannerController{
		Logger:  logger,
		Service: svc,
	}
}

// AvailabilityCounts godoc
// @Summary Aggregated availability counts
// @Description Returns, for every slot in the event's grid, how many submitted participants are available. Empty when no participant has submitted yet.
// @Tags planner
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.AvailabilityCountsSuccessResponse "data maps slot keys to counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *PlannerController) AvailabilityCounts(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	counts, err := c.Service.AvailabilityCounts(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, counts)
}

// Recommendations godoc
// @Summary Recommended meeting slots
// @Description Returns tiers of recommended slots (perfect, good, ok) based on submitted availability, up to five chronological slots per tier. Empty tiers are omitted; null when nobody has submitted.
// @Tags planner
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.RecommendationsSuccessResponse "data is an array of tiers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/recommendations [get]
func (c *PlannerController) Recommendations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	tiers, err := c.Service.Recommendations(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tiers)
}

// ConfirmMeeting godoc
// @Summary Confirm the final meeting time
// @Description Records the final meeting date, time, duration, and optional location and notes. Only the event owner can confirm an owned event; unowned events accept confirmation from anyone. Confirming again replaces the previous confirmation.
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body ConfirmMeetingRequest true "Meeting details"
// @Success 201 {object} controllers.MeetingSuccessResponse "data contains the confirmed meeting"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/meeting [post]
func (c *PlannerController) ConfirmMeeting(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req ConfirmMeetingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	requesterID, _ := middleware.UserIDFromContext(r.Context())
	meeting, err := c.Service.ConfirmMeeting(r.Context(), domain.ConfirmMeetingInput{
		EventID:     eventID,
		RequesterID: requesterID,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meeting)
}

// GetConfirmedMeeting godoc
// @Summary Get the confirmed meeting
// @Description Returns the event's confirmed meeting, or 404 when no meeting has been confirmed yet.
// @Tags planner
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.MeetingSuccessResponse "data contains the confirmed meeting"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/meeting [get]
func (c *PlannerController) GetConfirmedMeeting(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	meeting, err := c.Service.GetConfirmedMeeting(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no confirmed meeting")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meeting)
}

// MeetingSummary godoc
// @Summary Shareable meeting summary
// @Description Returns a plain-text summary of the confirmed meeting suitable for pasting into a chat, including date, time range, and participant names.
// @Tags planner
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.MeetingSummarySuccessResponse "data contains the summary text"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/meeting/summary [get]
func (c *PlannerController) MeetingSummary(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	summary, err := c.Service.MeetingSummary(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no confirmed meeting")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MeetingSummaryResponse{Summary: summary})
}
