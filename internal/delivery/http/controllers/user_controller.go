package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"groupmeet/internal/delivery/http/helpers"
	"groupmeet/internal/delivery/http/middleware"
	"groupmeet/internal/domain"
)

// GetMeSuccessResponse is the success response envelope for GET /users/me (200).
type GetMeSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// WeeklyScheduleResponse is the data payload for the weekly schedule endpoints.
// Schedule maps day-hour-minute keys (e.g. "monday-9-00") to true.
type WeeklyScheduleResponse struct {
	Schedule domain.WeeklySchedule `json:"schedule"`
}

// WeeklyScheduleSuccessResponse is the success response envelope for the weekly schedule endpoints (200).
type WeeklyScheduleSuccessResponse struct {
	Data  WeeklyScheduleResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// SaveWeeklyScheduleRequest is the request body for PUT /users/me/weekly-schedule.
// Either a full schedule map or a preset name ("office-worker" or "student").
// When preset is set the schedule field is ignored and the preset is expanded
// server-side.
type SaveWeeklyScheduleRequest struct {
	Schedule domain.WeeklySchedule `json:"schedule"`
	Preset   string                `json:"preset"`
}

// Validate implements Validator.
func (s SaveWeeklyScheduleRequest) Validate() []string {
	if s.Preset == "" && s.Schedule == nil {
		return []string{"either schedule or preset is required"}
	}
	return nil
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe godoc
// @Summary Get the current user
// @Description Returns the profile of the authenticated user. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// GetWeeklySchedule godoc
// @Summary Get the saved weekly schedule
// @Description Returns the authenticated user's recurring weekly availability. An empty schedule means none has been saved. Requires Bearer token.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.WeeklyScheduleSuccessResponse "data contains the schedule map"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/weekly-schedule [get]
func (c *UserController) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	schedule, err := c.Service.GetWeeklySchedule(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WeeklyScheduleResponse{Schedule: schedule})
}

// SaveWeeklySchedule godoc
// @Summary Save the weekly schedule
// @Description Replaces the authenticated user's recurring weekly availability. The body carries either a full schedule map or a preset name ("office-worker" or "student") that is expanded server-side. The saved schedule seeds the grid when joining events while logged in. Requires Bearer token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveWeeklyScheduleRequest true "Schedule map or preset name"
// @Success 200 {object} controllers.WeeklyScheduleSuccessResponse "data contains the saved schedule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/weekly-schedule [put]
func (c *UserController) SaveWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SaveWeeklyScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	schedule := req.Schedule
	if req.Preset != "" {
		schedule = domain.ApplyWeeklyPreset(req.Preset, domain.AllWeeklySlots())
	}
	if err := c.Service.SaveWeeklySchedule(r.Context(), userID, schedule); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WeeklyScheduleResponse{Schedule: schedule})
}
