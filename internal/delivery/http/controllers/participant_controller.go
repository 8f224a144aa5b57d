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

// JoinEventRequest is the request body for POST /events/{eventID}/participants.
type JoinEventRequest struct {
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// Validate implements Validator.
func (j JoinEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(j.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !domain.ValidUserType(domain.UserType(j.UserType)) {
		errs = append(errs, "user_type must be one of: office-worker, university-student, high-school-student, middle-school-student, custom")
	}
	return errs
}

// SubmitAvailabilityRequest is the request body for PUT /events/{eventID}/participants/{participantID}/availability.
// Availability maps slot keys (YYYY-MM-DD-HH-MM) to true; false and missing both mean unavailable.
type SubmitAvailabilityRequest struct {
	Availability map[string]bool `json:"availability"`
}

// Validate implements Validator.
func (s SubmitAvailabilityRequest) Validate() []string {
	if s.Availability == nil {
		return []string{"availability is required"}
	}
	return nil
}

// ReseedRequest is the request body for POST /events/{eventID}/participants/{participantID}/reseed.
type ReseedRequest struct {
	UserType string `json:"user_type"`
}

// Validate implements Validator.
func (rr ReseedRequest) Validate() []string {
	if !domain.ValidUserType(domain.UserType(rr.UserType)) {
		return []string{"user_type must be one of: office-worker, university-student, high-school-student, middle-school-student, custom"}
	}
	return nil
}

// RenameParticipantRequest is the request body for PATCH /events/{eventID}/participants/{participantID}.
type RenameParticipantRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (rn RenameParticipantRequest) Validate() []string {
	if strings.TrimSpace(rn.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// ParticipantSuccessResponse is the success response envelope for participant endpoints.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// RenameParticipantResponse is the data payload for PATCH /events/{eventID}/participants/{participantID} (200).
type RenameParticipantResponse struct {
	Status string `json:"status"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// JoinEvent godoc
// @Summary Join an event
// @Description Join an event as a named participant. The availability grid is seeded from the chosen user type preset, or from the caller's saved weekly schedule when a valid Bearer token is present.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param body body JoinEventRequest true "Participant name and user type"
// @Success 201 {object} controllers.ParticipantSuccessResponse "data contains the participant with the seeded grid"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *ParticipantController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req JoinEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	participant, err := c.Service.JoinEvent(r.Context(), domain.JoinEventInput{
		EventID:  eventID,
		Name:     strings.TrimSpace(req.Name),
		UserType: domain.UserType(req.UserType),
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// GetParticipant godoc
// @Summary Get a participant
// @Description Returns a participant of the event, including their current availability grid.
// @Tags participants
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path string true "Participant ID"
// @Success 200 {object} controllers.ParticipantSuccessResponse "data contains the participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{participantID} [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	participantID := r.PathValue("participantID")
	if !ok || participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID or participantID")
		return
	}
	participant, err := c.Service.GetParticipant(r.Context(), eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// SubmitAvailability godoc
// @Summary Submit a participant's availability
// @Description Replaces the participant's availability grid with the submitted one and marks the participant as submitted. Entries with a false value are dropped; only true slots are stored.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path string true "Participant ID"
// @Param body body SubmitAvailabilityRequest true "Availability map keyed by slot"
// @Success 200 {object} controllers.ParticipantSuccessResponse "data contains the updated participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{participantID}/availability [put]
func (c *ParticipantController) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	participantID := r.PathValue("participantID")
	if !ok || participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID or participantID")
		return
	}
	var req SubmitAvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.SubmitAvailability(r.Context(), eventID, participantID, domain.Availability(req.Availability))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// Reseed godoc
// @Summary Reset a participant's grid to a user type preset
// @Description Discards the participant's current grid, reseeds it from the given user type preset, and clears the submitted flag. Manual edits are lost.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path string true "Participant ID"
// @Param body body ReseedRequest true "User type to reseed from"
// @Success 200 {object} controllers.ParticipantSuccessResponse "data contains the reseeded participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{participantID}/reseed [post]
func (c *ParticipantController) Reseed(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	participantID := r.PathValue("participantID")
	if !ok || participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID or participantID")
		return
	}
	var req ReseedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.ReseedForUserType(r.Context(), eventID, participantID, domain.UserType(req.UserType))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// RenameParticipant godoc
// @Summary Rename a participant
// @Description Changes the participant's display name. Availability and submission state are unchanged.
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path string true "Participant ID"
// @Param body body RenameParticipantRequest true "New name"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{participantID} [patch]
func (c *ParticipantController) RenameParticipant(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(r)
	participantID := r.PathValue("participantID")
	if !ok || participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID or participantID")
		return
	}
	var req RenameParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.RenameParticipant(r.Context(), eventID, participantID, req.Name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, RenameParticipantResponse{Status: "renamed"})
}
