package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"groupmeet/internal/delivery/http/controllers"
	"groupmeet/internal/delivery/http/middleware"
	"groupmeet/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Routes that work for both guests and logged-in users get OptionalAuth
// so a present token still resolves to a user ID.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	participantController *controllers.ParticipantController,
	plannerController *controllers.PlannerController,
	userController *controllers.UserController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", optionalAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/me", requireAuth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("DELETE /events/{eventID}", optionalAuth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/code/{code}", eventController.GetEventByCode)
	mux.HandleFunc("POST /events/{eventID}/invitations", requireAuth(eventController.SendEventInvitations))

	// Participants
	mux.HandleFunc("POST /events/{eventID}/participants", optionalAuth(participantController.JoinEvent))
	mux.HandleFunc("GET /events/{eventID}/participants/{participantID}", participantController.GetParticipant)
	mux.HandleFunc("PATCH /events/{eventID}/participants/{participantID}", participantController.RenameParticipant)
	mux.HandleFunc("PUT /events/{eventID}/participants/{participantID}/availability", participantController.SubmitAvailability)
	mux.HandleFunc("POST /events/{eventID}/participants/{participantID}/reseed", participantController.Reseed)

	// Planner
	mux.HandleFunc("GET /events/{eventID}/availability", plannerController.AvailabilityCounts)
	mux.HandleFunc("GET /events/{eventID}/recommendations", plannerController.Recommendations)
	mux.HandleFunc("POST /events/{eventID}/meeting", optionalAuth(plannerController.ConfirmMeeting))
	mux.HandleFunc("GET /events/{eventID}/meeting", plannerController.GetConfirmedMeeting)
	mux.HandleFunc("GET /events/{eventID}/meeting/summary", plannerController.MeetingSummary)

	// Users
	mux.HandleFunc("GET /users/me", requireAuth(userController.GetMe))
	mux.HandleFunc("GET /users/me/weekly-schedule", requireAuth(userController.GetWeeklySchedule))
	mux.HandleFunc("PUT /users/me/weekly-schedule", requireAuth(userController.SaveWeeklySchedule))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
