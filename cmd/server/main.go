package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"groupmeet/config"
	"groupmeet/internal/adapters/auth"
	"groupmeet/internal/adapters/email"
	delivery "groupmeet/internal/delivery/http"
	"groupmeet/internal/delivery/http/controllers"
	"groupmeet/internal/delivery/http/middleware"
	"groupmeet/internal/domain"
	"groupmeet/internal/repository/memory"
	"groupmeet/internal/repository/postgres"
	"groupmeet/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
	bcryptCost      = 12
)

type repositories struct {
	events       domain.EventRepository
	participants domain.ParticipantRepository
	meetings     domain.MeetingRepository
	users        domain.UserRepository
	weekly       domain.WeeklyScheduleRepository
	invitations  domain.EventInvitationRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	var repos repositories
	if cfg.DBUrl == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
		store := memory.NewStore()
		repos = repositories{
			events:       store.Events(),
			participants: store.Participants(),
			meetings:     store.Meetings(),
			users:        store.Users(),
			weekly:       store.WeeklySchedules(),
			invitations:  store.Invitations(),
		}
	} else {
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			logger.Error("ping database", "err", err)
			os.Exit(1)
		}
		repos = repositories{
			events:       postgres.NewEventRepository(db),
			participants: postgres.NewParticipantRepository(db),
			meetings:     postgres.NewMeetingRepository(db),
			users:        postgres.NewUserRepository(db),
			weekly:       postgres.NewWeeklyScheduleRepository(db),
			invitations:  postgres.NewEventInvitationRepository(db),
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcryptCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	eventService := services.NewEventService(repos.events, repos.participants, repos.users, repos.invitations, emailService, serviceTimeout)
	participantService := services.NewParticipantService(repos.events, repos.participants, repos.weekly, serviceTimeout)
	plannerService := services.NewPlannerService(repos.events, repos.participants, repos.meetings, repos.invitations, emailService, serviceTimeout)
	authService := services.NewAuthService(repos.users, hasher, issuer, cfg.JWTExpiry, serviceTimeout)
	userService := services.NewUserService(repos.users, repos.weekly, serviceTimeout)

	mux := delivery.NewRouter(
		verifier,
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService),
		controllers.NewParticipantController(logger, participantService),
		controllers.NewPlannerController(logger, plannerService),
		controllers.NewUserController(logger, userService),
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.RequestLogging(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}
}
