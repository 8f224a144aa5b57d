package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrBadCredentials = errors.New("invalid email or password")
)

// User represents a registered user
// swagger:model User
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the
// repository on create.
func NewUser(email, name, passwordHash, salt string, createdAt time.Time) *User {
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) (int, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Update(ctx context.Context, user *User) error
}

// WeeklySchedule is a user's recurring weekly availability. Keys are
// "day-hour-minute" with a lowercase English day name and an unpadded
// hour, e.g. "monday-9-00". Like Availability, only selected slots are
// stored.
type WeeklySchedule map[string]bool

// WeeklyKey builds a weekly schedule key for the given day name, hour,
// and minute.
func WeeklyKey(day string, hour, minute int) string {
	return fmt.Sprintf("%s-%d-%02d", day, hour, minute)
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// ProjectWeekly maps a recurring weekly schedule onto a concrete event
// grid: each grid slot is selected exactly when the matching weekday
// slot is selected in the weekly schedule.
func ProjectWeekly(w WeeklySchedule, slots []TimeSlot) Availability {
	a := Availability{}
	for _, s := range slots {
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			continue
		}
		if w[WeeklyKey(weekdayNames[d.Weekday()], s.Hour, s.Minute)] {
			a[s.Key] = true
		}
	}
	return a
}

// AllWeeklySlots returns a fully selected weekly schedule, every day
// and every half hour.
func AllWeeklySlots() WeeklySchedule {
	w := WeeklySchedule{}
	for _, day := range weekdayNames {
		for hour := 0; hour < 24; hour++ {
			w[WeeklyKey(day, hour, 0)] = true
			w[WeeklyKey(day, hour, 30)] = true
		}
	}
	return w
}

// weeklyPresetBlockedHours mirrors the grid presets for the recurring
// weekly view. The generic student preset covers all student types.
var weeklyPresetBlockedHours = map[string][2]int{
	"office-worker": {9, 17},
	"student":       {9, 15},
}

var weekdaysOnly = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// ApplyWeeklyPreset removes the named preset's blocked weekday hours
// from a weekly schedule. Unknown preset names leave it untouched.
func ApplyWeeklyPreset(preset string, w WeeklySchedule) WeeklySchedule {
	blocked, ok := weeklyPresetBlockedHours[preset]
	c := make(WeeklySchedule, len(w))
	for k := range w {
		c[k] = true
	}
	if !ok {
		return c
	}
	for _, day := range weekdaysOnly {
		for hour := blocked[0]; hour <= blocked[1]; hour++ {
			delete(c, WeeklyKey(day, hour, 0))
			delete(c, WeeklyKey(day, hour, 30))
		}
	}
	return c
}

// WeeklyScheduleRepository defines the interface for weekly schedule storage
type WeeklyScheduleRepository interface {
	Save(ctx context.Context, userID int, w WeeklySchedule) error
	Get(ctx context.Context, userID int) (WeeklySchedule, error)
}

// SignUpInput carries the fields needed to register a user.
type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// AuthService defines registration and login.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (token string, user *User, err error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}

// UserService defines the business logic for user profile and weekly
// schedule management.
type UserService interface {
	GetByID(ctx context.Context, id int) (*User, error)
	SaveWeeklySchedule(ctx context.Context, userID int, w WeeklySchedule) error
	GetWeeklySchedule(ctx context.Context, userID int) (WeeklySchedule, error)
}
