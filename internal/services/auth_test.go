package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher hashes by concatenation so comparisons stay readable.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct {
	err error
}

func (f fakeTokenIssuer) Issue(userID int, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

func newTestAuthService(userRepo *fakeUserRepo) domain.AuthService {
	return NewAuthService(userRepo, fakeHasher{}, fakeTokenIssuer{}, time.Hour, 2*time.Second)
}

func TestSignUp(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)

	token, user, err := svc.SignUp(context.Background(), domain.SignUpInput{
		Email:    " Ana@Example.com ",
		Name:     " Ana ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "token-1-ana@example.com", token)
	assert.Equal(t, "salt:supersecret", user.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	tests := []struct {
		name string
		in   domain.SignUpInput
	}{
		{name: "bad email", in: domain.SignUpInput{Email: "not-an-email", Password: "supersecret"}},
		{name: "short password", in: domain.SignUpInput{Email: "a@b.co", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignUp(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)

	_, _, err := svc.SignUp(context.Background(), domain.SignUpInput{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), domain.SignUpInput{Email: "a@b.co", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)

	_, _, err := svc.SignUp(context.Background(), domain.SignUpInput{Email: "a@b.co", Password: "supersecret"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "A@B.co", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "a@b.co", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = svc.Login(context.Background(), "missing@b.co", "supersecret")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}
