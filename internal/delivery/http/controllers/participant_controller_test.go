package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"groupmeet/internal/delivery/http/helpers"
	"groupmeet/internal/delivery/http/middleware"
	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParticipantService implements domain.ParticipantService for handler tests.
type fakeParticipantService struct {
	participant *domain.Participant
	err         error
	lastJoin    domain.JoinEventInput
	lastSubmit  domain.Availability
	lastReseed  domain.UserType
	lastRename  string
}

func (f *fakeParticipantService) JoinEvent(ctx context.Context, in domain.JoinEventInput) (*domain.Participant, error) {
	f.lastJoin = in
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeParticipantService) GetParticipant(ctx context.Context, eventID int, participantID string) (*domain.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeParticipantService) SubmitAvailability(ctx context.Context, eventID int, participantID string, availability domain.Availability) (*domain.Participant, error) {
	f.lastSubmit = availability
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeParticipantService) ReseedForUserType(ctx context.Context, eventID int, participantID string, t domain.UserType) (*domain.Participant, error) {
	f.lastReseed = t
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeParticipantService) RenameParticipant(ctx context.Context, eventID int, participantID, name string) error {
	f.lastRename = name
	return f.err
}

func TestParticipantController_JoinEvent(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contextUser int
		fakeErr     error
		wantStatus  int
		wantUserID  int
	}{
		{
			name:       "guest join with preset",
			body:       `{"name":"Alice","user_type":"office-worker"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "logged-in join carries user id",
			body:        `{"name":"Bob","user_type":"custom"}`,
			contextUser: 42,
			wantStatus:  http.StatusCreated,
			wantUserID:  42,
		},
		{
			name:       "unknown user type",
			body:       `{"name":"Alice","user_type":"retiree"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing name",
			body:       `{"user_type":"custom"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "event not found",
			body:       `{"name":"Alice","user_type":"custom"}`,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeParticipantService{
				participant: &domain.Participant{ID: "p-1", Name: "Alice", Availability: domain.Availability{}},
				err:         tt.fakeErr,
			}
			ctrl := NewParticipantController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/events/7/participants", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", "7")
			if tt.contextUser != 0 {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.contextUser))
			}
			rr := httptest.NewRecorder()

			ctrl.JoinEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, 7, fake.lastJoin.EventID)
				assert.Equal(t, tt.wantUserID, fake.lastJoin.UserID)
			}
		})
	}
}

func TestParticipantController_SubmitAvailability(t *testing.T) {
	t.Run("success passes availability through", func(t *testing.T) {
		fake := &fakeParticipantService{
			participant: &domain.Participant{ID: "p-1", Submitted: true},
		}
		ctrl := NewParticipantController(testLogger, fake)

		body := `{"availability":{"2025-06-02-10-00":true,"2025-06-02-10-30":false}}`
		req := httptest.NewRequest(http.MethodPut, "http://test/events/7/participants/p-1/availability", bytes.NewBufferString(body))
		req.SetPathValue("eventID", "7")
		req.SetPathValue("participantID", "p-1")
		rr := httptest.NewRecorder()

		ctrl.SubmitAvailability(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, fake.lastSubmit["2025-06-02-10-00"])

		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
	})

	t.Run("missing availability", func(t *testing.T) {
		ctrl := NewParticipantController(testLogger, &fakeParticipantService{})

		req := httptest.NewRequest(http.MethodPut, "http://test/events/7/participants/p-1/availability", bytes.NewBufferString(`{}`))
		req.SetPathValue("eventID", "7")
		req.SetPathValue("participantID", "p-1")
		rr := httptest.NewRecorder()

		ctrl.SubmitAvailability(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("participant not found", func(t *testing.T) {
		ctrl := NewParticipantController(testLogger, &fakeParticipantService{err: domain.ErrNotFound})

		req := httptest.NewRequest(http.MethodPut, "http://test/events/7/participants/p-9/availability", bytes.NewBufferString(`{"availability":{}}`))
		req.SetPathValue("eventID", "7")
		req.SetPathValue("participantID", "p-9")
		rr := httptest.NewRecorder()

		ctrl.SubmitAvailability(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestParticipantController_Reseed(t *testing.T) {
	fake := &fakeParticipantService{
		participant: &domain.Participant{ID: "p-1", Submitted: false},
	}
	ctrl := NewParticipantController(testLogger, fake)

	req := httptest.NewRequest(http.MethodPost, "http://test/events/7/participants/p-1/reseed", bytes.NewBufferString(`{"user_type":"high-school-student"}`))
	req.SetPathValue("eventID", "7")
	req.SetPathValue("participantID", "p-1")
	rr := httptest.NewRecorder()

	ctrl.Reseed(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.UserTypeHighSchoolStudent, fake.lastReseed)
}

func TestParticipantController_RenameParticipant(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeParticipantService{}
		ctrl := NewParticipantController(testLogger, fake)

		req := httptest.NewRequest(http.MethodPatch, "http://test/events/7/participants/p-1", bytes.NewBufferString(`{"name":"Bobby"}`))
		req.SetPathValue("eventID", "7")
		req.SetPathValue("participantID", "p-1")
		rr := httptest.NewRecorder()

		ctrl.RenameParticipant(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Bobby", fake.lastRename)
	})

	t.Run("blank name", func(t *testing.T) {
		ctrl := NewParticipantController(testLogger, &fakeParticipantService{})

		req := httptest.NewRequest(http.MethodPatch, "http://test/events/7/participants/p-1", bytes.NewBufferString(`{"name":"  "}`))
		req.SetPathValue("eventID", "7")
		req.SetPathValue("participantID", "p-1")
		rr := httptest.NewRecorder()

		ctrl.RenameParticipant(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
