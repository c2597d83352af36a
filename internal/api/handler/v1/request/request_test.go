package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:       "Asha",
		Email:      "asha@example.com",
		Password:   "secret1",
		RollNumber: "21CS001",
		Branch:     "CSE",
		Year:       3,
		Phone:      "9876543210",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{name: "matching confirmation", mutate: func(r *SignupRequest) { r.ConfirmPassword = "secret1" }},
		{name: "mismatched confirmation", mutate: func(r *SignupRequest) { r.ConfirmPassword = "secret2" }, wantErr: true},
		{name: "letters only password", mutate: func(r *SignupRequest) { r.Password = "abcdefgh" }, wantErr: true},
		{name: "digits only password", mutate: func(r *SignupRequest) { r.Password = "12345678" }, wantErr: true},
		{name: "five character password", mutate: func(r *SignupRequest) { r.Password = "abc12" }, wantErr: true},
		{name: "missing roll number", mutate: func(r *SignupRequest) { r.RollNumber = "" }, wantErr: true},
		{name: "year zero", mutate: func(r *SignupRequest) { r.Year = 0 }, wantErr: true},
		{name: "year five", mutate: func(r *SignupRequest) { r.Year = 5 }, wantErr: true},
		{name: "bad phone", mutate: func(r *SignupRequest) { r.Phone = "call me" }, wantErr: true},
		{name: "bad email", mutate: func(r *SignupRequest) { r.Email = "asha" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateEventRequest_ToDomain(t *testing.T) {
	req := CreateEventRequest{
		Title:           "Innovation Summit",
		Description:     "Keynotes",
		Date:            "2030-01-10",
		Time:            "9:00 AM - 6:00 PM",
		Venue:           "Main Auditorium",
		Type:            "seminar",
		MaxParticipants: 200,
		ImageURL:        "https://example.com/summit.png",
	}
	require.NoError(t, req.Validate())

	event, err := req.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), event.Date)
	assert.Equal(t, "9:00 AM - 6:00 PM", event.Time)
	assert.Equal(t, 200, event.MaxParticipants)

	req.ImageURL = "not a url"
	assert.Error(t, req.Validate())
}

func TestUpdateEventRequest(t *testing.T) {
	date := "2030-03-04"
	zero := 0
	status := "cancelled"

	req := UpdateEventRequest{Date: &date, Status: &status}
	require.NoError(t, req.Validate())

	update, err := req.ToDomain()
	require.NoError(t, err)
	require.NotNil(t, update.Date)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), *update.Date)
	assert.Equal(t, &status, update.Status)
	assert.Nil(t, update.Title)

	req = UpdateEventRequest{MaxParticipants: &zero}
	assert.Error(t, req.Validate())
}

func TestUpdateProfileRequest(t *testing.T) {
	name := "  Asha K  "
	req := UpdateProfileRequest{Name: &name}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Asha K", *req.ToDomain().Name)

	assert.Error(t, (&UpdateProfileRequest{}).Validate())
}

func TestUpdateRoleRequest(t *testing.T) {
	assert.NoError(t, (&UpdateRoleRequest{Role: "admin"}).Validate())
	assert.NoError(t, (&UpdateRoleRequest{Role: "member"}).Validate())
	assert.Error(t, (&UpdateRoleRequest{Role: "superuser"}).Validate())
}
