package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ecell/portal-api/internal/domain"
)

const DateLayout = "2006-01-02"

type CreateEventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date" format:"YYYY-MM-DD"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	Type            string `json:"type"`
	MaxParticipants int    `json:"max_participants"`
	ImageURL        string `json:"image_url"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&req.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&req.Time, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Venue, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Type, validation.In(domain.EventTypes...)),
		validation.Field(&req.MaxParticipants, validation.Min(0)),
		validation.Field(&req.ImageURL, is.URL),
	)
}

// ToDomain assumes Validate passed.
func (req *CreateEventRequest) ToDomain() (domain.Event, error) {
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return domain.Event{}, fmt.Errorf("invalid date format: %w", err)
	}

	return domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		Time:            req.Time,
		Venue:           req.Venue,
		Type:            req.Type,
		MaxParticipants: req.MaxParticipants,
		ImageURL:        req.ImageURL,
	}, nil
}

// UpdateEventRequest is a partial update; absent fields keep their value.
type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date" format:"YYYY-MM-DD"`
	Time            *string `json:"time"`
	Venue           *string `json:"venue"`
	Type            *string `json:"type"`
	MaxParticipants *int    `json:"max_participants"`
	Status          *string `json:"status"`
	ImageURL        *string `json:"image_url"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.NilOrNotEmpty, validation.Length(1, 5000)),
		validation.Field(&req.Date, validation.NilOrNotEmpty, validation.Date(DateLayout)),
		validation.Field(&req.Time, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Venue, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.Type, validation.NilOrNotEmpty, validation.In(domain.EventTypes...)),
		validation.Field(&req.MaxParticipants, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(domain.EventStatuses...)),
		validation.Field(&req.ImageURL, is.URL),
	)
}

func (req *UpdateEventRequest) ToDomain() (domain.EventUpdate, error) {
	update := domain.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Time:            req.Time,
		Venue:           req.Venue,
		Type:            req.Type,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
		ImageURL:        req.ImageURL,
	}

	if req.Date != nil {
		date, err := time.Parse(DateLayout, *req.Date)
		if err != nil {
			return domain.EventUpdate{}, fmt.Errorf("invalid date format: %w", err)
		}
		update.Date = &date
	}

	return update, nil
}
