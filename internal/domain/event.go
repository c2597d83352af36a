package domain

import "time"

const (
	EventTypeWorkshop    = "workshop"
	EventTypeSeminar     = "seminar"
	EventTypeCompetition = "competition"
	EventTypeNetworking  = "networking"
	EventTypeOther       = "other"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

const DefaultMaxParticipants = 100

var (
	EventTypes    = []interface{}{EventTypeWorkshop, EventTypeSeminar, EventTypeCompetition, EventTypeNetworking, EventTypeOther}
	EventStatuses = []interface{}{EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled}
)

type Event struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Time            string    `json:"time"`
	Venue           string    `json:"venue"`
	Type            string    `json:"type"`
	MaxParticipants int       `json:"max_participants"`
	// RegisteredUsers is the roster view of the registration relation.
	RegisteredUsers []uint       `json:"registered_users"`
	Status          string       `json:"status"`
	ImageURL        string       `json:"image_url,omitempty"`
	CreatedByID     *uint        `json:"created_by_id,omitempty"`
	CreatedBy       *UserSummary `json:"created_by,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// OverCapacity reports a roster larger than the current capacity, which
// happens only when an admin lowers the capacity after people joined.
func (e Event) OverCapacity() bool {
	return len(e.RegisteredUsers) > e.MaxParticipants
}

func (e Event) SpotsLeft() int {
	if left := e.MaxParticipants - len(e.RegisteredUsers); left > 0 {
		return left
	}

	return 0
}

// EventUpdate is a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title           *string
	Description     *string
	Date            *time.Time
	Time            *string
	Venue           *string
	Type            *string
	MaxParticipants *int
	Status          *string
	ImageURL        *string
}

type EventFilter struct {
	Status string
	From   time.Time
	Limit  int
}
