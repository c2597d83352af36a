package response

import "github.com/ecell/portal-api/internal/domain"

type Event struct {
	domain.Event
	SpotsLeft    int  `json:"spots_left"`
	OverCapacity bool `json:"over_capacity"`
}

type EventList struct {
	Count  int     `json:"count"`
	Events []Event `json:"events"`
}

func NewEvent(e domain.Event) Event {
	return Event{
		Event:        e,
		SpotsLeft:    e.SpotsLeft(),
		OverCapacity: e.OverCapacity(),
	}
}

func NewEventList(events []domain.Event) EventList {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = NewEvent(e)
	}

	return EventList{
		Count:  len(out),
		Events: out,
	}
}
