package core

import "context"

type CalendarEvent struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type NewCalendarEvent struct {
	Title       string
	Start       string
	End         string
	Description string
	Location    string
}

type CreatedEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
	Summary  string `json:"summary"`
}

type DeletedEvent struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Calendar takes and returns date-times as YYYY-MM-DD HH:MM in the configured zone.
type Calendar interface {
	ListEvents(ctx context.Context, start, end string, maxResults int) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, in NewCalendarEvent) (CreatedEvent, error)
	DeleteEvent(ctx context.Context, id string) (DeletedEvent, error)
}
