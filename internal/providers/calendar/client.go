package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/datetime"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/retry"
)

const (
	DefaultCalendarID = "primary"
	// Scope grants read and write access to the user's calendars.
	Scope = gcal.CalendarScope
)

// APIError is an error answer from the Calendar API.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google calendar: %d %s", e.Code, e.Message)
}

type Config struct {
	CalendarID string
	TimeZone   string
}

type Option func(*Client)

// WithEndpoint points the service at another base URL, e.g. a test server.
func WithEndpoint(u string) Option {
	return func(c *Client) { c.clientOpts = append(c.clientOpts, option.WithEndpoint(u)) }
}

func WithRetry(cfg *retry.Config) Option {
	return func(c *Client) { c.retrier = retry.NewRetrier(cfg) }
}

// Client is the Calendar v3 events API over an authorized HTTP client.
type Client struct {
	events     *gcal.EventsService
	calendarID string
	timeZone   string
	loc        *time.Location
	retrier    *retry.Retrier
	clientOpts []option.ClientOption
}

var _ core.Calendar = (*Client)(nil)

func New(ctx context.Context, httpClient *http.Client, cfg Config, opts ...Option) (*Client, error) {
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	// An unresolved zone is not sent: the RFC 3339 offset already carries local time.
	loc, ok := datetime.ResolveLocation(cfg.TimeZone)
	timeZone := cfg.TimeZone
	if !ok {
		log.FromCtx(ctx).Warn().Str("timezone", cfg.TimeZone).Msg("unknown time zone, using local time")
		timeZone = ""
	}

	rc := retry.NewDefaultConfig()
	rc.MaxRetries = 2
	rc.Retryable = isTransient

	c := &Client{
		calendarID: calendarID,
		timeZone:   timeZone,
		loc:        loc,
		retrier:    retry.NewRetrier(rc),
		clientOpts: []option.ClientOption{
			option.WithHTTPClient(httpClient),
			option.WithUserAgent(core.AppUserAgent),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	svc, err := gcal.NewService(ctx, c.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	c.events = svc.Events
	return c, nil
}

// ListEvents returns single events between start and end ordered by start time.
func (c *Client) ListEvents(ctx context.Context, start, end string, maxResults int) ([]core.CalendarEvent, error) {
	timeMin, err := datetime.ParseDateTime(start, c.loc)
	if err != nil {
		return nil, err
	}
	timeMax, err := datetime.ParseDateTime(end, c.loc)
	if err != nil {
		return nil, err
	}

	call := c.events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if maxResults > 0 {
		call = call.MaxResults(int64(maxResults))
	}

	var result *gcal.Events
	err = c.retrier.Do(ctx, func() error {
		var err error
		result, err = call.Context(ctx).Do()
		return apiError(err)
	})
	if err != nil {
		return nil, err
	}

	events := make([]core.CalendarEvent, 0, len(result.Items))
	for _, e := range result.Items {
		events = append(events, core.CalendarEvent{
			ID:          e.Id,
			Summary:     e.Summary,
			Description: e.Description,
			Location:    e.Location,
			Start:       eventTime(e.Start),
			End:         eventTime(e.End),
		})
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, in core.NewCalendarEvent) (core.CreatedEvent, error) {
	start, err := datetime.ParseDateTime(in.Start, c.loc)
	if err != nil {
		return core.CreatedEvent{}, err
	}
	end, err := datetime.ParseDateTime(in.End, c.loc)
	if err != nil {
		return core.CreatedEvent{}, err
	}

	ev := &gcal.Event{
		Summary:     in.Title,
		Description: in.Description,
		Location:    in.Location,
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.timeZone},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.timeZone},
	}

	created, err := c.events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return core.CreatedEvent{}, apiError(err)
	}
	return core.CreatedEvent{
		ID:       created.Id,
		HTMLLink: created.HtmlLink,
		Summary:  created.Summary,
	}, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) (core.DeletedEvent, error) {
	if err := c.events.Delete(c.calendarID, id).Context(ctx).Do(); err != nil {
		return core.DeletedEvent{}, apiError(err)
	}
	return core.DeletedEvent{Status: "deleted", ID: id}, nil
}

// eventTime prefers the timed value; all-day events only carry a date.
func eventTime(t *gcal.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

func apiError(err error) error {
	if err == nil {
		return nil
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
		return &APIError{Code: gErr.Code, Message: msg}
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNotAuthorized) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
