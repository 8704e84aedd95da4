// Package services contains the presentation logic shared by the web front-end and the CLI
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/axellelanca/surl/internal/analytics"
	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/axellelanca/surl/internal/metrics"
	"github.com/axellelanca/surl/internal/models"
	"github.com/axellelanca/surl/internal/view"
)

// Static messages shown to users. Causes are only logged.
const (
	MsgShortenFailed = "Failed to shorten URL. Please try again."
	MsgNotFound      = "URL not found"
	MsgEmptyCode     = "Please enter a shortened URL or code"
)

// ShortenerAPI is the subset of the shortening service used by LinkService.
// It is satisfied by *client.Client.
type ShortenerAPI interface {
	Shorten(ctx context.Context, longURL string) (*models.ShortenResult, error)
	GetSummary(ctx context.Context, code string) (*models.SummaryResult, error)
}

// Shortened is the result of a shorten submission, ready to display.
type Shortened struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"` // {base}/{code}
	LongURL   string `json:"long_url"`
}

// Visit is one row of the per-visit table, with placeholders already applied.
type Visit struct {
	Date       string `json:"date"`
	Language   string `json:"language"`
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	DeviceType string `json:"device_type"`
	Referrer   string `json:"referrer"`
	Location   string `json:"location"`
	IP         string `json:"ip"`
}

// Dashboard is the view model of the summary page.
type Dashboard struct {
	ShortCode   string            `json:"short_code"`
	ShortURL    string            `json:"short_url"`
	LongURL     string            `json:"long_url"`
	FaviconURL  string            `json:"favicon_url,omitempty"` // empty when none could be derived
	TotalVisits int               `json:"total_visits"`
	Tables      []analytics.Table `json:"tables"`
	Visits      []Visit           `json:"visits"`
}

// LinkService provides the two operations of the front-end on top of the shortening service.
type LinkService struct {
	api             ShortenerAPI
	baseURL         string                     // Base URL of the shortening service, used to display short URLs
	faviconTemplate string                     // Icon service template, %s receives the hostname
	events          chan<- models.ShortenEvent // History queue, nil when history is disabled
	location        *time.Location             // Zone used to display visit dates
}

// Option customizes a LinkService.
type Option func(*LinkService)

// WithHistory publishes a ShortenEvent on events after every successful shorten call.
func WithHistory(events chan<- models.ShortenEvent) Option {
	return func(s *LinkService) { s.events = events }
}

// WithFaviconTemplate overrides the icon service template.
func WithFaviconTemplate(template string) Option {
	return func(s *LinkService) {
		if template != "" {
			s.faviconTemplate = template
		}
	}
}

// WithLocation sets the zone visit dates are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(s *LinkService) { s.location = loc }
}

// NewLinkService creates a LinkService. baseURL is the shortening service base URL.
func NewLinkService(api ShortenerAPI, baseURL string, opts ...Option) *LinkService {
	s := &LinkService{
		api:             api,
		baseURL:         baseURL,
		faviconTemplate: "https://www.google.com/s2/favicons?domain=%s&sz=64",
		location:        time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shorten asks the service for a short URL and queues the result for the local history.
// The service alone decides which URLs it accepts; only blank input is rejected here.
// Every failure wraps customerrors.ErrShortenFailed.
func (s *LinkService) Shorten(ctx context.Context, longURL string) (*Shortened, error) {
	if err := ValidateURL(longURL); err != nil {
		return nil, err
	}

	result, err := s.api.Shorten(ctx, longURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.ShortURL) == "" {
		return nil, fmt.Errorf("%w: service returned no short URL", customerrors.ErrShortenFailed)
	}

	shortened := &Shortened{
		ShortCode: view.ExtractShortCode(result.ShortURL),
		ShortURL:  view.ShortURL(s.baseURL, result.ShortURL),
		LongURL:   result.LongURL,
	}
	if shortened.LongURL == "" {
		shortened.LongURL = longURL
	}

	s.publish(shortened)
	return shortened, nil
}

// publish queues a ShortenEvent without ever blocking the caller. When the buffer is full
// the event is dropped: the history is a convenience, the shorten call already succeeded.
func (s *LinkService) publish(shortened *Shortened) {
	if s.events == nil {
		return
	}

	event := models.ShortenEvent{
		ShortCode: shortened.ShortCode,
		ShortURL:  shortened.ShortURL,
		LongURL:   shortened.LongURL,
		Timestamp: time.Now(),
	}

	select {
	case s.events <- event:
		metrics.HistoryEvents.WithLabelValues("queued").Inc()
	default:
		metrics.HistoryEvents.WithLabelValues("dropped").Inc()
		logrus.WithField("short_code", shortened.ShortCode).Warn("History queue is full, dropping event")
	}
}

// Summary resolves input (a bare code or a full short URL), fetches its analytics and
// builds the dashboard.
// Returns customerrors.ErrEmptyShortCode for blank input and customerrors.ErrSummaryNotFound otherwise.
func (s *LinkService) Summary(ctx context.Context, input string) (*Dashboard, error) {
	code := view.ExtractShortCode(input)
	if code == "" {
		return nil, customerrors.ErrEmptyShortCode
	}

	summary, err := s.api.GetSummary(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.BuildDashboard(code, summary), nil
}

// BuildDashboard computes the view model of a summary. It is pure apart from reading the
// service configuration.
func (s *LinkService) BuildDashboard(code string, summary *models.SummaryResult) *Dashboard {
	shortURL := summary.ShortURL
	if shortURL == "" {
		shortURL = code
	}

	d := &Dashboard{
		ShortCode:   code,
		ShortURL:    view.ShortURL(s.baseURL, shortURL),
		LongURL:     summary.LongURL,
		TotalVisits: summary.TotalVisits(),
		Tables:      analytics.Tables(summary.Analytics),
		Visits:      make([]Visit, 0, len(summary.Analytics)),
	}

	if icon, ok := view.FaviconURL(s.faviconTemplate, summary.LongURL); ok {
		d.FaviconURL = icon
	}

	for _, r := range summary.Analytics {
		d.Visits = append(d.Visits, Visit{
			Date:       view.FormatVisit(r, s.location),
			Language:   view.OrNA(r.Language),
			OS:         view.OrNA(r.OS),
			Browser:    view.OrNA(r.Browser),
			DeviceType: view.OrNA(r.DeviceType),
			Referrer:   analytics.ReferrerKey(r),
			Location:   view.OrNA(r.Location),
			IP:         view.OrNA(r.IP),
		})
	}
	return d
}

// UserMessage maps an error of this package to the static message shown to users.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, customerrors.ErrEmptyShortCode):
		return MsgEmptyCode
	case errors.Is(err, customerrors.ErrSummaryNotFound):
		return MsgNotFound
	default:
		return MsgShortenFailed
	}
}

// ValidateURL rejects blank input. The error wraps both customerrors.ErrShortenFailed and
// customerrors.ErrInvalidURL so it reads as an ordinary shorten failure.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("%w: %w", customerrors.ErrShortenFailed, customerrors.ErrInvalidURL)
	}
	return nil
}
