package models

import "time"

// AnalyticRecord represents one logged visit to a short URL, as returned by the shortening service.
// Every field except CreatedAt is optional: an empty value means it was not collected for this visit.
type AnalyticRecord struct {
	// CreatedAt is the raw visit timestamp sent by the service
	CreatedAt string `json:"created_at"`

	Language   string `json:"language,omitempty"`
	OS         string `json:"os,omitempty"`
	Browser    string `json:"browser,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	Referrer   string `json:"referrer,omitempty"`
	IP         string `json:"ip,omitempty"`
	Location   string `json:"location,omitempty"` // resolved geolocation, e.g. "Paris, FR"
	UserAgent  string `json:"user_agent,omitempty"`
}

// VisitedAt parses CreatedAt. The service has emitted RFC 3339 with and without
// fractional seconds as well as naive "YYYY-MM-DD HH:MM:SS" timestamps.
func (r AnalyticRecord) VisitedAt() (time.Time, bool) {
	for _, layout := range visitLayouts {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var visitLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// SummaryResult is the payload of GET /{code}/summary.
// Analytics keeps the order returned by the service (visit order).
type SummaryResult struct {
	ShortURL  string           `json:"short_url"`
	LongURL   string           `json:"long_url"`
	Analytics []AnalyticRecord `json:"analytics"`
}

// TotalVisits is the number of visits shown to users. It is always len(Analytics).
func (s *SummaryResult) TotalVisits() int {
	return len(s.Analytics)
}

// ShortenResult is the payload of POST /shorten.
type ShortenResult struct {
	ShortURL  string           `json:"short_url"`
	LongURL   string           `json:"long_url"`
	Analytics []AnalyticRecord `json:"analytics,omitempty"`
}
