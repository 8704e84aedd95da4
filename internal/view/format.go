package view

import (
	"strings"
	"time"

	"github.com/axellelanca/surl/internal/models"
)

// NotAvailable is shown in the per-visit table for fields that were not collected.
const NotAvailable = "N/A"

// DateLayout is the layout used for visit timestamps.
const DateLayout = "2006-01-02 15:04:05"

// OrNA returns v, or NotAvailable when v is empty.
func OrNA(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}

// FormatVisit formats the timestamp of a visit in loc. Timestamps the service sent in an
// unknown layout are shown verbatim.
func FormatVisit(r models.AnalyticRecord, loc *time.Location) string {
	t, ok := r.VisitedAt()
	if !ok {
		return OrNA(r.CreatedAt)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ShortURL returns the short URL to display: the value returned by the service when it is
// already absolute, otherwise base joined with the returned code.
func ShortURL(base, returned string) string {
	if strings.Contains(returned, "://") {
		return returned
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(returned, "/")
}
