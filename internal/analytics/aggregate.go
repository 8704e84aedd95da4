// Package analytics turns the raw per-visit records returned by the shortening service
// into the frequency tables shown on the summary dashboard.
package analytics

import (
	"net/url"
	"sort"

	"github.com/axellelanca/surl/internal/models"
)

// TopN is the number of entries kept in every frequency table.
const TopN = 5

// Placeholder labels for fields that were not collected.
const (
	DirectReferrer = "None (direct)"
	DirectHost     = "Direct"
	Unknown        = "Unknown"
)

// Entry is one row of a frequency table.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyFunc extracts the grouping key of a record for one dimension.
type KeyFunc func(models.AnalyticRecord) string

// Top groups records by key, sorts groups by descending count and keeps the n largest.
// Groups with equal counts stay in first-seen order. Remaining groups are dropped.
func Top(records []models.AnalyticRecord, key KeyFunc, n int) []Entry {
	if len(records) == 0 || n <= 0 {
		return []Entry{}
	}

	index := make(map[string]int)
	var entries []Entry
	for _, r := range records {
		k := key(r)
		i, seen := index[k]
		if !seen {
			i = len(entries)
			index[k] = i
			entries = append(entries, Entry{Key: k})
		}
		entries[i].Count++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// ReferrerKey returns the raw referrer, or DirectReferrer when the visit had none.
func ReferrerKey(r models.AnalyticRecord) string {
	if r.Referrer == "" {
		return DirectReferrer
	}
	return r.Referrer
}

// HostKey returns the hostname of the referrer. A referrer that does not parse as an
// absolute URL is used as is; a missing referrer yields DirectHost.
func HostKey(r models.AnalyticRecord) string {
	if r.Referrer == "" || r.Referrer == DirectReferrer {
		return DirectHost
	}
	u, err := url.Parse(r.Referrer)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return r.Referrer
	}
	return u.Hostname()
}

// BrowserKey returns the browser name or Unknown.
func BrowserKey(r models.AnalyticRecord) string { return orUnknown(r.Browser) }

// OSKey returns the operating system or Unknown.
func OSKey(r models.AnalyticRecord) string { return orUnknown(r.OS) }

// DeviceTypeKey returns the device type or Unknown.
func DeviceTypeKey(r models.AnalyticRecord) string { return orUnknown(r.DeviceType) }

// LanguageKey returns the browser language or Unknown.
func LanguageKey(r models.AnalyticRecord) string { return orUnknown(r.Language) }

// LocationKey returns the resolved geolocation or Unknown.
func LocationKey(r models.AnalyticRecord) string { return orUnknown(r.Location) }

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}
