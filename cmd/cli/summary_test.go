package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/surl/internal/analytics"
	"github.com/axellelanca/surl/internal/services"
)

func TestPrintDashboard(t *testing.T) {
	d := &services.Dashboard{
		ShortCode:   "AbC123",
		ShortURL:    "https://s.example/AbC123",
		LongURL:     "https://golang.org/doc",
		TotalVisits: 2,
		Tables: []analytics.Table{
			{Dimension: analytics.DimensionBrowser, Title: "Browsers", Entries: []analytics.Entry{{Key: "Firefox", Count: 2}}},
		},
		Visits: []services.Visit{
			{Date: "2024-01-01 10:00:00", Referrer: "None (direct)", Browser: "Firefox", OS: "N/A", DeviceType: "N/A", Language: "N/A", Location: "N/A", IP: "1.2.3.4"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printDashboard(&buf, d, true))

	out := buf.String()
	assert.Contains(t, out, "https://s.example/AbC123")
	assert.Contains(t, out, "Total visits:")
	assert.Contains(t, out, "Browsers")
	assert.Contains(t, out, "Firefox")
	assert.Contains(t, out, "1.2.3.4")
	assert.NotContains(t, out, "No analytics data available yet.")
}

func TestPrintDashboard_NoVisits(t *testing.T) {
	d := &services.Dashboard{ShortURL: "https://s.example/x", LongURL: "https://example.com", Visits: []services.Visit{}}

	var buf bytes.Buffer
	require.NoError(t, printDashboard(&buf, d, true))

	assert.Contains(t, buf.String(), "No analytics data available yet.")
	assert.NotContains(t, buf.String(), "DATE")
}

func TestPrintDashboard_WithoutVisitTable(t *testing.T) {
	d := &services.Dashboard{
		ShortURL:    "https://s.example/x",
		TotalVisits: 1,
		Visits:      []services.Visit{{Date: "2024-01-01 10:00:00", IP: "9.9.9.9"}},
	}

	var buf bytes.Buffer
	require.NoError(t, printDashboard(&buf, d, false))

	assert.NotContains(t, buf.String(), "9.9.9.9")
}
