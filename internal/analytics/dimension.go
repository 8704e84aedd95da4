package analytics

import "github.com/axellelanca/surl/internal/models"

// Dimension names a field the dashboard breaks visits down by.
type Dimension string

const (
	DimensionReferrer   Dimension = "referrer"
	DimensionHost       Dimension = "host"
	DimensionBrowser    Dimension = "browser"
	DimensionOS         Dimension = "os"
	DimensionDeviceType Dimension = "device_type"
	DimensionLanguage   Dimension = "language"
	DimensionLocation   Dimension = "location"
)

// Dimensions lists every dimension in dashboard display order.
var Dimensions = []Dimension{
	DimensionHost,
	DimensionReferrer,
	DimensionBrowser,
	DimensionOS,
	DimensionDeviceType,
	DimensionLocation,
	DimensionLanguage,
}

var keyFuncs = map[Dimension]KeyFunc{
	DimensionReferrer:   ReferrerKey,
	DimensionHost:       HostKey,
	DimensionBrowser:    BrowserKey,
	DimensionOS:         OSKey,
	DimensionDeviceType: DeviceTypeKey,
	DimensionLanguage:   LanguageKey,
	DimensionLocation:   LocationKey,
}

var titles = map[Dimension]string{
	DimensionReferrer:   "Top Referrers",
	DimensionHost:       "Top Referring Sites",
	DimensionBrowser:    "Browsers",
	DimensionOS:         "Operating Systems",
	DimensionDeviceType: "Device Types",
	DimensionLanguage:   "Languages",
	DimensionLocation:   "Locations",
}

// Title is the heading used for the dimension's table.
func (d Dimension) Title() string {
	if t, ok := titles[d]; ok {
		return t
	}
	return string(d)
}

// Key returns the key extractor of the dimension, or nil for an unknown dimension.
func (d Dimension) Key() KeyFunc {
	return keyFuncs[d]
}

// Table is a titled Top-N frequency table.
type Table struct {
	Dimension Dimension `json:"dimension"`
	Title     string    `json:"title"`
	Entries   []Entry   `json:"entries"`
}

// TopBy returns the Top-N table of records for d. Unknown dimensions yield an empty table.
func TopBy(records []models.AnalyticRecord, d Dimension) []Entry {
	key := d.Key()
	if key == nil {
		return []Entry{}
	}
	return Top(records, key, TopN)
}

// Tables computes one table per dimension, in display order.
func Tables(records []models.AnalyticRecord) []Table {
	tables := make([]Table, 0, len(Dimensions))
	for _, d := range Dimensions {
		tables = append(tables, Table{
			Dimension: d,
			Title:     d.Title(),
			Entries:   TopBy(records, d),
		})
	}
	return tables
}
