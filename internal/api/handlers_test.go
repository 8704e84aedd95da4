package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/surl/internal/client"
	"github.com/axellelanca/surl/internal/services"
)

// newUpstream fakes the shortening service: it knows a single code, AbC123.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /shorten", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			LongURL string `json:"long_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.Contains(body.LongURL, "reject") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"short_url": "AbC123",
			"long_url":  body.LongURL,
			"analytics": []any{},
		})
	})
	mux.HandleFunc("GET /{code}/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("code") != "AbC123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{
			"short_url": "AbC123",
			"long_url": "https://golang.org/doc",
			"analytics": [
				{"created_at": "2024-01-01T10:00:00Z", "os": "Linux", "browser": "Firefox", "referrer": "https://news.example.com/a/b"},
				{"created_at": "2024-01-01T11:00:00Z", "os": "Linux"},
				{"created_at": "2024-01-01T12:00:00Z", "os": "macOS", "location": "Paris, FR"}
			]
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const base = "https://s.example"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := newUpstream(t)
	c := client.New(client.Config{BaseURL: upstream.URL, HTTPClient: upstream.Client()})
	svc := services.NewLinkService(c, base)

	router, err := NewRouter(svc)
	require.NoError(t, err)
	return router
}

func postForm(router *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestShortenPage_Idle(t *testing.T) {
	rec := get(newTestRouter(t), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shorten your URLs instantly")
	assert.NotContains(t, rec.Body.String(), `id="result"`)
	assert.NotContains(t, rec.Body.String(), `role="alert"`)
}

func TestShortenSubmit_DisplaysShortURL(t *testing.T) {
	rec := postForm(newTestRouter(t), "/", url.Values{"long_url": {"https://example.com/very/long"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="result"`)
	assert.Contains(t, body, `value="https://s.example/AbC123"`)
	assert.Contains(t, body, `/summary?code=AbC123`)
}

func TestShortenSubmit_UpstreamRejects(t *testing.T) {
	rec := postForm(newTestRouter(t), "/", url.Values{"long_url": {"https://example.com/reject"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to shorten URL. Please try again.")
	assert.NotContains(t, rec.Body.String(), `id="result"`)
}

func TestShortenSubmit_ForwardsNonHTTPURL(t *testing.T) {
	rec := postForm(newTestRouter(t), "/", url.Values{"long_url": {"ftp://example.com/file.txt"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="https://s.example/AbC123"`)
}

func TestShortenSubmit_BlankURL(t *testing.T) {
	rec := postForm(newTestRouter(t), "/", url.Values{"long_url": {"   "}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to shorten URL. Please try again.")
	assert.NotContains(t, rec.Body.String(), `id="result"`)
}

func TestSummarySubmit_RendersAnalytics(t *testing.T) {
	rec := postForm(newTestRouter(t), "/summary", url.Values{"short_url": {"https://s.example/AbC123"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Analytics (3 visits)")
	assert.Contains(t, body, `id="breakdowns"`)
	assert.Contains(t, body, "news.example.com")
	assert.Contains(t, body, "None (direct)")
	assert.Contains(t, body, "https://www.google.com/s2/favicons?domain=golang.org")
	assert.Contains(t, body, `id="visits"`)
}

func TestSummaryPage_QueryCode(t *testing.T) {
	rec := get(newTestRouter(t), "/summary?code=AbC123")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analytics (3 visits)")
}

func TestSummaryPage_Idle(t *testing.T) {
	rec := get(newTestRouter(t), "/summary")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `id="summary"`)
}

func TestSummarySubmit_UnknownCode(t *testing.T) {
	rec := postForm(newTestRouter(t), "/summary", url.Values{"short_url": {"nope"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "URL not found")
	assert.NotContains(t, body, `id="summary"`)
	assert.NotContains(t, body, `id="visits"`)
}

func TestSummarySubmit_BlankInput(t *testing.T) {
	rec := postForm(newTestRouter(t), "/summary", url.Values{"short_url": {"  "}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), services.MsgEmptyCode)
}

func TestAPI_CreateLink(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/links", strings.NewReader(`{"long_url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got services.Shortened
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "https://s.example/AbC123", got.ShortURL)
	assert.Equal(t, "AbC123", got.ShortCode)
}

func TestAPI_CreateLink_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing url", `{}`, http.StatusBadRequest},
		{"blank url", `{"long_url":"   "}`, http.StatusBadRequest},
		{"rejected upstream", `{"long_url":"https://example.com/reject"}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/links", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAPI_Stats(t *testing.T) {
	router := newTestRouter(t)

	rec := get(router, "/api/v1/links/AbC123/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	var got services.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.TotalVisits)
	assert.Len(t, got.Visits, 3)
	require.NotEmpty(t, got.Tables)

	for _, tbl := range got.Tables {
		if tbl.Dimension == "os" {
			require.Len(t, tbl.Entries, 2)
			assert.Equal(t, "Linux", tbl.Entries[0].Key)
			assert.Equal(t, 2, tbl.Entries[0].Count)
		}
	}

	rec = get(router, "/api/v1/links/nope/stats")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	rec := get(router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	get(router, "/summary")
	rec = get(router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "surl_http_requests_total")
}
