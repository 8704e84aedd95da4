package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/axellelanca/surl/internal/middleware"
	"github.com/axellelanca/surl/internal/services"
	"github.com/axellelanca/surl/internal/view"
)

// LinkService is the presentation service used by the handlers. It is satisfied by
// *services.LinkService.
type LinkService interface {
	Shorten(ctx context.Context, longURL string) (*services.Shortened, error)
	Summary(ctx context.Context, input string) (*services.Dashboard, error)
}

// ShortenPage is the data of the shorten view.
type ShortenPage struct {
	Title   string
	LongURL string
	State   view.State[*services.Shortened]
}

// SummaryPage is the data of the summary view.
type SummaryPage struct {
	Title string
	Input string
	State view.State[*services.Dashboard]
}

// SetupRoutes configures all Gin routes and injects necessary dependencies.
// The router must already have its HTML templates loaded.
func SetupRoutes(router *gin.Engine, linkService LinkService) {
	router.GET("/health", HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	router.GET("/", ShortenPageHandler)
	router.POST("/", ShortenSubmitHandler(linkService))
	router.GET("/summary", SummaryPageHandler(linkService))
	router.POST("/summary", SummarySubmitHandler(linkService))

	// JSON API for scripts
	api := router.Group("/api/v1")
	{
		api.POST("/links", CreateShortLinkHandler(linkService))
		api.GET("/links/:shortCode/stats", GetLinkStatsHandler(linkService))
	}
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ShortenPageHandler renders the empty shorten form.
func ShortenPageHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "shorten.html", ShortenPage{
		Title: "URL Shortener",
		State: view.NewIdle[*services.Shortened](),
	})
}

// ShortenSubmitHandler handles the shorten form submission.
func ShortenSubmitHandler(linkService LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		longURL := c.PostForm("long_url")

		var cause error
		state := view.Run(c.Request.Context(),
			func(ctx context.Context) (*services.Shortened, error) {
				shortened, err := linkService.Shorten(ctx, longURL)
				cause = err
				return shortened, err
			},
			failureMessage(c, "Error shortening URL"),
			traceState[*services.Shortened](c, "shorten"),
		)

		status := http.StatusOK
		if state.IsFailure() {
			status = shortenFailureStatus(cause)
		}

		c.HTML(status, "shorten.html", ShortenPage{
			Title:   "URL Shortener",
			LongURL: longURL,
			State:   state,
		})
	}
}

// SummaryPageHandler renders the summary form, and looks the code up directly when a
// ?code= query parameter is present (links from the shorten view use it).
func SummaryPageHandler(linkService LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		input := c.Query("code")
		if input == "" {
			c.HTML(http.StatusOK, "summary.html", SummaryPage{
				Title: "Summary",
				State: view.NewIdle[*services.Dashboard](),
			})
			return
		}
		renderSummary(c, linkService, input)
	}
}

// SummarySubmitHandler handles the summary form submission.
func SummarySubmitHandler(linkService LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderSummary(c, linkService, c.PostForm("short_url"))
	}
}

func renderSummary(c *gin.Context, linkService LinkService, input string) {
	state := view.Run(c.Request.Context(),
		func(ctx context.Context) (*services.Dashboard, error) {
			return linkService.Summary(ctx, input)
		},
		failureMessage(c, "Error retrieving summary"),
		traceState[*services.Dashboard](c, "summary"),
	)

	status := http.StatusOK
	if state.IsFailure() {
		status = http.StatusNotFound
		if state.Message == services.MsgEmptyCode {
			status = http.StatusBadRequest
		}
	}

	c.HTML(status, "summary.html", SummaryPage{
		Title: "Summary",
		Input: input,
		State: state,
	})
}

// CreateLinkRequest represents the JSON request body of POST /api/v1/links
type CreateLinkRequest struct {
	LongURL string `json:"long_url" binding:"required"`
}

// CreateShortLinkHandler shortens one URL and returns the displayed short URL as JSON.
func CreateShortLinkHandler(linkService LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		shortened, err := linkService.Shorten(c.Request.Context(), req.LongURL)
		if err != nil {
			middleware.Entry(c).WithError(err).Error("Error shortening URL")
			c.JSON(shortenFailureStatus(err), gin.H{"error": services.MsgShortenFailed})
			return
		}

		c.JSON(http.StatusCreated, shortened)
	}
}

// GetLinkStatsHandler returns the dashboard of a short code as JSON: totals, Top-N tables
// and the formatted visits.
func GetLinkStatsHandler(linkService LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard, err := linkService.Summary(c.Request.Context(), c.Param("shortCode"))
		if err != nil {
			middleware.Entry(c).WithError(err).Info("Summary lookup failed")
			c.JSON(http.StatusNotFound, gin.H{"error": services.MsgNotFound})
			return
		}

		c.JSON(http.StatusOK, dashboard)
	}
}

// failureMessage logs the cause of a failed operation and returns the static message
// shown to users.
func failureMessage(c *gin.Context, logMessage string) func(error) string {
	return func(err error) string {
		entry := middleware.Entry(c).WithError(err)
		if errors.Is(err, customerrors.ErrInvalidURL) || errors.Is(err, customerrors.ErrEmptyShortCode) {
			entry.Debug(logMessage)
		} else {
			entry.Error(logMessage)
		}
		return services.UserMessage(err)
	}
}

func traceState[T any](c *gin.Context, op string) view.Observer[T] {
	return func(s view.State[T]) {
		middleware.Entry(c).WithField("operation", op).Debugf("State %s", s.Kind)
	}
}

// shortenFailureStatus picks the status of a failed shorten call. The message shown is the
// same for every cause.
func shortenFailureStatus(err error) int {
	if errors.Is(err, customerrors.ErrInvalidURL) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
