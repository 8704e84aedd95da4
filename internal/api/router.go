package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/surl/internal/middleware"
	"github.com/axellelanca/surl/internal/web"
)

// NewRouter builds the Gin engine serving the pages, the JSON API, /health and /metrics.
func NewRouter(linkService LinkService) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	SetupRoutes(router, linkService)
	return router, nil
}
