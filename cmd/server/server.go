package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axellelanca/surl/cmd"
	"github.com/axellelanca/surl/internal/api"
	"github.com/axellelanca/surl/internal/client"
	"github.com/axellelanca/surl/internal/models"
	"github.com/axellelanca/surl/internal/monitor"
	"github.com/axellelanca/surl/internal/repository"
	"github.com/axellelanca/surl/internal/services"
	"github.com/axellelanca/surl/internal/workers"
)

const shutdownTimeout = 10 * time.Second

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le front-end web.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Serves the web front-end (shorten and summary views).",
	Long: `This command connects to the configured shortening service, starts the history
workers and the optional link monitor, then serves the web front-end until SIGINT or SIGTERM.`,
	RunE: func(c *cobra.Command, args []string) error {
		cfg := cmd.Cfg
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		apiClient := client.NewFromTimeout(cfg.API.BaseURL, cfg.API.Timeout)
		opts := []services.Option{services.WithFaviconTemplate(cfg.Favicon.Template)}

		// Historique local : canal d'événements + workers, puis moniteur optionnel.
		var (
			events    chan models.ShortenEvent
			workersWG *sync.WaitGroup
			bgWG      sync.WaitGroup
		)
		if cfg.History.Enabled {
			db, err := repository.OpenDatabase(cfg.Database.Name)
			if err != nil {
				return err
			}
			defer func() {
				if err := repository.Close(db); err != nil {
					logrus.WithError(err).Warn("Failed to close history database")
				}
			}()
			linkRepo := repository.NewLinkRepository(db)

			events = make(chan models.ShortenEvent, cfg.History.BufferSize)
			workersWG = workers.StartHistoryWorkers(cfg.History.WorkerCount, events, linkRepo)
			opts = append(opts, services.WithHistory(events))
			logrus.Infof("History channel initialised with a buffer of %d, %d worker(s) started.",
				cfg.History.BufferSize, cfg.History.WorkerCount)

			if cfg.Monitor.Enabled {
				interval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
				urlMonitor := monitor.NewUrlMonitor(linkRepo, interval)
				bgWG.Add(1)
				go func() {
					defer bgWG.Done()
					urlMonitor.Start(ctx)
				}()
			}
		}

		linkService := services.NewLinkService(apiClient, apiClient.BaseURL(), opts...)

		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			gin.SetMode(gin.ReleaseMode)
		}
		router, err := api.NewRouter(linkService)
		if err != nil {
			return err
		}

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:              serverAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errChan := make(chan error, 1)
		go func() {
			logrus.WithFields(logrus.Fields{"addr": serverAddr, "api": cfg.API.BaseURL}).Info("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		var serveErr error
		select {
		case <-ctx.Done():
			logrus.Info("Shutdown signal received, stopping server...")
		case serveErr = <-errChan:
			logrus.WithError(serveErr).Error("Server failed")
			stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("Server shutdown did not complete cleanly")
		}

		// No handler can publish anymore: drain the history queue.
		if events != nil {
			close(events)
			workersWG.Wait()
		}
		bgWG.Wait()

		logrus.Info("Server stopped")
		return serveErr
	},
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
