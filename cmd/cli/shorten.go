package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axellelanca/surl/cmd"
	"github.com/axellelanca/surl/internal/client"
	"github.com/axellelanca/surl/internal/clipboard"
	"github.com/axellelanca/surl/internal/services"
	"github.com/axellelanca/surl/internal/view"
)

var (
	longURLFlag string
	copyFlag    bool
)

// ShortenCmd représente la commande 'shorten'
var ShortenCmd = &cobra.Command{
	Use:   "shorten",
	Short: "Crée une URL courte à partir d'une URL longue.",
	Long: `Cette commande demande au service de raccourcissement une URL courte pour l'URL longue
fournie et l'affiche.

Exemple:
  surl shorten --url="https://www.google.com/search?q=go+lang" --copy`,
	Args: cobra.NoArgs,
	RunE: runShorten,
}

func init() {
	ShortenCmd.Flags().StringVar(&longURLFlag, "url", "", "The long URL to shorten")
	ShortenCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the short URL to the clipboard")
	ShortenCmd.MarkFlagRequired("url")

	cmd.RootCmd.AddCommand(ShortenCmd)
}

func runShorten(c *cobra.Command, args []string) error {
	cfg := cmd.Cfg
	apiClient := client.NewFromTimeout(cfg.API.BaseURL, cfg.API.Timeout)

	opts, flush := withHistory(cfg)
	linkService := services.NewLinkService(apiClient, apiClient.BaseURL(), opts...)

	state := view.Run(c.Context(),
		func(ctx context.Context) (*services.Shortened, error) {
			return linkService.Shorten(ctx, longURLFlag)
		},
		func(err error) string {
			logrus.WithError(err).Debug("Shorten failed")
			return services.UserMessage(err)
		},
		func(s view.State[*services.Shortened]) {
			if s.IsLoading() {
				fmt.Fprintln(c.ErrOrStderr(), "Shortening...")
			}
		},
	)
	flush()

	if state.IsFailure() {
		return errors.New(state.Message)
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "Short URL: %s\n", state.Data.ShortURL)
	fmt.Fprintf(out, "Long URL:  %s\n", state.Data.LongURL)

	if copyFlag {
		copier := clipboard.Detect(c.ErrOrStderr())
		if err := copier.Copy(state.Data.ShortURL); err != nil {
			logrus.WithError(err).Warn("Failed to copy to clipboard")
		} else {
			fmt.Fprintf(c.ErrOrStderr(), "Copied to clipboard (%s)\n", copier.Name())
		}
	}
	return nil
}
