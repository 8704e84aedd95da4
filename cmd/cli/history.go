package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/axellelanca/surl/cmd"
	"github.com/axellelanca/surl/internal/config"
	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/axellelanca/surl/internal/models"
	"github.com/axellelanca/surl/internal/repository"
	"github.com/axellelanca/surl/internal/services"
	"github.com/axellelanca/surl/internal/view"
	"github.com/axellelanca/surl/internal/workers"
)

var (
	historyLimitFlag int
	historyCodeFlag  string
)

// HistoryCmd représente la commande 'history'
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Lists the links shortened through this front-end.",
	Long: `Lists the most recent links recorded in the local history database,
newest first. Links are recorded by both 'shorten' and 'run-server'.

With --code, shows when a short code (or short URL) was created through this front-end.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		db, err := repository.OpenDatabase(cmd.Cfg.Database.Name)
		if err != nil {
			return err
		}
		defer repository.Close(db)

		linkRepo := repository.NewLinkRepository(db)
		if historyCodeFlag != "" {
			return printHistoryEntry(c.OutOrStdout(), linkRepo, historyCodeFlag)
		}
		return printRecentLinks(c.OutOrStdout(), linkRepo, historyLimitFlag)
	},
}

func init() {
	HistoryCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of links to list (at least 1)")
	HistoryCmd.Flags().StringVar(&historyCodeFlag, "code", "", "Show the history entry of one short code or short URL")
	cmd.RootCmd.AddCommand(HistoryCmd)
}

// printRecentLinks lists the newest links. A limit below 1 is raised to 1.
func printRecentLinks(w io.Writer, linkRepo repository.LinkRepository, limit int) error {
	links, err := linkRepo.GetRecentLinks(max(limit, 1))
	if err != nil {
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(w, "No links recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tSHORT URL\tLONG URL")
	for _, l := range links {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", formatCreated(l), l.ShortURL, l.LongURL)
	}
	return tw.Flush()
}

// printHistoryEntry shows the latest history entry of a code. A code missing from the
// history was not created through this front-end, which is not an error.
func printHistoryEntry(w io.Writer, linkRepo repository.LinkRepository, input string) error {
	code := view.ExtractShortCode(input)
	if code == "" {
		return customerrors.ErrEmptyShortCode
	}

	link, err := linkRepo.GetLinkByShortCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Fprintf(w, "%s was not shortened through this front-end.\n", code)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Short URL: %s\n", link.ShortURL)
	fmt.Fprintf(w, "Long URL:  %s\n", link.LongURL)
	fmt.Fprintf(w, "Created:   %s\n", formatCreated(*link))
	return nil
}

func formatCreated(l models.Link) string {
	return l.CreatedAt.Local().Format("2006-01-02 15:04:05")
}

// withHistory wires the local history into a one-shot command: it returns the service
// option publishing shorten events and a flush function draining them before exit.
// A history database that cannot be opened only disables the history.
func withHistory(cfg *config.Config) ([]services.Option, func()) {
	if !cfg.History.Enabled {
		return nil, func() {}
	}

	db, err := repository.OpenDatabase(cfg.Database.Name)
	if err != nil {
		logrus.WithError(err).Warn("History disabled")
		return nil, func() {}
	}

	events := make(chan models.ShortenEvent, 1)
	wg := workers.StartHistoryWorkers(1, events, repository.NewLinkRepository(db))

	flush := func() {
		close(events)
		wg.Wait()
		if err := repository.Close(db); err != nil {
			logrus.WithError(err).Warn("Failed to close history database")
		}
	}
	return []services.Option{services.WithHistory(events)}, flush
}
