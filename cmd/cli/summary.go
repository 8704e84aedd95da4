package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axellelanca/surl/cmd"
	"github.com/axellelanca/surl/internal/client"
	"github.com/axellelanca/surl/internal/services"
	"github.com/axellelanca/surl/internal/view"
)

var (
	visitsFlag bool
	jsonFlag   bool
)

// SummaryCmd représente la commande 'summary'
var SummaryCmd = &cobra.Command{
	Use:   "summary [short-code | short-url]",
	Short: "Shows visit analytics for a short URL",
	Long: `Fetches the analytics of a short code from the shortening service and prints the
total visits, the top referrers, browsers, operating systems and device types, and the visits.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	SummaryCmd.Flags().BoolVar(&visitsFlag, "visits", true, "Print the per-visit table")
	SummaryCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the dashboard as JSON")
	cmd.RootCmd.AddCommand(SummaryCmd)
}

// runSummary exécute la logique pour la commande summary
func runSummary(c *cobra.Command, args []string) error {
	cfg := cmd.Cfg
	apiClient := client.NewFromTimeout(cfg.API.BaseURL, cfg.API.Timeout)
	linkService := services.NewLinkService(apiClient, apiClient.BaseURL(),
		services.WithFaviconTemplate(cfg.Favicon.Template))

	state := view.Run(c.Context(),
		func(ctx context.Context) (*services.Dashboard, error) {
			return linkService.Summary(ctx, args[0])
		},
		func(err error) string {
			logrus.WithError(err).Debug("Summary lookup failed")
			return services.UserMessage(err)
		},
		nil,
	)
	if state.IsFailure() {
		return errors.New(state.Message)
	}

	if jsonFlag {
		enc := json.NewEncoder(c.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state.Data)
	}
	return printDashboard(c.OutOrStdout(), state.Data, visitsFlag)
}

// printDashboard renders a dashboard as aligned plain-text tables.
func printDashboard(w io.Writer, d *services.Dashboard, withVisits bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Short URL:\t%s\n", d.ShortURL)
	fmt.Fprintf(tw, "Long URL:\t%s\n", d.LongURL)
	fmt.Fprintf(tw, "Total visits:\t%d\n", d.TotalVisits)

	if d.TotalVisits == 0 {
		fmt.Fprintln(tw, "\nNo analytics data available yet.")
		return tw.Flush()
	}

	for _, table := range d.Tables {
		fmt.Fprintf(tw, "\n%s\n", table.Title)
		for _, e := range table.Entries {
			fmt.Fprintf(tw, "  %s\t%d\n", e.Key, e.Count)
		}
	}

	if withVisits {
		fmt.Fprintln(tw, "\nDATE\tREFERRER\tBROWSER\tOS\tDEVICE\tLANGUAGE\tLOCATION\tIP")
		for _, v := range d.Visits {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				v.Date, v.Referrer, v.Browser, v.OS, v.DeviceType, v.Language, v.Location, v.IP)
		}
	}
	return tw.Flush()
}
