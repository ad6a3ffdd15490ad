// Package cli wires the collector into a cobra command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/playamaps/brc-directory/internal/calendar"
	"github.com/playamaps/brc-directory/internal/collector"
	"github.com/playamaps/brc-directory/internal/config"
	"github.com/playamaps/brc-directory/internal/fetch"
	"github.com/playamaps/brc-directory/internal/geo"
	"github.com/playamaps/brc-directory/internal/location"
	"github.com/playamaps/brc-directory/internal/logger"
	"github.com/playamaps/brc-directory/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brc-directory",
		Short: "Collect Black Rock City camp, artwork, and event directory data",
		Long: `Scrapes the public playa directory sites into structured JSON records:
camps and artworks with normalized locations and approximate coordinates,
events with normalized date/time occurrences.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (defaults built in)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newCampsCmd())
	cmd.AddCommand(newArtCmd())
	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newICSCmd())
	return cmd
}

// setup loads configuration and applies the logging level.
func setup() (*config.Config, error) {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newCampsCmd() *cobra.Command {
	var output string
	var maxPages int

	cmd := &cobra.Command{
		Use:   "camps",
		Short: "Collect the camp directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Camps.Output
			}

			col := collector.New(fetch.New(cfg), cfg)
			camps, err := col.CollectCamps(cmd.Context(), maxPages)
			if err != nil {
				return fmt.Errorf("collecting camps: %w", err)
			}
			if err := storage.SaveCamps(output, camps); err != nil {
				return fmt.Errorf("saving camps: %w", err)
			}

			logger.Info("Saved camps", logger.Fields{"path": output, "camps": len(camps)})
			logger.Debug("Run metrics", logger.Fields{"metrics": logger.MetricsSnapshot()})
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output JSON file (default camps.json)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Limit index pages scanned (0 = all)")
	return cmd
}

func newArtCmd() *cobra.Command {
	var output string
	var maxPages int

	cmd := &cobra.Command{
		Use:   "art",
		Short: "Collect the artwork directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Art.Output
			}

			col := collector.New(fetch.New(cfg), cfg)
			art, err := col.CollectArt(cmd.Context(), maxPages)
			if err != nil {
				return fmt.Errorf("collecting artworks: %w", err)
			}
			if err := storage.SaveArt(output, art); err != nil {
				return fmt.Errorf("saving artworks: %w", err)
			}

			logger.Info("Saved artworks", logger.Fields{"path": output, "artworks": len(art)})
			logger.Debug("Run metrics", logger.Fields{"metrics": logger.MetricsSnapshot()})
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output JSON file (default arts.json)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "Limit index pages scanned (0 = all)")
	return cmd
}

func newEventsCmd() *cobra.Command {
	var output string
	var maxEvents int
	var campsFile string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Collect the playa events site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Events.Output
			}

			col := collector.New(fetch.New(cfg), cfg)
			events, err := col.CollectEvents(cmd.Context(), maxEvents, campsFile)
			if err != nil {
				return fmt.Errorf("collecting events: %w", err)
			}
			if err := storage.SaveEvents(output, events); err != nil {
				return fmt.Errorf("saving events: %w", err)
			}

			logger.Info("Saved events", logger.Fields{"path": output, "events": len(events)})
			logger.Debug("Run metrics", logger.Fields{"metrics": logger.MetricsSnapshot()})
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output JSON file (default events.json)")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "Limit events collected (0 = all)")
	cmd.Flags().StringVar(&campsFile, "camps", "", "Camps JSON file for location enrichment")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Re-normalize locations in an existing camps file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(); err != nil {
				return err
			}
			if output == "" {
				output = input
			}

			camps, err := storage.LoadCamps(input)
			if err != nil {
				return fmt.Errorf("loading camps: %w", err)
			}

			resolved := 0
			for _, camp := range camps {
				camp.NormalizedLocation = location.Normalize(camp.Location)
				camp.Latitude, camp.Longitude = nil, nil
				if ll, err := geo.NormalizedLocationToLatLon(camp.NormalizedLocation); err == nil {
					lat, lon := ll.Lat, ll.Lon
					camp.Latitude, camp.Longitude = &lat, &lon
					resolved++
				}
			}

			if err := storage.SaveCamps(output, camps); err != nil {
				return fmt.Errorf("saving camps: %w", err)
			}
			logger.Info("Normalized camp locations", logger.Fields{
				"path":     output,
				"camps":    len(camps),
				"resolved": resolved,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "camps.json", "Input camps JSON file")
	cmd.Flags().StringVar(&output, "output", "", "Output JSON file (defaults to in-place)")
	return cmd
}

func newICSCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export a collected events file as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(); err != nil {
				return err
			}

			events, err := storage.LoadEvents(input)
			if err != nil {
				return fmt.Errorf("loading events: %w", err)
			}

			ics := calendar.GenerateICS(events)
			if err := os.WriteFile(output, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			logger.Info("Wrote calendar", logger.Fields{"path": output, "events": len(events)})
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "events.json", "Input events JSON file")
	cmd.Flags().StringVar(&output, "output", "events.ics", "Output .ics file")
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
