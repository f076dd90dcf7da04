package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wanderplan/go-trip-planner/config"
	"github.com/wanderplan/go-trip-planner/internal/api/planner"
	"github.com/wanderplan/go-trip-planner/internal/osm"
	"github.com/wanderplan/go-trip-planner/internal/types"
)

type planFlags struct {
	destination string
	startDate   string
	endDate     string
	interests   []string
	mode        string
	originLat   float64
	originLng   float64
	hasOrigin   bool
	limitPerDay int
	radiusKm    float64
	out         string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &planFlags{}

	cmd := &cobra.Command{
		Use:   "planctl",
		Short: "Build a day-by-day trip itinerary from the command line",
		Long: `planctl plans a trip around a destination: it discovers points of
interest, estimates travel times, spreads the picks over the trip's days
and writes the result as Markdown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.hasOrigin = cmd.Flags().Changed("origin-lat") && cmd.Flags().Changed("origin-lng")
			return runPlan(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.destination, "destination", "d", "", "destination city (required)")
	cmd.Flags().StringVar(&flags.startDate, "start", "", "trip start date (e.g. 2025-05-01)")
	cmd.Flags().StringVar(&flags.endDate, "end", "", "trip end date")
	cmd.Flags().StringSliceVarP(&flags.interests, "interests", "i", nil, "interests, e.g. history,cafes")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "foot", "travel mode: foot, bike or driving")
	cmd.Flags().Float64Var(&flags.originLat, "origin-lat", 0, "explicit origin latitude")
	cmd.Flags().Float64Var(&flags.originLng, "origin-lng", 0, "explicit origin longitude")
	cmd.Flags().IntVarP(&flags.limitPerDay, "limit", "l", 0, "POIs per day (default from config)")
	cmd.Flags().Float64VarP(&flags.radiusKm, "radius", "r", 0, "search radius in km (capped at 12)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write Markdown to this file instead of stdout")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	cobra.CheckErr(cmd.MarkFlagRequired("destination"))

	return cmd
}

func runPlan(ctx context.Context, flags *planFlags) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	logger := cliLogger(flags.verbose)

	osmOpts := osm.ClientOptions{
		UserAgent:      cfg.OSM.UserAgent,
		AcceptLanguage: cfg.OSM.AcceptLanguage,
	}
	nominatim := osm.NewNominatimClient(cfg.OSM.NominatimURL, cfg.OSM.SearchTimeout, osmOpts, logger)
	overpass := osm.NewOverpassClient(cfg.OSM.OverpassURL, cfg.OSM.OverpassTimeout, osmOpts, logger)
	osrm := osm.NewOSRMClient(cfg.OSM.OSRMURL, cfg.OSM.RouteTimeout, osmOpts, logger)

	svc := planner.NewServiceImpl(nominatim, overpass, osrm, planner.Config{
		DefaultRadiusKm:     cfg.Planner.DefaultRadiusKm,
		DefaultLimitPerDay:  cfg.Planner.DefaultLimitPerDay,
		MaxConcurrentRoutes: cfg.Planner.MaxConcurrentRoutes,
		CenterCacheTTL:      cfg.Planner.CenterCacheTTL,
	}, logger)

	req := types.PlanRequest{
		Destination: flags.destination,
		StartDate:   flags.startDate,
		EndDate:     flags.endDate,
		Interests:   flags.interests,
		Mode:        flags.mode,
		LimitPerDay: flags.limitPerDay,
		RadiusKm:    flags.radiusKm,
	}
	if flags.hasOrigin {
		req.OriginLat = &flags.originLat
		req.OriginLng = &flags.originLng
	}

	itinerary, err := svc.Plan(ctx, req)
	if err != nil {
		return fmt.Errorf("planning trip: %w", err)
	}

	md := planner.RenderMarkdown(itinerary)
	if flags.out == "" {
		fmt.Print(md)
		return nil
	}
	if err := os.WriteFile(flags.out, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flags.out, err)
	}
	fmt.Println("Saved:", flags.out)
	return nil
}

// cliLogger keeps CLI output clean: logs go to stderr, and only when asked.
func cliLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
