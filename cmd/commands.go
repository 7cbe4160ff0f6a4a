package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/admin/astro-transits/internal/app"
	"github.com/admin/astro-transits/internal/domain"
	"github.com/admin/astro-transits/internal/pkg/chartfile"
	"github.com/admin/astro-transits/internal/usecases/transits"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withCore поднимает ядро приложения на время одной команды
func withCore(cmd *cobra.Command, fn func(core *app.Core) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	core, err := a.InitCore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := core.Close(); err != nil {
			a.Log.Warn("failed to close resources", "error", err)
		}
	}()

	return fn(core)
}

// transitsFromPositions долготы известных транзитных точек в порядке по умолчанию
func transitsFromPositions(positions *domain.DailyPositions) domain.LongitudeMap {
	var result domain.LongitudeMap
	for _, name := range domain.DefaultTransitPoints {
		if longitude, err := positions.Longitude(name); err == nil {
			result.Set(name, longitude)
		}
	}
	return result
}

func newAspectsCmd() *cobra.Command {
	var (
		natalPath    string
		transitsPath string
		date         string
		zodiac       string
		orb          float64
	)

	cmd := &cobra.Command{
		Use:   "aspects",
		Short: "Match aspects between transit and natal positions",
		Long: `Matches every transit point against every natal point using the fixed aspect table.
Transit positions come from --transits, or from the ephemeris service for --date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			natal, err := chartfile.Load(natalPath)
			if err != nil {
				return err
			}

			if transitsPath != "" {
				transitChart, err := chartfile.Load(transitsPath)
				if err != nil {
					return err
				}
				matches, err := transits.MatchAspects(transitChart.Points, natal.Points, orb)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"aspects": matches})
			}

			if date == "" {
				return fmt.Errorf("either --transits or --date is required")
			}
			day, err := domain.ParseDate(date)
			if err != nil {
				return err
			}

			return withCore(cmd, func(core *app.Core) error {
				positions, err := core.Transits.GetPositions(cmd.Context(), day, domain.ParseZodiacMode(zodiac))
				if err != nil {
					return err
				}
				matches, err := core.Transits.MatchAspects(transitsFromPositions(positions), natal.Points, orb)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"aspects": matches})
			})
		},
	}

	cmd.Flags().StringVar(&natalPath, "natal", "", "natal chart file (YAML or JSON)")
	cmd.Flags().StringVar(&transitsPath, "transits", "", "transit positions file (YAML or JSON)")
	cmd.Flags().StringVar(&date, "date", "", "take transit positions from the ephemeris for this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&zodiac, "zodiac", string(domain.ZodiacTropical), "zodiac mode: tropical or sidereal")
	cmd.Flags().Float64Var(&orb, "orb", 2, "maximum orb in degrees")
	_ = cmd.MarkFlagRequired("natal")

	return cmd
}

func newWindowCmd() *cobra.Command {
	var (
		q          domain.WindowQuery
		start, end string
		zodiac     string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Find the window in which one transit aspect stays within orb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if q.Start, err = domain.ParseDate(start); err != nil {
				return err
			}
			if q.End, err = domain.ParseDate(end); err != nil {
				return err
			}
			q.Zodiac = domain.ParseZodiacMode(zodiac)

			return withCore(cmd, func(core *app.Core) error {
				if !q.End.Before(q.Start.Time) {
					if err := core.Transits.CheckRange(q.Start, q.End); err != nil {
						return err
					}
				}
				window, err := core.Transits.ScanWindow(cmd.Context(), q)
				if err != nil {
					return err
				}
				if window == nil {
					return printJSON(cmd.OutOrStdout(), map[string]string{"message": noWindowMessage})
				}
				return printJSON(cmd.OutOrStdout(), window)
			})
		},
	}

	cmd.Flags().StringVar(&q.TransitPoint, "transit-planet", "", "transit point, e.g. Mars")
	cmd.Flags().StringVar(&q.NatalPoint, "natal-planet", "", "natal point name used in the output")
	cmd.Flags().Float64Var(&q.NatalDegree, "natal-degree", 0, "natal longitude in degrees")
	cmd.Flags().Float64Var(&q.AspectAngle, "aspect", 0, "aspect angle in degrees")
	cmd.Flags().Float64Var(&q.Orb, "orb", 4, "maximum orb in degrees")
	cmd.Flags().StringVar(&start, "start", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&zodiac, "zodiac", string(domain.ZodiacTropical), "zodiac mode: tropical or sidereal")
	for _, name := range []string{"transit-planet", "natal-degree", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newScanCmd() *cobra.Command {
	var (
		natalPath  string
		chartID    string
		start, end string
		zodiac     string
		planets    []string
		orb        float64
		export     bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find windows for every transit point, natal point and aspect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := domain.BatchRequest{
				ChartID:        chartID,
				StartDate:      start,
				EndDate:        end,
				TransitPlanets: planets,
				Zodiac:         zodiac,
			}
			if cmd.Flags().Changed("orb") {
				req.Orb = &orb
			}
			if natalPath != "" {
				natal, err := chartfile.Load(natalPath)
				if err != nil {
					return err
				}
				req.Natal = natal.Points
				if req.Zodiac == "" {
					req.Zodiac = natal.Zodiac
				}
			}

			return withCore(cmd, func(core *app.Core) error {
				query, err := core.Transits.PrepareBatch(cmd.Context(), req)
				if err != nil {
					return err
				}
				if export && !core.Transits.ReportsEnabled() {
					return domain.ErrReportStorageDisabled
				}
				results, err := core.Transits.ScanAll(cmd.Context(), query)
				if err != nil {
					return err
				}

				out := map[string]interface{}{"results": results}
				if export {
					key, url, err := core.Transits.ExportReport(cmd.Context(), domain.NewScanReport(query, results))
					if err != nil {
						return err
					}
					out["report_key"] = key
					out["report_url"] = url
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}

	cmd.Flags().StringVar(&natalPath, "natal", "", "natal chart file (YAML or JSON)")
	cmd.Flags().StringVar(&chartID, "chart-id", "", "stored natal chart id (needs Postgres)")
	cmd.Flags().StringVar(&start, "start", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&zodiac, "zodiac", "", "zodiac mode; defaults to the chart's mode, then tropical")
	cmd.Flags().StringSliceVar(&planets, "planets", nil, "transit points (default Sun..Saturn)")
	cmd.Flags().Float64Var(&orb, "orb", domain.DefaultBatchOrb, "maximum orb in degrees")
	cmd.Flags().BoolVar(&export, "export", false, "store the report in S3 and print a presigned URL")

	return cmd
}

func newPositionsCmd() *cobra.Command {
	var (
		date   string
		zodiac string
	)

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Print ephemeris positions for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := domain.ParseDate(date)
			if err != nil {
				return err
			}

			return withCore(cmd, func(core *app.Core) error {
				positions, err := core.Transits.GetPositions(cmd.Context(), day, domain.ParseZodiacMode(zodiac))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), positions)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&zodiac, "zodiac", string(domain.ZodiacTropical), "zodiac mode: tropical or sidereal")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
