package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	httpapi "postal/internal/adapters/in/http"
	"postal/internal/adapters/out/report"
	"postal/internal/core/application/usecases/queries"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	statsFrom string
	statsTo   string
	statsXLSX string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print parcel statistics as JSON or write them to an xlsx report",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag("from", statsFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", statsTo)
		if err != nil {
			return err
		}
		query, err := queries.NewGetStatisticsQuery(from, to)
		if err != nil {
			return err
		}

		root, err := NewCompositionRoot(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := root.Close(); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		}()

		stats, err := root.CreateGetStatisticsQueryHandler().Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		if statsXLSX != "" {
			if err := report.SaveStatistics(statsXLSX, stats); err != nil {
				return err
			}
			logger.Info("statistics report written", zap.String("path", statsXLSX))
			return nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.NewStatisticsResponse(stats))
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "first day of the period (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "last day of the period (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsXLSX, "xlsx", "", "write an xlsx report to this path instead of printing JSON")
}

func parseDateFlag(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &t, nil
}
