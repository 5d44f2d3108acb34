package cmd

import (
	"github.com/spf13/cobra"

	"fuel-explorer/services"
)

func newInsightsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print the dashboard summary of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.loadVehicles(cmd.Context())
			if err != nil {
				return err
			}
			svc := services.NewInsightService(a.logger)
			svc.Print(cmd.OutOrStdout(), svc.Generate(res))
			return nil
		},
	}
}

func newChartsCmd(a *app) *cobra.Command {
	var (
		field string
		group string
		bins  int
		top   int
	)

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Print histogram, group, year and box-plot series as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := services.ParseField(field)
			if err != nil {
				return err
			}
			g, err := services.ParseKey(group)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bins") {
				bins = a.cfg.HistogramBins
			}

			res, err := a.loadVehicles(cmd.Context())
			if err != nil {
				return err
			}
			charts, err := services.NewInsightService(a.logger).Charts(cmd.Context(), res.Vehicles, services.ChartOptions{
				Field:     f,
				Group:     g,
				Bins:      bins,
				TopGroups: top,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), charts)
		},
	}

	cmd.Flags().StringVar(&field, "field", "mpg", "numeric field to aggregate")
	cmd.Flags().StringVar(&group, "group", "origin", "grouping key: manufacturer, year, origin, cylinders or efficiency")
	cmd.Flags().IntVar(&bins, "bins", 0, "histogram bins (defaults to HISTOGRAM_BINS)")
	cmd.Flags().IntVar(&top, "top", 0, "keep only the best N groups by mean")
	return cmd
}
