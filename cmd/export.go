package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fuel-explorer/services"
	"fuel-explorer/storage"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered, sorted vehicles to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crit, err := filters.criteria(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				output = a.cfg.CSVOutputPath
			}

			res, err := a.loadVehicles(cmd.Context())
			if err != nil {
				return err
			}
			matched, err := services.Filter(res.Vehicles, crit)
			if err != nil {
				return err
			}
			ordered, err := services.Sort(matched, filters.sort())
			if err != nil {
				return err
			}

			var w *storage.CSVWriter
			if output == "-" {
				w, err = storage.NewCSVStream(cmd.OutOrStdout())
			} else {
				w, err = storage.NewCSVWriter(output)
			}
			if err != nil {
				return err
			}
			if err := w.WriteVehicles(ordered); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			a.logger.Info("Exported %d vehicles to %s", len(ordered), output)
			if output == "-" {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d vehicles to %s\n", len(ordered), output)
			return nil
		},
	}

	filters.bind(cmd.Flags())
	cmd.Flags().StringVarP(&output, "out", "o", "", "CSV path, or - for stdout (defaults to CSV_OUTPUT_PATH)")
	return cmd
}
