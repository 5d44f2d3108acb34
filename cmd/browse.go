package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fuel-explorer/models"
	"fuel-explorer/services"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		filters  filterFlags
		page     int
		pageSize int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search, filter, sort and page through vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crit, err := filters.criteria(cmd)
			if err != nil {
				return err
			}
			res, err := a.loadVehicles(cmd.Context())
			if err != nil {
				return err
			}

			out, err := services.NewBrowseService(a.logger).Browse(res.Vehicles, models.BrowseQuery{
				Filter:   crit,
				Sort:     filters.sort(),
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printBrowse(cmd.OutOrStdout(), out)
			return nil
		},
	}

	filters.bind(cmd.Flags())
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&pageSize, "limit", "n", 20, "vehicles per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

func printBrowse(w io.Writer, res *models.BrowseResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tYEAR\tMPG\tCYL\tHP\tORIGIN\tBAND")
	for _, v := range res.Page.Items {
		hp := "-"
		if v.Horsepower != nil {
			hp = strconv.FormatFloat(*v.Horsepower, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.1f\t%d\t%s\t%s\t%s\n",
			v.ID, v.Name, v.ModelYear, v.MPG, v.Cylinders, hp, v.Origin.Name(), v.Band())
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nPage %d of %d · %d matching of %d vehicles\n",
		res.Page.PageIndex, res.Page.TotalPages, res.Matched, res.Total)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
