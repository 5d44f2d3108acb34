package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"fuel-explorer/models"
)

// vehicleDetails is one vehicle with the labels the details view derives.
type vehicleDetails struct {
	*models.Vehicle
	Band       models.Band `json:"efficiency"`
	OriginName string      `json:"originName"`
	Favorite   bool        `json:"favorite"`
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <vehicle-id>",
		Short: "Show one vehicle with its efficiency band and favorite state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.findVehicle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			favs, closeFn, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeFn()

			d := vehicleDetails{
				Vehicle:    v,
				Band:       v.Band(),
				OriginName: v.Origin.Name(),
				Favorite:   favs.IsFavorite(strconv.Itoa(v.ID)),
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printDetails(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the vehicle as JSON")
	return cmd
}

func printDetails(w io.Writer, d vehicleDetails) {
	hp := "n/a"
	if d.Horsepower != nil {
		hp = strconv.FormatFloat(*d.Horsepower, 'f', -1, 64)
	}
	fav := "no"
	if d.Favorite {
		fav = "yes"
	}

	fmt.Fprintf(w, "%s (%d)\n", d.Name, d.ModelYear)
	fmt.Fprintf(w, "  MPG          : %.1f (%s)\n", d.MPG, d.Band)
	fmt.Fprintf(w, "  Origin       : %s\n", d.OriginName)
	fmt.Fprintf(w, "  Cylinders    : %d\n", d.Cylinders)
	fmt.Fprintf(w, "  Displacement : %g\n", d.Displacement)
	fmt.Fprintf(w, "  Horsepower   : %s\n", hp)
	fmt.Fprintf(w, "  Weight       : %g lbs\n", d.Weight)
	fmt.Fprintf(w, "  Acceleration : %g s\n", d.Acceleration)
	fmt.Fprintf(w, "  Favorite     : %s\n", fav)
}
