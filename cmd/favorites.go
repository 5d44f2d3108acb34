package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage the saved favorites list",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show saved favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs, closeFn, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeFn()

			entries := favs.List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites saved")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tYEAR\tMPG\tADDED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%s\n",
					e.ID, e.Name, e.Year, e.MPG, time.UnixMilli(e.AddedAt).Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <vehicle-id>",
		Short: "Add a vehicle to favorites, or remove it if already saved",
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

			if err := favs.Toggle(v); err != nil {
				return err
			}
			if favs.IsFavorite(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", v.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", v.Name)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <vehicle-id>",
		Short: "Remove a favorite by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, closeFn, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeFn()
			return favs.Remove(args[0])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs, closeFn, err := a.openFavorites()
			if err != nil {
				return err
			}
			defer closeFn()
			return favs.Clear()
		},
	}

	cmd.AddCommand(list, toggle, remove, clearCmd)
	return cmd
}
