// Package cmd wires the fuel-economy pipeline into the fuel-explorer CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"fuel-explorer/carsapi"
	"fuel-explorer/config"
	"fuel-explorer/models"
	"fuel-explorer/services"
	"fuel-explorer/storage"
	"fuel-explorer/utils"
)

type rootOptions struct {
	file        string
	logLevel    string
	storeDriver string
	storeDSN    string
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	opts   rootOptions
	cfg    *config.Config
	logger *utils.Logger
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(config.Load).ExecuteContext(ctx)
}

func newRootCmd(loadConfig func() *config.Config) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "fuel-explorer",
		Short:        "Browse, chart and bookmark classic fuel-economy data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.cfg = loadConfig()
			if a.opts.file != "" {
				a.cfg.DataFile = a.opts.file
			}
			if a.opts.logLevel != "" {
				a.cfg.LogLevel = a.opts.logLevel
			}
			if a.opts.storeDriver != "" {
				a.cfg.StoreDriver = a.opts.storeDriver
			}
			if a.opts.storeDSN != "" {
				a.cfg.StoreDSN = a.opts.storeDSN
			}
			a.logger = utils.NewLogger(a.cfg.LogLevel)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.file, "file", "", "read vehicles from a JSON dump instead of the API")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&a.opts.storeDriver, "store", "", "favorites store: memory, sqlite or postgres")
	pf.StringVar(&a.opts.storeDSN, "dsn", "", "favorites store connection string")

	root.AddCommand(
		newBrowseCmd(a),
		newInsightsCmd(a),
		newChartsCmd(a),
		newShowCmd(a),
		newFavoritesCmd(a),
		newExportCmd(a),
	)
	return root
}

// loadVehicles reads the raw batch from the configured source and normalizes it.
func (a *app) loadVehicles(ctx context.Context) (*models.NormalizeResult, error) {
	var (
		raw []models.RawVehicle
		err error
	)
	if a.cfg.DataFile != "" {
		a.logger.Info("Loading vehicles from %s", a.cfg.DataFile)
		raw, err = carsapi.LoadFile(a.cfg.DataFile)
	} else {
		a.logger.Info("Fetching vehicles from %s", a.cfg.APIBaseURL)
		raw, err = carsapi.New(a.cfg, a.logger).FetchAll(ctx)
	}
	if err != nil {
		if len(raw) == 0 {
			return nil, err
		}
		a.logger.Warn("Continuing with %d records after fetch errors: %v", len(raw), err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no vehicle records received")
	}

	norm := services.NewNormalizer(a.logger, a.cfg.MinModelYear, a.cfg.MaxModelYear)
	return norm.Normalize(raw), nil
}

// findVehicle loads the dataset and returns the normalized vehicle with the
// given id.
func (a *app) findVehicle(ctx context.Context, rawID string) (*models.Vehicle, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("vehicle id %q is not a number", rawID)
	}
	res, err := a.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(res.Vehicles, func(v *models.Vehicle) bool { return v.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("no vehicle with id %d", id)
	}
	return res.Vehicles[i], nil
}

func (a *app) openFavorites() (*services.FavoritesStore, func(), error) {
	kv, err := storage.Open(a.cfg.StoreDriver, a.cfg.StoreDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open favorites store: %w", err)
	}
	closeFn := func() {
		if err := kv.Close(); err != nil {
			a.logger.Warn("Failed to close favorites store: %v", err)
		}
	}
	return services.NewFavoritesStore(kv, a.cfg.FavoritesKey, a.logger), closeFn, nil
}
