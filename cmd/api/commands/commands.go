package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/watchdeck/core/internal/domain/entities"
	"github.com/watchdeck/core/internal/infrastructure/config"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/infrastructure/metrics"
	"github.com/watchdeck/core/internal/infrastructure/server"
	"github.com/watchdeck/core/internal/infrastructure/storage"
)

// ConfigFile is set by the root command's --config flag
var ConfigFile string

// Set at build time with -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Watchdeck API server",
		Long:  "Start the Watchdeck API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewDataCommand creates the data command with subcommands for the data file
func NewDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect or reset the watchlist data file",
	}

	dataCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			return showData(cmd.Context(), store, cmd.OutOrStdout())
		},
	})

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the data file with an empty document",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return errors.New("refusing to reset without --force")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", store.Path())
			return nil
		},
	}
	resetCmd.Flags().Bool("force", false, "Confirm overwriting the data file")
	dataCmd.AddCommand(resetCmd)

	return dataCmd
}

// NewInstrumentsCommand creates the instruments command
func NewInstrumentsCommand() *cobra.Command {
	instrumentsCmd := &cobra.Command{
		Use:   "instruments",
		Short: "Instruments catalog commands",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the instruments catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(ConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			catalog, err := storage.LoadCatalog(cfg.Storage.InstrumentsFile)
			if err != nil {
				return err
			}

			query, _ := cmd.Flags().GetString("query")
			typ, _ := cmd.Flags().GetString("type")
			return listInstruments(cmd.OutOrStdout(), catalog.Search(query, entities.InstrumentType(typ)))
		},
	}
	listCmd.Flags().String("query", "", "Filter by symbol or name")
	listCmd.Flags().String("type", "", "Filter by type (stock, etf, crypto, forex, index)")
	instrumentsCmd.AddCommand(listCmd)

	return instrumentsCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Watchdeck version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watchdeck %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.LoadFile(ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Sync()

	catalog, err := storage.LoadCatalog(cfg.Storage.InstrumentsFile)
	if err != nil {
		appLogger.Errorw("Failed to load instruments catalog", "error", err)
		return err
	}

	var m *metrics.Metrics
	var observer storage.Observer
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observer = m
	}

	store := storage.NewJSONFile(cfg.Storage.DataFile, appLogger, observer)

	srv, err := server.New(cfg, store, catalog, m, appLogger)
	if err != nil {
		appLogger.Errorw("Failed to initialize server", "error", err)
		return err
	}

	appLogger.Infow("Starting Watchdeck API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"instruments", catalog.Len(),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		appLogger.Errorw("Server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func openStore() (*storage.JSONFile, error) {
	cfg, err := config.LoadFile(ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return storage.NewJSONFile(cfg.Storage.DataFile, logger.NewNop(), nil), nil
}

func showData(ctx context.Context, store *storage.JSONFile, out io.Writer) error {
	doc, err := store.Read(ctx)
	if err != nil {
		return err
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func listInstruments(out io.Writer, instruments []entities.Instrument) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tTYPE\tEXCHANGE\tCURRENCY")
	for _, inst := range instruments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inst.Symbol, inst.Name, inst.Type, inst.Exchange, inst.Currency)
	}
	return w.Flush()
}
