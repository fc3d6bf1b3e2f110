package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recipekeeper/core/internal/adapters/repository"
	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/infrastructure/config"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/infrastructure/server"
)

// Build information, set through -ldflags
var (
	Version   = "1.0.0"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Recipe Keeper API server",
		Long:  "Start the Recipe Keeper API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			host, _ := cmd.Flags().GetString("host")
			port, _ := cmd.Flags().GetInt("port")
			store, _ := cmd.Flags().GetString("store")
			runServer(host, port, store)
		},
	}

	cmd.Flags().String("host", "", "Bind address (overrides SERVER_HOST)")
	cmd.Flags().Int("port", 0, "Listen port (overrides SERVER_PORT)")
	cmd.Flags().String("store", "", "Path of the recipes JSON file (overrides STORE_PATH)")

	return cmd
}

// NewCheckCommand creates the check command which inspects the recipe file
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the recipes file",
		Long:  "Load the recipes file, report how many recipes it holds and fail when ids are duplicated",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("store")
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				path = cfg.Store.Path
			}
			return checkStore(cmd.Context(), path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("store", "", "Path of the recipes JSON file (defaults to STORE_PATH)")

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Recipe Keeper version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Recipe Keeper v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(host string, port int, storePath string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting Recipe Keeper API server",
		"address", cfg.Server.GetAddr(),
		"store", cfg.Store.Path,
		"lock_writes", cfg.Store.LockWrites,
		"environment", cfg.App.Environment,
	)

	// Graceful shutdown setup
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.GetAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		appLogger.Fatalw("Server failed to start", "error", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Warnw("Server forced to shutdown", "error", err)
	} else {
		appLogger.Info("Server shutdown completed")
	}
}

func checkStore(ctx context.Context, path string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store := repository.NewFileStore(config.StoreConfig{Path: path}, logger.NewNop())
	recipes, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("store %s is unreadable: %w", path, err)
	}

	fmt.Fprintf(out, "Store: %s\n", path)
	fmt.Fprintf(out, "Recipes: %d\n", len(recipes))
	fmt.Fprintf(out, "Next id: %d\n", entities.NextRecipeID(recipes))

	if dups := entities.DuplicateRecipeIDs(recipes); len(dups) > 0 {
		fmt.Fprintf(out, "Duplicate ids: %v\n", dups)
		return fmt.Errorf("store %s has %d duplicated id(s)", path, len(dups))
	}

	fmt.Fprintln(out, "OK")
	return nil
}
