package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simeon-code254/matobev-apps/api"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/database"
	"github.com/simeon-code254/matobev-apps/internal/models"
	"github.com/simeon-code254/matobev-apps/internal/services/storage"
	apperrors "github.com/simeon-code254/matobev-apps/pkg/errors"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Matobev Talent API server with the configured settings.

The server accepts video uploads, tracks their ingestion runs, and serves
player cards, analysis history, and video assets.

Example:
  matobev-api serve
  matobev-api serve --port 9090
  matobev-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load config (lazy loading - only when serve command is run)
	if err := loadConfig(); err != nil {
		return err
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = appConfig.Server.Host
	}
	if serverPort == 0 {
		serverPort = appConfig.Server.Port
	}

	// Initialize database and bring the schema up to date
	db, err := database.Open(database.Options{
		Path:              appConfig.Database.Path,
		LogQueries:        appConfig.Database.LogQueries,
		MaxOpenConns:      appConfig.Database.MaxConnections,
		MaxIdleConns:      appConfig.Database.MaxIdleConnections,
		ConnMaxLifetime:   appConfig.Database.ConnectionMaxLifetime,
		EnableWAL:         appConfig.Database.EnableWAL,
		EnableForeignKeys: appConfig.Database.EnableForeignKeys,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "failed to initialize database")
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseMigration, "failed to auto-migrate database")
	}

	// Object store client
	store, err := storage.NewS3Store(cmd.Context(), storage.S3Config{
		Endpoint:       appConfig.Storage.Endpoint,
		Region:         appConfig.Storage.Region,
		AccessKey:      appConfig.Storage.AccessKey,
		SecretKey:      appConfig.Storage.SecretKey,
		Bucket:         appConfig.Storage.Bucket,
		ForcePathStyle: appConfig.Storage.ForcePathStyle,
	})
	if err != nil {
		return apperrors.StorageError("init", err)
	}

	// The remaining services are built from config inside route
	// registration
	deps := &types.Dependencies{
		DB:          db,
		ObjectStore: store,
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	srv := api.NewServer(address)
	srv.SetDependencies(deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s\n", address)

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}
