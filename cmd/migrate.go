package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simeon-code254/matobev-apps/internal/database"
	"github.com/simeon-code254/matobev-apps/internal/models"
	apperrors "github.com/simeon-code254/matobev-apps/pkg/errors"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Matobev Talent API.

The schema is derived from the application models (profiles, videos,
video_analysis, player_cards) and applied with GORM auto-migration.

Available subcommands:
  up      - Bring the schema up to date
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Bring the schema up to date",
	Long: `Create or alter tables so the schema matches the application models.

Auto-migration is additive: it creates missing tables, columns, and
indexes but never drops existing ones.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	Long:  `Display which model tables exist in the configured database.`,
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func openMigrationDB() (*database.DB, error) {
	if err := loadConfig(); err != nil {
		return nil, err
	}
	db, err := database.Open(database.Options{
		Path:              appConfig.Database.Path,
		LogQueries:        appConfig.Database.LogQueries,
		EnableWAL:         appConfig.Database.EnableWAL,
		EnableForeignKeys: appConfig.Database.EnableForeignKeys,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseConnection, "failed to open database")
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if dryRun {
		fmt.Println("Dry run mode - no changes will be made")
		fmt.Println("Would migrate tables:")
		for _, model := range models.All() {
			fmt.Printf("  %s\n", tableName(db, model))
		}
		return nil
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseMigration, "migration failed")
	}

	fmt.Printf("Schema is up to date (%s)\n", appConfig.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openMigrationDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Println("Database Schema Status")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Database: %s\n\n", appConfig.Database.Path)

	migrator := db.DB.Migrator()
	for _, model := range models.All() {
		name := tableName(db, model)
		if migrator.HasTable(model) {
			fmt.Printf("  [present] %s\n", name)
		} else {
			fmt.Printf("  [missing] %s\n", name)
		}
	}
	return nil
}

func tableName(db *database.DB, model any) string {
	stmt := db.DB.Model(model).Statement
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
