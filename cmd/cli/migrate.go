package cmd

import (
	"log"

	"moneyhive/internal/config"
	"moneyhive/internal/database"
	"moneyhive/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Run automatic database migrations for every moneybox-core entity.`,
	Run: func(cmd *cobra.Command, args []string) {
		runMigrate()
	},
}

var migrateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all tables and re-migrate",
	Long:  `WARNING: this deletes all data. Drops every managed table and runs migrations fresh.`,
	Run: func(cmd *cobra.Command, args []string) {
		runMigrateReset()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateResetCmd)
}

func connectStore() (*store.Store, *zap.Logger) {
	logger, _ := zap.NewDevelopment()
	st, err := store.New(config.Load(), logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return st, logger
}

func runMigrate() {
	st, logger := connectStore()
	defer logger.Sync()

	if err := database.AutoMigrate(st.DB, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migrations completed")
}

func runMigrateReset() {
	st, logger := connectStore()
	defer logger.Sync()

	log.Println("dropping all tables")
	if err := database.DropAllTables(st.DB, logger); err != nil {
		log.Fatalf("failed to drop tables: %v", err)
	}

	if err := database.AutoMigrate(st.DB, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("database reset completed")
}
