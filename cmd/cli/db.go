package cmd

import (
	"context"
	"log"

	"moneyhive/internal/config"
	"moneyhive/internal/database"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
}

var dbCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop all tables and re-migrate, without seeding",
	Long:  `WARNING: drops every managed table and leaves the database empty (no overflow moneybox, no settings row, no users).`,
	Run: func(cmd *cobra.Command, args []string) {
		runDBClean()
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all tables, re-migrate, and seed",
	Long:  `WARNING: drops every managed table, then re-provisions the overflow moneybox, settings row, and (if configured) the admin user.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDBReset()
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbCleanCmd)
	dbCmd.AddCommand(dbResetCmd)
}

func runDBClean() {
	st, logger := connectStore()
	defer logger.Sync()

	log.Println("dropping all tables")
	if err := database.DropAllTables(st.DB, logger); err != nil {
		log.Fatalf("failed to drop tables: %v", err)
	}
	if err := database.AutoMigrate(st.DB, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("database cleaned (empty, not seeded)")
}

func runDBReset() {
	st, logger := connectStore()
	defer logger.Sync()
	cfg := config.Load()

	log.Println("dropping all tables")
	if err := database.DropAllTables(st.DB, logger); err != nil {
		log.Fatalf("failed to drop tables: %v", err)
	}
	if err := database.AutoMigrate(st.DB, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seeder := database.NewSeeder(st.DB, &bcryptHasher{}, cfg.Seeding.AdminLogin, cfg.Seeding.AdminPassword, logger)
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("database reset and seeded")
}
