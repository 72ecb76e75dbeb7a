package cmd

import (
	"log"

	"moneyhive/internal/config"
	"moneyhive/internal/fx"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the moneyhive API server: migrations, the automated-savings scheduler, and the thin HTTP driver.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	cfg := config.Load()
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	log.Printf("starting moneyhive server on %s:%s (driver: %s)", cfg.Server.Host, cfg.Server.Port, cfg.Database.Driver)
	if config.IsDevelopment() {
		log.Println("mode: development")
	} else {
		log.Println("mode: production")
	}

	fx.Application().Run()
}
