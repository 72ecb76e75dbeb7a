package cmd

import (
	"context"
	"log"

	"moneyhive/internal/config"
	"moneyhive/internal/database"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the overflow moneybox, settings row, and admin user",
	Long:  `Idempotently seeds the rows the moneybox core needs at rest: the priority-0 overflow moneybox, the single app-settings row, and (if ADMIN_PASSWORD is set) the initial ADMIN user.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed() {
	st, logger := connectStore()
	defer logger.Sync()
	cfg := config.Load()

	seeder := database.NewSeeder(st.DB, &bcryptHasher{}, cfg.Seeding.AdminLogin, cfg.Seeding.AdminPassword, logger)
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("seeding complete")
}

// bcryptHasher satisfies database.PasswordHasher without pulling in
// the user service, for CLI paths that run before fx has wired it.
type bcryptHasher struct{}

func (b *bcryptHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
