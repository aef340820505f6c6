package cmd

import (
	"fmt"

	"github.com/careerbridge/server/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenEmail   string
)

// tokenCmd mints a JWT for local testing. It only needs the signing secret,
// so it works without a database.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.IsProduction() {
			return fmt.Errorf("token minting is disabled in production")
		}
		if tokenSubject == "" {
			return fmt.Errorf("--subject is required")
		}

		role, err := auth.ParseRole(tokenRole)
		if err != nil {
			return err
		}
		manager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)
		token, err := manager.Generate(tokenSubject, string(role), tokenEmail)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "user id to issue the token for")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "student", "role claim (student, graduate, company, admin)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
}
