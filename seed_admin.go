package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"storerate/internal/app"
	"storerate/internal/config"
	"storerate/internal/database"
	"storerate/internal/services"
)

func newSeedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the default admin account if it does not exist",
		Long: `Create the default admin account from ADMIN_NAME, ADMIN_EMAIL,
ADMIN_ADDRESS and ADMIN_PASSWORD. Running it again is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.AdminPassword == "" {
				return errors.New("ADMIN_PASSWORD must be set to seed the admin account")
			}

			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			svc := app.NewServices(cfg, db, nil)
			admin, created, err := svc.Admin.SeedAdmin(cmd.Context(), services.CreateUserInput{
				Name:     cfg.AdminName,
				Email:    cfg.AdminEmail,
				Address:  cfg.AdminAddress,
				Password: cfg.AdminPassword,
			})
			if err != nil {
				return fmt.Errorf("seeding admin failed: %w", err)
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user created: %s (id=%d)\n", admin.Email, admin.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user already exists: %s (id=%d, role=%s)\n", admin.Email, admin.ID, admin.Role)
			}
			return nil
		},
	}
}
