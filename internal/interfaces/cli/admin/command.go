package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"vigil/internal/infrastructure/config"
	"vigil/internal/infrastructure/database"
	"vigil/internal/infrastructure/permission"
	"vigil/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator role management",
		Long:  `Grant and revoke the administrator role for ranger handles.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newGrantCommand(),
		newRevokeCommand(),
	)

	return cmd
}

func newGrantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <handle>",
		Short: "Grant the administrator role to a handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnforcer(func(enforcer *permission.Enforcer) error {
				if err := enforcer.GrantAdmin(args[0]); err != nil {
					return fmt.Errorf("failed to grant admin role: %w", err)
				}
				fmt.Printf("granted administrator role to %s\n", args[0])
				return nil
			})
		},
	}
}

func newRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <handle>",
		Short: "Revoke the administrator role from a handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnforcer(func(enforcer *permission.Enforcer) error {
				if err := enforcer.RevokeAdmin(args[0]); err != nil {
					return fmt.Errorf("failed to revoke admin role: %w", err)
				}
				fmt.Printf("revoked administrator role from %s\n", args[0])
				return nil
			})
		},
	}
}

func withEnforcer(fn func(enforcer *permission.Enforcer) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	enforcer, err := permission.NewEnforcer(database.Get(), cfg.Admin.ModelPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize enforcer: %w", err)
	}

	return fn(enforcer)
}
