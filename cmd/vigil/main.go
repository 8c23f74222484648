package main

import (
	"os"

	"github.com/spf13/cobra"

	"vigil/internal/interfaces/cli/admin"
	"vigil/internal/interfaces/cli/migrate"
	"vigil/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vigil",
		Short: "Vigil - incident logging service",
		Long:  `Vigil is a multi-tenant incident logging service with per-event access control and live change streams.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
