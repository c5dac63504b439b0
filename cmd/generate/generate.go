// Package generate implements the one-shot sitemap generation command.
package generate

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gositemap/cmd/common"
	"github.com/jonesrussell/gositemap/internal/database"
	"github.com/jonesrussell/gositemap/internal/generator"
)

// Command returns the generate command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run one sitemap generation pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			var db *sqlx.DB
			if deps.Config.Sources.Postgres.Enabled {
				db, err = database.NewPostgresConnection(deps.Config.Database)
				if err != nil {
					return fmt.Errorf("connect database: %w", err)
				}
				defer db.Close()
			}

			providers, err := generator.Providers(deps.Config, deps.Logger, db)
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				deps.Logger.Info("No sources configured. Add sources to your config file.")
				return nil
			}

			gen := generator.New(deps.Config, deps.Logger, providers)
			summary, err := gen.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			deps.Logger.Info("Done",
				"entries", summary.Entries,
				"files", summary.Documents,
				"index", summary.IndexPath)

			return nil
		},
	}
}
