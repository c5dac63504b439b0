// Package sources implements the command-line interface for inspecting
// configured entry sources. The list command renders the providers in a
// formatted table.
package sources

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/gositemap/cmd/common"
	"github.com/jonesrussell/gositemap/internal/config"
)

// Command returns the sources command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage sitemap entry sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(listCommand())

	return cmd
}

// listCommand returns the sources list subcommand.
func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured entry sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			renderTable(&deps.Config.Sources)

			return nil
		},
	}
}

// renderTable formats the configured sources as a table on stdout.
func renderTable(sources *config.SourcesConfig) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Target", "Enabled", "Details"})

	if sources.File != "" {
		t.AppendRow(table.Row{"static", sources.File, "true", "entries file"})
	}

	t.AppendRow(table.Row{
		"postgres",
		sources.Postgres.Table,
		strconv.FormatBool(sources.Postgres.Enabled),
		"database table",
	})

	for _, dc := range sources.Discover {
		t.AppendRow(table.Row{
			"discover",
			dc.URL,
			"true",
			"depth " + strconv.Itoa(dc.MaxDepth),
		})
	}

	t.Render()
}
