package cmd

import (
	"fmt"
	"sort"

	"media-catalog/core/database"
	"media-catalog/feature/catalog"

	"github.com/spf13/cobra"
)

// doctorCmd verifies the catalog schema
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the catalog tables and columns exist",
	Long:  `Inspects the catalog database without migrating it and reports missing tables or columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}

		tables := make([]string, 0, len(catalog.ExpectedColumns))
		for t := range catalog.ExpectedColumns {
			tables = append(tables, t)
		}
		sort.Strings(tables)

		problems := 0
		for _, table := range tables {
			missing, err := database.MissingColumns(rt.db, table, catalog.ExpectedColumns[table])
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", table, err)
			}
			if len(missing) == 0 {
				fmt.Printf("[ok]      %s\n", table)
				continue
			}
			problems++
			fmt.Printf("[missing] %s: %v\n", table, missing)
		}

		if problems > 0 {
			return fmt.Errorf("%d catalog tables are incomplete; run any command that opens the catalog to migrate", problems)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
