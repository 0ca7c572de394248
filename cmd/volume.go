package cmd

import (
	"fmt"

	"media-catalog/feature/validation"

	"github.com/spf13/cobra"
)

var (
	volumeSchema string
	volumeMain   bool
)

// volumeCmd is the parent command for volume registration.
var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Register, remove and list volumes",
}

var volumeAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a volume",
	Long: `Registers a directory as a volume. The path is stored absolute and slash separated.

Examples:
  volume add /mnt/media/movies --schema movie --main
  volume add /mnt/backup/photos --schema personal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.DefaultRegistry().Check(volumeSchema); err != nil {
			return err
		}
		rt, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		row, err := rt.store.AddVolume(cmd.Context(), args[0], volumeSchema, volumeMain)
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s\n", row.Path)
		return nil
	},
}

var volumeRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a volume and everything catalogued below it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		if err := rt.store.RemoveVolume(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var volumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		rows, err := rt.store.ListVolumes(cmd.Context())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No volumes registered")
			return nil
		}
		for _, r := range rows {
			schema := r.Schema
			if schema == "" {
				schema = "-"
			}
			role := "satellite"
			if r.Main {
				role = "main"
			}
			fmt.Printf("%-50s %-10s %s\n", r.Path, schema, role)
		}
		return nil
	},
}

func init() {
	volumeAddCmd.Flags().StringVar(&volumeSchema, "schema", "", "Naming schema (movie, tvseries, personal); empty disables validation")
	volumeAddCmd.Flags().BoolVar(&volumeMain, "main", false, "Mark the volume as the main copy")

	volumeCmd.AddCommand(volumeAddCmd, volumeRemoveCmd, volumeListCmd)
	RootCmd.AddCommand(volumeCmd)
}
