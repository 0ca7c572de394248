package cmd

import (
	"fmt"
	"os"

	"media-catalog/core/storage"
	"media-catalog/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOutput string
	exportList   bool
)

// exportCmd writes the catalog as TSV
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as tab separated values",
	Long: `Writes one row per catalogued file. The export is uploaded to the storage bucket
when storage is enabled and no --output is given; otherwise it is written to the output
file, or to stdout when the output is "-".`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (\"-\" for stdout)")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "List the uploaded exports")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	upload := rt.cfg.Storage.Enabled && exportOutput == ""
	if exportList && !rt.cfg.Storage.Enabled {
		return fmt.Errorf("listing exports requires storage to be enabled")
	}

	var exporter *catalog.Exporter
	if upload || exportList {
		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return err
		}
		exporter = catalog.NewExporter(client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region, rt.log)
	}

	if exportList {
		names, err := exporter.List(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	vols, err := rt.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	if upload {
		name, err := exporter.Upload(ctx, vols)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s/%s\n", rt.cfg.Storage.Bucket, name)
		return nil
	}

	out := os.Stdout
	if exportOutput != "" && exportOutput != "-" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	rows, err := catalog.WriteTSV(out, vols)
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	rt.log.Info("Export written", zap.String("output", exportOutput), zap.Int("rows", rows))
	return nil
}
