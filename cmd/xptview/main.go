// Package main provides xptview, a terminal viewer for SAS XPORT
// transport files: the datasets a file contains, each dataset's variable
// schema, and a preview of its observation rows.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gopkg.inshopline.com/commons/xpt"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		format      string
		rowLimit    int
		datasetName string
		exportPath  string
	)

	cmd := &cobra.Command{
		Use:   "xptview <file.xpt>",
		Short: "Inspect SAS XPORT transport files",
		Long: `xptview decodes a SAS XPORT (.xpt/.xport) transport file and shows the
datasets it contains: schema, observation counts and a row preview.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := xpt.Open(args[0])
			if err != nil {
				return err
			}

			datasets := file.Datasets
			if datasetName != "" {
				ds := file.DatasetByName(datasetName)
				if ds == nil {
					return fmt.Errorf("no dataset named %q in %s", datasetName, file.Path)
				}
				datasets = []*xpt.Dataset{ds}
			}

			if exportPath != "" {
				sel := &xpt.XptFile{Path: file.Path, Library: file.Library, Datasets: datasets}
				if err := xpt.ExportXLSX(sel, exportPath); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d dataset(s) to %s\n", len(datasets), exportPath)
				return nil
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return renderJSON(out, file, datasets)
			case "csv":
				return renderCSV(out, datasets)
			case "table":
				return renderTables(out, file, datasets, rowLimit)
			default:
				return fmt.Errorf("unknown format %q (want table, json or csv)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or csv")
	cmd.Flags().IntVar(&rowLimit, "rows", 10, "Preview rows to display per dataset (table format)")
	cmd.Flags().StringVar(&datasetName, "dataset", "", "Show only the named dataset")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the preview to an .xlsx workbook instead of rendering")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "xptview v%s\n", version)
		},
	}
}
