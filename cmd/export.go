package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cothinklab/cothink/internal/export"
	"github.com/cothinklab/cothink/internal/telemetry"
)

var (
	exportFormats []string
	exportDir     string
	exportStrict  bool
	exportRaw     bool
	exportPrefix  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset for research tooling",
	Long: `Export the collected dataset as a complete JSON dump, flat CSVs for
statistical tools, and a Markdown research report. With --strict,
records flagged by the quality gate are excluded from the export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := GetConfig()

		st, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		records, err := st.ListInteractions()
		if err != nil {
			return err
		}
		surveys, err := st.ListSurveys()
		if err != nil {
			return err
		}

		outputDir := exportDir
		if outputDir == "" {
			outputDir = filepath.Join(config.Project.RootDir, config.Project.DataDir, "exports")
		}
		formats := exportFormats
		if len(formats) == 0 {
			formats = config.Export.Formats
		}

		created, err := export.New(afero.NewOsFs()).Export(records, surveys, export.Options{
			OutputDir:           outputDir,
			Formats:             formats,
			Prefix:              exportPrefix,
			Strict:              exportStrict,
			IncludeRawResponses: exportRaw || config.Export.IncludeRawResponses,
		})
		if err != nil {
			return err
		}

		tel := newTelemetryClient()
		defer func() { _ = tel.Close() }()
		tel.Track(telemetry.EventDatasetExported, telemetry.Properties{
			"formats": len(formats),
			"strict":  exportStrict,
		})

		kinds := make([]string, 0, len(created))
		for kind := range created {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		fmt.Printf("Exported %d interaction and %d survey records:\n", len(records), len(surveys))
		for _, kind := range kinds {
			fmt.Printf("  %s: %s\n", kind, created[kind])
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", nil, "export formats: json, csv, markdown (default from config)")
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "o", "", "output directory (default <dataDir>/exports)")
	exportCmd.Flags().StringVar(&exportPrefix, "prefix", "", "filename prefix for export artifacts")
	exportCmd.Flags().BoolVar(&exportStrict, "strict", false, "exclude records flagged by the quality gate")
	exportCmd.Flags().BoolVar(&exportRaw, "include-raw", false, "include full response text in CSVs")
	rootCmd.AddCommand(exportCmd)
}
