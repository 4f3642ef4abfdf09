package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/citydir/internal/cliout"
	"github.com/jackzampolin/citydir/internal/ingest"
)

var (
	ingestTitle string
	ingestYear  int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pdf> [pdf...]",
	Short: "Render a directory scan's PDFs to page images",
	Long: `Render one or more PDFs into per-page PNG images under the citydir
home directory and record a scan manifest.

Multi-part PDFs are ordered by numeric suffix (scan-1.pdf, scan-2.pdf).

Examples:
  citydir ingest stillwater-1884.pdf
  citydir ingest --title "Stillwater 1884" --year 1884 part-1.pdf part-2.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, svc, err := setupContext(cmd)
		if err != nil {
			return err
		}

		manifest, err := ingest.Ingest(ctx, svc.Home, ingest.Request{
			PDFPaths: args,
			Title:    ingestTitle,
			Year:     ingestYear,
		})
		if err != nil {
			return err
		}
		return cliout.Output(manifest)
	},
}

var scansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List ingested scans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := setupServices()
		if err != nil {
			return err
		}

		manifests, err := ingest.ListScans(svc.Home)
		if err != nil {
			return err
		}
		return cliout.Output(manifests)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "scan title (default: derived from filename)")
	ingestCmd.Flags().IntVar(&ingestYear, "year", 0, "publication year (default: detected from page headers)")
}
