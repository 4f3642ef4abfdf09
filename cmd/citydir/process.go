package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/citydir/internal/cliout"
	"github.com/jackzampolin/citydir/internal/export"
	"github.com/jackzampolin/citydir/internal/extract"
	"github.com/jackzampolin/citydir/internal/metrics"
	"github.com/jackzampolin/citydir/internal/pipeline"
	"github.com/jackzampolin/citydir/internal/preprocess"
	"github.com/jackzampolin/citydir/internal/segment"
	"github.com/jackzampolin/citydir/internal/svcctx"
)

var (
	processProviders []string
	processWorkers   int
	processFormat    string
	processExportTo  string
)

var processCmd = &cobra.Command{
	Use:   "process <scan-id>",
	Short: "OCR a scan and extract resident records",
	Long: `Run the full pipeline over an ingested scan: preprocess page images,
OCR them, segment entries, extract fields, and export the records.

Examples:
  citydir process 4f7c2a1e-...                 # config defaults
  citydir process --providers tesseract <id>   # force local OCR
  citydir process --format jsonl <id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, svc, err := setupContext(cmd)
		if err != nil {
			return err
		}
		cfg := svc.Config.Get()
		scanID := args[0]

		providerOrder := processProviders
		if len(providerOrder) == 0 {
			providerOrder = cfg.Defaults.OCRProviders
		}
		workers := processWorkers
		if workers <= 0 {
			workers = cfg.Defaults.MaxWorkers
		}
		formatName := processFormat
		if formatName == "" {
			formatName = cfg.Defaults.ExportFormat
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		pageOpts, err := pageOptions(ctx)
		if err != nil {
			return err
		}

		runner := pipeline.NewRunner(ctx)
		runner.Providers = providerOrder
		runner.Workers = workers
		runner.Preprocess = preprocess.Options{
			SkipBinarize: cfg.Preprocess.SkipBinarize,
			ScaleFactor:  cfg.Preprocess.ScaleFactor,
		}
		runner.MinLineConfidence = cfg.Extraction.MinLineConfidence
		runner.Page = pageOpts

		result, err := runner.Run(ctx, scanID)
		if err != nil {
			return err
		}

		exportPath := processExportTo
		if exportPath == "" {
			exportPath = svc.Home.ExportPath(scanID, string(format))
		}
		if err := export.WriteFile(exportPath, format, result.Records); err != nil {
			return err
		}
		svc.Logger.Info("exported records", "path", exportPath, "count", len(result.Records))

		return cliout.Output(processReport{
			ScanID:     result.ScanID,
			Year:       result.Year,
			Pages:      result.Pages,
			Records:    len(result.Records),
			Summary:    result.Summary,
			Failures:   result.Failures,
			CostUSD:    result.CostUSD,
			ExportPath: exportPath,
			Providers:  svc.Metrics.ByProvider(),
		})
	},
}

// processReport is the structured run summary printed after processing.
type processReport struct {
	ScanID     string                      `json:"scan_id" yaml:"scan_id"`
	Year       string                      `json:"year,omitempty" yaml:"year,omitempty"`
	Pages      int                         `json:"pages" yaml:"pages"`
	Records    int                         `json:"records" yaml:"records"`
	Summary    pipeline.Summary            `json:"summary" yaml:"summary"`
	Failures   []pipeline.PageFailure      `json:"failures,omitempty" yaml:"failures,omitempty"`
	CostUSD    float64                     `json:"cost_usd" yaml:"cost_usd"`
	ExportPath string                      `json:"export_path" yaml:"export_path"`
	Providers  map[string]*metrics.Summary `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// pageOptions builds the text-pipeline options from the context services.
func pageOptions(ctx context.Context) (pipeline.Options, error) {
	cfg := svcctx.ConfigFrom(ctx).Get()

	classifier, err := segment.NewClassifier(cfg.Segmentation.NoisePatterns, cfg.Segmentation.PageTitles)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("invalid segmentation config: %w", err)
	}

	return pipeline.Options{
		Classifier: classifier,
		Vocabulary: extract.NewVocabulary(cfg.Extraction.OccupationVocabulary),
		Logger:     svcctx.LoggerFrom(ctx),
	}, nil
}

func init() {
	processCmd.Flags().StringSliceVar(&processProviders, "providers", nil, "ordered OCR providers to try (default: config)")
	processCmd.Flags().IntVar(&processWorkers, "workers", 0, "concurrent page workers (default: config)")
	processCmd.Flags().StringVar(&processFormat, "format", "", "export format: csv, jsonl, or yaml (default: config)")
	processCmd.Flags().StringVar(&processExportTo, "export-to", "", "export file path (default: home exports dir)")
}
