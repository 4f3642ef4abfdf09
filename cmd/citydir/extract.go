package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/citydir/internal/cliout"
	"github.com/jackzampolin/citydir/internal/pipeline"
)

var extractYear string

var extractCmd = &cobra.Command{
	Use:   "extract [textfile]",
	Short: "Run segmentation and field extraction on already OCR'd text",
	Long: `Run the text pipeline only, without OCR providers. Reads page text
from a file, or from stdin when no file is given.

Examples:
  citydir extract page.txt
  pdftotext scan.pdf - | citydir extract
  citydir extract --year 1884 page.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := setupContext(cmd)
		if err != nil {
			return err
		}

		var text []byte
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
		} else {
			text, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		opts, err := pageOptions(ctx)
		if err != nil {
			return err
		}
		opts.Year = extractYear

		result, err := pipeline.ProcessText(string(text), opts)
		if err != nil {
			return err
		}
		return cliout.Output(result)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractYear, "year", "", "page-level year to attach (default: detected from text)")
}
