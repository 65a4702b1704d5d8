// Package main provides the CLI entry point for sods.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hrk/sods/pkg/sods"
	"github.com/hrk/sods/pkg/sods/models"
	"github.com/hrk/sods/pkg/sods/output"
)

var (
	outputPath    string
	pretty        bool
	verbose       bool
	summary       bool
	maxRepeat     int
	locale        string
	configPath    string
	sheetsDir     string
	printAreasDir string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sods [input.ods]",
		Short: "Decode OpenDocument spreadsheets",
		Long: `sods decodes an OpenDocument spreadsheet (cells, styles, merges,
annotations) and outputs JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped attributes and declarations")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Print a short summary to stderr")
	rootCmd.Flags().IntVar(&maxRepeat, "max-repeat", 0, "Largest accepted row/column repeat count (default 10000)")
	rootCmd.Flags().StringVar(&locale, "locale", "", "Locale used for the summary (BCP 47 tag)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	info, err := os.Stat(inputPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	cfg.override(cmd)

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	opts := sods.DefaultOptions()
	opts.Logger = log
	if cfg.MaxRepeat > 0 {
		opts.MaxRepeatCount = cfg.MaxRepeat
	}
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
		opts.Locale = tag
	}

	spread, err := sods.LoadFile(inputPath, opts)
	if err != nil {
		return fmt.Errorf("decoding failed: %w", err)
	}

	bookName := filepath.Base(inputPath)
	wb := output.Build(bookName, spread)

	jsonData, err := output.ToJSON(wb, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" && printAreasDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if printAreasDir != "" {
		if err := writePrintAreaFiles(bookName, spread, printAreasDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}

	if summary {
		printSummary(cmd, opts.Locale, bookName, info.Size(), spread)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

func writeSheetFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Name, i)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func writePrintAreaFiles(bookName string, spread *models.Spreadsheet, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i, sheet := range spread.Sheets {
		for j, area := range sheet.PrintAreas {
			view := output.BuildPrintAreaView(bookName, sheet, area)
			jsonData, err := output.PrintAreaViewToJSON(&view, pretty)
			if err != nil {
				return err
			}

			filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", sheetFileName(sheet.Name, i), j+1))
			if err := os.WriteFile(filename, jsonData, 0644); err != nil {
				return err
			}
		}
	}

	return nil
}

// sheetFileName makes a file name for a sheet; unnamed sheets use their
// position.
func sheetFileName(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("sheet%d", index+1)
	}
	return filepath.Base(filepath.Clean("/" + name))
}

func printSummary(cmd *cobra.Command, tag language.Tag, bookName string, size int64, spread *models.Spreadsheet) {
	p := message.NewPrinter(tag)
	p.Fprintf(cmd.ErrOrStderr(), "%s (%s): %d sheets\n", bookName, humanize.Bytes(uint64(size)), spread.NumSheets())
	for _, sheet := range spread.Sheets {
		cells := 0
		for row := 0; row < sheet.MaxRows(); row++ {
			for _, c := range sheet.RowCells(row) {
				if c.Value != nil {
					cells++
				}
			}
		}
		p.Fprintf(cmd.ErrOrStderr(), "  %s: %d rows x %d columns, %d values, %d merges\n",
			sheet.Name, sheet.MaxRows(), sheet.MaxColumns(), cells, len(sheet.MergedRegions()))
	}
}
