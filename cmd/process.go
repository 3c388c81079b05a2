// =============================================================================
// Standard 18 Reader - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every matching
// interchange file in the input directory into an Excel workbook.
//
// COMMAND USAGE:
//   std18 process [flags]
//
// FLAGS:
//   --dry-run : Parse and count without writing or archiving anything
//   --file    : Convert only this file instead of scanning the input directory
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover input files
//   3. Convert files concurrently, up to max_concurrency at a time, each
//      with its own mapper
//   4. Write the processing summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/bacs-std18/internal/converter"
	"github.com/ginjaninja78/bacs-std18/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun parses without writing output files.
var dryRun bool

// filePath converts a single file instead of scanning the input directory.
var filePath string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert Standard 18 files to Excel workbooks",
	Long: `The process command scans the input directory for Standard 18 files and
converts each one into a workbook with one sheet per record kind.

Files are converted concurrently. A failure in one file does not affect the
others.

On successful conversion:
  - The workbook is placed in the output directory
  - The input file is moved to the input archive (if archive_inputs is set)

On error:
  - No workbook is written
  - The input file remains in the input directory
  - The error is recorded in the processing summary`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse files without writing output or archiving inputs",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Convert only this file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the batch conversion.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cmd, cfg)

	if !dryRun {
		if err := cfg.EnsureDirs(); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		fm := utils.NewFileManager(cfg.InputDir, cfg.InputArchiveDir, cfg.FilePatterns)
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No Standard 18 files found in the input directory.")
		return nil
	}

	logger.Info("starting batch", "files", len(inputFiles), "max_concurrency", cfg.MaxConcurrency, "dry_run", dryRun)

	// =========================================================================
	// STEP 3: CONVERT FILES CONCURRENTLY
	// =========================================================================
	// Each goroutine owns its converter and writes only its own slot.

	results := make([]converter.Result, len(inputFiles))

	var g errgroup.Group
	g.SetLimit(cfg.MaxConcurrency)
	for i, file := range inputFiles {
		i, file := i, file
		g.Go(func() error {
			conv := converter.New(file, cfg, logger)
			conv.DryRun = dryRun
			results[i] = conv.Run()
			return nil
		})
	}
	g.Wait()

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{StartTime: startTime}
	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			summary.Add(utils.ProcessedFileInfo{
				InputFile:    result.FilePath,
				OutputFile:   result.OutputFile,
				ArchivePath:  result.ArchivePath,
				RunID:        result.RunID,
				Lines:        result.Stats.Lines,
				Records:      result.Stats.Records,
				Skipped:      result.Stats.Skipped,
				Instructions: result.Stats.Instructions,
				Contras:      result.Stats.Contras,
				ProcessTime:  result.Stats.ProcessingTime,
			})
			target := result.OutputFile
			if dryRun {
				target = "(dry run)"
			}
			fmt.Fprintf(out, "  ✓ %s -> %s (%d records, %d skipped)\n", name, target, result.Stats.Records, result.Stats.Skipped)
		} else {
			summary.AddFailure(utils.FailedFileInfo{
				InputFile:    result.FilePath,
				RunID:        result.RunID,
				ErrorMessage: result.Error.Error(),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
		}
	}
	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			logger.Warn("failed to write summary", "error", err)
		} else {
			fmt.Fprintf(out, "Summary:         %s\n", summaryPath)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d files failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}
