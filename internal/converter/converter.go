// =============================================================================
// Standard 18 Reader - Converter Module
// =============================================================================
//
// This module converts a single interchange file into a workbook. It wires a
// fresh record mapper to the file, collects the decoded records and writes
// them out.
//
// CONVERSION PIPELINE:
//   1. Open the input file and strip any byte order mark
//   2. Register a collector for every configured record kind
//   3. Parse the file line by line
//   4. Write the workbook to the output directory
//   5. Archive the input file (optional)
//
// CONCURRENCY:
//   A Converter owns its mapper, workbook and logger. Several converters can
//   run at the same time on different files; a single Converter must not be
//   shared between goroutines.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bacs-std18/internal/config"
	"github.com/ginjaninja78/bacs-std18/internal/export"
	"github.com/ginjaninja78/bacs-std18/internal/logging"
	"github.com/ginjaninja78/bacs-std18/internal/std18"
	"github.com/ginjaninja78/bacs-std18/internal/stream"
	"github.com/ginjaninja78/bacs-std18/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated workbook.
	// This is empty if processing failed or was a dry run.
	OutputFile string

	// ArchivePath is where the input file was moved, if it was archived.
	ArchivePath string

	// RunID identifies this conversion in logs and output names.
	RunID string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Lines is the number of lines classified.
	Lines int

	// Records is the number of records decoded and exported.
	Records int

	// Skipped is the number of lines dropped because they failed to decode.
	Skipped int

	// Ignored is the number of lines of kinds that were not configured.
	Ignored int

	// Instructions and Contras count the business records exported.
	Instructions int
	Contras      int

	// InstructionTotal and ContraTotal sum the amounts of those records.
	InstructionTotal decimal.Decimal
	ContraTotal      decimal.Decimal

	// Trailer is the UTL1 record, when one was decoded.
	Trailer *std18.UserTrailer

	// BytesRead is the size of the input after BOM removal.
	BytesRead int64

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single interchange file.
type Converter struct {
	path   string
	cfg    *config.Config
	logger *slog.Logger
	files  *utils.FileManager

	// DryRun parses and counts without writing or archiving anything.
	DryRun bool
}

// New creates a Converter for the file at path. A nil logger discards
// output.
func New(path string, cfg *config.Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		path:   path,
		cfg:    cfg,
		logger: logger,
		files:  utils.NewFileManager(cfg.InputDir, cfg.InputArchiveDir, cfg.FilePatterns),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.path,
		RunID:    uuid.New().String(),
	}
	log := logging.ForFile(c.logger, filepath.Base(c.path), result.RunID)

	fail := func(err error) Result {
		result.Error = err
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Error("conversion failed", "error", err)
		return result
	}

	log.Info("processing file")

	// =========================================================================
	// STEP 1: OPEN INPUT
	// =========================================================================

	file, err := os.Open(c.path)
	if err != nil {
		return fail(fmt.Errorf("failed to open input: %w", err))
	}
	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}
	reader := stream.Wrap(file, size)

	// =========================================================================
	// STEP 2: REGISTER COLLECTORS
	// =========================================================================

	wb, err := export.New()
	if err != nil {
		file.Close()
		return fail(err)
	}
	defer wb.Close()

	mapper := std18.NewMapper(std18.WithLogger(log))
	col := &collector{wb: wb, stats: &result.Stats}
	for _, row := range c.cfg.RowTags() {
		mapper.Register(row, col.collect)
	}

	// =========================================================================
	// STEP 3: PARSE
	// =========================================================================

	err = std18.Parse(reader, mapper)
	file.Close()
	if err != nil {
		return fail(fmt.Errorf("failed to parse %s: %w", filepath.Base(c.path), err))
	}
	if col.err != nil {
		return fail(fmt.Errorf("failed to export records: %w", col.err))
	}

	ms := mapper.Stats()
	result.Stats.Lines = ms.Lines
	result.Stats.Records = ms.Dispatched
	result.Stats.Skipped = ms.Skipped
	result.Stats.Ignored = ms.Ignored
	result.Stats.BytesRead = reader.BytesRead

	log.Debug("parsed file",
		"lines", ms.Lines,
		"records", ms.Dispatched,
		"skipped", ms.Skipped,
		"ignored", ms.Ignored,
		"bytes", reader.BytesRead)
	if ms.Skipped > 0 {
		log.Warn("skipped malformed lines", "count", ms.Skipped)
	}

	if c.DryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		log.Info("dry run complete", "records", ms.Dispatched)
		return result
	}

	// =========================================================================
	// STEP 4: WRITE WORKBOOK
	// =========================================================================

	name := utils.GenerateOutputFileName(c.cfg.OutputNameFormat, map[string]string{
		"name": utils.BaseName(c.path),
		"uuid": result.RunID,
	})
	outputPath := filepath.Join(c.cfg.OutputDir, name)
	if err := wb.SaveAs(outputPath); err != nil {
		return fail(err)
	}
	result.OutputFile = outputPath
	log.Info("wrote workbook", "output", outputPath, "records", wb.Records())

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================

	if c.cfg.ArchiveInputs {
		archived, err := c.files.ArchiveInputFile(c.path)
		if err != nil {
			// The workbook is already written; archival failure is reported
			// but does not fail the conversion.
			log.Warn("failed to archive input", "error", err)
		} else {
			result.ArchivePath = archived
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	return result
}

// =============================================================================
// COLLECTOR
// =============================================================================

// collector receives every decoded record of one file. It appends the record
// to the workbook and keeps the business totals. The first export error is
// kept and reported once parsing ends.
type collector struct {
	wb    *export.Workbook
	stats *ProcessingStats
	err   error
}

func (c *collector) collect(row std18.Row, rec std18.Record) {
	switch r := rec.(type) {
	case std18.Instruction:
		c.stats.Instructions++
		c.stats.InstructionTotal = c.stats.InstructionTotal.Add(r.Amount)
	case std18.Contra:
		c.stats.Contras++
		c.stats.ContraTotal = c.stats.ContraTotal.Add(r.Amount)
	case std18.UserTrailer:
		c.stats.Trailer = &r
	}

	if c.err != nil {
		return
	}
	c.err = c.wb.Add(row, rec)
}
