// =============================================================================
// Standard 18 Reader - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for batch conversion:
//   - Input file discovery
//   - Input archival (moving converted files)
//   - Output file naming
//   - Processing summary generation
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to input_archive after a successful conversion
//   - Failed files remain in their original location
//   - The summary log is written to the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch conversion.
type FileManager struct {
	// InputDir is scanned for interchange files.
	InputDir string

	// InputArchiveDir receives converted input files.
	InputArchiveDir string

	// Patterns are glob patterns matched against file names in InputDir.
	Patterns []string
}

// NewFileManager creates a new FileManager.
func NewFileManager(inputDir, inputArchiveDir string, patterns []string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		InputArchiveDir: inputArchiveDir,
		Patterns:        patterns,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files in the input directory that
// match any of the patterns. Each file is listed once, in name order.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range fm.Patterns {
		files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan input directory: %w", err)
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory and returns
// its new path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	archivePath := filepath.Join(fm.InputArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders in format.
//
// Built-in placeholders:
//
//	{uuid}      - A random UUID, unless params supplies one
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//
// Any other {key} is taken from params. The result always ends in .xlsx.
//
// Example:
//
//	format: "{name}_{timestamp}.xlsx"
//	params: {"name": "payments"}
//	output: "payments_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}
	return result
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	TotalLines      int
	TotalRecords    int
	SkippedLines    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a successfully converted file.
type ProcessedFileInfo struct {
	InputFile    string
	OutputFile   string
	ArchivePath  string
	RunID        string
	Lines        int
	Records      int
	Skipped      int
	Instructions int
	Contras      int
	ProcessTime  time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	RunID        string
	ErrorMessage string
}

// Add records the outcome of one file in the summary.
func (s *ProcessingSummary) Add(info ProcessedFileInfo) {
	s.TotalFiles++
	s.SuccessfulFiles++
	s.TotalLines += info.Lines
	s.TotalRecords += info.Records
	s.SkippedLines += info.Skipped
	s.ProcessedFiles = append(s.ProcessedFiles, info)
}

// AddFailure records a file that could not be converted.
func (s *ProcessingSummary) AddFailure(info FailedFileInfo) {
	s.TotalFiles++
	s.FailedFiles++
	s.FailedFilesList = append(s.FailedFilesList, info)
}

// WriteSummaryLog writes a processing summary to a file in outputDir and
// returns its path.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := writeSummary(file, summary); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}
	return summaryPath, nil
}

func writeSummary(w io.Writer, summary ProcessingSummary) error {
	bw := bufio.NewWriter(w)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(bw, "Standard 18 Reader - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Failed:         %d\n"+
		"  Total Lines:    %d\n"+
		"  Total Records:  %d\n"+
		"  Skipped Lines:  %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.TotalLines,
		summary.TotalRecords,
		summary.SkippedLines)

	if len(summary.ProcessedFiles) > 0 {
		bw.WriteString("Successful Files:\n")
		bw.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(bw, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(bw, "  Output:       %s\n", pf.OutputFile)
			if pf.ArchivePath != "" {
				fmt.Fprintf(bw, "  Archived:     %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(bw, "  Run ID:       %s\n", pf.RunID)
			fmt.Fprintf(bw, "  Lines:        %d\n", pf.Lines)
			fmt.Fprintf(bw, "  Records:      %d\n", pf.Records)
			fmt.Fprintf(bw, "  Skipped:      %d\n", pf.Skipped)
			fmt.Fprintf(bw, "  Instructions: %d\n", pf.Instructions)
			fmt.Fprintf(bw, "  Contras:      %d\n", pf.Contras)
			fmt.Fprintf(bw, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		bw.WriteString("Failed Files:\n")
		bw.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(bw, "  File:   %s\n", ff.InputFile)
			fmt.Fprintf(bw, "  Run ID: %s\n", ff.RunID)
			fmt.Fprintf(bw, "  Error:  %s\n\n", ff.ErrorMessage)
		}
	}

	bw.WriteString("================================================================================\n" +
		"End of Summary\n")
	return bw.Flush()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
