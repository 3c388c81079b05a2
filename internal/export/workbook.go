// Package export writes decoded Standard 18 records to an Excel workbook.
//
// Each row kind gets its own sheet, named after the tag (VOL1, INSTR, ...),
// created the first time a record of that kind is added. The first row of
// a sheet holds the column names; every further row is one record.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
	"github.com/ginjaninja78/bacs-std18/internal/wire"
)

const (
	defaultSheet = "Sheet1"
	minColWidth  = 12
)

// sheet tracks the next free row of one worksheet.
type sheet struct {
	name string
	next int
}

// Workbook accumulates records into an in-memory spreadsheet. It is not
// safe for concurrent use.
type Workbook struct {
	f       *excelize.File
	sheets  map[std18.Row]*sheet
	header  int
	records int
}

// New returns an empty workbook.
func New() (*Workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &Workbook{
		f:      f,
		sheets: make(map[std18.Row]*sheet),
		header: style,
	}, nil
}

// Add appends rec to the sheet for row.
func (w *Workbook) Add(row std18.Row, rec std18.Record) error {
	cols := wire.Flatten(wire.ToWire(rec))
	if len(cols) == 0 {
		return fmt.Errorf("no columns for %s record %T", row, rec)
	}

	s, err := w.sheetFor(row, cols)
	if err != nil {
		return err
	}

	values := make([]interface{}, len(cols))
	for i, c := range cols {
		values[i] = c.Value
	}
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(s.name, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", s.name, s.next, err)
	}
	s.next++
	w.records++
	return nil
}

// sheetFor returns the sheet for row, creating it with a header row built
// from cols on first use.
func (w *Workbook) sheetFor(row std18.Row, cols []wire.Column) (*sheet, error) {
	if s, ok := w.sheets[row]; ok {
		return s, nil
	}

	name := row.String()
	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return nil, fmt.Errorf("failed to rename default sheet: %w", err)
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := w.f.SetRowStyle(name, 1, 1, w.header); err != nil {
		return nil, fmt.Errorf("failed to style %s header: %w", name, err)
	}

	// Approximate auto-fit from the header text.
	for i, c := range cols {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width := float64(len(c.Name) + 4)
		if width < minColWidth {
			width = minColWidth
		}
		if err := w.f.SetColWidth(name, colName, colName, width); err != nil {
			return nil, err
		}
	}

	s := &sheet{name: name, next: 2}
	w.sheets[row] = s
	return s, nil
}

// Records returns how many records have been added.
func (w *Workbook) Records() int {
	return w.records
}

// Empty reports whether no record has been added yet.
func (w *Workbook) Empty() bool {
	return w.records == 0
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteTo streams the workbook as an .xlsx document.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	return w.f.WriteTo(out)
}

// Close releases the workbook's resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}
