// Package std18 decodes BACS Standard 18 interchange files.
//
// A Standard 18 file is a sequence of fixed-width lines. Envelope records
// (VOL1, HDR1, HDR2, UHL1, EOF1, EOF2, UTL1) are identified by a literal
// four character label; business records (payment instructions and contra
// entries) carry no label and are identified by their transaction code.
//
// The package is organised around four pieces:
//
//   - Classify turns a raw line into a Row tag.
//   - Decode applies the tag's column layout and returns a typed Record.
//   - Mapper ties the two together, numbers lines and business records, and
//     hands each decoded record to the consumer registered for its tag.
//   - Parse drives a Mapper over an io.Reader one line at a time.
//
// An unrecognised record label aborts the parse with ErrUnidentifiedRecord.
// A recognised record that is truncated or carries an unparsable field is
// skipped without surfacing an error.
package std18

import (
	"fmt"
	"strings"
)

// Row identifies the kind of a Standard 18 record.
type Row int

const (
	VOL1 Row = iota
	HDR1
	HDR2
	UHL1
	INSTR
	CONTRA
	EOF1
	EOF2
	UTL1
)

const (
	envelopeWidth = 80
	businessWidth = 106
)

var rowNames = [...]string{
	VOL1:   "VOL1",
	HDR1:   "HDR1",
	HDR2:   "HDR2",
	UHL1:   "UHL1",
	INSTR:  "INSTR",
	CONTRA: "CONTRA",
	EOF1:   "EOF1",
	EOF2:   "EOF2",
	UTL1:   "UTL1",
}

// Rows returns every tag in file order.
func Rows() []Row {
	return []Row{VOL1, HDR1, HDR2, UHL1, INSTR, CONTRA, EOF1, EOF2, UTL1}
}

func (r Row) String() string {
	if r < 0 || int(r) >= len(rowNames) {
		return fmt.Sprintf("Row(%d)", int(r))
	}
	return rowNames[r]
}

// Width is the exact line length a record of this kind must have.
func (r Row) Width() int {
	if r.Business() {
		return businessWidth
	}
	return envelopeWidth
}

// Business reports whether r is a payment record rather than an envelope.
func (r Row) Business() bool {
	return r == INSTR || r == CONTRA
}

// ParseRow looks a tag up by name, ignoring case.
func ParseRow(name string) (Row, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range rowNames {
		if n == name {
			return Row(i), nil
		}
	}
	return 0, fmt.Errorf("unknown row tag %q", name)
}

// labels maps the literal prefix of each envelope record to its tag.
var labels = map[string]Row{
	"VOL1": VOL1,
	"HDR1": HDR1,
	"HDR2": HDR2,
	"UHL1": UHL1,
	"EOF1": EOF1,
	"EOF2": EOF2,
	"UTL1": UTL1,
}

// contraCodes lists the transaction codes that mark a business record as a
// contra entry. Every other numeric code is a payment instruction.
var contraCodes = map[string]bool{
	"17": true,
}

// Columns 0-14 hold the destination sort code, account number and account
// type; the transaction code follows at 15-16.
const (
	txCodeStart = 15
	txCodeEnd   = 17
)

// Classify identifies the record kind of line from its leading columns.
// It does not check the line width; that is left to Decode.
func Classify(line string) (Row, error) {
	if len(line) >= 4 {
		if row, ok := labels[line[:4]]; ok {
			return row, nil
		}
	}

	if len(line) >= txCodeEnd && isDigits(line[:txCodeEnd]) {
		if contraCodes[line[txCodeStart:txCodeEnd]] {
			return CONTRA, nil
		}
		return INSTR, nil
	}

	return 0, ErrUnidentifiedRecord
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
