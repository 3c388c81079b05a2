package std18

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects how a column is converted.
type Kind int

const (
	Text           Kind = iota // trimmed verbatim
	Int                        // trimmed base-10 integer; blank is invalid
	Amount                     // unscaled digits with two implied decimal places
	EpochDate                  // days since 1970-01-01; blank or zero is the epoch
	ProcessingDate             // reserved blank followed by five epoch-day digits
)

// amountScale is the number of implied decimal places in money columns.
const amountScale = 2

var errAmount = errors.New("amount must be an unsigned digit string")

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Int:
		return "int"
	case Amount:
		return "amount"
	case EpochDate:
		return "epoch-date"
	case ProcessingDate:
		return "processing-date"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one column of a record layout. Start is 0-based.
type Field struct {
	Name  string
	Start int
	Width int
	Kind  Kind
}

// Layout is the column table of one record kind.
type Layout struct {
	Row    Row
	Width  int
	Fields []Field
}

var header1Fields = []Field{
	{"file", 4, 17, Text},
	{"set", 21, 6, Text},
	{"section", 27, 4, Int},
	{"sequence", 31, 4, Int},
	{"generation", 35, 4, Int},
	{"version", 39, 2, Int},
	{"created", 41, 6, EpochDate},
	{"expires", 47, 6, EpochDate},
	{"accessibility", 53, 1, Text},
	{"blockCount", 54, 6, Text},
	{"systemCode", 60, 13, Text},
}

var header2Fields = []Field{
	{"format", 4, 1, Text},
	{"block", 5, 5, Text},
	{"record", 10, 5, Text},
	{"offset", 50, 2, Text},
}

var layouts = map[Row]Layout{
	VOL1: {VOL1, envelopeWidth, []Field{
		{"serialNo", 4, 6, Text},
		{"accessibility", 10, 1, Text},
		{"userNumber", 41, 6, Text},
		{"label", 79, 1, Text},
	}},
	HDR1: {HDR1, envelopeWidth, header1Fields},
	EOF1: {EOF1, envelopeWidth, header1Fields},
	HDR2: {HDR2, envelopeWidth, header2Fields},
	EOF2: {EOF2, envelopeWidth, header2Fields},
	UHL1: {UHL1, envelopeWidth, []Field{
		{"processingDate", 4, 6, ProcessingDate},
		{"dest", 10, 10, Text},
		{"currency", 20, 2, Text},
		{"country", 22, 6, Text},
		{"workCode", 28, 9, Text},
		{"file", 37, 3, Text},
		{"audit", 47, 7, Text},
	}},
	INSTR: {INSTR, businessWidth, []Field{
		{"destination.sortCode", 0, 6, Text},
		{"destination.number", 6, 8, Text},
		{"destination.type", 14, 1, Text},
		{"transactionType", 15, 2, Text},
		{"origin.sortCode", 17, 6, Text},
		{"origin.number", 23, 8, Text},
		{"rti", 31, 4, Text},
		{"amount", 35, 11, Amount},
		{"origin.name", 46, 18, Text},
		{"reference", 64, 18, Text},
		{"destination.name", 82, 18, Text},
		{"processingDate", 100, 6, ProcessingDate},
	}},
	CONTRA: {CONTRA, businessWidth, []Field{
		{"destination.sortCode", 0, 6, Text},
		{"destination.number", 6, 8, Text},
		{"destination.type", 14, 1, Text},
		{"transactionType", 15, 2, Text},
		{"origin.sortCode", 17, 6, Text},
		{"origin.number", 23, 8, Text},
		{"freeFormat", 31, 4, Text},
		{"amount", 35, 11, Amount},
		{"narrative", 46, 18, Text},
		{"origin.name", 82, 18, Text},
		{"processingDate", 100, 6, ProcessingDate},
	}},
	UTL1: {UTL1, envelopeWidth, []Field{
		{"debitValue", 4, 13, Amount},
		{"creditValue", 17, 13, Amount},
		{"debitCount", 30, 7, Int},
		{"creditCount", 37, 7, Int},
		{"ddiCount", 52, 7, Int},
		{"serviceUser", 59, 6, Text},
	}},
}

// LayoutFor returns the column table for row.
func LayoutFor(row Row) (Layout, bool) {
	l, ok := layouts[row]
	return l, ok
}

// values holds the converted columns of one line, keyed by field name.
// The dynamic type of each entry is fixed by the field's Kind.
type values map[string]any

func (v values) text(name string) string            { return v[name].(string) }
func (v values) integer(name string) int            { return v[name].(int) }
func (v values) days(name string) int64             { return v[name].(int64) }
func (v values) amount(name string) decimal.Decimal { return v[name].(decimal.Decimal) }
func (v values) date(name string) time.Time         { return v[name].(time.Time) }

// extract slices every field out of line and converts it.
func (l Layout) extract(line string) (values, error) {
	vals := make(values, len(l.Fields))
	for _, f := range l.Fields {
		raw := line[f.Start : f.Start+f.Width]
		v, err := convert(f.Kind, raw)
		if err != nil {
			return nil, &FieldError{Row: l.Row, Field: f.Name, Value: raw, Err: err}
		}
		vals[f.Name] = v
	}
	return vals, nil
}

func convert(kind Kind, raw string) (any, error) {
	switch kind {
	case Text:
		return strings.TrimSpace(raw), nil
	case Int:
		return strconv.Atoi(strings.TrimSpace(raw))
	case Amount:
		s := strings.TrimSpace(raw)
		if !isDigits(s) {
			return nil, errAmount
		}
		unscaled, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return decimal.New(unscaled, -amountScale), nil
	case EpochDate:
		return parseEpochDays(raw)
	case ProcessingDate:
		return parseProcessingDate(raw)
	}
	return nil, fmt.Errorf("unsupported field kind %s", kind)
}
