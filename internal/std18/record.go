package std18

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a decoded Standard 18 line. The concrete type is fixed by the
// Row tag:
//
//	VOL1         Volume
//	HDR1, EOF1   Header1
//	HDR2, EOF2   Header2
//	UHL1         UserHeader
//	INSTR        Instruction
//	CONTRA       Contra
//	UTL1         UserTrailer
type Record interface {
	Row() Row
	record()
}

// Account identifies one side of a payment.
type Account struct {
	SortCode string
	Number   string
	Name     string
	Type     string
}

// Volume is the VOL1 label opening the file.
type Volume struct {
	SerialNo      string
	Accessibility string
	UserNumber    string
	Label         string
}

// Header1 carries the HDR1 and EOF1 file labels.
type Header1 struct {
	Indicator     Row
	File          string
	Set           string
	Section       int
	Sequence      int
	Generation    int
	Version       int
	Created       time.Time
	Expires       time.Time
	Accessibility string
	BlockCount    string
	SystemCode    string
}

// Header2 carries the HDR2 and EOF2 file labels.
type Header2 struct {
	Indicator Row
	Format    string
	Block     string
	Offset    string
	Record    string
}

// UserHeader is the UHL1 label.
type UserHeader struct {
	ProcessingDate time.Time
	Dest           string
	Currency       string
	Country        string
	WorkCode       string
	File           string
	Audit          string
}

// Instruction is a payment instruction.
type Instruction struct {
	Index           int // business record ordinal within the file, from 1
	LineNo          int // absolute line position within the file, from 1
	Origin          Account
	Destination     Account
	Reference       string
	TransactionType string
	RTI             string
	Amount          decimal.Decimal
	ProcessingDate  time.Time
}

// Contra is the offsetting entry closing a run of instructions.
type Contra struct {
	Index           int
	LineNo          int
	Origin          Account
	Destination     Account
	TransactionType string
	FreeFormat      string
	Narrative       string
	Amount          decimal.Decimal
	ProcessingDate  time.Time
}

// UserTrailer is the UTL1 label with the file's control totals.
type UserTrailer struct {
	CreditCount int
	CreditValue decimal.Decimal
	DebitCount  int
	DebitValue  decimal.Decimal
	DDICount    int
	ServiceUser string
}

func (Volume) Row() Row      { return VOL1 }
func (h Header1) Row() Row   { return h.Indicator }
func (h Header2) Row() Row   { return h.Indicator }
func (UserHeader) Row() Row  { return UHL1 }
func (Instruction) Row() Row { return INSTR }
func (Contra) Row() Row      { return CONTRA }
func (UserTrailer) Row() Row { return UTL1 }

func (Volume) record()      {}
func (Header1) record()     {}
func (Header2) record()     {}
func (UserHeader) record()  {}
func (Instruction) record() {}
func (Contra) record()      {}
func (UserTrailer) record() {}

// Header1Builder assembles a Header1. Dates can be given either as a
// calendar date or as a raw epoch-day count.
type Header1Builder struct {
	h Header1
}

// NewHeader1 starts a builder for an HDR1 or EOF1 label.
func NewHeader1(indicator Row) *Header1Builder {
	return &Header1Builder{h: Header1{Indicator: indicator, Created: Epoch, Expires: Epoch}}
}

func (b *Header1Builder) File(file, set string) *Header1Builder {
	b.h.File = file
	b.h.Set = set
	return b
}

func (b *Header1Builder) Numbering(section, sequence, generation, version int) *Header1Builder {
	b.h.Section = section
	b.h.Sequence = sequence
	b.h.Generation = generation
	b.h.Version = version
	return b
}

func (b *Header1Builder) CreatedOn(t time.Time) *Header1Builder {
	b.h.Created = t
	return b
}

func (b *Header1Builder) CreatedEpochDay(days int64) *Header1Builder {
	b.h.Created = EpochDay(days)
	return b
}

func (b *Header1Builder) ExpiresOn(t time.Time) *Header1Builder {
	b.h.Expires = t
	return b
}

func (b *Header1Builder) ExpiresEpochDay(days int64) *Header1Builder {
	b.h.Expires = EpochDay(days)
	return b
}

func (b *Header1Builder) Trailer(accessibility, blockCount, systemCode string) *Header1Builder {
	b.h.Accessibility = accessibility
	b.h.BlockCount = blockCount
	b.h.SystemCode = systemCode
	return b
}

func (b *Header1Builder) Build() Header1 {
	return b.h
}
