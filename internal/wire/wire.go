// Package wire converts decoded Standard 18 records into flat, JSON-tagged
// transfer objects for the CLI and the workbook export.
//
// The conversion is a pure field copy. Dates are rendered as YYYY-MM-DD and
// amounts as decimal strings so that no precision is lost on the way out.
package wire

import (
	"time"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
)

// DateLayout is the rendering used for every date field.
const DateLayout = "2006-01-02"

// Account is the transfer form of std18.Account.
type Account struct {
	SortCode string `json:"sortCode"`
	Number   string `json:"number"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Volume struct {
	SerialNo      string `json:"serialNo"`
	Accessibility string `json:"accessibility"`
	UserNumber    string `json:"userNumber"`
	Label         string `json:"label"`
}

type Header1 struct {
	Indicator     string `json:"indicator"`
	File          string `json:"file"`
	Set           string `json:"set"`
	Section       int    `json:"section"`
	Sequence      int    `json:"sequence"`
	Generation    int    `json:"generation"`
	Version       int    `json:"version"`
	Created       string `json:"created"`
	Expires       string `json:"expires"`
	Accessibility string `json:"accessibility"`
	BlockCount    string `json:"blockCount"`
	SystemCode    string `json:"systemCode"`
}

type Header2 struct {
	Indicator string `json:"indicator"`
	Format    string `json:"format"`
	Block     string `json:"block"`
	Offset    string `json:"offset"`
	Record    string `json:"record"`
}

type UserHeader struct {
	ProcessingDate string `json:"processingDate"`
	Dest           string `json:"dest"`
	Currency       string `json:"currency"`
	Country        string `json:"country"`
	WorkCode       string `json:"workCode"`
	File           string `json:"file"`
	Audit          string `json:"audit"`
}

type Instruction struct {
	Index           int     `json:"index"`
	LineNo          int     `json:"lineNo"`
	Origin          Account `json:"origin"`
	Destination     Account `json:"destination"`
	Reference       string  `json:"reference"`
	TransactionType string  `json:"transactionType"`
	RTI             string  `json:"rti"`
	Amount          string  `json:"amount"`
	ProcessingDate  string  `json:"processingDate"`
}

type Contra struct {
	Index           int     `json:"index"`
	LineNo          int     `json:"lineNo"`
	Origin          Account `json:"origin"`
	Destination     Account `json:"destination"`
	TransactionType string  `json:"transactionType"`
	FreeFormat      string  `json:"freeFormat"`
	Narrative       string  `json:"narrative"`
	Amount          string  `json:"amount"`
	ProcessingDate  string  `json:"processingDate"`
}

type UserTrailer struct {
	CreditCount int    `json:"creditCount"`
	CreditValue string `json:"creditValue"`
	DebitCount  int    `json:"debitCount"`
	DebitValue  string `json:"debitValue"`
	DDICount    int    `json:"ddiCount"`
	ServiceUser string `json:"serviceUser"`
}

// Envelope tags a transfer object with its row kind for line-oriented
// output.
type Envelope struct {
	Row    string `json:"row"`
	Record any    `json:"record"`
}

// Wrap converts rec and tags it with its row.
func Wrap(rec std18.Record) Envelope {
	return Envelope{Row: rec.Row().String(), Record: ToWire(rec)}
}

// ToWire returns the transfer object for rec, or nil for an unknown
// record type.
func ToWire(rec std18.Record) any {
	switch r := rec.(type) {
	case std18.Volume:
		return Volume{
			SerialNo:      r.SerialNo,
			Accessibility: r.Accessibility,
			UserNumber:    r.UserNumber,
			Label:         r.Label,
		}
	case std18.Header1:
		return Header1{
			Indicator:     r.Indicator.String(),
			File:          r.File,
			Set:           r.Set,
			Section:       r.Section,
			Sequence:      r.Sequence,
			Generation:    r.Generation,
			Version:       r.Version,
			Created:       date(r.Created),
			Expires:       date(r.Expires),
			Accessibility: r.Accessibility,
			BlockCount:    r.BlockCount,
			SystemCode:    r.SystemCode,
		}
	case std18.Header2:
		return Header2{
			Indicator: r.Indicator.String(),
			Format:    r.Format,
			Block:     r.Block,
			Offset:    r.Offset,
			Record:    r.Record,
		}
	case std18.UserHeader:
		return UserHeader{
			ProcessingDate: date(r.ProcessingDate),
			Dest:           r.Dest,
			Currency:       r.Currency,
			Country:        r.Country,
			WorkCode:       r.WorkCode,
			File:           r.File,
			Audit:          r.Audit,
		}
	case std18.Instruction:
		return Instruction{
			Index:           r.Index,
			LineNo:          r.LineNo,
			Origin:          account(r.Origin),
			Destination:     account(r.Destination),
			Reference:       r.Reference,
			TransactionType: r.TransactionType,
			RTI:             r.RTI,
			Amount:          r.Amount.StringFixed(2),
			ProcessingDate:  date(r.ProcessingDate),
		}
	case std18.Contra:
		return Contra{
			Index:           r.Index,
			LineNo:          r.LineNo,
			Origin:          account(r.Origin),
			Destination:     account(r.Destination),
			TransactionType: r.TransactionType,
			FreeFormat:      r.FreeFormat,
			Narrative:       r.Narrative,
			Amount:          r.Amount.StringFixed(2),
			ProcessingDate:  date(r.ProcessingDate),
		}
	case std18.UserTrailer:
		return UserTrailer{
			CreditCount: r.CreditCount,
			CreditValue: r.CreditValue.StringFixed(2),
			DebitCount:  r.DebitCount,
			DebitValue:  r.DebitValue.StringFixed(2),
			DDICount:    r.DDICount,
			ServiceUser: r.ServiceUser,
		}
	}
	return nil
}

func account(a std18.Account) Account {
	return Account{SortCode: a.SortCode, Number: a.Number, Name: a.Name, Type: a.Type}
}

func date(t time.Time) string {
	return t.Format(DateLayout)
}
