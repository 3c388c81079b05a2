package std18

import "fmt"

// Decode applies the column layout of row to line and builds the matching
// Record. It fails if the line has the wrong width or any column cannot be
// converted; the returned error then wraps ErrLineLength or is a
// *FieldError.
//
// Index and LineNo of business records are left at zero. The Mapper fills
// them in.
func Decode(row Row, line string) (Record, error) {
	layout, ok := layouts[row]
	if !ok {
		return nil, fmt.Errorf("no layout for %s", row)
	}
	if len(line) != layout.Width {
		return nil, fmt.Errorf("%s: %d columns, want %d: %w", row, len(line), layout.Width, ErrLineLength)
	}

	v, err := layout.extract(line)
	if err != nil {
		return nil, err
	}

	switch row {
	case VOL1:
		return Volume{
			SerialNo:      v.text("serialNo"),
			Accessibility: v.text("accessibility"),
			UserNumber:    v.text("userNumber"),
			Label:         v.text("label"),
		}, nil

	case HDR1, EOF1:
		return NewHeader1(row).
			File(v.text("file"), v.text("set")).
			Numbering(v.integer("section"), v.integer("sequence"), v.integer("generation"), v.integer("version")).
			CreatedEpochDay(v.days("created")).
			ExpiresEpochDay(v.days("expires")).
			Trailer(v.text("accessibility"), v.text("blockCount"), v.text("systemCode")).
			Build(), nil

	case HDR2, EOF2:
		return Header2{
			Indicator: row,
			Format:    v.text("format"),
			Block:     v.text("block"),
			Offset:    v.text("offset"),
			Record:    v.text("record"),
		}, nil

	case UHL1:
		return UserHeader{
			ProcessingDate: v.date("processingDate"),
			Dest:           v.text("dest"),
			Currency:       v.text("currency"),
			Country:        v.text("country"),
			WorkCode:       v.text("workCode"),
			File:           v.text("file"),
			Audit:          v.text("audit"),
		}, nil

	case INSTR:
		return Instruction{
			Origin: Account{
				SortCode: v.text("origin.sortCode"),
				Number:   v.text("origin.number"),
				Name:     v.text("origin.name"),
			},
			Destination: Account{
				SortCode: v.text("destination.sortCode"),
				Number:   v.text("destination.number"),
				Name:     v.text("destination.name"),
				Type:     v.text("destination.type"),
			},
			Reference:       v.text("reference"),
			TransactionType: v.text("transactionType"),
			RTI:             v.text("rti"),
			Amount:          v.amount("amount"),
			ProcessingDate:  v.date("processingDate"),
		}, nil

	case CONTRA:
		return Contra{
			Origin: Account{
				SortCode: v.text("origin.sortCode"),
				Number:   v.text("origin.number"),
				Name:     v.text("origin.name"),
			},
			Destination: Account{
				SortCode: v.text("destination.sortCode"),
				Number:   v.text("destination.number"),
				Type:     v.text("destination.type"),
			},
			TransactionType: v.text("transactionType"),
			FreeFormat:      v.text("freeFormat"),
			Narrative:       v.text("narrative"),
			Amount:          v.amount("amount"),
			ProcessingDate:  v.date("processingDate"),
		}, nil

	case UTL1:
		return UserTrailer{
			CreditCount: v.integer("creditCount"),
			CreditValue: v.amount("creditValue"),
			DebitCount:  v.integer("debitCount"),
			DebitValue:  v.amount("debitValue"),
			DDICount:    v.integer("ddiCount"),
			ServiceUser: v.text("serviceUser"),
		}, nil
	}

	return nil, fmt.Errorf("no decoder for %s", row)
}
