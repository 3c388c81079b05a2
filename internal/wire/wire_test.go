package wire

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bacs-std18/internal/std18"
)

func sampleInstruction() std18.Instruction {
	return std18.Instruction{
		Index:  1,
		LineNo: 5,
		Origin: std18.Account{SortCode: "402024", Number: "21315692", Name: "BSDSAF 00000000055"},
		Destination: std18.Account{
			SortCode: "010039", Number: "01059963", Name: "NAME   00000000055", Type: "0",
		},
		Reference:       "REF&LT 00000000055",
		TransactionType: "99",
		RTI:             "/000",
		Amount:          decimal.New(55, -2),
		ProcessingDate:  std18.CalendarDate(2009, time.March, 5),
	}
}

func TestToWireInstruction(t *testing.T) {
	got, ok := ToWire(sampleInstruction()).(Instruction)
	if !ok {
		t.Fatalf("ToWire returned %T", ToWire(sampleInstruction()))
	}
	if got.Amount != "0.55" {
		t.Errorf("Amount = %q, want 0.55", got.Amount)
	}
	if got.ProcessingDate != "2009-03-05" {
		t.Errorf("ProcessingDate = %q", got.ProcessingDate)
	}
	if got.Index != 1 || got.LineNo != 5 {
		t.Errorf("Index/LineNo = %d/%d", got.Index, got.LineNo)
	}
	if got.Destination.Type != "0" || got.Origin.Name != "BSDSAF 00000000055" {
		t.Errorf("accounts = %+v / %+v", got.Origin, got.Destination)
	}
}

func TestToWireVariants(t *testing.T) {
	tests := []struct {
		name string
		rec  std18.Record
		want string
	}{
		{"volume", std18.Volume{SerialNo: "173922"}, `"serialNo":"173922"`},
		{"header 1", std18.NewHeader1(std18.EOF1).CreatedEpochDay(8192).Build(), `"created":"1992-06-06"`},
		{"header 1 indicator", std18.NewHeader1(std18.EOF1).Build(), `"indicator":"EOF1"`},
		{"header 2", std18.Header2{Indicator: std18.HDR2, Block: "00512"}, `"indicator":"HDR2"`},
		{"user header", std18.UserHeader{ProcessingDate: std18.EpochDay(14308)}, `"processingDate":"2009-03-05"`},
		{"contra", std18.Contra{Amount: decimal.New(55, -2)}, `"amount":"0.55"`},
		{"trailer", std18.UserTrailer{CreditValue: decimal.New(12345, -2)}, `"creditValue":"123.45"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(ToWire(tt.rec))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !strings.Contains(string(b), tt.want) {
				t.Errorf("%s does not contain %s", b, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	env := Wrap(std18.Contra{Amount: decimal.Zero})
	if env.Row != "CONTRA" {
		t.Errorf("Row = %q", env.Row)
	}
	if _, ok := env.Record.(Contra); !ok {
		t.Errorf("Record is %T", env.Record)
	}
}

func TestFlatten(t *testing.T) {
	cols := Flatten(ToWire(sampleInstruction()))

	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	want := []string{
		"index", "lineNo",
		"origin.sortCode", "origin.number", "origin.name", "origin.type",
		"destination.sortCode", "destination.number", "destination.name", "destination.type",
		"reference", "transactionType", "rti", "amount", "processingDate",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %v\nwant    %v", names, want)
	}
	if cols[13].Value != "0.55" {
		t.Errorf("amount column = %v", cols[13].Value)
	}

	if Flatten(nil) != nil || Flatten("x") != nil {
		t.Error("non-struct input should flatten to nil")
	}
}
