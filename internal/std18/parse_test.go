package std18

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

// lineLog is a LineProcessor that records its input and can fail on demand.
type lineLog struct {
	lines  []string
	failAt int
	err    error
}

func (l *lineLog) ProcessLine(line string) error {
	l.lines = append(l.lines, line)
	if l.failAt > 0 && len(l.lines) == l.failAt {
		return l.err
	}
	return nil
}

func TestParseLineSplitting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty input", "", nil},
		{"single unterminated line", "abc", []string{"abc"}},
		{"trailing newline", "abc\n", []string{"abc"}},
		{"crlf", "abc\r\ndef\r\n", []string{"abc", "def"}},
		{"final line without newline", "abc\ndef", []string{"abc", "def"}},
		{"blank line in the middle", "abc\n\ndef\n", []string{"abc", "", "def"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &lineLog{}
			if err := Parse(strings.NewReader(tt.input), p); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(p.lines, tt.want) {
				t.Errorf("lines = %q, want %q", p.lines, tt.want)
			}
		})
	}
}

func TestParseStopsOnProcessorError(t *testing.T) {
	boom := errors.New("boom")
	p := &lineLog{failAt: 2, err: boom}

	err := Parse(strings.NewReader("a\nb\nc\n"), p)
	if err != boom {
		t.Fatalf("error = %v, want the processor's error unchanged", err)
	}
	if len(p.lines) != 2 {
		t.Errorf("processed %d lines after failure, want 2", len(p.lines))
	}
}

type errReader struct {
	data string
	err  error
	done bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestParseReturnsReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	p := &lineLog{}

	err := Parse(&errReader{data: "first\nsecond", err: readErr}, p)
	if err != readErr {
		t.Fatalf("error = %v, want read error unchanged", err)
	}
	if len(p.lines) != 1 || p.lines[0] != "first" {
		t.Errorf("lines = %q", p.lines)
	}
}

func TestParseUnidentifiedRecordAborts(t *testing.T) {
	input := sampleLines[0] + "\n" + "XXX1" + sampleLines[1][4:] + "\n" + sampleLines[2] + "\n"
	rec := &recorder{}
	m := NewMapper()
	m.Register(VOL1, rec.consume)
	m.Register(HDR2, rec.consume)

	err := Parse(strings.NewReader(input), m)
	if !errors.Is(err, ErrUnidentifiedRecord) {
		t.Fatalf("error = %v, want ErrUnidentifiedRecord", err)
	}
	if len(rec.rows) != 1 || rec.rows[0] != VOL1 {
		t.Errorf("dispatched %v, want [VOL1]", rec.rows)
	}
}

func TestParseSampleFile(t *testing.T) {
	f, err := os.Open("testdata/sample.std18")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	rec := &recorder{}
	m := NewMapper()
	for _, row := range Rows() {
		m.Register(row, rec.consume)
	}

	if err := Parse(f, m); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(rec.rows, Rows()) {
		t.Errorf("rows = %v, want %v", rec.rows, Rows())
	}
	if got := m.Stats(); got.Lines != 9 || got.Dispatched != 9 {
		t.Errorf("Stats = %+v", got)
	}
}
