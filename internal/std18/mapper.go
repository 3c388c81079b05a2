package std18

import (
	"io"
	"log/slog"
)

// Consumer receives each decoded record of the row kind it was registered
// for. It is called synchronously from ProcessLine.
type Consumer func(row Row, rec Record)

// Stats counts what a Mapper did with the lines it was given.
type Stats struct {
	Lines      int // lines classified
	Dispatched int // records handed to a consumer
	Skipped    int // lines dropped because decoding failed
	Ignored    int // lines with no registered consumer
}

// Mapper classifies lines, decodes those of registered kinds and hands
// them to their consumer. A Mapper keeps per-file numbering state and is
// not safe for concurrent use; create one per file.
type Mapper struct {
	consumers map[Row]Consumer
	seq       *SequenceTracker
	logger    *slog.Logger
	stats     Stats
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used to report skipped lines.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMapper returns a Mapper with no consumers registered.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		consumers: make(map[Row]Consumer),
		seq:       NewSequenceTracker(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register sets the consumer for row, replacing any earlier one.
func (m *Mapper) Register(row Row, c Consumer) {
	m.consumers[row] = c
}

// ProcessLine handles one line of input.
//
// A line that matches no row kind is fatal: an *UnidentifiedRecordError is
// returned and the line counter is not advanced. Lines of a kind nobody
// registered for are counted but never decoded. Lines that fail to decode
// are logged at debug level and dropped; the business index is only
// advanced for business records that decode.
func (m *Mapper) ProcessLine(line string) error {
	row, err := Classify(line)
	if err != nil {
		return &UnidentifiedRecordError{Line: m.seq.Lines() + 1, Prefix: prefix(line)}
	}
	lineNo := m.seq.NextLine()
	m.stats.Lines++

	consumer, ok := m.consumers[row]
	if !ok {
		m.stats.Ignored++
		return nil
	}

	rec, err := Decode(row, line)
	if err != nil {
		m.stats.Skipped++
		m.logger.Debug("skipping line",
			slog.Int("line", lineNo),
			slog.String("row", row.String()),
			slog.String("error", err.Error()))
		return nil
	}

	switch r := rec.(type) {
	case Instruction:
		r.Index = m.seq.NextIndex()
		r.LineNo = lineNo
		rec = r
	case Contra:
		r.Index = m.seq.NextIndex()
		r.LineNo = lineNo
		rec = r
	}

	m.stats.Dispatched++
	consumer(row, rec)
	return nil
}

// Stats returns the counters accumulated so far.
func (m *Mapper) Stats() Stats {
	return m.stats
}

const prefixLen = 8

func prefix(line string) string {
	if len(line) > prefixLen {
		return line[:prefixLen]
	}
	return line
}
