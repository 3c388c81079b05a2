package std18

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineProcessor consumes input one line at a time. *Mapper implements it.
type LineProcessor interface {
	ProcessLine(line string) error
}

// Parse reads newline-delimited lines from r and feeds each one to p, in
// order. A trailing carriage return is removed from every line. A final
// line without a newline is still processed.
//
// Parse stops at the first error from p or from r and returns it
// unchanged. Reaching end of input is not an error.
func Parse(r io.Reader, p LineProcessor) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		if eof && line == "" {
			return nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if perr := p.ProcessLine(line); perr != nil {
			return perr
		}

		if eof {
			return nil
		}
	}
}
