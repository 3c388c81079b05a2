package std18

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Epoch is the reference date for epoch-day encoded fields. Blank and
// all-zero epoch fields decode to it.
var Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

const processingDateWidth = 6

var errProcessingDate = errors.New("processing date must be a blank followed by five digits")

// EpochDay converts a count of days since 1970-01-01 to a UTC date.
func EpochDay(days int64) time.Time {
	return Epoch.AddDate(0, 0, int(days))
}

// CalendarDate builds a UTC date at midnight.
func CalendarDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// parseEpochDays reads a raw epoch-day column. Blank and all-zero columns
// read as day 0.
func parseEpochDays(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.Trim(s, "0") == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseProcessingDate decodes the six column processing date carried by
// UHL1 and business records. The first column is reserved and blank; the
// remaining five hold the day count since the epoch.
func parseProcessingDate(s string) (time.Time, error) {
	if len(s) != processingDateWidth || s[0] != ' ' || !isDigits(s[1:]) {
		return time.Time{}, errProcessingDate
	}
	days, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return EpochDay(days), nil
}
