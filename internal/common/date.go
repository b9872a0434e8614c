package common

import "time"

// ISODate is the calendar-day layout used across lookups.
const ISODate = "2006-01-02"

// NormalizeDate returns value when it parses as an ISO calendar date and the
// current UTC date otherwise. Missing and malformed dates are both tolerated.
func NormalizeDate(value string, now time.Time) string {
	if value != "" {
		if _, err := time.Parse(ISODate, value); err == nil {
			return value
		}
	}
	return now.UTC().Format(ISODate)
}
