package shared

import "time"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date filter value. Unparseable or empty input returns
// nil so reports stay available with the bound treated as unset.
func ParseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDateEnd parses a closing date filter value. A date-only value is
// extended to the end of that day so an inclusive "to" filter covers the
// whole day; values carrying an explicit time are used as-is.
func ParseDateEnd(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		end := EndOfDay(t)
		return &end
	}
	return ParseDate(value)
}

// EndOfDay extends a date-only bound to the end of that day so inclusive
// "to" filters cover the whole day.
func EndOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
