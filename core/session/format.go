package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTime12 renders a stored HH:MM[:SS] time as 12-hour with
// AM/PM. Seconds are optional and never displayed. Unparseable input
// comes back unchanged rather than failing the whole view.
func FormatTime12(raw string) string {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 {
		return raw
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return raw
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return raw
	}

	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// FormatDate renders a stored YYYY-MM-DD date as "January 2, 2006".
func FormatDate(raw string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006")
}
