package timeutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidClockTime reports whether value parses as "HH:MM".
func ValidClockTime(value string) bool {
	_, _, err := ParseClockTime(value)
	return err == nil
}

// ParseClockTime parses "HH:MM" into hour and minute components.
func ParseClockTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format, expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour: %s", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute: %s", parts[1])
	}
	return hour, minute, nil
}

// ValidDate reports whether value parses as "YYYY-MM-DD".
func ValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
