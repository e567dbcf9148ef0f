package contract

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts "HH:MM" (24h) and the French "HHhMM" spelling.
func ParseClock(raw string) (Clock, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	sep := strings.IndexAny(s, ":h")
	if sep <= 0 || sep == len(s)-1 {
		return Clock{}, fmt.Errorf("contract: invalid time %q", raw)
	}
	hour, err := strconv.Atoi(s[:sep])
	if err != nil {
		return Clock{}, fmt.Errorf("contract: invalid time %q", raw)
	}
	minute, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return Clock{}, fmt.Errorf("contract: invalid time %q", raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("contract: time %q out of range", raw)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText encodes the clock as HH:MM.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes HH:MM.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
