package curriculum

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const monthLayout = "2006-01"

// Month is a year-month timestamp, stored as the first day of the month in UTC.
type Month struct {
	time.Time
}

// NewMonth returns the Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return Month{time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// ParseMonth parses "YYYY-MM" or a bare "YYYY" (January).
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		return Month{}, fmt.Errorf("invalid date %q: expected YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return Month{}, fmt.Errorf("invalid year in date %q", s)
	}
	month := 1
	if len(parts) == 2 {
		month, err = strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return Month{}, fmt.Errorf("invalid month in date %q", s)
		}
	}
	return NewMonth(year, time.Month(month)), nil
}

func (m Month) String() string {
	return m.Format(monthLayout)
}

// YearLabel returns the four-digit year label used in date columns.
func (m Month) YearLabel() string {
	return m.Format("2006")
}

func (m *Month) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = parsed
	return nil
}

func (m Month) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}
