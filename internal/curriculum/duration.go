package curriculum

import (
	"fmt"
	"time"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
	monthsInYear = 12
)

// Duration is an elapsed span expressed as whole years plus remaining months.
// Months may exceed 11 until the value takes part in an Add.
type Duration struct {
	Years  int `yaml:"years" json:"years"`
	Months int `yaml:"months" json:"months"`
}

// Elapsed converts the span between begin and end into a Duration using a
// 365-day year and 30-day months rounded on a 15-day offset.
// A negative span (end before begin) yields the zero Duration.
func Elapsed(begin, end time.Time) Duration {
	days := int(end.Sub(begin).Hours() / 24)
	if days < 0 {
		return Duration{}
	}
	return Duration{
		Years:  days / daysPerYear,
		Months: (days%daysPerYear + 15) / daysPerMonth,
	}
}

// Add sums two durations, carrying full years out of the month component.
func (d Duration) Add(other Duration) Duration {
	months := d.Months + other.Months
	years := d.Years + other.Years
	if months < monthsInYear {
		return Duration{Years: years, Months: months}
	}
	return Duration{
		Years:  years + months/monthsInYear,
		Months: months % monthsInYear,
	}
}

// Round collapses the duration to the nearest whole year, ties rounding up.
// Spans shorter than eleven months are kept as they are.
func (d Duration) Round() Duration {
	if d.Years == 0 && d.Months <= 10 {
		return d
	}
	return Duration{Years: (d.Years*monthsInYear + d.Months + 6) / monthsInYear}
}

func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0
}

func (d Duration) String() string {
	switch {
	case d.Years == 0:
		return plural(d.Months, "month")
	case d.Months == 0:
		return plural(d.Years, "year")
	default:
		return plural(d.Years, "year") + " " + plural(d.Months, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
