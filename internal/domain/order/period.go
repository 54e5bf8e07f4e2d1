package order

import (
	"time"

	"github.com/hmehmood121/ZuhaSurgical/internal/domain/shared"
)

// Period is a dashboard reporting window
type Period string

const (
	PeriodAll     Period = "all"
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod defaults an empty value to all
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodDaily, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", shared.NewDomainError("INVALID_PERIOD", "Period must be all, daily, monthly or yearly")
	}
}

// Since returns the start of the calendar window containing now, in now's
// location. PeriodAll returns nil.
func (p Period) Since(now time.Time) *time.Time {
	var start time.Time
	switch p {
	case PeriodDaily:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &start
}
