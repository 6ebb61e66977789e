package job

import (
	"time"

	"github.com/example/commesse/internal/models"
)

// defaultWindowDays is the calendar span of a job with no expected-finish
// date: its start day plus two more.
const defaultWindowDays = 2

// ActiveOn reports whether j occupies date on the calendar. The window
// runs from the taken-in-charge date (falling back to the requested
// delivery date) through the expected-finish date (falling back to start
// plus two days), both bounds widened to whole days.
func ActiveOn(j models.Job, date time.Time) bool {
	start, ok := parseDay(j.TakenInCharge)
	if !ok {
		if start, ok = parseDay(j.RequestedDelivery); !ok {
			return false
		}
	}

	end, ok := parseDay(j.ExpectedFinish)
	if !ok {
		end = start.AddDate(0, 0, defaultWindowDays)
	}

	day := dayStart(date)
	return !day.Before(dayStart(start)) && day.Before(dayStart(end).AddDate(0, 0, 1))
}

// ActiveJobsOn filters jobs down to those occupying date, preserving order.
func ActiveJobsOn(jobs []models.Job, date time.Time) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if ActiveOn(j, date) {
			out = append(out, j)
		}
	}
	return out
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
