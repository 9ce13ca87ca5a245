// Package calendar supplies the option lists a birth-date picker offers:
// years, months and the days valid for a given month.
package calendar

import "time"

// EarliestYear is the oldest year offered by the picker.
const EarliestYear = 1900

// Years returns the selectable years from now's year down to EarliestYear.
func Years(now time.Time) []int {
	current := now.Year()
	if current < EarliestYear {
		return nil
	}
	years := make([]int, 0, current-EarliestYear+1)
	for y := current; y >= EarliestYear; y-- {
		years = append(years, y)
	}
	return years
}

// Months returns 1 through 12.
func Months() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

// DaysIn returns the number of days in the month, honouring leap years.
// Out-of-range months yield 0.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDate reports whether year-month-day names a real calendar day.
func IsValidDate(year, month, day int) bool {
	return year > 0 && day >= 1 && day <= DaysIn(year, month)
}

// DayOptions returns the days selectable for the given year and month.
// An unset year (0) falls back to now's year and an unset month to January,
// so the picker always has a list to show.
func DayOptions(now time.Time, year, month int) []int {
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = 1
	}
	n := DaysIn(year, month)
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// Reselect keeps a previously chosen day if it still exists in options,
// and returns 0 (nothing selected) otherwise.
func Reselect(selected int, options []int) int {
	if selected >= 1 && selected <= len(options) {
		return selected
	}
	return 0
}
