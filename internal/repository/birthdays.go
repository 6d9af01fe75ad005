package repository

import "time"

// monthDayKey encodes a month and day as month*100+day, e.g. 1228 for December 28. The same
// expression is computed in SQL for the birthday column.
func monthDayKey(month time.Month, day int) int {
	return int(month)*100 + day
}

// UpcomingMonthDays returns the month/day keys of today and the following days. The window wraps
// across the end of the year. February 29 birthdays are celebrated on February 28 in years
// without a leap day, so that key is added whenever a non-leap February 28 is in the window.
func UpcomingMonthDays(today time.Time, days int) []int {
	if days < 0 {
		days = 0
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	keys := make([]int, 0, days+2)
	seen := make(map[int]bool, days+2)
	add := func(key int) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for i := 0; i <= days && len(seen) < 366; i++ {
		date := start.AddDate(0, 0, i)
		add(monthDayKey(date.Month(), date.Day()))
		if date.Month() == time.February && date.Day() == 28 && !isLeapYear(date.Year()) {
			add(monthDayKey(time.February, 29))
		}
	}
	return keys
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
