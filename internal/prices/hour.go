package prices

import "time"

// CurrentHourIndex maps the wall clock to an index into today's series.
//
// On a 23 or 25 hour day the local hour no longer equals the index. The
// difference between the live UTC offset and normalOffset tells whether
// daylight saving time is in effect, and a 25 hour day shifts the index up by
// one once the repeated hour has passed.
func CurrentHourIndex(hoursInDay int, now time.Time, normalOffset int) int {
	if hoursInDay == HoursInDay {
		return now.Hour()
	}
	delta := hoursInDay - HoursInDay
	shift := (abs(delta) + delta) / 2
	return now.Hour() + shift - (OffsetHours(now) - normalOffset)
}

// OffsetHours returns the UTC offset of t in whole hours.
func OffsetHours(t time.Time) int {
	_, offset := t.Zone()
	return offset / 3600
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
