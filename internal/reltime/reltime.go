// Package reltime renders timestamps relative to a reference "now".
//
// Both renderings are pure functions of their inputs; callers pass the
// current wall-clock time on every render so the output moves with it.
package reltime

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// distanceMagnitudes mirror the buckets people expect from "time ago" labels:
// minutes are exact up to ~45, then hours are approximate. Counts truncate, so
// each singular bucket extends to the next whole unit.
var distanceMagnitudes = []humanize.RelTimeMagnitude{
	{D: 30 * time.Second, Format: "less than a minute %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: time.Second},
	{D: 44*time.Minute + 30*time.Second, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "about 1 hour %s", DivBy: time.Hour},
	{D: day, Format: "about %d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: day},
	{D: month, Format: "%d days %s", DivBy: day},
	{D: 45 * day, Format: "about 1 month %s", DivBy: month},
	{D: 60 * day, Format: "about 2 months %s", DivBy: month},
	{D: year, Format: "%d months %s", DivBy: month},
	{D: 2 * year, Format: "about 1 year %s", DivBy: year},
	{D: time.Duration(math.MaxInt64), Format: "about %d years %s", DivBy: year},
}

// Distance renders then relative to now, e.g. "about 1 hour ago" or "5 minutes from now".
func Distance(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "ago", "from now", distanceMagnitudes)
}

// Calendar renders then as a calendar phrase relative to now in loc,
// e.g. "today at 3:04 PM", "yesterday at 9:15 AM", "last Monday at 8:00 PM".
// Dates more than six days away fall back to "01/02/2006".
func Calendar(then, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	then = then.In(loc)
	now = now.In(loc)

	clock := then.Format("3:04 PM")
	switch days := calendarDays(then, now); {
	case days < -6 || days > 6:
		return then.Format("01/02/2006")
	case days < -1:
		return fmt.Sprintf("last %s at %s", then.Weekday(), clock)
	case days == -1:
		return "yesterday at " + clock
	case days == 0:
		return "today at " + clock
	case days == 1:
		return "tomorrow at " + clock
	default:
		return fmt.Sprintf("%s at %s", then.Weekday(), clock)
	}
}

// calendarDays counts whole calendar days from now's date to then's date.
func calendarDays(then, now time.Time) int {
	ty, tm, td := then.Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
