package chat

import "time"

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	dateLayout         = "Monday, January 2"
	dateLayoutWithYear = "Monday, January 2, 2006"
	clockLayout        = "3:04 PM"
)

// Entry is a message placed inside a date group. FirstInRun and LastInRun mark
// the edges of a run of consecutive messages from the same sender.
type Entry struct {
	Message    Message `json:"message"`
	FirstInRun bool    `json:"firstInRun"`
	LastInRun  bool    `json:"lastInRun"`
}

// DateGroup collects the messages of one calendar day.
type DateGroup struct {
	Label   string    `json:"label"`
	Date    time.Time `json:"date"`
	Entries []Entry   `json:"entries"`
}

// GroupForDisplay projects a transcript into date groups ordered by first
// occurrence. Dates are taken in now's location. The input is not modified and
// the result depends only on messages and now.
func GroupForDisplay(messages []Message, now time.Time) []DateGroup {
	if len(messages) == 0 {
		return []DateGroup{}
	}

	loc := now.Location()
	groups := make([]DateGroup, 0, 4)
	index := make(map[time.Time]int)

	for _, msg := range messages {
		day := calendarDay(msg.Timestamp, loc)
		i, ok := index[day]
		if !ok {
			groups = append(groups, DateGroup{
				Label: DateLabel(day, now),
				Date:  day,
			})
			i = len(groups) - 1
			index[day] = i
		}
		groups[i].Entries = append(groups[i].Entries, Entry{Message: msg})
	}

	for g := range groups {
		entries := groups[g].Entries
		for i := range entries {
			sender := entries[i].Message.Sender
			entries[i].FirstInRun = i == 0 || entries[i-1].Message.Sender != sender
			entries[i].LastInRun = i == len(entries)-1 || entries[i+1].Message.Sender != sender
		}
	}

	return groups
}

// DateLabel names the calendar day of t relative to now.
func DateLabel(t, now time.Time) string {
	loc := now.Location()
	day := calendarDay(t, loc)
	today := calendarDay(now, loc)

	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return LabelYesterday
	case day.Year() != today.Year():
		return day.Format(dateLayoutWithYear)
	default:
		return day.Format(dateLayout)
	}
}

// FormatClock renders the time of day shown under each message.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
