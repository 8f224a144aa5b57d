package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// TimeSlot is a single half-hour cell of an event's selection grid.
type TimeSlot struct {
	Key    string `json:"key"`
	Date   string `json:"date"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// SlotKey builds the canonical key for a grid cell: "YYYY-MM-DD-HH-MM"
// with zero-padded hour and minute.
func SlotKey(date string, hour, minute int) string {
	return fmt.Sprintf("%s-%02d-%02d", date, hour, minute)
}

// GenerateSlots produces the full half-hour grid for the inclusive date
// range, ordered chronologically: 48 slots per day, minutes 00 and 30.
// A malformed date or an end date before the start date yields an empty
// grid rather than an error, so a bad range renders as nothing selectable.
func GenerateSlots(startDate, endDate string) []TimeSlot {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}

	var slots []TimeSlot
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(dateLayout)
		for hour := 0; hour < 24; hour++ {
			for _, minute := range []int{0, 30} {
				slots = append(slots, TimeSlot{
					Key:    SlotKey(date, hour, minute),
					Date:   date,
					Hour:   hour,
					Minute: minute,
				})
			}
		}
	}
	return slots
}

// GridDates returns the ordered list of dates covered by the range,
// using the same degrade-to-empty rules as GenerateSlots.
func GridDates(startDate, endDate string) []string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// EndTime adds a duration in hours to a "HH:MM" start time using plain
// minute arithmetic. Hours are not wrapped at 24, so a meeting starting
// at 23:30 lasting one hour ends at "24:30".
func EndTime(start string, durationHours float64) string {
	var hour, minute int
	if _, err := fmt.Sscanf(start, "%d:%d", &hour, &minute); err != nil {
		return start
	}
	total := hour*60 + minute + int(durationHours*60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
