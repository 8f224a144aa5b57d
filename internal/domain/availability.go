package domain

import "time"

// Availability is a participant's selected grid cells. Only selected
// slots are stored; a missing key means not available. Values are
// always true, never false.
type Availability map[string]bool

// Clone returns an independent copy of the availability map.
func (a Availability) Clone() Availability {
	c := make(Availability, len(a))
	for k := range a {
		c[k] = true
	}
	return c
}

// Toggle flips a single slot and returns the updated copy. Toggling the
// same key twice restores the original selection.
func (a Availability) Toggle(key string) Availability {
	c := a.Clone()
	if c[key] {
		delete(c, key)
	} else {
		c[key] = true
	}
	return c
}

// PaintSession is a drag-paint over the grid. The paint direction is
// decided once, from the state of the first cell touched, and every
// cell dragged over gets that same direction. Re-entering a cell during
// the drag does not flip it back.
type PaintSession struct {
	makeAvailable bool
}

// BeginPaint starts a drag on key, toggles it, and returns the session
// that carries the frozen direction along with the updated map.
func BeginPaint(a Availability, key string) (Availability, *PaintSession) {
	s := &PaintSession{makeAvailable: !a[key]}
	return s.Apply(a, key), s
}

// Apply paints key with the session's direction.
func (s *PaintSession) Apply(a Availability, key string) Availability {
	c := a.Clone()
	if s.makeAvailable {
		c[key] = true
	} else {
		delete(c, key)
	}
	return c
}

// AllAvailable marks every slot of the grid as selected.
func AllAvailable(slots []TimeSlot) Availability {
	a := make(Availability, len(slots))
	for _, s := range slots {
		a[s.Key] = true
	}
	return a
}

// presetBlockedHours maps a user type to the weekday hours it blocks
// out, as inclusive ranges [from, to].
var presetBlockedHours = map[UserType][2]int{
	UserTypeOfficeWorker:        {9, 17},
	UserTypeHighSchoolStudent:   {8, 16},
	UserTypeMiddleSchoolStudent: {8, 15},
}

// ApplyUserTypePreset removes the hours typically occupied by the given
// user type from the availability, on weekdays only. Types without a
// preset (university students and custom) leave the map untouched.
// Applying the same preset twice is a no-op the second time.
func ApplyUserTypePreset(t UserType, a Availability, slots []TimeSlot) Availability {
	blocked, ok := presetBlockedHours[t]
	if !ok {
		return a.Clone()
	}
	c := a.Clone()
	for _, s := range slots {
		if s.Hour < blocked[0] || s.Hour > blocked[1] {
			continue
		}
		d, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			continue
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		delete(c, s.Key)
	}
	return c
}

// RemoveEarlyHours removes the 00:00 through 06:30 slots on every day
// of the grid, weekends included.
func RemoveEarlyHours(a Availability, slots []TimeSlot) Availability {
	c := a.Clone()
	for _, s := range slots {
		if s.Hour <= 6 {
			delete(c, s.Key)
		}
	}
	return c
}
