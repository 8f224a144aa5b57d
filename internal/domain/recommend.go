package domain

// AvailabilityCount maps each grid slot key to how many submitted
// participants selected it.
type AvailabilityCount map[string]int

// SubmittedCount returns how many participants have submitted their
// availability.
func (e *Event) SubmittedCount() int {
	n := 0
	for _, p := range e.Participants {
		if p.Submitted {
			n++
		}
	}
	return n
}

// Aggregate counts, for every slot of the event's grid, how many
// submitted participants selected it. Slots nobody picked are present
// with count zero. When nobody has submitted yet the result is an
// empty map, so callers can tell "no data" from "all zeros".
func (e *Event) Aggregate() AvailabilityCount {
	counts := AvailabilityCount{}
	if e.SubmittedCount() == 0 {
		return counts
	}
	for _, s := range e.Slots() {
		counts[s.Key] = 0
	}
	for _, p := range e.Participants {
		if !p.Submitted {
			continue
		}
		for key := range p.Availability {
			if _, ok := counts[key]; ok {
				counts[key]++
			}
		}
	}
	return counts
}

// Tier groups recommended slots by how much of the group can attend.
// ColorWeight is the shade the client renders the tier with, heaviest
// for full attendance.
type Tier struct {
	Label       string     `json:"label"`
	ColorWeight int        `json:"colorWeight"`
	Slots       []TimeSlot `json:"slots"`
}

const maxSlotsPerTier = 5

// Tier labels, ordered from full attendance down.
const (
	TierPerfect = "perfect"
	TierGood    = "good"
	TierOK      = "ok"
)

// Color weights per tier, matching the green shades the grid uses.
const (
	ColorWeightPerfect = 600
	ColorWeightGood    = 500
	ColorWeightOK      = 400
)

// ceilFrac returns ceil(n * num / den) using integer arithmetic.
func ceilFrac(n, num, den int) int {
	return (n*num + den - 1) / den
}

// Recommend buckets the grid into attendance tiers against the number
// of submitted participants N: perfect means everyone can attend, good
// means at least 90% (rounded up) but not all, ok means at least 80%
// but under the good cutoff. Each tier keeps at most five slots, the
// earliest first, and empty tiers are dropped. No submissions means no
// recommendations.
func (e *Event) Recommend() []Tier {
	n := e.SubmittedCount()
	if n == 0 {
		return nil
	}
	counts := e.Aggregate()
	goodMin := ceilFrac(n, 9, 10)
	okMin := ceilFrac(n, 8, 10)

	var perfect, good, ok []TimeSlot
	for _, s := range e.Slots() {
		c := counts[s.Key]
		switch {
		case c == n:
			perfect = append(perfect, s)
		case c >= goodMin:
			good = append(good, s)
		case c >= okMin:
			ok = append(ok, s)
		}
	}

	var tiers []Tier
	for _, t := range []struct {
		label  string
		weight int
		slots  []TimeSlot
	}{
		{TierPerfect, ColorWeightPerfect, perfect},
		{TierGood, ColorWeightGood, good},
		{TierOK, ColorWeightOK, ok},
	} {
		if len(t.slots) == 0 {
			continue
		}
		slots := t.slots
		if len(slots) > maxSlotsPerTier {
			slots = slots[:maxSlotsPerTier]
		}
		tiers = append(tiers, Tier{Label: t.label, ColorWeight: t.weight, Slots: slots})
	}
	return tiers
}
