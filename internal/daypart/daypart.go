// Package daypart classifies a clock reading into the time-of-day windows
// used for greetings and presence status.
package daypart

import "time"

// Salutation is a greeting window derived from the local hour.
type Salutation int

const (
	Morning Salutation = iota
	Afternoon
	Evening
)

// String returns the salutation text used as a greeting prefix.
func (s Salutation) String() string {
	switch s {
	case Morning:
		return "Good morning"
	case Afternoon:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Window is the coarse day/night classification used for presence rotation.
type Window int

const (
	Day Window = iota
	Night
)

// String implements fmt.Stringer for logging.
func (w Window) String() string {
	if w == Day {
		return "day"
	}
	return "night"
}

// LocalHour returns the hour of day in [0,23] for the given instant shifted
// by offsetHours from UTC. Any integer offset is accepted.
func LocalHour(now time.Time, offsetHours int) int {
	h := (now.UTC().Hour() + offsetHours) % 24
	if h < 0 {
		h += 24
	}
	return h
}

// Greeting maps an hour of day to its salutation window. Hours outside
// [0,23] are first reduced modulo 24.
func Greeting(hour int) Salutation {
	hour = normalize(hour)
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// WindowOf maps an hour of day to the day/night presence window. Day spans
// [6,22); everything else is Night.
func WindowOf(hour int) Window {
	hour = normalize(hour)
	if hour >= 6 && hour < 22 {
		return Day
	}
	return Night
}

func normalize(hour int) int {
	hour %= 24
	if hour < 0 {
		hour += 24
	}
	return hour
}
