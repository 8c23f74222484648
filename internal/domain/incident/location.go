package incident

import "fmt"

// Location describes where an incident is. The radial locator addresses the
// site clock-face style: an hour hand (1-12), a minute hand rounded to the
// nearest multiple of five, and a concentric street id resolved against the
// event's read-only street directory. All parts are optional and edited
// individually.
type Location struct {
	name         string
	description  string
	radialHour   *int
	radialMinute *int
	concentric   *string
}

// ReconstructLocation rebuilds a location from persistence without
// revalidating the radial parts.
func ReconstructLocation(name, description string, radialHour, radialMinute *int, concentric *string) Location {
	return Location{
		name:         name,
		description:  description,
		radialHour:   radialHour,
		radialMinute: radialMinute,
		concentric:   concentric,
	}
}

func (l Location) Name() string        { return l.name }
func (l Location) Description() string { return l.description }
func (l Location) RadialHour() *int    { return l.radialHour }
func (l Location) RadialMinute() *int  { return l.radialMinute }
func (l Location) Concentric() *string { return l.concentric }

// RoundRadialMinute rounds a minute to the nearest multiple of five,
// modulo 60. 58 rounds to 0, 12 rounds to 10, 13 rounds to 15.
func RoundRadialMinute(minute int) int {
	m := minute % 60
	if m < 0 {
		m += 60
	}
	return ((m + 2) / 5 * 5) % 60
}

func validateRadialHour(hour int) error {
	if hour < 1 || hour > 12 {
		return fmt.Errorf("radial hour must be between 1 and 12, got %d", hour)
	}
	return nil
}
