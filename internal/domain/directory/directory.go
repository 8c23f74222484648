// Package directory defines the read-only street directory used to resolve
// an incident location's concentric ring id. The directory is loaded at
// startup and never mutated by the core.
package directory

// ConcentricStreet is one ring of the event's street grid.
type ConcentricStreet struct {
	ID   string
	Name string
}

// StreetDirectory maps event names to their concentric streets.
type StreetDirectory struct {
	streets map[string][]ConcentricStreet
}

// NewStreetDirectory builds a directory from per-event street lists.
func NewStreetDirectory(streets map[string][]ConcentricStreet) *StreetDirectory {
	if streets == nil {
		streets = map[string][]ConcentricStreet{}
	}
	return &StreetDirectory{streets: streets}
}

// Streets returns the concentric streets for the event, in directory order.
func (d *StreetDirectory) Streets(eventName string) []ConcentricStreet {
	out := make([]ConcentricStreet, len(d.streets[eventName]))
	copy(out, d.streets[eventName])
	return out
}

// ValidStreet reports whether the id names a concentric street of the
// event. Events absent from the directory accept no street ids.
func (d *StreetDirectory) ValidStreet(eventName, id string) bool {
	for _, s := range d.streets[eventName] {
		if s.ID == id {
			return true
		}
	}
	return false
}
