package access

import "fmt"

// Mode is the access mode a request needs on an event. Modes are
// independent: granting write does not imply read.
type Mode string

const (
	ModeRead   Mode = "read"
	ModeWrite  Mode = "write"
	ModeReport Mode = "report"
)

// NewMode validates a raw mode string.
func NewMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeRead, ModeWrite, ModeReport:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("invalid access mode: %q", raw)
}

func (m Mode) String() string { return string(m) }

// Validity is the temporal qualifier on a grant.
type Validity string

const (
	// ValidityAlways grants unconditionally.
	ValidityAlways Validity = "always"
	// ValidityOnSite grants only while the principal's on-site flag is
	// true. The flag is consulted at every evaluation, never cached.
	ValidityOnSite Validity = "onsite"
)

// NewValidity validates a raw validity string.
func NewValidity(raw string) (Validity, error) {
	switch Validity(raw) {
	case ValidityAlways, ValidityOnSite:
		return Validity(raw), nil
	}
	return "", fmt.Errorf("invalid validity: %q", raw)
}

func (v Validity) String() string { return string(v) }
