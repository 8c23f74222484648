package access

import "context"

// AccessEntry is one authorization rule: an expression plus its validity.
// At most one entry exists per (event, mode, expression); replacing the
// validity for an existing expression supersedes the prior entry.
type AccessEntry struct {
	Expression Expression
	Validity   Validity
}

// NewAccessEntry builds an entry from wire strings.
func NewAccessEntry(expression, validity string) (AccessEntry, error) {
	expr, err := ParseExpression(expression)
	if err != nil {
		return AccessEntry{}, err
	}
	v, err := NewValidity(validity)
	if err != nil {
		return AccessEntry{}, err
	}
	return AccessEntry{Expression: expr, Validity: v}, nil
}

// Grants reports whether this entry grants access to the principal right
// now: the expression must match and the validity must be satisfied.
func (e AccessEntry) Grants(p *Principal) bool {
	if !e.Expression.Matches(p) {
		return false
	}
	switch e.Validity {
	case ValidityAlways:
		return true
	case ValidityOnSite:
		return p.OnSite
	}
	return false
}

// Repository is the store of access entries, keyed by (event, mode).
type Repository interface {
	// ListEntries returns all entries for the event and mode.
	ListEntries(ctx context.Context, eventID uint, mode Mode) ([]AccessEntry, error)
	// ReplaceEntry removes any entry with the same expression for
	// (event, mode) and stores the given one, atomically.
	ReplaceEntry(ctx context.Context, eventID uint, mode Mode, entry AccessEntry) error
	// RemoveEntry deletes the entry with the given expression, if present.
	RemoveEntry(ctx context.Context, eventID uint, mode Mode, expression Expression) error
}
