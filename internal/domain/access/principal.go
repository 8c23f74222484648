// Package access implements the tenant-scoped authorization model: modes,
// grant expressions, validity qualifiers, and the evaluator that decides
// whether a principal may act on an event.
package access

import "time"

// Principal is an authenticated requester as resolved from a bearer
// credential: a handle plus membership sets and the current on-site flag.
// A nil Principal means the request is unauthenticated.
type Principal struct {
	Handle    string
	Positions map[string]struct{}
	Teams     map[string]struct{}
	OnSite    bool
	Expiry    time.Time
}

// NewPrincipal builds a Principal from raw membership slices.
func NewPrincipal(handle string, positions, teams []string, onSite bool, expiry time.Time) *Principal {
	p := &Principal{
		Handle:    handle,
		Positions: make(map[string]struct{}, len(positions)),
		Teams:     make(map[string]struct{}, len(teams)),
		OnSite:    onSite,
		Expiry:    expiry,
	}
	for _, pos := range positions {
		p.Positions[pos] = struct{}{}
	}
	for _, team := range teams {
		p.Teams[team] = struct{}{}
	}
	return p
}

// Expired reports whether the principal's credential has expired.
func (p *Principal) Expired(now time.Time) bool {
	return !p.Expiry.IsZero() && now.After(p.Expiry)
}

// HasPosition reports membership in the named position.
func (p *Principal) HasPosition(name string) bool {
	_, ok := p.Positions[name]
	return ok
}

// HasTeam reports membership in the named team.
func (p *Principal) HasTeam(name string) bool {
	_, ok := p.Teams[name]
	return ok
}
