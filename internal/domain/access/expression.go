package access

import (
	"fmt"
	"strings"
)

// ExpressionKind discriminates the closed set of grant expression variants.
type ExpressionKind int

const (
	// KindAll is the `*` wildcard: matches every authenticated principal.
	KindAll ExpressionKind = iota
	// KindPerson matches a single handle, case-sensitively.
	KindPerson
	// KindPosition matches principals holding the named position.
	KindPosition
	// KindTeam matches principals on the named team.
	KindTeam
	// KindInert is the legacy `**` wildcard. It parses successfully for
	// backward compatibility but matches no principal.
	KindInert
)

// Expression is a parsed grant expression. Expressions are parsed once at
// write time and evaluated with a kind switch, never by string sniffing.
type Expression struct {
	kind  ExpressionKind
	value string
}

// ParseExpression parses the wire form of an expression:
// `*`, `**`, `person:<handle>`, `position:<name>`, or `team:<name>`.
func ParseExpression(raw string) (Expression, error) {
	switch raw {
	case "*":
		return Expression{kind: KindAll}, nil
	case "**":
		return Expression{kind: KindInert}, nil
	}

	prefix, value, found := strings.Cut(raw, ":")
	if !found || value == "" {
		return Expression{}, fmt.Errorf("invalid access expression: %q", raw)
	}

	switch prefix {
	case "person":
		return Expression{kind: KindPerson, value: value}, nil
	case "position":
		return Expression{kind: KindPosition, value: value}, nil
	case "team":
		return Expression{kind: KindTeam, value: value}, nil
	}
	return Expression{}, fmt.Errorf("invalid access expression: %q", raw)
}

// Kind returns the expression variant.
func (e Expression) Kind() ExpressionKind { return e.kind }

// Value returns the handle or name the expression refers to. Empty for the
// wildcard variants.
func (e Expression) Value() string { return e.value }

// Matches reports whether the expression matches the principal. Validity is
// evaluated separately by AccessEntry.Grants.
func (e Expression) Matches(p *Principal) bool {
	if p == nil {
		return false
	}
	switch e.kind {
	case KindAll:
		return true
	case KindPerson:
		return e.value == p.Handle
	case KindPosition:
		return p.HasPosition(e.value)
	case KindTeam:
		return p.HasTeam(e.value)
	case KindInert:
		return false
	}
	return false
}

// String renders the canonical wire form.
func (e Expression) String() string {
	switch e.kind {
	case KindAll:
		return "*"
	case KindInert:
		return "**"
	case KindPerson:
		return "person:" + e.value
	case KindPosition:
		return "position:" + e.value
	case KindTeam:
		return "team:" + e.value
	}
	return ""
}
