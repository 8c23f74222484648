package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    ExpressionKind
		value   string
		wantErr bool
	}{
		{name: "wildcard", raw: "*", kind: KindAll},
		{name: "legacy double wildcard", raw: "**", kind: KindInert},
		{name: "person", raw: "person:Hazmat", kind: KindPerson, value: "Hazmat"},
		{name: "position", raw: "position:Shift Lead", kind: KindPosition, value: "Shift Lead"},
		{name: "team", raw: "team:Ops", kind: KindTeam, value: "Ops"},
		{name: "empty value", raw: "person:", wantErr: true},
		{name: "unknown prefix", raw: "group:Ops", wantErr: true},
		{name: "bare word", raw: "Hazmat", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseExpression(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, expr.Kind())
			assert.Equal(t, tt.value, expr.Value())
			assert.Equal(t, tt.raw, expr.String())
		})
	}
}

func TestExpressionMatches(t *testing.T) {
	p := NewPrincipal("Hazmat", []string{"Shift Lead"}, []string{"Ops"}, true, time.Time{})

	tests := []struct {
		raw  string
		want bool
	}{
		{"*", true},
		{"**", false},
		{"person:Hazmat", true},
		{"person:hazmat", false}, // case-sensitive
		{"person:Dusty", false},
		{"position:Shift Lead", true},
		{"position:Ops", false},
		{"team:Ops", true},
		{"team:Shift Lead", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			expr, err := ParseExpression(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Matches(p))
		})
	}
}

func TestExpressionMatchesNilPrincipal(t *testing.T) {
	expr, err := ParseExpression("*")
	require.NoError(t, err)
	assert.False(t, expr.Matches(nil))
}

func TestAccessEntryGrants(t *testing.T) {
	onSite := NewPrincipal("Hazmat", nil, nil, true, time.Time{})
	offSite := NewPrincipal("Hazmat", nil, nil, false, time.Time{})

	always, err := NewAccessEntry("person:Hazmat", "always")
	require.NoError(t, err)
	assert.True(t, always.Grants(onSite))
	assert.True(t, always.Grants(offSite))

	onsiteOnly, err := NewAccessEntry("person:Hazmat", "onsite")
	require.NoError(t, err)
	assert.True(t, onsiteOnly.Grants(onSite))
	assert.False(t, onsiteOnly.Grants(offSite))
}

func TestNewAccessEntryRejectsBadInput(t *testing.T) {
	_, err := NewAccessEntry("person:Hazmat", "weekends")
	assert.Error(t, err)

	_, err = NewAccessEntry("nonsense", "always")
	assert.Error(t, err)
}
