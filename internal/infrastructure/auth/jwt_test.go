package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "vigil-test")

	token, err := svc.Generate("dusty", []string{"Dispatcher"}, []string{"Ops"}, true, false, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "dusty", claims.Subject)
	assert.Equal(t, []string{"Dispatcher"}, claims.Positions)
	assert.Equal(t, []string{"Ops"}, claims.Teams)
	assert.True(t, claims.OnSite)
	assert.False(t, claims.Admin)

	p := Principal(claims)
	assert.Equal(t, "dusty", p.Handle)
	assert.True(t, p.HasPosition("Dispatcher"))
	assert.True(t, p.HasTeam("Ops"))
	assert.True(t, p.OnSite)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", "vigil-test")
	other := NewJWTService("secret-b", "vigil-test")

	token, err := svc.Generate("dusty", nil, nil, false, false, time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsWrongIssuer(t *testing.T) {
	svc := NewJWTService("test-secret", "someone-else")
	verifier := NewJWTService("test-secret", "vigil-test")

	token, err := svc.Generate("dusty", nil, nil, false, false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifyRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "vigil-test")

	token, err := svc.Generate("dusty", nil, nil, false, false, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
