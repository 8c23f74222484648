package fieldreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachDetachIdempotent(t *testing.T) {
	fr, err := NewFieldReport(1, "found a lost bike")
	require.NoError(t, err)
	require.Nil(t, fr.AttachedIncident())

	changed, err := fr.AttachTo(7)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, fr.AttachedIncident())
	assert.Equal(t, 7, *fr.AttachedIncident())

	// Re-attaching to the same incident is a no-op success.
	changed, err = fr.AttachTo(7)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.True(t, fr.Detach(7))
	assert.Nil(t, fr.AttachedIncident())

	// Detaching an unattached report is a no-op success.
	assert.False(t, fr.Detach(7))
}

func TestAttachSupersedesPriorAttachment(t *testing.T) {
	fr, err := NewFieldReport(1, "")
	require.NoError(t, err)

	_, err = fr.AttachTo(7)
	require.NoError(t, err)

	// Last write wins: attaching to a new incident re-points the report.
	changed, err := fr.AttachTo(9)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 9, *fr.AttachedIncident())

	// Detach with the stale incident number is a no-op.
	assert.False(t, fr.Detach(7))
	assert.Equal(t, 9, *fr.AttachedIncident())
}

func TestAttachRejectsInvalidNumber(t *testing.T) {
	fr, err := NewFieldReport(1, "")
	require.NoError(t, err)

	_, err = fr.AttachTo(0)
	assert.Error(t, err)
}

func TestSetNumberOnce(t *testing.T) {
	fr, err := NewFieldReport(1, "")
	require.NoError(t, err)

	require.NoError(t, fr.SetNumber(4))
	assert.Error(t, fr.SetNumber(5), "numbers are never reassigned")
	assert.Equal(t, 4, fr.Number())
}
