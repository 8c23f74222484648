package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(t *testing.T, id uint, text string, system bool, at time.Time) *Entry {
	t.Helper()
	e, err := ReconstructEntry(id, "Hazmat", text, system, false, "", at)
	require.NoError(t, err)
	return e
}

func texts(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text()
	}
	return out
}

func TestMergeTimelinesChronological(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	incident := []*Entry{
		entryAt(t, 1, "third", false, base.Add(2*time.Minute)),
		entryAt(t, 2, "first", false, base),
	}
	fieldReport := []*Entry{
		entryAt(t, 3, "second", false, base.Add(time.Minute)),
	}

	merged := MergeTimelines(incident, fieldReport)
	assert.Equal(t, []string{"first", "second", "third"}, texts(merged))
}

func TestMergeTimelinesTieBreaks(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	merged := MergeTimelines([]*Entry{
		entryAt(t, 1, "b user", false, at),
		entryAt(t, 2, "a user", false, at),
		entryAt(t, 3, "z system", true, at),
		entryAt(t, 4, "a system", true, at),
	})

	// Same timestamp: system entries first, then text ascending.
	assert.Equal(t, []string{"a system", "z system", "a user", "b user"}, texts(merged))
}

func TestMergeTimelinesDetachedReportExcluded(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	incident := []*Entry{entryAt(t, 1, "incident note", false, base)}
	attached := []*Entry{entryAt(t, 2, "report note", false, base.Add(time.Minute))}

	merged := MergeTimelines(incident, attached)
	require.Len(t, merged, 2)

	// After detach, only the incident's own entries are merged; the
	// report's entries still exist and remain retrievable from it.
	merged = MergeTimelines(incident)
	require.Len(t, merged, 1)
	assert.Equal(t, "incident note", merged[0].Text())
	assert.Len(t, attached, 1)
}

func TestVisibleEntries(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	kept := entryAt(t, 1, "kept", false, at)
	struck := entryAt(t, 2, "struck", false, at)
	struck.SetStricken(true)

	entries := []*Entry{kept, struck}

	assert.Equal(t, []string{"kept"}, texts(VisibleEntries(entries, false)))
	assert.Equal(t, []string{"kept", "struck"}, texts(VisibleEntries(entries, true)))

	// Strike then unstrike restores visibility with no data loss.
	struck.SetStricken(false)
	assert.Equal(t, []string{"kept", "struck"}, texts(VisibleEntries(entries, false)))
	assert.Equal(t, "struck", struck.Text())
}

func TestFirstUserLine(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	sys := entryAt(t, 1, "Created incident", true, at)
	user := entryAt(t, 2, "smoke reported near 9:00\nwind picking up", false, at.Add(time.Minute))

	assert.Equal(t, "smoke reported near 9:00", FirstUserLine([]*Entry{sys, user}))
	assert.Equal(t, "", FirstUserLine([]*Entry{sys}))
}
