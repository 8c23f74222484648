package report

import "sort"

// MergeTimelines unions entry lists into one chronological timeline. This is
// a view-time projection: detaching a field report removes its entries from
// the merged view without touching storage.
//
// Ordering: creation time ascending; ties put system entries before user
// entries, then sort by text ascending.
func MergeTimelines(lists ...[]*Entry) []*Entry {
	var merged []*Entry
	for _, list := range lists {
		merged = append(merged, list...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		if a.IsSystem() != b.IsSystem() {
			return a.IsSystem()
		}
		return a.Text() < b.Text()
	})

	return merged
}

// VisibleEntries filters stricken entries out of a timeline. Pass
// showHistory to keep them (the "show history" view).
func VisibleEntries(entries []*Entry, showHistory bool) []*Entry {
	if showHistory {
		return entries
	}
	visible := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsStricken() {
			visible = append(visible, entry)
		}
	}
	return visible
}
