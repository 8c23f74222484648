// Package report defines report entries: the append-only, timestamped notes
// attached to incidents and field reports, and the merged-timeline
// projection over them.
package report

import (
	"context"
	"fmt"
	"time"
)

// ParentKind identifies which aggregate an entry belongs to.
type ParentKind string

const (
	ParentIncident    ParentKind = "incident"
	ParentFieldReport ParentKind = "field_report"
)

// NewParentKind validates a raw parent kind string.
func NewParentKind(raw string) (ParentKind, error) {
	switch ParentKind(raw) {
	case ParentIncident, ParentFieldReport:
		return ParentKind(raw), nil
	}
	return "", fmt.Errorf("invalid report entry parent kind: %q", raw)
}

// Entry is one timestamped note. Author, creation time, text, and the
// system flag are immutable once created; only the stricken flag may change.
// Entries are never physically deleted.
type Entry struct {
	id         uint
	author     string
	text       string
	system     bool
	stricken   bool
	attachment string
	createdAt  time.Time
}

// NewEntry creates a user or system entry.
func NewEntry(author, text string, system bool) (*Entry, error) {
	if author == "" {
		return nil, fmt.Errorf("entry author is required")
	}
	if text == "" {
		return nil, fmt.Errorf("entry text is required")
	}
	return &Entry{
		author:    author,
		text:      text,
		system:    system,
		createdAt: time.Now(),
	}, nil
}

// NewSystemEntry creates a server-generated audit entry.
func NewSystemEntry(author, text string) (*Entry, error) {
	return NewEntry(author, text, true)
}

// ReconstructEntry rebuilds an entry from persistence.
func ReconstructEntry(id uint, author, text string, system, stricken bool, attachment string, createdAt time.Time) (*Entry, error) {
	if id == 0 {
		return nil, fmt.Errorf("entry ID cannot be zero")
	}
	if author == "" {
		return nil, fmt.Errorf("entry author is required")
	}
	return &Entry{
		id:         id,
		author:     author,
		text:       text,
		system:     system,
		stricken:   stricken,
		attachment: attachment,
		createdAt:  createdAt,
	}, nil
}

func (e *Entry) ID() uint             { return e.id }
func (e *Entry) Author() string       { return e.author }
func (e *Entry) Text() string         { return e.text }
func (e *Entry) IsSystem() bool       { return e.system }
func (e *Entry) IsStricken() bool     { return e.stricken }
func (e *Entry) Attachment() string   { return e.attachment }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// SetID assigns the persistence identity after the initial insert.
func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entry ID cannot be zero")
	}
	e.id = id
	return nil
}

// SetStricken toggles the reversible soft-delete flag. The row is kept and
// remains visible in history views.
func (e *Entry) SetStricken(stricken bool) {
	e.stricken = stricken
}

// SetAttachment records the opaque reference id of an uploaded attachment.
// Byte storage is external.
func (e *Entry) SetAttachment(ref string) {
	e.attachment = ref
}

// FirstUserLine returns the first line of the first non-system entry, used
// to derive a display summary when none is set explicitly.
func FirstUserLine(entries []*Entry) string {
	for _, entry := range entries {
		if entry.IsSystem() || entry.IsStricken() {
			continue
		}
		text := entry.Text()
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				return text[:i]
			}
		}
		return text
	}
	return ""
}

// Repository is the report entry store. Entries are appended in the same
// transaction as the mutation they describe.
type Repository interface {
	// Append stores a new entry under the given parent. The parent must
	// exist; the assigned entry ID is set on the entry.
	Append(ctx context.Context, eventID uint, kind ParentKind, parentID uint, entry *Entry) error
	// ListForParent returns the parent's entries ordered by creation time.
	ListForParent(ctx context.Context, eventID uint, kind ParentKind, parentID uint) ([]*Entry, error)
	// FindByID returns a single entry scoped by event.
	FindByID(ctx context.Context, eventID uint, entryID uint) (*Entry, error)
	// ParentRef returns the kind and tenant-scoped number of the entry's
	// parent, for change notification.
	ParentRef(ctx context.Context, eventID uint, entryID uint) (ParentKind, int, error)
	// SetStricken updates the stricken flag on an entry.
	SetStricken(ctx context.Context, eventID uint, entryID uint, stricken bool) error
}
