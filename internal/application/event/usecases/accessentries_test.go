package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/internal/domain/access"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type mockAccessRepository struct {
	ListEntriesFunc  func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error)
	ReplaceEntryFunc func(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error
	RemoveEntryFunc  func(ctx context.Context, eventID uint, mode access.Mode, expression access.Expression) error
}

func (m *mockAccessRepository) ListEntries(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
	if m.ListEntriesFunc != nil {
		return m.ListEntriesFunc(ctx, eventID, mode)
	}
	return nil, nil
}

func (m *mockAccessRepository) ReplaceEntry(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error {
	if m.ReplaceEntryFunc != nil {
		return m.ReplaceEntryFunc(ctx, eventID, mode, entry)
	}
	return nil
}

func (m *mockAccessRepository) RemoveEntry(ctx context.Context, eventID uint, mode access.Mode, expression access.Expression) error {
	if m.RemoveEntryFunc != nil {
		return m.RemoveEntryFunc(ctx, eventID, mode, expression)
	}
	return nil
}

func TestSetAccessEntry(t *testing.T) {
	var gotMode access.Mode
	var gotEntry access.AccessEntry
	repo := &mockAccessRepository{
		ReplaceEntryFunc: func(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error {
			gotMode = mode
			gotEntry = entry
			return nil
		},
	}

	uc := NewSetAccessEntryUseCase(repo, logger.NewNop())
	err := uc.Execute(context.Background(), SetAccessEntryCommand{
		EventID: 1, Mode: "write", Expression: "team:Ops", Validity: "onsite",
	})
	require.NoError(t, err)
	assert.Equal(t, access.ModeWrite, gotMode)
	assert.Equal(t, "team:Ops", gotEntry.Expression.String())
	assert.Equal(t, access.ValidityOnSite, gotEntry.Validity)
}

func TestSetAccessEntryRejectsBadInput(t *testing.T) {
	uc := NewSetAccessEntryUseCase(&mockAccessRepository{}, logger.NewNop())

	err := uc.Execute(context.Background(), SetAccessEntryCommand{
		EventID: 1, Mode: "admin", Expression: "*", Validity: "always",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	err = uc.Execute(context.Background(), SetAccessEntryCommand{
		EventID: 1, Mode: "read", Expression: "wildcard:everyone", Validity: "always",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestSetAccessEntryAcceptsInertExpression(t *testing.T) {
	var stored access.AccessEntry
	repo := &mockAccessRepository{
		ReplaceEntryFunc: func(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error {
			stored = entry
			return nil
		},
	}

	uc := NewSetAccessEntryUseCase(repo, logger.NewNop())
	err := uc.Execute(context.Background(), SetAccessEntryCommand{
		EventID: 1, Mode: "read", Expression: "**", Validity: "always",
	})
	require.NoError(t, err)
	assert.Equal(t, access.KindInert, stored.Expression.Kind())
}

func TestRemoveAccessEntry(t *testing.T) {
	var removed string
	repo := &mockAccessRepository{
		RemoveEntryFunc: func(ctx context.Context, eventID uint, mode access.Mode, expression access.Expression) error {
			removed = expression.String()
			return nil
		},
	}

	uc := NewRemoveAccessEntryUseCase(repo, logger.NewNop())
	err := uc.Execute(context.Background(), RemoveAccessEntryCommand{
		EventID: 1, Mode: "read", Expression: "person:dusty",
	})
	require.NoError(t, err)
	assert.Equal(t, "person:dusty", removed)
}

func TestListAccessEntries(t *testing.T) {
	entry, err := access.NewAccessEntry("position:Dispatcher", "always")
	require.NoError(t, err)
	repo := &mockAccessRepository{
		ListEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
			return []access.AccessEntry{entry}, nil
		},
	}

	uc := NewListAccessEntriesUseCase(repo, logger.NewNop())
	result, err := uc.Execute(context.Background(), ListAccessEntriesQuery{EventID: 1, Mode: "report"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "position:Dispatcher", result.Entries[0].Expression)
	assert.Equal(t, "always", result.Entries[0].Validity)
}
