package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.EventModel{},
		&models.IncidentModel{},
		&models.FieldReportModel{},
		&models.ReportEntryModel{},
		&models.NumberSequenceModel{},
	)
	require.NoError(t, err)

	return database
}

func createTestEvent(t *testing.T, database *gorm.DB, name string) uint {
	event := models.EventModel{Name: name}
	require.NoError(t, database.Create(&event).Error)
	return event.ID
}

func saveTestIncident(t *testing.T, database *gorm.DB, repo *IncidentRepository, eventID uint, priority int, summary string) *incident.Incident {
	inc, err := incident.NewIncident(eventID, priority, summary)
	require.NoError(t, err)

	tm := db.NewTransactionManager(database)
	err = tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return repo.Save(ctx, inc)
	})
	require.NoError(t, err)

	return inc
}

func TestIncidentRepositorySaveAssignsSequentialNumbers(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")

	first := saveTestIncident(t, database, repo, eventID, 3, "first")
	second := saveTestIncident(t, database, repo, eventID, 3, "second")

	assert.Equal(t, 1, first.Number())
	assert.Equal(t, 2, second.Number())
	assert.NotZero(t, first.ID())
	assert.NotZero(t, second.ID())
}

func TestIncidentRepositorySaveConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")

	// Each pooled connection to a :memory: DSN opens a separate database,
	// so pin the pool to one connection. Transactions then serialize on it
	// and every Save still runs through the allocator's locked read.
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const writers = 8
	tm := db.NewTransactionManager(database)
	numbers := make([]int, writers)
	saveErrs := make([]error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			inc, err := incident.NewIncident(eventID, 3, "concurrent create")
			if err != nil {
				saveErrs[slot] = err
				return
			}
			saveErrs[slot] = tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
				return repo.Save(ctx, inc)
			})
			numbers[slot] = inc.Number()
		}(i)
	}
	wg.Wait()

	for _, err := range saveErrs {
		require.NoError(t, err)
	}

	seen := make(map[int]bool, writers)
	for _, n := range numbers {
		assert.False(t, seen[n], "number %d assigned twice", n)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, writers)
		seen[n] = true
	}
	assert.Len(t, seen, writers)
}

func TestIncidentRepositoryNumbersAreScopedPerEvent(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventA := createTestEvent(t, database, "burn-2026")
	eventB := createTestEvent(t, database, "juplaya-2026")

	saveTestIncident(t, database, repo, eventA, 2, "a1")
	saveTestIncident(t, database, repo, eventA, 2, "a2")
	inB := saveTestIncident(t, database, repo, eventB, 2, "b1")

	assert.Equal(t, 1, inB.Number())
}

func TestNumberAllocatorKeepsKindsIndependent(t *testing.T) {
	database := setupTestDB(t)
	allocator := NewNumberAllocator(database)
	eventID := createTestEvent(t, database, "burn-2026")
	ctx := context.Background()

	n1, err := allocator.Next(ctx, eventID, SequenceIncident)
	require.NoError(t, err)
	n2, err := allocator.Next(ctx, eventID, SequenceIncident)
	require.NoError(t, err)
	fr1, err := allocator.Next(ctx, eventID, SequenceFieldReport)
	require.NoError(t, err)

	assert.Equal(t, 1, n1)
	assert.Equal(t, 2, n2)
	assert.Equal(t, 1, fr1)
}

func TestIncidentRepositoryRolledBackCreateLeavesNoRow(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")

	first := saveTestIncident(t, database, repo, eventID, 3, "kept")

	tm := db.NewTransactionManager(database)
	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		inc, err := incident.NewIncident(eventID, 3, "abandoned")
		require.NoError(t, err)
		if err := repo.Save(ctx, inc); err != nil {
			return err
		}
		return errors.NewTransientError("storage failed")
	})
	require.Error(t, err)

	// The sequence advance rolled back with the insert, so the next create
	// takes the freed number and no duplicate row exists.
	next := saveTestIncident(t, database, repo, eventID, 3, "after rollback")

	assert.Equal(t, 1, first.Number())
	assert.Equal(t, 2, next.Number())

	found, err := repo.FindByNumber(context.Background(), eventID, 2)
	require.NoError(t, err)
	assert.Equal(t, "after rollback", found.Summary())

	incidents, err := repo.List(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, incidents, 2)
}

func TestIncidentRepositoryFindByNumberLoadsEntriesInOrder(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	entries := NewReportEntryRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")
	ctx := context.Background()

	inc := saveTestIncident(t, database, repo, eventID, 1, "medical at 3:00")

	first, err := report.NewSystemEntry("dispatcher", "Created incident")
	require.NoError(t, err)
	require.NoError(t, entries.Append(ctx, eventID, report.ParentIncident, inc.ID(), first))

	// Entry timestamps have millisecond resolution in storage.
	time.Sleep(5 * time.Millisecond)

	second, err := report.NewEntry("hardware", "on scene, patient stable", false)
	require.NoError(t, err)
	require.NoError(t, entries.Append(ctx, eventID, report.ParentIncident, inc.ID(), second))

	found, err := repo.FindByNumber(ctx, eventID, inc.Number())
	require.NoError(t, err)

	loaded := found.Entries()
	require.Len(t, loaded, 2)
	assert.Equal(t, "Created incident", loaded[0].Text())
	assert.True(t, loaded[0].IsSystem())
	assert.Equal(t, "on scene, patient stable", loaded[1].Text())
	assert.False(t, loaded[1].IsSystem())
}

func TestIncidentRepositoryFindByNumberNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")

	_, err := repo.FindByNumber(context.Background(), eventID, 42)
	assert.True(t, errors.IsNotFound(err))
}

func TestIncidentRepositoryUpdatePersistsSubmittedFields(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")
	ctx := context.Background()

	inc := saveTestIncident(t, database, repo, eventID, 4, "lost child")

	state := incident.StateDispatched
	hour := 7
	minute := 32
	_, err := inc.Apply(incident.Update{
		State:        &state,
		RadialHour:   &hour,
		RadialMinute: &minute,
		Rangers:      []string{"hardware", "safetyphil"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, inc))

	found, err := repo.FindByNumber(ctx, eventID, inc.Number())
	require.NoError(t, err)

	assert.Equal(t, incident.StateDispatched, found.State())
	assert.Equal(t, []string{"hardware", "safetyphil"}, found.Rangers())
	require.NotNil(t, found.Location().RadialHour())
	assert.Equal(t, 7, *found.Location().RadialHour())
	require.NotNil(t, found.Location().RadialMinute())
	assert.Equal(t, 30, *found.Location().RadialMinute())
}

func TestIncidentRepositoryListReturnsNumberOrder(t *testing.T) {
	database := setupTestDB(t)
	repo := NewIncidentRepository(database)
	eventID := createTestEvent(t, database, "burn-2026")
	otherEvent := createTestEvent(t, database, "juplaya-2026")

	saveTestIncident(t, database, repo, eventID, 2, "one")
	saveTestIncident(t, database, repo, eventID, 2, "two")
	saveTestIncident(t, database, repo, otherEvent, 2, "elsewhere")

	incidents, err := repo.List(context.Background(), eventID)
	require.NoError(t, err)

	require.Len(t, incidents, 2)
	assert.Equal(t, 1, incidents[0].Number())
	assert.Equal(t, 2, incidents[1].Number())
}
