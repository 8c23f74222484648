package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/logger"
)

func fieldReportFixture(t *testing.T, attached *int) *fieldreport.FieldReport {
	t.Helper()
	now := time.Now()
	fr, err := fieldreport.ReconstructFieldReport(7, 1, 12, "generator down", attached, now, now)
	require.NoError(t, err)
	return fr
}

func incidentFixture(t *testing.T, number int) *incident.Incident {
	t.Helper()
	now := time.Now()
	inc, err := incident.ReconstructIncident(
		3, 1, number, incident.StateNew, 3, "dust storm",
		incident.ReconstructLocation("", "", nil, nil, nil),
		nil, nil, now, now,
	)
	require.NoError(t, err)
	return inc
}

func TestAttachFieldReport(t *testing.T) {
	frRepo := &mockFieldReportRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
			return fieldReportFixture(t, nil), nil
		},
	}
	incRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return incidentFixture(t, number), nil
		},
	}
	var appended []string
	entryRepo := &mockEntryRepository{
		AppendFunc: func(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint, entry *report.Entry) error {
			appended = append(appended, string(kind)+": "+entry.Text())
			return nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewAttachFieldReportUseCase(frRepo, incRepo, entryRepo, mockTxRunner{}, notifier, logger.NewNop())
	err := uc.Execute(context.Background(), AttachFieldReportCommand{
		EventID: 1, Number: 12, IncidentNumber: 40, Author: "hazmat",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"field_report: Attached to incident: 40",
		"incident: Attached field report: 12",
	}, appended)
	assert.Equal(t, []publishedChange{
		{eventID: 1, kind: "field_report", number: 12},
		{eventID: 1, kind: "incident", number: 40},
	}, notifier.published)
}

func TestAttachFieldReportIdempotent(t *testing.T) {
	already := 40
	frRepo := &mockFieldReportRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
			return fieldReportFixture(t, &already), nil
		},
		UpdateFunc: func(ctx context.Context, fr *fieldreport.FieldReport) error {
			t.Fatal("no update expected for a repeated attachment")
			return nil
		},
	}
	incRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return incidentFixture(t, number), nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewAttachFieldReportUseCase(frRepo, incRepo, &mockEntryRepository{}, mockTxRunner{}, notifier, logger.NewNop())
	err := uc.Execute(context.Background(), AttachFieldReportCommand{
		EventID: 1, Number: 12, IncidentNumber: 40, Author: "hazmat",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.published)
}

func TestAttachFieldReportSupersedes(t *testing.T) {
	previous := 18
	frRepo := &mockFieldReportRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
			return fieldReportFixture(t, &previous), nil
		},
	}
	incRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return incidentFixture(t, number), nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewAttachFieldReportUseCase(frRepo, incRepo, &mockEntryRepository{}, mockTxRunner{}, notifier, logger.NewNop())
	err := uc.Execute(context.Background(), AttachFieldReportCommand{
		EventID: 1, Number: 12, IncidentNumber: 40, Author: "hazmat",
	})
	require.NoError(t, err)

	// The old incident loses the report's entries from its timeline, so it
	// is announced along with both sides of the new attachment.
	assert.Contains(t, notifier.published, publishedChange{eventID: 1, kind: "incident", number: 18})
	assert.Contains(t, notifier.published, publishedChange{eventID: 1, kind: "incident", number: 40})
	assert.Contains(t, notifier.published, publishedChange{eventID: 1, kind: "field_report", number: 12})
}

func TestDetachFieldReport(t *testing.T) {
	attached := 40
	frRepo := &mockFieldReportRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
			return fieldReportFixture(t, &attached), nil
		},
	}
	incRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return incidentFixture(t, number), nil
		},
	}
	var appended []string
	entryRepo := &mockEntryRepository{
		AppendFunc: func(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint, entry *report.Entry) error {
			appended = append(appended, string(kind)+": "+entry.Text())
			return nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewDetachFieldReportUseCase(frRepo, incRepo, entryRepo, mockTxRunner{}, notifier, logger.NewNop())
	err := uc.Execute(context.Background(), DetachFieldReportCommand{
		EventID: 1, Number: 12, IncidentNumber: 40, Author: "hazmat",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"field_report: Detached from incident: 40",
		"incident: Detached field report: 12",
	}, appended)
	assert.Len(t, notifier.published, 2)
}

func TestDetachFieldReportNotAttachedIsNoop(t *testing.T) {
	other := 9
	frRepo := &mockFieldReportRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
			return fieldReportFixture(t, &other), nil
		},
	}
	notifier := &mockNotifier{}

	uc := NewDetachFieldReportUseCase(frRepo, &mockIncidentRepository{}, &mockEntryRepository{}, mockTxRunner{}, notifier, logger.NewNop())
	err := uc.Execute(context.Background(), DetachFieldReportCommand{
		EventID: 1, Number: 12, IncidentNumber: 40, Author: "hazmat",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.published)
}
