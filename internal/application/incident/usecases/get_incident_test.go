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

func reconstructedIncident(t *testing.T, entries []*report.Entry) *incident.Incident {
	t.Helper()
	inc, err := incident.ReconstructIncident(
		10, 1, 7, incident.StateOnScene, 2, "dust storm",
		incident.ReconstructLocation("", "", nil, nil, nil),
		nil, nil, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	inc.SetEntries(entries)
	return inc
}

func reconstructedEntry(t *testing.T, id uint, text string, stricken bool, at time.Time) *report.Entry {
	t.Helper()
	e, err := report.ReconstructEntry(id, "Hazmat", text, false, stricken, "", at)
	require.NoError(t, err)
	return e
}

func TestGetIncidentMergesAttachedFieldReports(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	frEntry := reconstructedEntry(t, 3, "from field report", false, base.Add(time.Minute))
	fr, err := fieldreport.ReconstructFieldReport(20, 1, 4, "", nil, base, base)
	require.NoError(t, err)
	fr.SetEntries([]*report.Entry{frEntry})

	incidentRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return reconstructedIncident(t, []*report.Entry{
				reconstructedEntry(t, 1, "incident note", false, base),
			}), nil
		},
	}
	frRepo := &mockFieldReportRepository{
		ListAttachedToFunc: func(ctx context.Context, eventID uint, incidentNumber int) ([]*fieldreport.FieldReport, error) {
			assert.Equal(t, 7, incidentNumber)
			return []*fieldreport.FieldReport{fr}, nil
		},
	}

	uc := NewGetIncidentUseCase(incidentRepo, frRepo, logger.NewNop())
	result, err := uc.Execute(context.Background(), GetIncidentQuery{EventID: 1, Number: 7})
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "incident note", result.Entries[0].Text)
	assert.Equal(t, "from field report", result.Entries[1].Text)
}

func TestGetIncidentDetachedReportExcluded(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	incidentRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return reconstructedIncident(t, []*report.Entry{
				reconstructedEntry(t, 1, "incident note", false, base),
			}), nil
		},
	}
	frRepo := &mockFieldReportRepository{
		ListAttachedToFunc: func(ctx context.Context, eventID uint, incidentNumber int) ([]*fieldreport.FieldReport, error) {
			return nil, nil // nothing attached
		},
	}

	uc := NewGetIncidentUseCase(incidentRepo, frRepo, logger.NewNop())
	result, err := uc.Execute(context.Background(), GetIncidentQuery{EventID: 1, Number: 7})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "incident note", result.Entries[0].Text)
}

func TestGetIncidentHistoryTogglesStrickenEntries(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	incidentRepo := &mockIncidentRepository{
		FindByNumberFunc: func(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
			return reconstructedIncident(t, []*report.Entry{
				reconstructedEntry(t, 1, "kept", false, base),
				reconstructedEntry(t, 2, "struck", true, base.Add(time.Second)),
			}), nil
		},
	}
	frRepo := &mockFieldReportRepository{}
	uc := NewGetIncidentUseCase(incidentRepo, frRepo, logger.NewNop())

	result, err := uc.Execute(context.Background(), GetIncidentQuery{EventID: 1, Number: 7})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	result, err = uc.Execute(context.Background(), GetIncidentQuery{EventID: 1, Number: 7, ShowHistory: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.True(t, result.Entries[1].Stricken)
}
