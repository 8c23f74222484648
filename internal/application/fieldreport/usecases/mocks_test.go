package usecases

import (
	"context"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
)

type mockFieldReportRepository struct {
	SaveFunc           func(ctx context.Context, fr *fieldreport.FieldReport) error
	UpdateFunc         func(ctx context.Context, fr *fieldreport.FieldReport) error
	FindByNumberFunc   func(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error)
	ListFunc           func(ctx context.Context, eventID uint) ([]*fieldreport.FieldReport, error)
	ListAttachedToFunc func(ctx context.Context, eventID uint, incidentNumber int) ([]*fieldreport.FieldReport, error)
}

func (m *mockFieldReportRepository) Save(ctx context.Context, fr *fieldreport.FieldReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, fr)
	}
	return nil
}

func (m *mockFieldReportRepository) Update(ctx context.Context, fr *fieldreport.FieldReport) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, fr)
	}
	return nil
}

func (m *mockFieldReportRepository) FindByNumber(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, eventID, number)
	}
	return nil, nil
}

func (m *mockFieldReportRepository) List(ctx context.Context, eventID uint) ([]*fieldreport.FieldReport, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockFieldReportRepository) ListAttachedTo(ctx context.Context, eventID uint, incidentNumber int) ([]*fieldreport.FieldReport, error) {
	if m.ListAttachedToFunc != nil {
		return m.ListAttachedToFunc(ctx, eventID, incidentNumber)
	}
	return nil, nil
}

type mockIncidentRepository struct {
	SaveFunc         func(ctx context.Context, inc *incident.Incident) error
	UpdateFunc       func(ctx context.Context, inc *incident.Incident) error
	FindByNumberFunc func(ctx context.Context, eventID uint, number int) (*incident.Incident, error)
	ListFunc         func(ctx context.Context, eventID uint) ([]*incident.Incident, error)
}

func (m *mockIncidentRepository) Save(ctx context.Context, inc *incident.Incident) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, inc)
	}
	return nil
}

func (m *mockIncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inc)
	}
	return nil
}

func (m *mockIncidentRepository) FindByNumber(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, eventID, number)
	}
	return nil, nil
}

func (m *mockIncidentRepository) List(ctx context.Context, eventID uint) ([]*incident.Incident, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, eventID)
	}
	return nil, nil
}

type mockEntryRepository struct {
	AppendFunc        func(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint, entry *report.Entry) error
	ListForParentFunc func(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint) ([]*report.Entry, error)
	FindByIDFunc      func(ctx context.Context, eventID uint, entryID uint) (*report.Entry, error)
	ParentRefFunc     func(ctx context.Context, eventID uint, entryID uint) (report.ParentKind, int, error)
	SetStrickenFunc   func(ctx context.Context, eventID uint, entryID uint, stricken bool) error
}

func (m *mockEntryRepository) Append(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint, entry *report.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, eventID, kind, parentID, entry)
	}
	return nil
}

func (m *mockEntryRepository) ListForParent(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint) ([]*report.Entry, error) {
	if m.ListForParentFunc != nil {
		return m.ListForParentFunc(ctx, eventID, kind, parentID)
	}
	return nil, nil
}

func (m *mockEntryRepository) FindByID(ctx context.Context, eventID uint, entryID uint) (*report.Entry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, eventID, entryID)
	}
	return nil, nil
}

func (m *mockEntryRepository) ParentRef(ctx context.Context, eventID uint, entryID uint) (report.ParentKind, int, error) {
	if m.ParentRefFunc != nil {
		return m.ParentRefFunc(ctx, eventID, entryID)
	}
	return report.ParentFieldReport, 0, nil
}

func (m *mockEntryRepository) SetStricken(ctx context.Context, eventID uint, entryID uint, stricken bool) error {
	if m.SetStrickenFunc != nil {
		return m.SetStrickenFunc(ctx, eventID, entryID, stricken)
	}
	return nil
}

type mockTxRunner struct{}

func (mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type publishedChange struct {
	eventID uint
	kind    string
	number  int
}

type mockNotifier struct {
	published []publishedChange
}

func (m *mockNotifier) Publish(eventID uint, kind string, number int) {
	m.published = append(m.published, publishedChange{eventID: eventID, kind: kind, number: number})
}
