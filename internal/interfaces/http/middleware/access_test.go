package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vigil/internal/domain/access"
	"vigil/internal/domain/event"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type mockEventRepo struct {
	findByNameFunc func(ctx context.Context, name string) (*event.Event, error)
}

func (m *mockEventRepo) Save(ctx context.Context, e *event.Event) error { return nil }
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*event.Event, error) {
	return nil, errors.NewNotFoundError("event not found")
}
func (m *mockEventRepo) FindByName(ctx context.Context, name string) (*event.Event, error) {
	return m.findByNameFunc(ctx, name)
}
func (m *mockEventRepo) List(ctx context.Context) ([]*event.Event, error) { return nil, nil }

type mockAccessRepo struct {
	listEntriesFunc func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error)
}

func (m *mockAccessRepo) ListEntries(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
	return m.listEntriesFunc(ctx, eventID, mode)
}
func (m *mockAccessRepo) ReplaceEntry(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error {
	return nil
}
func (m *mockAccessRepo) RemoveEntry(ctx context.Context, eventID uint, mode access.Mode, expression access.Expression) error {
	return nil
}

func knownEvent(t *testing.T) *event.Event {
	e, err := event.ReconstructEvent(7, "burn-2026", time.Now())
	require.NoError(t, err)
	return e
}

func accessTestRouter(m *AccessMiddleware, mode access.Mode, principal *access.Principal, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/events/:event/probe",
		func(c *gin.Context) {
			if principal != nil {
				c.Set(ContextKeyPrincipal, principal)
				c.Set(ContextKeyHandle, principal.Handle)
			}
			c.Set(ContextKeyAdmin, admin)
		},
		m.RequireEventAccess(mode),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"event_id":   EventIDFromContext(c),
				"event_name": EventNameFromContext(c),
			})
		},
	)
	return router
}

func performProbe(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/burn-2026/probe", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireEventAccessGrantsMatchingPrincipal(t *testing.T) {
	entry, err := access.NewAccessEntry("person:hardware", "always")
	require.NoError(t, err)

	events := &mockEventRepo{findByNameFunc: func(ctx context.Context, name string) (*event.Event, error) {
		assert.Equal(t, "burn-2026", name)
		return knownEvent(t), nil
	}}
	entries := &mockAccessRepo{listEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
		assert.Equal(t, uint(7), eventID)
		assert.Equal(t, access.ModeRead, mode)
		return []access.AccessEntry{entry}, nil
	}}

	m := NewAccessMiddleware(events, access.NewEvaluator(entries, logger.NewNop()), logger.NewNop())
	principal := access.NewPrincipal("hardware", nil, nil, false, time.Now().Add(time.Hour))

	w := performProbe(accessTestRouter(m, access.ModeRead, principal, false))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"event_name":"burn-2026"`)
}

func TestRequireEventAccessDeniesNonMatchingPrincipal(t *testing.T) {
	entry, err := access.NewAccessEntry("position:khaki", "always")
	require.NoError(t, err)

	events := &mockEventRepo{findByNameFunc: func(ctx context.Context, name string) (*event.Event, error) {
		return knownEvent(t), nil
	}}
	entries := &mockAccessRepo{listEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
		return []access.AccessEntry{entry}, nil
	}}

	m := NewAccessMiddleware(events, access.NewEvaluator(entries, logger.NewNop()), logger.NewNop())
	principal := access.NewPrincipal("hardware", nil, nil, false, time.Now().Add(time.Hour))

	w := performProbe(accessTestRouter(m, access.ModeWrite, principal, false))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireEventAccessHidesUnknownEvents(t *testing.T) {
	events := &mockEventRepo{findByNameFunc: func(ctx context.Context, name string) (*event.Event, error) {
		return nil, errors.NewNotFoundError("event not found")
	}}
	entries := &mockAccessRepo{listEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
		t.Fatal("evaluator must not run for unknown events")
		return nil, nil
	}}

	m := NewAccessMiddleware(events, access.NewEvaluator(entries, logger.NewNop()), logger.NewNop())
	principal := access.NewPrincipal("hardware", nil, nil, false, time.Now().Add(time.Hour))

	w := performProbe(accessTestRouter(m, access.ModeRead, principal, false))

	// Unknown events answer exactly like denied ones so probing cannot
	// reveal which events exist.
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "access denied")
}

func TestRequireEventAccessAdminBypassesEntries(t *testing.T) {
	events := &mockEventRepo{findByNameFunc: func(ctx context.Context, name string) (*event.Event, error) {
		return knownEvent(t), nil
	}}
	entries := &mockAccessRepo{listEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
		t.Fatal("admins must not consult access entries")
		return nil, nil
	}}

	m := NewAccessMiddleware(events, access.NewEvaluator(entries, logger.NewNop()), logger.NewNop())
	principal := access.NewPrincipal("khaki-boss", nil, nil, false, time.Now().Add(time.Hour))

	w := performProbe(accessTestRouter(m, access.ModeWrite, principal, true))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireEventAccessOnsiteValidityConsultsPresence(t *testing.T) {
	entry, err := access.NewAccessEntry("team:green-dot", "onsite")
	require.NoError(t, err)

	events := &mockEventRepo{findByNameFunc: func(ctx context.Context, name string) (*event.Event, error) {
		return knownEvent(t), nil
	}}
	entries := &mockAccessRepo{listEntriesFunc: func(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
		return []access.AccessEntry{entry}, nil
	}}
	m := NewAccessMiddleware(events, access.NewEvaluator(entries, logger.NewNop()), logger.NewNop())

	offsite := access.NewPrincipal("hardware", nil, []string{"green-dot"}, false, time.Now().Add(time.Hour))
	w := performProbe(accessTestRouter(m, access.ModeRead, offsite, false))
	assert.Equal(t, http.StatusForbidden, w.Code)

	onsite := access.NewPrincipal("hardware", nil, []string{"green-dot"}, true, time.Now().Add(time.Hour))
	w = performProbe(accessTestRouter(m, access.ModeRead, onsite, false))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsNonAdmins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin",
		func(c *gin.Context) { c.Set(ContextKeyAdmin, false) },
		RequireAdmin(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
