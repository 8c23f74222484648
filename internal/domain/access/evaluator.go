package access

import (
	"context"
	"time"

	"vigil/internal/shared/logger"
)

// Evaluator decides whether a principal may act on an event in a given
// mode. The decision is recomputed per request; nothing about the principal
// is cached between evaluations. Administrative principals bypass the
// evaluator entirely and are handled out of band.
type Evaluator struct {
	repo   Repository
	logger logger.Interface
}

// NewEvaluator creates an Evaluator backed by the given entry repository.
func NewEvaluator(repo Repository, log logger.Interface) *Evaluator {
	return &Evaluator{
		repo:   repo,
		logger: log,
	}
}

// CheckAccess reports whether the principal has the mode on the event.
// Access is granted if any stored entry for (event, mode) matches the
// principal and is currently valid. An unauthenticated (nil) or expired
// principal is always denied. The only error return is a storage failure.
func (e *Evaluator) CheckAccess(ctx context.Context, p *Principal, eventID uint, mode Mode) (bool, error) {
	if p == nil || p.Handle == "" {
		return false, nil
	}
	if p.Expired(time.Now()) {
		return false, nil
	}

	entries, err := e.repo.ListEntries(ctx, eventID, mode)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if entry.Grants(p) {
			e.logger.Debugw("access granted",
				"handle", p.Handle,
				"event_id", eventID,
				"mode", mode,
				"expression", entry.Expression.String(),
			)
			return true, nil
		}
	}

	return false, nil
}
