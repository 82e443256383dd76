package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
)

// Resolver fetches and caches per-employee catalog entries for the lifetime
// of one enrichment run. Keys are write-once: an employee's template, once
// resolved, is treated as immutable for the rest of the run. Build a fresh
// Resolver per batch; there is no cross-request cache.
type Resolver struct {
	assignments schedule.AssignmentRepository
	logger      *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]schedule.CatalogEntry
}

func NewResolver(assignments schedule.AssignmentRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		assignments: assignments,
		logger:      logger,
		cache:       make(map[string]schedule.CatalogEntry),
	}
}

// Template returns the employee's catalog entry, fetching at most once per
// key: concurrent misses for the same employee are coalesced into a single
// collaborator call. A failed fetch or a missing assignment is cached as an
// explicit empty entry so the batch never re-hits a failing collaborator;
// the employee's rows then reconcile as "cannot evaluate".
func (r *Resolver) Template(ctx context.Context, employeeID string) schedule.CatalogEntry {
	r.mu.RLock()
	entry, ok := r.cache[employeeID]
	r.mu.RUnlock()
	if ok {
		return entry
	}

	v, _, _ := r.group.Do(employeeID, func() (any, error) {
		fetched, err := r.assignments.GetAssignedEntry(ctx, employeeID)
		if err != nil {
			if !errors.Is(err, schedule.ErrNoScheduleAssigned) {
				r.logger.Warn("schedule lookup failed, treating employee as unscheduled",
					"employee_id", employeeID, "error", err)
			}
			fetched = schedule.EmptyEntry()
		}
		r.mu.Lock()
		r.cache[employeeID] = fetched
		r.mu.Unlock()
		return fetched, nil
	})
	return v.(schedule.CatalogEntry)
}
