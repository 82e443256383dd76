package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// countingAssignmentRepo counts collaborator fetches per employee and can be
// told to fail or stall.
type countingAssignmentRepo struct {
	fetches  atomic.Int64
	failFor  map[string]error
	delay    time.Duration
	entries  map[string]schedule.CatalogEntry
}

func (f *countingAssignmentRepo) GetAssignedEntry(ctx context.Context, employeeID string) (schedule.CatalogEntry, error) {
	f.fetches.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.failFor[employeeID]; ok {
		return schedule.CatalogEntry{}, err
	}
	if e, ok := f.entries[employeeID]; ok {
		return e, nil
	}
	return schedule.CatalogEntry{}, schedule.ErrNoScheduleAssigned
}

func (f *countingAssignmentRepo) Assign(ctx context.Context, employeeID, workScheduleID string) (schedule.Assignment, error) {
	return schedule.Assignment{}, nil
}

func (f *countingAssignmentRepo) Unassign(ctx context.Context, employeeID string) error {
	return nil
}

func (f *countingAssignmentRepo) EmployeesWithActiveDay(ctx context.Context, dayOfWeek int) ([]string, error) {
	return nil, nil
}

func testEntry(t *testing.T) schedule.CatalogEntry {
	t.Helper()
	entrada, err := dateparse.ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	salida, err := dateparse.ParseTimeOfDay("17:00:00")
	require.NoError(t, err)
	return schedule.CatalogEntry{
		ScheduleID: "sched-1",
		Days: []schedule.DayTemplate{
			{DayOfWeek: 2, Entrada: &entrada, Salida: &salida, Active: true},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolverCachesPerEmployee(t *testing.T) {
	repo := &countingAssignmentRepo{entries: map[string]schedule.CatalogEntry{"emp-1": testEntry(t)}}
	r := NewResolver(repo, discardLogger())
	ctx := context.Background()

	first := r.Template(ctx, "emp-1")
	second := r.Template(ctx, "emp-1")

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, repo.fetches.Load())
}

func TestResolverCoalescesConcurrentFetches(t *testing.T) {
	repo := &countingAssignmentRepo{
		entries: map[string]schedule.CatalogEntry{"emp-1": testEntry(t)},
		delay:   20 * time.Millisecond,
	}
	r := NewResolver(repo, discardLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			entry := r.Template(ctx, "emp-1")
			assert.Equal(t, "sched-1", entry.ScheduleID)
		}()
	}
	close(start)
	wg.Wait()

	// At most one fetch in flight per key: 50 concurrent misses, 1 call.
	assert.EqualValues(t, 1, repo.fetches.Load())
}

func TestResolverIndependentKeys(t *testing.T) {
	repo := &countingAssignmentRepo{entries: map[string]schedule.CatalogEntry{
		"emp-1": testEntry(t),
		"emp-2": testEntry(t),
	}}
	r := NewResolver(repo, discardLogger())
	ctx := context.Background()

	r.Template(ctx, "emp-1")
	r.Template(ctx, "emp-2")
	r.Template(ctx, "emp-1")
	r.Template(ctx, "emp-2")

	assert.EqualValues(t, 2, repo.fetches.Load())
}

func TestResolverCachesEmptyOnFailure(t *testing.T) {
	repo := &countingAssignmentRepo{
		failFor: map[string]error{"emp-1": errors.New("connection refused")},
	}
	r := NewResolver(repo, discardLogger())
	ctx := context.Background()

	entry := r.Template(ctx, "emp-1")
	assert.Empty(t, entry.Days)

	// The failure is cached; repeated calls do not re-trigger the fetch.
	r.Template(ctx, "emp-1")
	r.Template(ctx, "emp-1")
	assert.EqualValues(t, 1, repo.fetches.Load())
}

func TestResolverCachesEmptyOnNoAssignment(t *testing.T) {
	repo := &countingAssignmentRepo{}
	r := NewResolver(repo, discardLogger())

	entry := r.Template(context.Background(), "emp-unassigned")
	assert.Empty(t, entry.Days)
	assert.EqualValues(t, 1, repo.fetches.Load())
}
