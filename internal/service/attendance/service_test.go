package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominalab/asistencia-backend/internal/domain/attendance"
	"github.com/nominalab/asistencia-backend/internal/domain/employee"
	"github.com/nominalab/asistencia-backend/internal/domain/schedule"
	"github.com/nominalab/asistencia-backend/internal/domain/user"
	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

// ===== fakes =====

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	att.ID = fmt.Sprintf("att-%d", f.seq)
	att.CreatedAt = time.Now()
	att.UpdatedAt = att.CreatedAt
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date dateparse.Date) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.Date == date {
			copied := att
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && att.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && att.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && att.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, att)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	stored.Entrada = att.Entrada
	stored.Salida = att.Salida
	stored.Observation = att.Observation
	stored.UpdatedAt = time.Now()
	f.records[att.ID] = stored
	return nil
}

func (f *fakeAttendanceRepo) SetStatus(ctx context.Context, id string, status string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	f.records[id] = stored
	return stored, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, att attendance.Attendance) (bool, error) {
	f.mu.Lock()
	existing := ""
	for id, stored := range f.records {
		if stored.EmployeeID == att.EmployeeID && stored.Date == att.Date {
			existing = id
			break
		}
	}
	f.mu.Unlock()

	if existing == "" {
		_, err := f.Create(ctx, att)
		return true, err
	}
	att.ID = existing
	return false, f.Update(ctx, att)
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) add(e employee.Employee) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employees[e.ID] = e
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.add(e)
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.Code == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Active = false
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) CodesToIDs(ctx context.Context, codes []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for _, code := range codes {
		for _, e := range f.employees {
			if e.Code == code && e.Active {
				out[code] = e.ID
			}
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	fetches   atomic.Int64
	entries   map[string]schedule.CatalogEntry
	failFor   map[string]error
	activeDay map[int][]string
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		entries: make(map[string]schedule.CatalogEntry),
		failFor: make(map[string]error),
	}
}

func (f *fakeAssignmentRepo) GetAssignedEntry(ctx context.Context, employeeID string) (schedule.CatalogEntry, error) {
	f.fetches.Add(1)
	if err, ok := f.failFor[employeeID]; ok {
		return schedule.CatalogEntry{}, err
	}
	if e, ok := f.entries[employeeID]; ok {
		return e, nil
	}
	return schedule.CatalogEntry{}, schedule.ErrNoScheduleAssigned
}

func (f *fakeAssignmentRepo) Assign(ctx context.Context, employeeID, workScheduleID string) (schedule.Assignment, error) {
	return schedule.Assignment{}, nil
}

func (f *fakeAssignmentRepo) Unassign(ctx context.Context, employeeID string) error {
	return nil
}

func (f *fakeAssignmentRepo) EmployeesWithActiveDay(ctx context.Context, dayOfWeek int) ([]string, error) {
	return f.activeDay[dayOfWeek], nil
}

// ===== helpers =====

const testTolerance = 10

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(attRepo *fakeAttendanceRepo, empRepo *fakeEmployeeRepo, asgRepo *fakeAssignmentRepo) attendance.AttendanceService {
	return NewAttendanceService(nil, attRepo, empRepo, asgRepo, discardLogger(), testTolerance)
}

func mustDate(t *testing.T, s string) dateparse.Date {
	t.Helper()
	d, err := dateparse.Normalize(s)
	require.NoError(t, err)
	return d
}

func tod(t *testing.T, s string) *dateparse.TimeOfDay {
	t.Helper()
	v, err := dateparse.ParseTimeOfDay(s)
	require.NoError(t, err)
	return &v
}

// weekdaysEntry builds a Monday..Friday 08:00-17:00 template.
func weekdaysEntry(t *testing.T) schedule.CatalogEntry {
	t.Helper()
	var days []schedule.DayTemplate
	for dow := 2; dow <= 6; dow++ {
		days = append(days, schedule.DayTemplate{
			DayOfWeek: dow,
			Entrada:   tod(t, "08:00:00"),
			Salida:    tod(t, "17:00:00"),
			Active:    true,
		})
	}
	return schedule.CatalogEntry{ScheduleID: "sched-weekdays", Days: days}
}

var (
	rrhhCaller  = user.CallerContext{UserID: "user-rrhh", Role: user.RoleRRHH}
	adminCaller = user.CallerContext{UserID: "user-admin", Role: user.RoleAdmin}
)

func empleadoCaller(employeeID string) user.CallerContext {
	return user.CallerContext{UserID: "user-emp", Role: user.RoleEmpleado, EmployeeID: &employeeID}
}

// ===== batch enrichment =====

func TestListBoundsScheduleFetchesByDistinctEmployee(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	asgRepo := newFakeAssignmentRepo()
	ctx := context.Background()

	// 100 rows across 5 distinct employees, 20 weekdays each.
	for e := 0; e < 5; e++ {
		employeeID := fmt.Sprintf("emp-%d", e)
		asgRepo.entries[employeeID] = weekdaysEntry(t)
		day := mustDate(t, "2024-01-08") // Monday
		for r := 0; r < 20; r++ {
			_, err := attRepo.Create(ctx, attendance.Attendance{
				EmployeeID: employeeID,
				Date:       day,
				Entrada:    tod(t, "08:05:00"),
				Status:     attendance.StatusPendiente,
			})
			require.NoError(t, err)
			next, err := dateparse.FromTime(day.Time().AddDate(0, 0, 1))
			require.NoError(t, err)
			day = next
		}
	}

	svc := newTestService(attRepo, empRepo, asgRepo)
	resp, err := svc.List(ctx, rrhhCaller, attendance.Filter{Limit: 200})
	require.NoError(t, err)
	require.Len(t, resp.Attendances, 100)

	// Lookups are bounded by distinct employees, not rows.
	assert.LessOrEqual(t, asgRepo.fetches.Load(), int64(5))
}

func TestListPreservesRowOrder(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	asgRepo := newFakeAssignmentRepo()
	ctx := context.Background()

	dates := []string{"2024-01-08", "2024-01-09", "2024-01-10"}
	for _, d := range dates {
		_, err := attRepo.Create(ctx, attendance.Attendance{
			EmployeeID: "emp-1",
			Date:       mustDate(t, d),
			Status:     attendance.StatusPendiente,
		})
		require.NoError(t, err)
	}

	svc := newTestService(attRepo, empRepo, asgRepo)
	resp, err := svc.List(ctx, rrhhCaller, attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, resp.Attendances, 3)
	for i, d := range dates {
		assert.Equal(t, d, resp.Attendances[i].Date)
	}
}

func TestListComputesLatenessAgainstTemplate(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	asgRepo := newFakeAssignmentRepo()
	asgRepo.entries["emp-1"] = weekdaysEntry(t)
	ctx := context.Background()

	monday := mustDate(t, "2024-01-08")
	_, err := attRepo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1", Date: monday, Entrada: tod(t, "08:10:00"), Status: attendance.StatusPendiente,
	})
	require.NoError(t, err)
	tuesday := mustDate(t, "2024-01-09")
	_, err = attRepo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1", Date: tuesday, Entrada: tod(t, "08:11:00"), Status: attendance.StatusPendiente,
	})
	require.NoError(t, err)
	wednesday := mustDate(t, "2024-01-10")
	_, err = attRepo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1", Date: wednesday, Status: attendance.StatusPendiente,
	})
	require.NoError(t, err)

	svc := newTestService(attRepo, empRepo, asgRepo)
	resp, err := svc.List(ctx, rrhhCaller, attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, resp.Attendances, 3)

	// 08:10 with tolerance 10 is exactly on the boundary: on time.
	rec := resp.Attendances[0].Reconciliation
	require.True(t, rec.Applies)
	assert.False(t, *rec.IsLate)
	assert.False(t, *rec.IsAbsent)

	// 08:11 is one minute past the inclusive threshold.
	rec = resp.Attendances[1].Reconciliation
	assert.True(t, *rec.IsLate)

	// No punch at all: absent, not late.
	rec = resp.Attendances[2].Reconciliation
	assert.True(t, *rec.IsAbsent)
	assert.False(t, *rec.IsLate)
	assert.Equal(t, "08:00:00", *rec.ExpectedEntrada)
}

func TestListDegradesWhenOneEmployeeFetchFails(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	asgRepo := newFakeAssignmentRepo()
	asgRepo.entries["emp-ok"] = weekdaysEntry(t)
	asgRepo.failFor["emp-bad"] = errors.New("catalog unavailable")
	ctx := context.Background()

	monday := mustDate(t, "2024-01-08")
	for _, id := range []string{"emp-bad", "emp-ok"} {
		_, err := attRepo.Create(ctx, attendance.Attendance{
			EmployeeID: id, Date: monday, Entrada: tod(t, "08:00:00"), Status: attendance.StatusPendiente,
		})
		require.NoError(t, err)
	}

	svc := newTestService(attRepo, empRepo, asgRepo)
	resp, err := svc.List(ctx, rrhhCaller, attendance.Filter{})
	// The failing employee degrades; the batch itself succeeds.
	require.NoError(t, err)
	require.Len(t, resp.Attendances, 2)

	byEmployee := map[string]attendance.AttendanceResponse{}
	for _, r := range resp.Attendances {
		byEmployee[r.EmployeeID] = r
	}
	bad := byEmployee["emp-bad"].Reconciliation
	assert.False(t, bad.Applies)
	assert.Nil(t, bad.IsLate)
	assert.Nil(t, bad.IsAbsent)

	ok := byEmployee["emp-ok"].Reconciliation
	assert.True(t, ok.Applies)
	assert.False(t, *ok.IsLate)
}

func TestListScopesEmpleadoToOwnRows(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	asgRepo := newFakeAssignmentRepo()
	ctx := context.Background()

	monday := mustDate(t, "2024-01-08")
	for _, id := range []string{"emp-1", "emp-2"} {
		_, err := attRepo.Create(ctx, attendance.Attendance{
			EmployeeID: id, Date: monday, Status: attendance.StatusPendiente,
		})
		require.NoError(t, err)
	}

	svc := newTestService(attRepo, empRepo, asgRepo)

	resp, err := svc.List(ctx, empleadoCaller("emp-1"), attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, resp.Attendances, 1)
	assert.Equal(t, "emp-1", resp.Attendances[0].EmployeeID)

	// Asking for someone else's rows is refused outright.
	other := "emp-2"
	_, err = svc.List(ctx, empleadoCaller("emp-1"), attendance.Filter{EmployeeID: &other})
	assert.ErrorIs(t, err, user.ErrOwnRecordsOnly)
}

// ===== state workflow =====

func seedPunch(t *testing.T, attRepo *fakeAttendanceRepo) attendance.Attendance {
	t.Helper()
	att, err := attRepo.Create(context.Background(), attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       mustDate(t, "2024-01-08"),
		Entrada:    tod(t, "08:00:00"),
		Status:     attendance.StatusPendiente,
	})
	require.NoError(t, err)
	return att
}

func TestSetStatusConfirmIsIdempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo(), newFakeAssignmentRepo())
	ctx := context.Background()
	att := seedPunch(t, attRepo)

	first, err := svc.SetStatus(ctx, rrhhCaller, att.ID, attendance.SetStatusRequest{Status: attendance.StatusConfirmada})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmada, first.Status)

	// Confirming again is a no-op, not an error.
	second, err := svc.SetStatus(ctx, rrhhCaller, att.ID, attendance.SetStatusRequest{Status: attendance.StatusConfirmada})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmada, second.Status)
}

func TestSetStatusUnconfirmRoundTrip(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo(), newFakeAssignmentRepo())
	ctx := context.Background()
	att := seedPunch(t, attRepo)

	_, err := svc.SetStatus(ctx, adminCaller, att.ID, attendance.SetStatusRequest{Status: attendance.StatusConfirmada})
	require.NoError(t, err)

	back, err := svc.SetStatus(ctx, adminCaller, att.ID, attendance.SetStatusRequest{Status: attendance.StatusPendiente})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPendiente, back.Status)

	stored, err := attRepo.GetByID(ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPendiente, stored.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo(), newFakeAssignmentRepo())
	att := seedPunch(t, attRepo)

	_, err := svc.SetStatus(context.Background(), rrhhCaller, att.ID, attendance.SetStatusRequest{Status: "Rechazada"})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestSetStatusRequiresValidatorRole(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo(), newFakeAssignmentRepo())
	att := seedPunch(t, attRepo)

	_, err := svc.SetStatus(context.Background(), empleadoCaller("emp-1"), att.ID, attendance.SetStatusRequest{Status: attendance.StatusConfirmada})
	assert.ErrorIs(t, err, user.ErrValidatorRequired)
}

func TestUpdateEditPreservesConfirmedStatus(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, newFakeEmployeeRepo(), newFakeAssignmentRepo())
	ctx := context.Background()
	att := seedPunch(t, attRepo)

	_, err := svc.SetStatus(ctx, rrhhCaller, att.ID, attendance.SetStatusRequest{Status: attendance.StatusConfirmada})
	require.NoError(t, err)

	entrada := "09:15:00"
	obs := "corrected after review"
	updated, err := svc.Update(ctx, rrhhCaller, attendance.UpdateAttendanceRequest{
		ID:          attUUID(att.ID, t, attRepo),
		Entrada:     &entrada,
		Observation: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:15:00", *updated.Entrada)
	assert.Equal(t, obs, updated.Observation)
	// A correction edit never changes the confirmation status.
	assert.Equal(t, attendance.StatusConfirmada, updated.Status)
}

// attUUID rewrites a fake sequential id into a UUID so request validation
// passes, keeping the underlying record.
func attUUID(id string, t *testing.T, repo *fakeAttendanceRepo) string {
	t.Helper()
	const fixed = "6f1d2c3b-4a5e-4f60-8b71-9c0d1e2f3a4b"
	repo.mu.Lock()
	defer repo.mu.Unlock()
	att, ok := repo.records[id]
	require.True(t, ok)
	delete(repo.records, id)
	att.ID = fixed
	repo.records[fixed] = att
	return fixed
}

// ===== create =====

const (
	empUUID   = "3c9f2b1a-8d4e-4c5f-9a6b-7c8d9e0f1a2b"
	otherUUID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func TestCreateRejectsDuplicateDay(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	empRepo.add(employee.Employee{ID: empUUID, Code: "0001", FirstName: "Ana", Active: true})
	svc := newTestService(attRepo, empRepo, newFakeAssignmentRepo())
	ctx := context.Background()

	entrada := "08:00:00"
	req := attendance.CreateAttendanceRequest{EmployeeID: empUUID, Date: "2024-01-08", Entrada: &entrada}

	_, err := svc.Create(ctx, rrhhCaller, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, rrhhCaller, req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
}

func TestCreateNormalizesHeterogeneousDates(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo()
	empRepo.add(employee.Employee{ID: empUUID, Code: "0001", FirstName: "Ana", Active: true})
	svc := newTestService(attRepo, empRepo, newFakeAssignmentRepo())
	ctx := context.Background()

	cases := []struct {
		date any
		want string
	}{
		{"2024-01-08", "2024-01-08"},
		{"09/01/2024", "2024-01-09"},
		{float64(45301), "2024-01-10"}, // spreadsheet serial, JSON number
	}
	for _, c := range cases {
		resp, err := svc.Create(ctx, rrhhCaller, attendance.CreateAttendanceRequest{EmployeeID: empUUID, Date: c.date})
		require.NoError(t, err, "date %v", c.date)
		assert.Equal(t, c.want, resp.Date)
		assert.Equal(t, attendance.StatusPendiente, resp.Status)
	}
}

func TestCreateRejectsUnparseableDate(t *testing.T) {
	empRepo := newFakeEmployeeRepo()
	empRepo.add(employee.Employee{ID: empUUID, Code: "0001", FirstName: "Ana", Active: true})
	svc := newTestService(newFakeAttendanceRepo(), empRepo, newFakeAssignmentRepo())

	_, err := svc.Create(context.Background(), rrhhCaller, attendance.CreateAttendanceRequest{
		EmployeeID: empUUID,
		Date:       "2024-02-30",
	})
	assert.ErrorIs(t, err, dateparse.ErrUnparseableDate)
}

func TestCreateEmpleadoOnlyForOwnRecord(t *testing.T) {
	empRepo := newFakeEmployeeRepo()
	empRepo.add(employee.Employee{ID: empUUID, Code: "0001", FirstName: "Ana", Active: true})
	svc := newTestService(newFakeAttendanceRepo(), empRepo, newFakeAssignmentRepo())

	_, err := svc.Create(context.Background(), empleadoCaller(otherUUID), attendance.CreateAttendanceRequest{
		EmployeeID: empUUID,
		Date:       "2024-01-08",
	})
	assert.ErrorIs(t, err, user.ErrOwnRecordsOnly)
}

// ===== absence materializer =====

func TestMaterializeAbsencesCreatesMissingRows(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	asgRepo := newFakeAssignmentRepo()
	asgRepo.activeDay = map[int][]string{
		2: {"emp-1", "emp-2", "emp-3"}, // Monday slot
	}
	svc := newTestService(attRepo, newFakeEmployeeRepo(), asgRepo)
	ctx := context.Background()
	monday := mustDate(t, "2024-01-08")

	// emp-2 already punched that day.
	_, err := attRepo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-2", Date: monday, Entrada: tod(t, "08:00:00"), Status: attendance.StatusPendiente,
	})
	require.NoError(t, err)

	created, err := svc.MaterializeAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	for _, id := range []string{"emp-1", "emp-3"} {
		row, err := attRepo.GetByEmployeeAndDate(ctx, id, monday)
		require.NoError(t, err)
		require.NotNil(t, row, "employee %s", id)
		assert.Nil(t, row.Entrada)
		assert.Equal(t, attendance.StatusPendiente, row.Status)
	}

	// Running again creates nothing new.
	createdAgain, err := svc.MaterializeAbsences(ctx, monday)
	require.NoError(t, err)
	assert.Zero(t, createdAgain)
}
