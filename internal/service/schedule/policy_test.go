package schedule

import (
	"context"
	"testing"
	"time"

	domain "github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	ws domain.WorkSchedule
}

func (f *fakeScheduleRepo) GetByCompany(ctx context.Context, companyID string) (domain.WorkSchedule, error) {
	return f.ws, nil
}

type fakeHolidayRepo struct {
	holidays map[string]bool
	list     []domain.Holiday
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return f.holidays[date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]domain.Holiday, error) {
	var out []domain.Holiday
	for _, h := range f.list {
		if h.CompanyID == companyID && !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func testWorkSchedule() domain.WorkSchedule {
	return domain.WorkSchedule{
		ID:        "ws-1",
		CompanyID: "company-1",
		Timezone:  "Asia/Jakarta",
		Workdays:  []int{1, 2, 3, 4, 5},
		Regular: domain.DayWindow{
			StartTime:       "09:00",
			EndTime:         "17:00",
			RequiredMinutes: 480,
			GraceMinutes:    0,
		},
		Shortened: domain.DayWindow{
			StartTime:       "09:00",
			EndTime:         "15:00",
			RequiredMinutes: 360,
			GraceMinutes:    10,
		},
		ShortenedWeekday: 5, // Friday
	}
}

func newTestPolicy(ws domain.WorkSchedule, holidays map[string]bool) domain.TimeWindowPolicy {
	return NewTimeWindowPolicy(
		&fakeScheduleRepo{ws: ws},
		&fakeHolidayRepo{holidays: holidays},
		clock.Fixed{Instant: time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)},
	)
}

func TestResolveDate_Workday(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), nil)

	// 2025-06-02 is a Monday.
	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	require.NoError(t, err)

	assert.Equal(t, domain.DayKindWorkday, window.Kind)
	assert.Equal(t, 480, window.RequiredMinutes)

	// 09:00 Jakarta is 02:00 UTC.
	expectedStart := time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)
	assert.True(t, window.WindowStart.Equal(expectedStart))
	expectedEnd := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	assert.True(t, window.WindowEnd.Equal(expectedEnd))
}

func TestResolveDate_Weekend(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), nil)

	// 2025-06-07 is a Saturday.
	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 7)
	require.NoError(t, err)

	assert.Equal(t, domain.DayKindWeekend, window.Kind)
	assert.Equal(t, 0, window.RequiredMinutes)
	assert.True(t, window.WindowStart.IsZero())
	assert.True(t, window.WindowEnd.IsZero())
}

func TestResolveDate_HolidayWinsOverWeekend(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), map[string]bool{"2025-06-07": true})

	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 7)
	require.NoError(t, err)

	assert.Equal(t, domain.DayKindHoliday, window.Kind)
	assert.Equal(t, 0, window.RequiredMinutes)
}

func TestResolveDate_HolidayOnWorkday(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), map[string]bool{"2025-06-02": true})

	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	require.NoError(t, err)

	assert.Equal(t, domain.DayKindHoliday, window.Kind)
	assert.Equal(t, 0, window.RequiredMinutes)
}

func TestResolveDate_ShortenedWeekday(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), nil)

	// 2025-06-06 is a Friday, the configured shortened day.
	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 6)
	require.NoError(t, err)

	assert.Equal(t, domain.DayKindWorkday, window.Kind)
	assert.Equal(t, 360, window.RequiredMinutes)
	assert.Equal(t, 10, window.GraceMinutes)
}

func TestResolveAt_CrossesDateBoundary(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), nil)

	// 18:30 UTC on June 2 is already 01:30 June 3 in Jakarta.
	at := time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)
	window, err := policy.ResolveAt(context.Background(), "company-1", at)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", window.LocalDate.Format("2006-01-02"))
}

func TestResolveDate_Guards(t *testing.T) {
	ws := testWorkSchedule()
	ws.EarliestCheckInEnabled = true
	ws.EarliestCheckInTime = "07:00"
	ws.LatestCheckOutEnabled = true
	ws.LatestCheckOutTime = "22:00"
	policy := newTestPolicy(ws, nil)

	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	require.NoError(t, err)

	require.NotNil(t, window.EarliestCheckIn)
	assert.True(t, window.EarliestCheckIn.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, window.LatestCheckOut)
	assert.True(t, window.LatestCheckOut.Equal(time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)))
}

func TestResolveDate_GuardsDisabled(t *testing.T) {
	policy := newTestPolicy(testWorkSchedule(), nil)

	window, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	require.NoError(t, err)

	assert.Nil(t, window.EarliestCheckIn)
	assert.Nil(t, window.LatestCheckOut)
}

func TestResolveDate_UnknownTimezoneFailsClosed(t *testing.T) {
	ws := testWorkSchedule()
	ws.Timezone = "Not/AZone"
	policy := newTestPolicy(ws, nil)

	_, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	assert.ErrorIs(t, err, domain.ErrTimezoneUnavailable)
}

func TestResolveDate_InvalidWindowTime(t *testing.T) {
	ws := testWorkSchedule()
	ws.Regular.StartTime = "9am"
	policy := newTestPolicy(ws, nil)

	_, err := policy.ResolveDate(context.Background(), "company-1", 2025, time.June, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidWindowTime)
}
