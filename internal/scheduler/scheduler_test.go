package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/report"
)

type fakeUsers struct {
	list []domain.User
	err  error
}

func (f *fakeUsers) GetOrCreate(ctx context.Context, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUsers) GetByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUsers) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUsers) ListOnboarded(ctx context.Context) ([]domain.User, error) {
	return f.list, f.err
}

type fakeDaily struct {
	records map[string]*domain.DailyRecord
}

func newFakeDaily() *fakeDaily {
	return &fakeDaily{records: make(map[string]*domain.DailyRecord)}
}

func (f *fakeDaily) GetOrCreate(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	key := fmt.Sprintf("%d/%s", userID, date.Format("2006-01-02"))
	if r, ok := f.records[key]; ok {
		return r, nil
	}
	r := &domain.DailyRecord{UserID: userID, Date: date}
	f.records[key] = r
	return r, nil
}
func (f *fakeDaily) Find(ctx context.Context, userID int64, date time.Time) (*domain.DailyRecord, error) {
	key := fmt.Sprintf("%d/%s", userID, date.Format("2006-01-02"))
	if r, ok := f.records[key]; ok {
		return r, nil
	}
	return nil, domain.ErrRecordNotFound
}
func (f *fakeDaily) Save(ctx context.Context, record *domain.DailyRecord) error { return nil }
func (f *fakeDaily) Range(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyRecord, error) {
	return nil, nil
}

type fakeSentLog struct {
	sent map[string]bool
}

func newFakeSentLog() *fakeSentLog { return &fakeSentLog{sent: make(map[string]bool)} }

func logKey(userID int64, kind domain.NotificationKind, period string) string {
	return fmt.Sprintf("%d/%s/%s", userID, kind, period)
}

func (f *fakeSentLog) Sent(ctx context.Context, userID int64, kind domain.NotificationKind, period string) (bool, error) {
	return f.sent[logKey(userID, kind, period)], nil
}
func (f *fakeSentLog) MarkSent(ctx context.Context, userID int64, kind domain.NotificationKind, period string) error {
	f.sent[logKey(userID, kind, period)] = true
	return nil
}

type fakeMeasurements struct{}

func (fakeMeasurements) Upsert(ctx context.Context, m *domain.MonthlyMeasurement) error { return nil }
func (fakeMeasurements) ForMonth(ctx context.Context, userID int64, month time.Time) (*domain.MonthlyMeasurement, error) {
	return nil, domain.ErrRecordNotFound
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeMessenger struct {
	sent    []sentMessage
	failFor map[int64]error
}

func (f *fakeMessenger) SendText(ctx context.Context, chatID int64, text string) error {
	if err := f.failFor[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func testUser(id int64, tz string) domain.User {
	return domain.User{
		ID:          id,
		ChatID:      id * 100,
		FirstName:   "Alex",
		Timezone:    tz,
		MorningTime: "08:00",
		EveningTime: "21:00",
	}
}

func newTestScheduler(users *fakeUsers) (*Scheduler, *fakeDaily, *fakeSentLog, *fakeMessenger) {
	daily := newFakeDaily()
	sentLog := newFakeSentLog()
	messenger := &fakeMessenger{failFor: make(map[int64]error)}
	reports := report.NewService(daily, fakeMeasurements{})
	s := New(DefaultConfig(), users, daily, sentLog, reports, messenger)
	return s, daily, sentLog, messenger
}

// at builds a UTC reference instant that corresponds to the given local wall
// clock in the given zone.
func at(t *testing.T, tz string, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)
	return time.Date(year, month, day, hour, minute, 0, 0, loc).UTC()
}

func TestSweepMorningWindow(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "Europe/Berlin")}}
	s, _, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	// Before the window: nothing.
	require.NoError(t, s.Sweep(ctx, at(t, "Europe/Berlin", 2025, 6, 16, 7, 59)))
	require.Empty(t, messenger.sent)

	// Inside the window.
	require.NoError(t, s.Sweep(ctx, at(t, "Europe/Berlin", 2025, 6, 16, 8, 5)))
	require.Len(t, messenger.sent, 1)
	require.Contains(t, messenger.sent[0].text, "Good morning, Alex")

	// Past the window: nothing new.
	require.NoError(t, s.Sweep(ctx, at(t, "Europe/Berlin", 2025, 6, 16, 8, 20)))
	require.Len(t, messenger.sent, 1)
}

func TestSweepNeverCreatesDailyRecords(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, daily, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	// Morning, evening and water reminders all fire off pure reads; the
	// record only comes into existence when the user answers.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 8, 0)))
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 11, 31)))
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 21, 0)))
	require.Len(t, messenger.sent, 3)
	require.Empty(t, daily.records)
}

func TestSweepMorningSkipsWhenDone(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, daily, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	record, err := daily.GetOrCreate(ctx, 1, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	energy := 4
	record.MorningEnergy = &energy

	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 8, 0)))
	require.Empty(t, messenger.sent)
}

func TestSweepUsesUserTimezone(t *testing.T) {
	users := &fakeUsers{list: []domain.User{
		testUser(1, "Asia/Tokyo"),
		testUser(2, "America/New_York"),
	}}
	s, _, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	// 08:05 in Tokyo is the middle of the night in New York.
	require.NoError(t, s.Sweep(ctx, at(t, "Asia/Tokyo", 2025, 6, 16, 8, 5)))
	require.Len(t, messenger.sent, 1)
	require.Equal(t, int64(100), messenger.sent[0].chatID)
}

func TestSweepEveningSkipsWhenDone(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, daily, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 21, 10)))
	require.Len(t, messenger.sent, 1)
	require.Contains(t, messenger.sent[0].text, "evening check-in")

	record, err := daily.GetOrCreate(ctx, 1, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	mood := domain.MoodGood
	record.EveningMood = &mood

	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 21, 12)))
	require.Len(t, messenger.sent, 1)
}

func TestSweepWaterWindow(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, _, _, messenger := newTestScheduler(users)
	ctx := context.Background()

	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 11, 31)))
	require.Len(t, messenger.sent, 1)
	require.Contains(t, messenger.sent[0].text, "water")

	// Outside the narrow window.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 11, 40)))
	require.Len(t, messenger.sent, 1)

	// Second configured hour fires independently.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 15, 30)))
	require.Len(t, messenger.sent, 2)
}

func TestSweepWeeklyReportOncePerWeek(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, _, sentLog, messenger := newTestScheduler(users)
	ctx := context.Background()

	// 2025-06-15 is a Sunday.
	sunday := at(t, "UTC", 2025, 6, 15, 22, 5)
	require.NoError(t, s.Sweep(ctx, sunday))
	require.Len(t, messenger.sent, 1)
	require.Contains(t, messenger.sent[0].text, "Weekly summary")

	// A repeated sweep inside the window is deduplicated by the log.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 15, 22, 10)))
	require.Len(t, messenger.sent, 1)
	require.True(t, sentLog.sent[logKey(1, domain.NotifyWeeklyReport, "2025-W24")])

	// Not on other weekdays.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 22, 5)))
	require.Len(t, messenger.sent, 1)
}

func TestSweepMonthlyReportLastDayOnly(t *testing.T) {
	users := &fakeUsers{list: []domain.User{testUser(1, "UTC")}}
	s, _, sentLog, messenger := newTestScheduler(users)
	ctx := context.Background()

	// June 30 2025 is a Monday, so the weekly branch stays quiet.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 30, 22, 3)))
	require.Len(t, messenger.sent, 1)
	require.Contains(t, messenger.sent[0].text, "Monthly summary")
	require.True(t, sentLog.sent[logKey(1, domain.NotifyMonthlyReport, "2025-06")])

	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 30, 22, 8)))
	require.Len(t, messenger.sent, 1)

	// Mid-month never fires.
	require.NoError(t, s.Sweep(ctx, at(t, "UTC", 2025, 6, 20, 22, 3)))
	require.Len(t, messenger.sent, 1)
}

func TestSweepIsolatesUserFailures(t *testing.T) {
	users := &fakeUsers{list: []domain.User{
		testUser(1, "UTC"),
		testUser(2, "UTC"),
		testUser(3, "UTC"),
	}}
	s, _, _, messenger := newTestScheduler(users)
	messenger.failFor[200] = errors.New("chat blocked")
	ctx := context.Background()

	err := s.Sweep(ctx, at(t, "UTC", 2025, 6, 16, 8, 0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "user 2")

	// Users 1 and 3 still got their messages.
	require.Len(t, messenger.sent, 2)
	require.Equal(t, int64(100), messenger.sent[0].chatID)
	require.Equal(t, int64(300), messenger.sent[1].chatID)
}

func TestSweepBadTimezoneIsolated(t *testing.T) {
	broken := testUser(1, "Mars/Olympus")
	users := &fakeUsers{list: []domain.User{broken, testUser(2, "UTC")}}
	s, _, _, messenger := newTestScheduler(users)

	err := s.Sweep(context.Background(), at(t, "UTC", 2025, 6, 16, 8, 0))
	require.Error(t, err)
	require.Len(t, messenger.sent, 1)
	require.Equal(t, int64(200), messenger.sent[0].chatID)
}

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"08:00", 8, 0, true},
		{"23:59", 23, 59, true},
		{"0:5", 0, 5, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		hour, minute, ok := parseHHMM(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			require.Equal(t, tc.hour, hour, tc.in)
			require.Equal(t, tc.minute, minute, tc.in)
		}
	}
}
