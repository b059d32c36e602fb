// Package scheduler delivers time-of-day notifications. A periodic sweep
// walks every onboarded user, converts the reference clock into the user's
// timezone and sends whatever falls inside the current window. Idempotency is
// data-derived for daily kinds and persisted for weekly and monthly reports.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bezzego/healthy-bot-AI/internal/domain"
	"github.com/bezzego/healthy-bot-AI/internal/observability"
	"github.com/bezzego/healthy-bot-AI/internal/report"
)

// Messenger sends one text message to a chat.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Config tunes the sweep cadence and delivery windows.
type Config struct {
	SweepInterval time.Duration
	// WindowMinutes is how far past the target time a daily notification may
	// still fire. Must cover the sweep interval so no window is skipped.
	WindowMinutes int
	// WaterWindowMinutes is the narrower window for water reminders; it must
	// be shorter than the sweep interval so each reminder fires at most once.
	WaterWindowMinutes int
	// WaterHours are the local hours whose half-hour mark triggers a water
	// reminder.
	WaterHours []int
	// ReportHour is the local hour for weekly and monthly reports.
	ReportHour int
}

// DefaultConfig mirrors the production cadence: sweeps every 15 minutes,
// water nudges at 11:30 and 15:30, reports at 22:00.
func DefaultConfig() Config {
	return Config{
		SweepInterval:      15 * time.Minute,
		WindowMinutes:      15,
		WaterWindowMinutes: 3,
		WaterHours:         []int{11, 15},
		ReportHour:         22,
	}
}

// Scheduler runs the sweep loop.
type Scheduler struct {
	cfg       Config
	users     domain.UserRepository
	daily     domain.DailyRepository
	sentLog   domain.NotificationLogRepository
	reports   *report.Service
	messenger Messenger
	now       func() time.Time

	wg sync.WaitGroup
}

func New(cfg Config, users domain.UserRepository, daily domain.DailyRepository, sentLog domain.NotificationLogRepository, reports *report.Service, messenger Messenger) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		users:     users,
		daily:     daily,
		sentLog:   sentLog,
		reports:   reports,
		messenger: messenger,
		now:       time.Now,
	}
}

// Start launches the sweep loop until the context is cancelled. Call Wait to
// block until the loop drains.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Sweep(ctx, s.now()); err != nil {
					log.Printf("scheduler: sweep failed: %v", err)
				}
			}
		}
	}()
}

// Wait blocks until the sweep loop has stopped.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Sweep processes every onboarded user once for the given reference time. A
// failure for one user never blocks the others; the first error is returned
// after the full pass.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) error {
	observability.SchedulerSweeps.Inc()

	users, err := s.users.ListOnboarded(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var firstErr error
	for i := range users {
		if err := s.sweepUser(ctx, now, &users[i]); err != nil {
			observability.SchedulerUserErrors.Inc()
			log.Printf("scheduler: user %d: %v", users[i].ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("user %d: %w", users[i].ID, err)
			}
		}
	}
	return firstErr
}

func (s *Scheduler) sweepUser(ctx context.Context, now time.Time, user *domain.User) error {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", user.Timezone, err)
	}
	local := now.In(loc)

	if err := s.maybeMorning(ctx, user, local); err != nil {
		return err
	}
	if err := s.maybeEvening(ctx, user, local); err != nil {
		return err
	}
	if err := s.maybeWater(ctx, user, local); err != nil {
		return err
	}
	if err := s.maybeWeekly(ctx, user, local); err != nil {
		return err
	}
	return s.maybeMonthly(ctx, user, local)
}

func (s *Scheduler) maybeMorning(ctx context.Context, user *domain.User, local time.Time) error {
	if !s.inDailyWindow(local, user.MorningTime) {
		return nil
	}
	// Find keeps this a pure read: no record yet means no check-in yet.
	record, err := s.daily.Find(ctx, user.ID, dateOf(local))
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("load daily record: %w", err)
	}
	if record != nil && record.MorningDone() {
		return nil
	}
	return s.send(ctx, user, domain.NotifyMorning, morningGreeting(user.FirstName))
}

func (s *Scheduler) maybeEvening(ctx context.Context, user *domain.User, local time.Time) error {
	if !s.inDailyWindow(local, user.EveningTime) {
		return nil
	}
	record, err := s.daily.Find(ctx, user.ID, dateOf(local))
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("load daily record: %w", err)
	}
	if record != nil && record.EveningDone() {
		return nil
	}
	return s.send(ctx, user, domain.NotifyEvening, eveningReminder(user.FirstName))
}

func (s *Scheduler) maybeWater(ctx context.Context, user *domain.User, local time.Time) error {
	for _, hour := range s.cfg.WaterHours {
		if local.Hour() == hour && local.Minute() >= 30 && local.Minute() < 30+s.cfg.WaterWindowMinutes {
			return s.send(ctx, user, domain.NotifyWater, waterReminder())
		}
	}
	return nil
}

func (s *Scheduler) maybeWeekly(ctx context.Context, user *domain.User, local time.Time) error {
	if local.Weekday() != time.Sunday || !s.inReportWindow(local) {
		return nil
	}
	year, week := local.ISOWeek()
	period := fmt.Sprintf("%d-W%02d", year, week)
	sent, err := s.sentLog.Sent(ctx, user.ID, domain.NotifyWeeklyReport, period)
	if err != nil {
		return fmt.Errorf("check weekly log: %w", err)
	}
	if sent {
		return nil
	}
	text, err := s.reports.Weekly(ctx, user.ID, dateOf(local))
	if err != nil {
		return fmt.Errorf("build weekly report: %w", err)
	}
	if err := s.send(ctx, user, domain.NotifyWeeklyReport, text); err != nil {
		return err
	}
	return s.sentLog.MarkSent(ctx, user.ID, domain.NotifyWeeklyReport, period)
}

func (s *Scheduler) maybeMonthly(ctx context.Context, user *domain.User, local time.Time) error {
	if !lastDayOfMonth(local) || !s.inReportWindow(local) {
		return nil
	}
	period := local.Format("2006-01")
	sent, err := s.sentLog.Sent(ctx, user.ID, domain.NotifyMonthlyReport, period)
	if err != nil {
		return fmt.Errorf("check monthly log: %w", err)
	}
	if sent {
		return nil
	}
	text, err := s.reports.Monthly(ctx, user.ID, dateOf(local))
	if err != nil {
		return fmt.Errorf("build monthly report: %w", err)
	}
	if err := s.send(ctx, user, domain.NotifyMonthlyReport, text); err != nil {
		return err
	}
	return s.sentLog.MarkSent(ctx, user.ID, domain.NotifyMonthlyReport, period)
}

func (s *Scheduler) send(ctx context.Context, user *domain.User, kind domain.NotificationKind, text string) error {
	if err := s.messenger.SendText(ctx, user.ChatID, text); err != nil {
		return fmt.Errorf("send %s: %w", kind, err)
	}
	observability.NotificationsSent.WithLabelValues(string(kind)).Inc()
	return nil
}

// inDailyWindow reports whether local falls in [target, target+window) for an
// HH:MM preference. Malformed preferences never match.
func (s *Scheduler) inDailyWindow(local time.Time, pref string) bool {
	hour, minute, ok := parseHHMM(pref)
	if !ok {
		return false
	}
	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, local.Location())
	diff := local.Sub(target)
	return diff >= 0 && diff < time.Duration(s.cfg.WindowMinutes)*time.Minute
}

func (s *Scheduler) inReportWindow(local time.Time) bool {
	return local.Hour() == s.cfg.ReportHour && local.Minute() < s.cfg.WindowMinutes
}

func parseHHMM(v string) (hour, minute int, ok bool) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func dateOf(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
