package domain

// NotificationKind identifies one scheduled notification family.
type NotificationKind string

const (
	NotifyMorning       NotificationKind = "morning_greeting"
	NotifyEvening       NotificationKind = "evening_reminder"
	NotifyWater         NotificationKind = "water_reminder"
	NotifyWeeklyReport  NotificationKind = "weekly_report"
	NotifyMonthlyReport NotificationKind = "monthly_report"
)
