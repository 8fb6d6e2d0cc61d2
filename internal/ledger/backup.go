package ledger

import "buget/internal/core"

// ReminderThresholdDays is the age at which a backup counts as stale.
const ReminderThresholdDays = 7

// BackupStatus is the reminder state shown to the user.
type BackupStatus string

const (
	BackupNever BackupStatus = "never"
	BackupStale BackupStatus = "stale"
	BackupFresh BackupStatus = "fresh"
)

// BackupAge is how long ago the last export happened. Never is set when no
// export was ever made, which is more urgent than any number of days.
type BackupAge struct {
	Never bool `json:"never"`
	Days  int  `json:"days"`
}

// DaysSinceBackup counts calendar days from last to today. A zero last means
// no backup was ever made.
func DaysSinceBackup(last, today core.Date) BackupAge {
	if last.IsZero() {
		return BackupAge{Never: true}
	}
	return BackupAge{Days: last.DaysUntil(today)}
}

func (a BackupAge) Status() BackupStatus {
	switch {
	case a.Never:
		return BackupNever
	case a.Days >= ReminderThresholdDays:
		return BackupStale
	default:
		return BackupFresh
	}
}

// NeedsReminder reports whether the user should be nudged to export.
func (a BackupAge) NeedsReminder() bool { return a.Status() != BackupFresh }
