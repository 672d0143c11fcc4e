// Package alert evaluates material and installer readiness against the
// scheduled installation date. Evaluators are pure functions producing a
// single urgency-leveled alert, or nil when everything is on track.
package alert

import (
	"fmt"
	"time"
)

// Level is the urgency of an alert.
type Level string

const (
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Material status values, in readiness order.
const (
	MaterialNone      = "none"
	MaterialOrdered   = "ordered"
	MaterialInStock   = "in_stock"
	MaterialDelivered = "delivered"
)

// Installer status values, in readiness order.
const (
	InstallerNone      = "none"
	InstallerInformed  = "informed"
	InstallerConfirmed = "confirmed"
)

var materialRank = map[string]int{
	MaterialNone:      0,
	MaterialOrdered:   1,
	MaterialInStock:   2,
	MaterialDelivered: 3,
}

var installerRank = map[string]int{
	InstallerNone:      0,
	InstallerInformed:  1,
	InstallerConfirmed: 2,
}

// Alert is a readiness warning rendered as a badge; it is never persisted
// and carries no notification side effect.
type Alert struct {
	Level   Level
	Message string
}

type threshold struct {
	days     int
	minRank  int
	required string
	level    Level
}

// Windows holds the day counts at which each urgency level kicks in.
// Warning must be the widest window and Critical the tightest.
type Windows struct {
	Warning  int
	Error    int
	Critical int
}

// DefaultWindows matches the operational rhythm of a typical installation:
// materials ordered ten days out, in stock five days out, on site two
// days out.
var DefaultWindows = Windows{Warning: 10, Error: 5, Critical: 2}

// Thresholds are evaluated least-urgent-first; the tightest violated
// threshold wins. A threshold whose requirement is already satisfied is
// skipped so the next, tighter one is checked.
func materialThresholds(w Windows) []threshold {
	return []threshold{
		{days: w.Warning, minRank: materialRank[MaterialOrdered], required: MaterialOrdered, level: LevelWarning},
		{days: w.Error, minRank: materialRank[MaterialInStock], required: MaterialInStock, level: LevelError},
		{days: w.Critical, minRank: materialRank[MaterialDelivered], required: MaterialDelivered, level: LevelCritical},
	}
}

func installerThresholds(w Windows) []threshold {
	return []threshold{
		{days: w.Warning, minRank: installerRank[InstallerInformed], required: InstallerInformed, level: LevelWarning},
		{days: w.Error, minRank: installerRank[InstallerConfirmed], required: InstallerConfirmed, level: LevelError},
		{days: w.Critical, minRank: installerRank[InstallerConfirmed], required: InstallerConfirmed, level: LevelCritical},
	}
}

// DaysUntil returns the calendar-day difference between now and a target
// date, ignoring the time of day.
func DaysUntil(now, target time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}

// EvaluateMaterialAlert compares the days remaining until the scheduled
// installation against the material readiness thresholds. Returns nil when
// no date is set or the status satisfies every applicable threshold.
func EvaluateMaterialAlert(now time.Time, scheduledAt *time.Time, materialStatus string, w Windows) *Alert {
	return evaluate(now, scheduledAt, materialRank[materialStatus], materialStatus, "materials", materialThresholds(w))
}

// EvaluateInstallerAlert compares the days remaining until the scheduled
// installation against the installer readiness thresholds.
func EvaluateInstallerAlert(now time.Time, scheduledAt *time.Time, installerStatus string, w Windows) *Alert {
	return evaluate(now, scheduledAt, installerRank[installerStatus], installerStatus, "installer", installerThresholds(w))
}

func evaluate(now time.Time, scheduledAt *time.Time, rank int, status, subject string, thresholds []threshold) *Alert {
	if scheduledAt == nil {
		return nil
	}

	days := DaysUntil(now, *scheduledAt)

	var result *Alert
	for _, t := range thresholds {
		if days > t.days {
			continue
		}
		if rank >= t.minRank {
			continue
		}
		result = &Alert{
			Level: t.level,
			Message: fmt.Sprintf("%d day(s) to installation: %s status is %s, expected at least %s",
				days, subject, status, t.required),
		}
	}
	return result
}
