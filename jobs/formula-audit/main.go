package main

import (
	"log/slog"
	"time"

	"github.com/himkwtn/expression-mongo/pkg/ranking"
)

type auditStats struct {
	checked     int
	skipped     int
	invalidated int
	restored    int
	failed      int
}

func main() {
	slog.Info("Starting formula audit job")
	start := time.Now()

	stats := auditStats{}
	for _, instanceID := range conf.InstanceIDs {
		slog.Debug("Start auditing ranking formulas for instance", slog.String("instanceID", instanceID))
		auditInstance(instanceID, start, &stats)
	}

	slog.Info("Formula audit job completed",
		slog.Int("checked", stats.checked),
		slog.Int("skipped", stats.skipped),
		slog.Int("invalidated", stats.invalidated),
		slog.Int("restored", stats.restored),
		slog.Int("failed", stats.failed),
		slog.String("duration", time.Since(start).String()),
	)
}

func auditInstance(instanceID string, now time.Time, stats *auditStats) {
	formulas, err := rankingDBService.GetFormulas(instanceID, false)
	if err != nil {
		slog.Error("Failed to get formulas", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		return
	}

	for _, formula := range formulas {
		if !ranking.NeedsRecheck(formula, now, recheckAfter) {
			stats.skipped++
			continue
		}

		valid, lastError := ranking.CheckStoredFormula(formula, whitelist)
		stats.checked++
		switch {
		case formula.Valid && !valid:
			stats.invalidated++
			slog.Warn("Formula became invalid", slog.String("instanceID", instanceID), slog.String("key", formula.Key), slog.String("error", lastError))
		case !formula.Valid && valid:
			stats.restored++
			slog.Info("Formula is valid again", slog.String("instanceID", instanceID), slog.String("key", formula.Key))
		}

		if err := rankingDBService.MarkFormulaValidity(instanceID, formula.Key, valid, lastError); err != nil {
			stats.failed++
			slog.Error("Failed to update formula validity", slog.String("error", err.Error()), slog.String("instanceID", instanceID), slog.String("key", formula.Key))
		}
	}
}
