// Package services holds the planner rules: scoring, retention, and the
// view/query layer. Everything here is pure and free of storage and
// rendering concerns.
package services

import (
	"math"
	"sort"
	"time"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

// Tier is the presentation banding of a composite score. It is independent
// of the stored urgency enum: two different urgencies can land in the same
// tier once the due-date bonus is folded in.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// ScoreConfig tunes how urgency and due-date proximity combine into a score.
type ScoreConfig struct {
	UrgencyWeight int
	OverdueBonus  int // due today or overdue
	TomorrowBonus int // due within one day
	SoonBonus     int // due within three days
	WeekBonus     int // due within seven days

	HighTierFloor   int
	MediumTierFloor int
}

// DefaultScoreConfig returns the production scoring rule.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		UrgencyWeight: 30,
		OverdueBonus:  100,
		TomorrowBonus: 60,
		SoonBonus:     40,
		WeekBonus:     20,

		HighTierFloor:   120,
		MediumTierFloor: 70,
	}
}

// ScoreEngine computes priority scores from urgency and due-date proximity.
type ScoreEngine struct {
	config ScoreConfig
}

// NewScoreEngine creates an engine with the given configuration.
func NewScoreEngine(cfg ScoreConfig) *ScoreEngine {
	return &ScoreEngine{config: cfg}
}

// Score computes the priority score for a due date and urgency at the given
// instant. A missing or unparseable due date contributes no bonus.
func (e *ScoreEngine) Score(dueDate string, urgency domain.Urgency, now time.Time) int {
	score := int(urgency) * e.config.UrgencyWeight

	due, err := time.ParseInLocation(domain.DueDateLayout, dueDate, time.UTC)
	if dueDate == "" || err != nil {
		return score
	}

	days := int(math.Ceil(due.Sub(now.UTC()).Hours() / 24))
	switch {
	case days <= 0:
		score += e.config.OverdueBonus
	case days <= 1:
		score += e.config.TomorrowBonus
	case days <= 3:
		score += e.config.SoonBonus
	case days <= 7:
		score += e.config.WeekBonus
	}

	return score
}

// Tier bands a composite score for display.
func (e *ScoreEngine) Tier(score int) Tier {
	switch {
	case score >= e.config.HighTierFloor:
		return TierHigh
	case score >= e.config.MediumTierFloor:
		return TierMedium
	default:
		return TierLow
	}
}

// Rescore recomputes every task's score in place and sorts the collection by
// score descending. The sort is stable, so ties keep their relative order.
func (e *ScoreEngine) Rescore(tasks []domain.Task, now time.Time) {
	for i := range tasks {
		tasks[i].Score = e.Score(tasks[i].DueDate, tasks[i].Urgency, now)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Score > tasks[j].Score
	})
}
