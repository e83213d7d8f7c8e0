package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voxplan/voxplan/internal/planner/domain"
)

func TestDefaultScoreConfig(t *testing.T) {
	config := DefaultScoreConfig()

	assert.Equal(t, 30, config.UrgencyWeight)
	assert.Equal(t, 100, config.OverdueBonus)
	assert.Equal(t, 60, config.TomorrowBonus)
	assert.Equal(t, 40, config.SoonBonus)
	assert.Equal(t, 20, config.WeekBonus)
	assert.Equal(t, 120, config.HighTierFloor)
	assert.Equal(t, 70, config.MediumTierFloor)
}

func TestScoreEngine_Score(t *testing.T) {
	engine := NewScoreEngine(DefaultScoreConfig())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		urgency domain.Urgency
		want    int
	}{
		{"high urgency due today", "2026-03-10", domain.UrgencyHigh, 190},
		{"low urgency no due date", "", domain.UrgencyLow, 30},
		{"medium urgency due in eight days", "2026-03-18", domain.UrgencyMedium, 60},
		{"overdue by a week", "2026-03-03", domain.UrgencyMedium, 160},
		{"due tomorrow", "2026-03-11", domain.UrgencyMedium, 120},
		{"due in three days", "2026-03-13", domain.UrgencyMedium, 100},
		{"due in seven days", "2026-03-17", domain.UrgencyMedium, 80},
		{"unparseable due date contributes nothing", "next tuesday", domain.UrgencyHigh, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Score(tt.dueDate, tt.urgency, now))
		})
	}
}

func TestScoreEngine_Score_MonotonicInUrgency(t *testing.T) {
	engine := NewScoreEngine(DefaultScoreConfig())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, dueDate := range []string{"", "2026-03-10", "2026-03-13", "2026-04-01"} {
		low := engine.Score(dueDate, domain.UrgencyLow, now)
		medium := engine.Score(dueDate, domain.UrgencyMedium, now)
		high := engine.Score(dueDate, domain.UrgencyHigh, now)

		assert.Less(t, low, medium, "due %q", dueDate)
		assert.Less(t, medium, high, "due %q", dueDate)
	}
}

func TestScoreEngine_Tier(t *testing.T) {
	engine := NewScoreEngine(DefaultScoreConfig())

	assert.Equal(t, TierHigh, engine.Tier(120))
	assert.Equal(t, TierHigh, engine.Tier(190))
	assert.Equal(t, TierMedium, engine.Tier(119))
	assert.Equal(t, TierMedium, engine.Tier(70))
	assert.Equal(t, TierLow, engine.Tier(69))
	assert.Equal(t, TierLow, engine.Tier(0))
}

func TestScoreEngine_Tier_OutranksUrgency(t *testing.T) {
	// A low-urgency task due today beats a high-urgency task with no due
	// date, both in score and in tier.
	engine := NewScoreEngine(DefaultScoreConfig())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	lowToday := engine.Score("2026-03-10", domain.UrgencyLow, now)
	highNoDue := engine.Score("", domain.UrgencyHigh, now)

	assert.Equal(t, 130, lowToday)
	assert.Equal(t, 90, highNoDue)
	assert.Equal(t, TierHigh, engine.Tier(lowToday))
	assert.Equal(t, TierMedium, engine.Tier(highNoDue))
}

func TestScoreEngine_Rescore(t *testing.T) {
	engine := NewScoreEngine(DefaultScoreConfig())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []domain.Task{
		{Title: "no due", Urgency: domain.UrgencyHigh, Score: 999},
		{Title: "due today", DueDate: "2026-03-10", Urgency: domain.UrgencyLow},
	}

	engine.Rescore(tasks, now)

	assert.Equal(t, "due today", tasks[0].Title)
	assert.Equal(t, 130, tasks[0].Score)
	assert.Equal(t, "no due", tasks[1].Title)
	assert.Equal(t, 90, tasks[1].Score, "stale stored score must be recomputed")
}

func TestScoreEngine_Rescore_StableOnTies(t *testing.T) {
	engine := NewScoreEngine(DefaultScoreConfig())
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tasks := []domain.Task{
		{Title: "first", Urgency: domain.UrgencyMedium},
		{Title: "second", Urgency: domain.UrgencyMedium},
	}

	engine.Rescore(tasks, now)

	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
}
