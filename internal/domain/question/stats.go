package question

import (
	"strconv"

	"github.com/daycards/backend/internal/grader"
)

// DayStats summarises recorded outcomes for one day batch.
type DayStats struct {
	Day           int
	BatchSize     int
	AnsweredToday int
	TotalAnswered int // across every day
	Correct       int // within the day batch
	Partial       int
	Wrong         int
}

// Remaining is the number of questions of the day still unanswered.
func (s DayStats) Remaining() int {
	return s.BatchSize - s.AnsweredToday
}

// Complete reports whether every question of the day has an outcome.
func (s DayStats) Complete() bool {
	return s.BatchSize > 0 && s.AnsweredToday >= s.BatchSize
}

// ComputeStats counts outcomes keyed by question id (string form).
func ComputeStats(b *Bank, day int, answered map[string]grader.Outcome) DayStats {
	batch := b.Batch(day)
	stats := DayStats{
		Day:           day,
		BatchSize:     len(batch),
		TotalAnswered: len(answered),
	}

	for _, q := range batch {
		outcome, ok := answered[strconv.Itoa(q.ID)]
		if !ok {
			continue
		}
		stats.AnsweredToday++
		switch outcome {
		case grader.OutcomeCorrect:
			stats.Correct++
		case grader.OutcomePartial:
			stats.Partial++
		default:
			stats.Wrong++
		}
	}
	return stats
}
