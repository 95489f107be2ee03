package pomodoro

import (
	"fmt"
	"slices"

	"grandmatimer/internal/core/model"
)

// FormatTime renders seconds as zero-padded MM:SS.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// SortedPending returns the tasks ordered high, medium, low. Tasks of equal
// priority keep their insertion order.
func SortedPending(tasks []model.Task) []model.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return sorted
}
