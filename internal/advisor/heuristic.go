package advisor

import (
	"strings"
	"unicode/utf8"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
)

// Keyword sets for the local heuristic. Matching is case-insensitive
// substring matching, so "URGENT: fix build" and "due today" both hit.
var (
	highKeywords = []string{
		"urgent",
		"asap",
		"immediately",
		"critical",
		"emergency",
		"today",
		"deadline",
		"right now",
	}

	mediumKeywords = []string{
		"soon",
		"tomorrow",
		"this week",
		"important",
		"remember",
		"don't forget",
	}
)

// mediumLengthThreshold is the rune count above which a task with no
// urgency keywords is still considered medium priority: long task
// descriptions tend to describe real work rather than trivia.
const mediumLengthThreshold = 120

// suggestHeuristic is the deterministic fallback classifier. It never
// fails: empty or unrecognizable text yields the low label.
func suggestHeuristic(text string) domain.Priority {
	lowered := strings.ToLower(text)

	for _, keyword := range highKeywords {
		if strings.Contains(lowered, keyword) {
			return domain.PriorityHigh
		}
	}

	for _, keyword := range mediumKeywords {
		if strings.Contains(lowered, keyword) {
			return domain.PriorityMedium
		}
	}

	if utf8.RuneCountInString(text) > mediumLengthThreshold {
		return domain.PriorityMedium
	}

	return domain.PriorityLow
}
