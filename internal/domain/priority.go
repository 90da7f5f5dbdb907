package domain

import (
	"fmt"
	"strings"
)

// Priority is the urgency label attached to a task.
type Priority string

// The fixed set of priority labels. Every task carries exactly one.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ErrInvalidPriority is returned when a priority value is outside the
// fixed label set. It derives from ErrValidation like the other
// validation errors.
var ErrInvalidPriority = fmt.Errorf("%w: invalid priority label", ErrValidation)

// PriorityLabels returns the candidate label set in descending order of
// urgency. The order matters for the zero-shot classification request,
// which scores each candidate label against the task text.
func PriorityLabels() []string {
	return []string{string(PriorityHigh), string(PriorityMedium), string(PriorityLow)}
}

// ParsePriority converts a string into a Priority. Matching is
// case-insensitive and ignores surrounding whitespace.
// Returns ErrInvalidPriority for anything outside the label set.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// Valid reports whether the priority is one of the fixed labels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}
