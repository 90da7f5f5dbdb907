package advisor

import (
	"context"
	"log/slog"

	"github.com/mkowalczyk/tasklist-api/internal/domain"
)

// Classifier is the remote zero-shot classification dependency. It is
// satisfied by huggingface.Classifier; tests supply fakes.
type Classifier interface {
	// Classify scores the candidate labels against the text and returns
	// the best one, or an error on any remote failure.
	Classify(ctx context.Context, text string, candidateLabels []string) (string, error)
}

// PriorityAdvisor suggests a priority label for task text.
//
// Each suggestion moves through at most two states: a remote attempt
// (entered only when a classifier is configured) and the heuristic
// fallback (entered on any remote error, or directly when no classifier
// is present). There is no retry; the fallback is terminal.
type PriorityAdvisor struct {
	logger     *slog.Logger
	classifier Classifier
}

// NewPriorityAdvisor creates a PriorityAdvisor. classifier may be nil,
// in which case every suggestion uses the local heuristic directly.
func NewPriorityAdvisor(logger *slog.Logger, classifier Classifier) *PriorityAdvisor {
	if logger == nil {
		logger = slog.Default()
	}

	return &PriorityAdvisor{
		logger:     logger.With(slog.String("component", "priority_advisor")),
		classifier: classifier,
	}
}

// Suggest returns a priority label for the given task text. It never
// fails: remote errors are logged and swallowed, and the heuristic
// always produces one of the fixed labels.
func (a *PriorityAdvisor) Suggest(ctx context.Context, text string) domain.Priority {
	if a.classifier != nil && text != "" {
		label, err := a.classifier.Classify(ctx, text, domain.PriorityLabels())
		if err == nil {
			priority, parseErr := domain.ParsePriority(label)
			if parseErr == nil {
				a.logger.DebugContext(ctx, "remote priority suggestion accepted",
					slog.String("priority", string(priority)))
				return priority
			}
			// A label outside the candidate set is a malformed response.
			err = parseErr
		}

		a.logger.WarnContext(ctx, "remote classification failed, using heuristic fallback",
			slog.String("error", err.Error()))
	}

	priority := suggestHeuristic(text)
	a.logger.DebugContext(ctx, "heuristic priority suggestion",
		slog.String("priority", string(priority)),
		slog.Int("text_length", len(text)))
	return priority
}
