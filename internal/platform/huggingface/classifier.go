package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkowalczyk/tasklist-api/internal/config"
)

// Classifier calls a HuggingFace zero-shot classification model over
// the Inference API. A single instance is safe for concurrent use.
type Classifier struct {
	logger   *slog.Logger
	client   *http.Client
	modelURL string
	apiToken string
}

// classifyRequest is the Inference API request body for zero-shot models.
type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// classifyResponse is the Inference API response body. Labels come back
// sorted by score descending; both arrays have the same length.
type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// NewClassifier creates a new Classifier from the inference configuration.
// The API token is optional: without it requests go out unauthenticated,
// which the hosted endpoint accepts at a lower rate limit.
func NewClassifier(logger *slog.Logger, cfg config.InferenceConfig) (*Classifier, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.ModelURL == "" {
		return nil, errors.New("model URL cannot be empty")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Classifier{
		logger:   logger.With(slog.String("component", "hf_classifier")),
		client:   &http.Client{Timeout: timeout},
		modelURL: cfg.ModelURL,
		apiToken: cfg.APIToken,
	}, nil
}

// Classify scores the candidate labels against the given text and
// returns the label with the highest score. Any transport, status, or
// parsing problem is reported as an error wrapping ErrRemoteInference;
// there is no retry, that policy belongs to the caller.
func (c *Classifier) Classify(ctx context.Context, text string, candidateLabels []string) (string, error) {
	if text == "" {
		return "", ErrEmptyInput
	}
	if len(candidateLabels) == 0 {
		return "", errors.New("candidate labels cannot be empty")
	}

	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: candidateLabels},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal classification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build classification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	c.logger.DebugContext(ctx, "calling zero-shot classification endpoint",
		slog.Int("text_length", len(text)),
		slog.Int("label_count", len(candidateLabels)),
		slog.Bool("authenticated", c.apiToken != ""))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close response body",
				slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the log; it is never surfaced.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.WarnContext(ctx, "classification endpoint returned error status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(snippet)))
		return "", fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	// Shape check before trusting the payload: both arrays present,
	// non-empty, and of matching length.
	if len(parsed.Labels) == 0 || len(parsed.Labels) != len(parsed.Scores) {
		return "", fmt.Errorf("%w: got %d labels and %d scores",
			ErrInvalidResponse, len(parsed.Labels), len(parsed.Scores))
	}

	best := 0
	for i, score := range parsed.Scores {
		if score > parsed.Scores[best] {
			best = i
		}
	}

	c.logger.DebugContext(ctx, "classification succeeded",
		slog.String("label", parsed.Labels[best]),
		slog.Float64("score", parsed.Scores[best]))

	return parsed.Labels[best], nil
}
