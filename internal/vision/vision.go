package vision

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is one image classification: a user-facing description and a
// coarse issue-type label.
type Result struct {
	Message   string
	IssueType string
}

// Classifier turns a photo of a civic problem into an issue type. A real
// implementation calls a visual-recognition service; failures fall back to
// FallbackIssueType at the call site.
type Classifier interface {
	Analyze(ctx context.Context, mediaURL string) (Result, error)
}

// FallbackIssueType is used when classification is unavailable.
const FallbackIssueType = "General Issue"

// Mock simulates visual recognition with a fixed delay and a canned
// detection list. It stands in until a real recognition service is wired.
type Mock struct {
	Delay time.Duration
}

func NewMock() *Mock {
	return &Mock{Delay: 2 * time.Second}
}

func (m *Mock) Analyze(ctx context.Context, mediaURL string) (Result, error) {
	log.Info().Str("url", mediaURL).Msg("vision: simulating analysis")

	select {
	case <-time.After(m.Delay):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	detected := []string{"pothole", "road", "asphalt"}
	log.Info().Strs("detected", detected).Msg("vision: mock analysis complete")

	for _, obj := range detected {
		if obj == "pothole" {
			return Result{
				Message:   "Thank you for highlighting this! I've identified a *pothole* that needs repair.",
				IssueType: "Pothole",
			}, nil
		}
	}

	return Result{
		Message:   "Thank you... I've detected: " + strings.Join(detected, ", ") + ".",
		IssueType: FallbackIssueType,
	}, nil
}
