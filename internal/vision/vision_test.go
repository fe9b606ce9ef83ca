package vision

import (
	"context"
	"testing"
	"time"
)

func TestMockClassifiesPothole(t *testing.T) {
	m := &Mock{Delay: 0}

	result, err := m.Analyze(context.Background(), "https://media.example/p.jpg")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.IssueType != "Pothole" {
		t.Errorf("expected Pothole, got %q", result.IssueType)
	}
	if result.Message == "" {
		t.Error("expected a user-facing message")
	}
}

func TestMockHonorsCancellation(t *testing.T) {
	m := &Mock{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Analyze(ctx, "url"); err == nil {
		t.Fatal("expected context error")
	}
}
