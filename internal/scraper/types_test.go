// internal/scraper/types_test.go
package scraper

import (
	"testing"
)

func TestRunBudget_Reserve(t *testing.T) {
	budget := NewRunBudget(5, 10)

	if got := budget.Reserve(3); got != 3 {
		t.Errorf("expected full grant of 3, got %d", got)
	}
	// Only 2 slots left of the 5.
	if got := budget.Reserve(8); got != 2 {
		t.Errorf("expected partial grant of 2, got %d", got)
	}
	if got := budget.Reserve(1); got != 0 {
		t.Errorf("expected exhausted budget to grant 0, got %d", got)
	}
	if budget.HasCapacity() {
		t.Error("expected no capacity after full reservation")
	}
}

func TestRunBudget_UnboundedRecords(t *testing.T) {
	budget := NewRunBudget(0, 10)

	if got := budget.Reserve(5000); got != 5000 {
		t.Errorf("expected unbounded grant, got %d", got)
	}
	if !budget.HasCapacity() {
		t.Error("expected unbounded budget to always have capacity")
	}
}

func TestRunBudget_PageCeiling(t *testing.T) {
	budget := NewRunBudget(0, 2)

	if !budget.PagesRemaining() {
		t.Fatal("expected pages remaining before any processing")
	}
	budget.PageDone()
	if !budget.PagesRemaining() {
		t.Error("expected one more page after the first")
	}
	budget.PageDone()
	if budget.PagesRemaining() {
		t.Error("expected page ceiling to be reached")
	}
}

func TestRunBudget_SetMethodFirstWins(t *testing.T) {
	budget := NewRunBudget(0, 10)

	budget.SetMethod("structured-data")
	budget.SetMethod("dom-parsing")

	_, _, _, method, _ := budget.Snapshot()
	if method != "structured-data" {
		t.Errorf("expected first method to stick, got %q", method)
	}
}

func TestChallengeState_String(t *testing.T) {
	tests := []struct {
		state    ChallengeState
		expected string
	}{
		{ChallengeFresh, "fresh"},
		{ChallengeDetected, "detected"},
		{ChallengeSolving, "solving"},
		{ChallengeBypassed, "bypassed"},
		{ChallengeFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
