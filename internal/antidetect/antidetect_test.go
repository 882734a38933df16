// internal/antidetect/antidetect_test.go
package antidetect

import (
	"strings"
	"testing"
	"time"
)

func TestUserAgentRotator_Cycles(t *testing.T) {
	agents := []string{"agent-a", "agent-b"}
	rotator := NewUserAgentRotator(agents)

	if got := rotator.GetNext(); got != "agent-a" {
		t.Errorf("expected agent-a first, got %q", got)
	}
	if got := rotator.GetNext(); got != "agent-b" {
		t.Errorf("expected agent-b second, got %q", got)
	}
	if got := rotator.GetNext(); got != "agent-a" {
		t.Errorf("expected wrap-around to agent-a, got %q", got)
	}
}

func TestUserAgentRotator_Defaults(t *testing.T) {
	rotator := NewUserAgentRotator(nil)
	agent := rotator.GetRandom()
	if !strings.Contains(agent, "Mozilla/5.0") {
		t.Errorf("expected a believable default user agent, got %q", agent)
	}
}

func TestDelayRandomizer_WithinRange(t *testing.T) {
	randomizer := NewDelayRandomizer(10*time.Millisecond, 20*time.Millisecond)

	for i := 0; i < 50; i++ {
		delay := randomizer.GetDelay()
		if delay < 10*time.Millisecond || delay >= 20*time.Millisecond {
			t.Fatalf("delay %v outside [10ms, 20ms)", delay)
		}
	}
}

func TestDelayRandomizer_DegenerateRange(t *testing.T) {
	randomizer := NewDelayRandomizer(5*time.Millisecond, 5*time.Millisecond)
	if delay := randomizer.GetDelay(); delay < 5*time.Millisecond {
		t.Errorf("expected at least the minimum delay, got %v", delay)
	}
}
