package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/nitaidas/sadhana/cmd/common/progress"
)

func TestRenderFreshState(t *testing.T) {
	out, err := Render(progress.Defaults())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"SADHANA DASHBOARD",
		"days streak",
		"best streak",
		"Today's goal",
		"/ 30 min",
		"Achievements",
		"Bhagavad-gita",
		"Srimad-Bhagavatam",
		"Nectar of Devotion",
		"All",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
	if strings.Contains(out, "★") {
		t.Error("fresh state should have no unlocked achievements")
	}
}

func TestRenderActiveStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := progress.Defaults()
	p.Streak = progress.Streak{
		Current:          7,
		Longest:          12,
		LastListenedDate: &now,
		TotalMinutes:     420,
		TodayMinutes:     35,
		LastUpdated:      now,
	}
	p.Achievements = []string{"fire-starter", "week-warrior"}

	out, err := Render(p)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "✓ met") {
		t.Error("expected goal-met marker at 35/30 min")
	}
	if !strings.Contains(out, "★ "+progress.AchievementLabel("week-warrior")) {
		t.Error("expected week-warrior rendered as unlocked")
	}
	if !strings.Contains(out, "☆ "+progress.AchievementLabel("diamond-devotee")) {
		t.Error("expected diamond-devotee rendered as locked")
	}
}

func TestDayWord(t *testing.T) {
	if got := dayWord(1); got != "day" {
		t.Errorf("dayWord(1) = %q, want 'day'", got)
	}
	if got := dayWord(0); got != "days" {
		t.Errorf("dayWord(0) = %q, want 'days'", got)
	}
}

func TestCmd(t *testing.T) {
	cmd := Cmd()
	if cmd == nil {
		t.Fatal("Cmd returned nil")
	}
	if cmd.Name() != "dashboard" {
		t.Errorf("expected Name()='dashboard', got '%s'", cmd.Name())
	}
}
