package progress

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	// Arbitrary fixed month; d is the day of month.
	return time.Date(2026, 3, d, 10, 30, 0, 0, time.UTC)
}

func applyDays(p UserProgress, minutes float64, days ...time.Time) UserProgress {
	for _, d := range days {
		p = ApplyListening(d, minutes)(p)
	}
	return p
}

func TestApplyListening_FirstCompletion(t *testing.T) {
	p := applyDays(Defaults(), 10, day(1))

	if p.Streak.Current != 1 || p.Streak.Longest != 1 {
		t.Errorf("after first completion: current=%d longest=%d, want 1/1", p.Streak.Current, p.Streak.Longest)
	}
	if p.Streak.TodayMinutes != 10 {
		t.Errorf("todayMinutes = %v, want 10", p.Streak.TodayMinutes)
	}
	if p.Streak.TotalMinutes != 10 {
		t.Errorf("totalMinutes = %v, want 10", p.Streak.TotalMinutes)
	}
	if p.Streak.LastListenedDate == nil {
		t.Fatal("lastListenedDate not set")
	}
}

func TestApplyListening_Continuity(t *testing.T) {
	tests := []struct {
		name        string
		days        []time.Time
		wantCurrent int
		wantLongest int
	}{
		{"single day", []time.Time{day(1)}, 1, 1},
		{"two consecutive days", []time.Time{day(1), day(2)}, 2, 2},
		{"same day repeat keeps current", []time.Time{day(1), day(1)}, 1, 1},
		{"three consecutive", []time.Time{day(1), day(2), day(3)}, 3, 3},
		{"gap resets to one", []time.Time{day(1), day(2), day(4)}, 1, 2},
		{"reset then rebuild", []time.Time{day(1), day(2), day(5), day(6), day(7)}, 3, 3},
		{"longest survives reset", []time.Time{day(1), day(2), day(3), day(10)}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := applyDays(Defaults(), 5, tt.days...)
			if p.Streak.Current != tt.wantCurrent {
				t.Errorf("current = %d, want %d", p.Streak.Current, tt.wantCurrent)
			}
			if p.Streak.Longest != tt.wantLongest {
				t.Errorf("longest = %d, want %d", p.Streak.Longest, tt.wantLongest)
			}
			if p.Streak.Longest < p.Streak.Current {
				t.Errorf("longest %d < current %d", p.Streak.Longest, p.Streak.Current)
			}
		})
	}
}

func TestApplyListening_MidnightBoundaryUsesUTC(t *testing.T) {
	// 23:50 and next day 00:10 UTC are consecutive calendar days even
	// though only 20 minutes apart.
	d1 := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC)

	p := applyDays(Defaults(), 5, d1, d2)
	if p.Streak.Current != 2 {
		t.Errorf("current = %d, want 2 across UTC midnight", p.Streak.Current)
	}
}

func TestApplyListening_DailyReset(t *testing.T) {
	p := Defaults()

	p = ApplyListening(day(1), 10)(p)
	p = ApplyListening(day(1).Add(2*time.Hour), 7)(p)
	if p.Streak.TodayMinutes != 17 {
		t.Errorf("same-day accumulation: todayMinutes = %v, want 17", p.Streak.TodayMinutes)
	}

	p = ApplyListening(day(2), 4)(p)
	if p.Streak.TodayMinutes != 4 {
		t.Errorf("new day: todayMinutes = %v, want 4", p.Streak.TodayMinutes)
	}
	if p.Streak.TotalMinutes != 21 {
		t.Errorf("totalMinutes = %v, want 21", p.Streak.TotalMinutes)
	}
}

func TestApplyListening_GoalMet(t *testing.T) {
	p := Defaults() // dailyGoal 30

	p = ApplyListening(day(1), 20)(p)
	if p.GoalMet() {
		t.Error("goal met at 20/30 minutes")
	}

	p = ApplyListening(day(1).Add(time.Hour), 10)(p)
	if !p.GoalMet() {
		t.Error("goal not met at 30/30 minutes")
	}

	// More minutes keep it met; no mid-day reset.
	p = ApplyListening(day(1).Add(2*time.Hour), 5)(p)
	if !p.GoalMet() {
		t.Error("goal lost after extra minutes on the same day")
	}

	p = ApplyListening(day(2), 1)(p)
	if p.GoalMet() {
		t.Error("goal still met after the day rolled over")
	}
}

func TestApplyListening_Achievements(t *testing.T) {
	p := applyDays(Defaults(), 5, day(1), day(2))
	if p.HasAchievement("fire-starter") {
		t.Error("fire-starter unlocked at a 2-day streak")
	}

	p = ApplyListening(day(3), 5)(p)
	if !p.HasAchievement("fire-starter") {
		t.Error("fire-starter not unlocked at a 3-day streak")
	}

	// Break the streak, climb back to 3: no duplicate.
	p = applyDays(p, 5, day(10), day(11), day(12))
	count := 0
	for _, id := range p.Achievements {
		if id == "fire-starter" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("fire-starter appears %d times, want 1", count)
	}
}

func TestApplyListening_AchievementOrder(t *testing.T) {
	// A 7-day run unlocks fire-starter first, then week-warrior.
	p := Defaults()
	for d := 1; d <= 7; d++ {
		p = ApplyListening(day(d), 5)(p)
	}

	want := []string{"fire-starter", "week-warrior"}
	if len(p.Achievements) != len(want) {
		t.Fatalf("achievements = %v, want %v", p.Achievements, want)
	}
	for i, id := range want {
		if p.Achievements[i] != id {
			t.Errorf("achievements[%d] = %q, want %q", i, p.Achievements[i], id)
		}
	}
}

func TestApplyListening_EndToEndScenario(t *testing.T) {
	p := Defaults()

	p = ApplyListening(day(1), 10)(p)
	if p.Streak.Current != 1 || p.Streak.Longest != 1 || p.Streak.TodayMinutes != 10 {
		t.Errorf("day 1: current=%d longest=%d today=%v, want 1/1/10",
			p.Streak.Current, p.Streak.Longest, p.Streak.TodayMinutes)
	}

	p = ApplyListening(day(2), 25)(p)
	if p.Streak.Current != 2 || p.Streak.Longest != 2 || p.Streak.TodayMinutes != 25 {
		t.Errorf("day 2: current=%d longest=%d today=%v, want 2/2/25",
			p.Streak.Current, p.Streak.Longest, p.Streak.TodayMinutes)
	}

	// Day 3 skipped.
	p = ApplyListening(day(4), 5)(p)
	if p.Streak.Current != 1 {
		t.Errorf("day 4 after gap: current = %d, want 1", p.Streak.Current)
	}
	if p.Streak.Longest != 2 {
		t.Errorf("day 4 after gap: longest = %d, want 2", p.Streak.Longest)
	}
}

func TestApplyListening_TransformIsPure(t *testing.T) {
	orig := Defaults()
	orig.Achievements = []string{"fire-starter"}
	orig.Streak.Current = 3
	last := day(1)
	orig.Streak.LastListenedDate = &last

	fn := ApplyListening(day(2), 5)
	before := len(orig.Achievements)
	_ = fn(orig)
	_ = fn(orig)

	if len(orig.Achievements) != before {
		t.Error("transform mutated its input's achievements")
	}
	if orig.Streak.Current != 3 {
		t.Errorf("transform mutated its input's streak: current = %d", orig.Streak.Current)
	}
}

func TestNewAchievements(t *testing.T) {
	prev := Defaults()
	prev.Achievements = []string{"fire-starter"}
	next := prev
	next.Achievements = []string{"fire-starter", "week-warrior"}

	unlocked := NewAchievements(prev, next)
	if len(unlocked) != 1 || unlocked[0] != "week-warrior" {
		t.Errorf("NewAchievements = %v, want [week-warrior]", unlocked)
	}

	if got := NewAchievements(next, next); len(got) != 0 {
		t.Errorf("NewAchievements(same, same) = %v, want empty", got)
	}
}
