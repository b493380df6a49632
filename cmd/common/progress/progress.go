// Package progress owns the durable record of user engagement: listened
// and bookmarked lectures, notes, the daily minute goal, and the
// listening streak with its achievements. There is exactly one logical
// writer (the current user session); everything here is built around a
// single JSON record on disk.
package progress

import (
	"time"

	"github.com/samber/lo"
)

// DefaultDailyGoal is the minute goal used until the user sets one.
const DefaultDailyGoal = 30

// Streak tracks consecutive listening days and accumulated minutes.
// Calendar days are normalized to UTC.
type Streak struct {
	Current          int        `json:"current"`
	Longest          int        `json:"longest"`
	LastListenedDate *time.Time `json:"lastListenedDate"`
	TotalMinutes     float64    `json:"totalMinutes"`
	TodayMinutes     float64    `json:"todayMinutes"`
	LastUpdated      time.Time  `json:"lastUpdated"`
}

// UserProgress is the single persisted record of user state.
type UserProgress struct {
	ListenedLectures   []int          `json:"listenedLectures"`
	BookmarkedLectures []int          `json:"bookmarkedLectures"`
	Notes              map[int]string `json:"notes"`
	DailyGoal          int            `json:"dailyGoal"`
	Streak             Streak         `json:"streak"`
	Achievements       []string       `json:"achievements"`
}

// Defaults returns the state used when nothing has been persisted yet,
// or when the persisted data is unreadable.
func Defaults() UserProgress {
	return UserProgress{
		ListenedLectures:   []int{},
		BookmarkedLectures: []int{},
		Notes:              map[int]string{},
		DailyGoal:          DefaultDailyGoal,
		Streak: Streak{
			LastUpdated: time.Now().UTC(),
		},
		Achievements: []string{},
	}
}

// IsListened reports whether the lecture id is marked listened.
func (p UserProgress) IsListened(id int) bool {
	return lo.Contains(p.ListenedLectures, id)
}

// IsBookmarked reports whether the lecture id is bookmarked.
func (p UserProgress) IsBookmarked(id int) bool {
	return lo.Contains(p.BookmarkedLectures, id)
}

// NoteFor returns the note for a lecture ("" when there is none; an
// empty stored note and a missing key are equivalent).
func (p UserProgress) NoteFor(id int) string {
	return p.Notes[id]
}

// HasAchievement reports whether the achievement id has been unlocked.
func (p UserProgress) HasAchievement(id string) bool {
	return lo.Contains(p.Achievements, id)
}

// GoalMet reports whether today's minutes have reached the daily goal.
func (p UserProgress) GoalMet() bool {
	return p.DailyGoal > 0 && p.Streak.TodayMinutes >= float64(p.DailyGoal)
}

// GoalProgress returns today's progress toward the goal in percent,
// capped at 100.
func (p UserProgress) GoalProgress() float64 {
	if p.DailyGoal <= 0 {
		return 0
	}
	pct := p.Streak.TodayMinutes / float64(p.DailyGoal) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// ToggleListened returns a transform flipping the listened flag for id.
func ToggleListened(id int) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		if p.IsListened(id) {
			p.ListenedLectures = lo.Without(p.ListenedLectures, id)
		} else {
			p.ListenedLectures = append(append([]int{}, p.ListenedLectures...), id)
		}
		return p
	}
}

// MarkListened returns a transform that marks id listened (idempotent,
// unlike ToggleListened). Used by the auto-mark-on-completion path.
func MarkListened(id int) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		if !p.IsListened(id) {
			p.ListenedLectures = append(append([]int{}, p.ListenedLectures...), id)
		}
		return p
	}
}

// ToggleBookmarked returns a transform flipping the bookmark flag for id.
func ToggleBookmarked(id int) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		if p.IsBookmarked(id) {
			p.BookmarkedLectures = lo.Without(p.BookmarkedLectures, id)
		} else {
			p.BookmarkedLectures = append(append([]int{}, p.BookmarkedLectures...), id)
		}
		return p
	}
}

// WithNote returns a transform setting the note for a lecture. Clearing
// a note stores an empty string rather than deleting the key.
func WithNote(id int, text string) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		notes := make(map[int]string, len(p.Notes)+1)
		for k, v := range p.Notes {
			notes[k] = v
		}
		notes[id] = text
		p.Notes = notes
		return p
	}
}

// WithDailyGoal returns a transform setting the daily minute goal.
func WithDailyGoal(minutes int) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		if minutes > 0 {
			p.DailyGoal = minutes
		}
		return p
	}
}
