package progress

import "time"

// Achievement ids in unlock order, with the streak length that unlocks
// each one.
var AchievementThresholds = []struct {
	ID   string
	Days int
}{
	{"fire-starter", 3},
	{"week-warrior", 7},
	{"diamond-devotee", 30},
	{"century-chanter", 100},
	{"yearly-yogi", 365},
}

// AchievementLabel returns a human-readable label for an achievement id.
func AchievementLabel(id string) string {
	switch id {
	case "fire-starter":
		return "3-Day Streak"
	case "week-warrior":
		return "7-Day Streak"
	case "diamond-devotee":
		return "30-Day Streak"
	case "century-chanter":
		return "100-Day Streak"
	case "yearly-yogi":
		return "365-Day Streak"
	default:
		return id
	}
}

// utcDate truncates t to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameUTCDay(a, b time.Time) bool {
	return utcDate(a).Equal(utcDate(b))
}

// dayGap returns the number of whole UTC calendar days from a to b.
func dayGap(a, b time.Time) int {
	return int(utcDate(b).Sub(utcDate(a)).Hours() / 24)
}

// ApplyListening returns a transform crediting a completed listening
// session of the given length. It accumulates today's and total minutes
// (resetting today's count when the stored state was last touched on an
// earlier UTC day), advances or resets the consecutive-day streak, and
// unlocks any newly reached achievements. Achievements are never removed
// and never duplicated.
func ApplyListening(now time.Time, minutes float64) func(UserProgress) UserProgress {
	return func(p UserProgress) UserProgress {
		s := p.Streak

		// New day since the last mutation: today's counter starts over.
		if !sameUTCDay(s.LastUpdated, now) {
			s.TodayMinutes = 0
		}

		s.TodayMinutes += minutes
		s.TotalMinutes += minutes
		s.LastUpdated = now

		switch {
		case s.LastListenedDate == nil:
			s.Current = 1
			s.Longest = 1
		case sameUTCDay(*s.LastListenedDate, now):
			// Repeat completion on the same day; streak unchanged.
		case dayGap(*s.LastListenedDate, now) == 1:
			s.Current++
			if s.Current > s.Longest {
				s.Longest = s.Current
			}
		default:
			s.Current = 1
		}

		last := now
		s.LastListenedDate = &last
		p.Streak = s

		achievements := append([]string{}, p.Achievements...)
		for _, a := range AchievementThresholds {
			if s.Current >= a.Days && !p.HasAchievement(a.ID) {
				achievements = append(achievements, a.ID)
			}
		}
		p.Achievements = achievements

		return p
	}
}

// NewAchievements returns the achievement ids present in next but not in
// prev, in next's order.
func NewAchievements(prev, next UserProgress) []string {
	var unlocked []string
	for _, id := range next.Achievements {
		if !prev.HasAchievement(id) {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked
}
