// Package notify sends desktop notifications for listening milestones.
package notify

import (
	"fmt"
	"os"

	"github.com/gen2brain/beeep"
	"github.com/nitaidas/sadhana/cmd/common/progress"
)

// AchievementUnlocked announces a newly unlocked achievement. Failures
// fall back to stderr; nothing propagates to the caller.
func AchievementUnlocked(id string) {
	title := "Achievement unlocked"
	body := progress.AchievementLabel(id)
	send(title, body)
}

// GoalReached announces that today's listening goal has been met.
func GoalReached(goalMinutes int) {
	title := "Daily goal reached"
	body := fmt.Sprintf("%d minutes of listening today. Well done!", goalMinutes)
	send(title, body)
}

func send(title, body string) {
	if err := beeep.Notify(title, body, ""); err != nil {
		fmt.Fprintf(os.Stderr, "[notify] %s: %s\n", title, body)
	}
}
