package dashboard

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/lipgloss"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	numberStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	metStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barFill     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

type Params struct {
	Watch bool `short:"w" help:"Keep running and refresh when the progress file changes."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "dashboard",
		Aliases:     []string{"dash"},
		Short:       "Streak, goal and catalog overview",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout *os.File) error {
	store := progress.New(common.ProgressPath())

	if !params.Watch {
		out, err := Render(store.Get())
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)
		return nil
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	changed := make(chan struct{}, 1)
	cancel := store.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer cancel()

	stop := make(chan struct{})
	defer close(stop)
	store.Watch(stop)

	redraw := func() error {
		out, err := Render(store.Get())
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, "\033[2J\033[H")
		fmt.Fprintln(stdout, out)
		fmt.Fprintln(stdout, labelStyle.Render("Watching for changes. Ctrl+C to quit."))
		return nil
	}

	if err := redraw(); err != nil {
		return err
	}
	for {
		select {
		case <-sigChan:
			return nil
		case <-changed:
			if err := redraw(); err != nil {
				return err
			}
		}
	}
}

// Render builds the full dashboard view for one progress snapshot.
func Render(p progress.UserProgress) (string, error) {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SADHANA DASHBOARD"))
	b.WriteString("\n\n")

	current := boxStyle.Render(fmt.Sprintf("%s\n%s",
		numberStyle.Render(fmt.Sprintf("%d", p.Streak.Current)),
		labelStyle.Render(dayWord(p.Streak.Current)+" streak")))
	best := boxStyle.Render(fmt.Sprintf("%s\n%s",
		numberStyle.Render(fmt.Sprintf("%d", p.Streak.Longest)),
		labelStyle.Render("best streak")))
	total := boxStyle.Render(fmt.Sprintf("%s\n%s",
		numberStyle.Render(common.FormatMinutes(p.Streak.TotalMinutes)),
		labelStyle.Render("total listened")))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, current, " ", best, " ", total))
	b.WriteString("\n\n")

	b.WriteString(renderGoal(p))
	b.WriteString("\n\n")

	b.WriteString(renderAchievements(p))
	b.WriteString("\n\n")

	stats, err := renderStats(p)
	if err != nil {
		return "", err
	}
	b.WriteString(stats)

	return b.String(), nil
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func renderGoal(p progress.UserProgress) string {
	const width = 30
	filled := int(p.GoalProgress() / 100 * width)
	bar := barFill.Render(strings.Repeat("█", filled)) + lockedStyle.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf("Today's goal  %s  %s / %d min",
		bar, common.FormatMinutes(p.Streak.TodayMinutes), p.DailyGoal)
	if p.GoalMet() {
		line += "  " + metStyle.Render("✓ met")
	}
	return line
}

func renderAchievements(p progress.UserProgress) string {
	var parts []string
	for _, a := range progress.AchievementThresholds {
		label := progress.AchievementLabel(a.ID)
		if p.HasAchievement(a.ID) {
			parts = append(parts, metStyle.Render("★ "+label))
		} else {
			parts = append(parts, lockedStyle.Render("☆ "+label))
		}
	}
	return "Achievements  " + strings.Join(parts, "   ")
}

func renderStats(p progress.UserProgress) (string, error) {
	type row struct {
		name     string
		lectures func() ([]catalog.Lecture, error)
	}
	rows := []row{
		{"Bhagavad-gita", catalog.BG},
		{"Srimad-Bhagavatam", catalog.SB},
		{"Nectar of Devotion", catalog.NOD},
	}

	var b strings.Builder
	b.WriteString("Catalogs\n")
	var overall catalog.Stats
	for _, r := range rows {
		lectures, err := r.lectures()
		if err != nil {
			return "", err
		}
		s := catalog.StatsFor(lectures, p)
		overall.Total += s.Total
		overall.Listened += s.Listened
		overall.Bookmarked += s.Bookmarked
		b.WriteString(fmt.Sprintf("  %-20s %3d/%-3d listened (%3.0f%%)  %d bookmarked\n",
			r.name, s.Listened, s.Total, s.Percent(), s.Bookmarked))
	}
	b.WriteString(fmt.Sprintf("  %-20s %3d/%-3d listened (%3.0f%%)  %d bookmarked",
		"All", overall.Listened, overall.Total, overall.Percent(), overall.Bookmarked))
	return b.String(), nil
}
