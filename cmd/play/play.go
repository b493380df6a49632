package play

import (
	"fmt"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/notify"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/nitaidas/sadhana/cmd/play/engine"
	"github.com/spf13/cobra"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	heardStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	bookmarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	playingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	streakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type Params struct {
	Catalog string `short:"c" help:"Catalog to browse: bg, sb, nod or all." default:"all"`
	Filter  string `short:"f" help:"Initial filter: all, listened, unlistened or bookmarked." default:"all"`
	ID      int    `pos:"true" optional:"true" help:"Lecture id to start playing immediately." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Interactive lecture player",
		Long: `Browse and play lectures in an interactive terminal player.

Completing a lecture credits its minutes to your daily streak and marks
it listened. Keys:

  up/down, j/k   select lecture
  enter          play selected (resumes if already current)
  space, p       pause / resume
  s              stop
  left/right     skip 15s back / forward
  -/+            volume down / up
  m              mute / unmute
  d              toggle listened for selected
  b              toggle bookmark for selected
  f              cycle filter
  q              quit`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params) error {
	filter := catalog.Filter(params.Filter)
	if !filter.Valid() {
		return fmt.Errorf("unknown filter %q", params.Filter)
	}

	lectures, err := catalog.ByName(params.Catalog)
	if err != nil {
		return err
	}
	if len(lectures) == 0 {
		return fmt.Errorf("catalog %q has no lectures", params.Catalog)
	}

	store := progress.New(common.ProgressPath())

	var prog *tea.Program

	eng := engine.New(store, func(l catalog.Lecture) {
		store.Update(progress.MarkListened(l.ID))
		if prog != nil {
			prog.Send(completedMsg{lecture: l})
		}
	})

	m := initialModel(lectures, filter, store, eng)

	if params.ID != 0 {
		for i, l := range m.lectures {
			if l.ID == params.ID {
				m.cursor = i
				m.autoplay = true
				break
			}
		}
		if !m.autoplay {
			return fmt.Errorf("lecture id %d not in catalog %q with filter %q", params.ID, params.Catalog, params.Filter)
		}
	}

	prog = tea.NewProgram(m, tea.WithAltScreen())

	stop := make(chan struct{})
	defer close(stop)
	store.Watch(stop)
	cancel := store.Subscribe(func() {
		if prog != nil {
			go prog.Send(storeChangedMsg{})
		}
	})
	defer cancel()

	defer eng.Stop()

	_, err = prog.Run()
	return err
}

type tickMsg time.Time
type storeChangedMsg struct{}
type completedMsg struct{ lecture catalog.Lecture }

var filterCycle = []catalog.Filter{
	catalog.FilterAll,
	catalog.FilterUnlistened,
	catalog.FilterListened,
	catalog.FilterBookmarked,
}

type model struct {
	all      []catalog.Lecture // catalog scope before filtering
	lectures []catalog.Lecture
	cursor   int
	filter   catalog.Filter
	autoplay bool

	store    *progress.Store
	eng      *engine.Engine
	userdata progress.UserProgress

	width  int
	height int
}

func initialModel(lectures []catalog.Lecture, filter catalog.Filter, store *progress.Store, eng *engine.Engine) model {
	m := model{
		all:    lectures,
		filter: filter,
		store:  store,
		eng:    eng,
	}
	m.userdata = store.Get()
	m.lectures = filter.Apply(m.all, m.userdata)
	return m
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	if m.autoplay && m.cursor < len(m.lectures) {
		m.eng.Play(m.lectures[m.cursor])
	}
	return tickCmd()
}

// refresh re-reads the progress snapshot, fires milestone notifications
// for anything newly unlocked, and re-applies the filter.
func (m model) refresh() model {
	prev := m.userdata
	m.userdata = m.store.Get()

	for _, id := range progress.NewAchievements(prev, m.userdata) {
		notify.AchievementUnlocked(id)
	}
	if !prev.GoalMet() && m.userdata.GoalMet() {
		notify.GoalReached(m.userdata.DailyGoal)
	}

	m.lectures = m.filter.Apply(m.all, m.userdata)
	if m.cursor >= len(m.lectures) {
		m.cursor = len(m.lectures) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m model) selected() (catalog.Lecture, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lectures) {
		return catalog.Lecture{}, false
	}
	return m.lectures[m.cursor], true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case storeChangedMsg:
		return m.refresh(), nil

	case completedMsg:
		// Listened flag was already written by the completion hook;
		// just pick up the fresh state.
		return m.refresh(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.lectures)-1 {
			m.cursor++
		}

	case "enter":
		if l, ok := m.selected(); ok {
			m.eng.Play(l)
		}

	case " ", "p":
		if st := m.eng.Status(); st.Current != nil {
			if st.Playing {
				m.eng.Pause()
			} else {
				m.eng.Resume()
			}
		}

	case "s":
		m.eng.Stop()

	case "left":
		m.eng.Skip(-15)

	case "right":
		m.eng.Skip(15)

	case "-":
		m.eng.SetVolume(m.eng.Status().Volume - 0.1)

	case "+", "=":
		m.eng.SetVolume(m.eng.Status().Volume + 0.1)

	case "m":
		m.eng.ToggleMute()

	case "d":
		if l, ok := m.selected(); ok {
			m.store.Update(progress.ToggleListened(l.ID))
			return m.refresh(), nil
		}

	case "b":
		if l, ok := m.selected(); ok {
			m.store.Update(progress.ToggleBookmarked(l.ID))
			return m.refresh(), nil
		}

	case "f":
		for i, f := range filterCycle {
			if f == m.filter {
				m.filter = filterCycle[(i+1)%len(filterCycle)]
				break
			}
		}
		m.cursor = 0
		return m.refresh(), nil
	}
	return m, nil
}

func (m model) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}

	var view string
	view += headerStyle.Render(fmt.Sprintf("LECTURES (%s)", m.filter)) + "\n"

	listHeight := m.height - 8
	if listHeight < 5 {
		listHeight = 5
	}
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.lectures) {
		end = len(m.lectures)
	}

	titleWidth := width - 34
	if titleWidth < 16 {
		titleWidth = 16
	}

	for i := start; i < end; i++ {
		l := m.lectures[i]

		heard := "  "
		if m.userdata.IsListened(l.ID) {
			heard = heardStyle.Render("✓ ")
		}
		bm := "  "
		if m.userdata.IsBookmarked(l.ID) {
			bm = bookmarkStyle.Render("⚑ ")
		}

		line := fmt.Sprintf("%s%s%-12s %s", heard, bm, l.Reference(),
			runewidth.Truncate(l.Title, titleWidth, "…"))

		if st := m.eng.Status(); st.Current != nil && st.Current.ID == l.ID {
			line = playingStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		view += line + "\n"
	}
	for i := end - start; i < listHeight; i++ {
		view += "\n"
	}

	view += "\n" + m.playerLine(width) + "\n"
	view += m.streakLine() + "\n"
	view += helpStyle.Render("enter play · space pause · s stop · ←/→ skip · -/+ vol · m mute · d listened · b bookmark · f filter · q quit")
	return view
}

func (m model) playerLine(width int) string {
	st := m.eng.Status()
	if st.Current == nil {
		return dimStyle.Render("Nothing playing")
	}

	icon := "▶"
	if !st.Playing {
		icon = "⏸"
	}

	vol := fmt.Sprintf("vol %d%%", int(st.Volume*100+0.5))
	if st.Muted {
		vol = "muted"
	}

	bar := progressBar(st.Position, st.Duration, 24)
	return fmt.Sprintf("%s %s  %s %s/%s  %s",
		playingStyle.Render(icon+" "+st.Current.Reference()),
		runewidth.Truncate(st.Current.Title, width-60, "…"),
		bar,
		common.FormatClock(st.Position),
		common.FormatClock(st.Duration),
		dimStyle.Render(vol))
}

func progressBar(pos, dur time.Duration, width int) string {
	filled := 0
	if dur > 0 {
		filled = int(float64(width) * float64(pos) / float64(dur))
		if filled > width {
			filled = width
		}
	}
	out := ""
	for i := 0; i < width; i++ {
		if i < filled {
			out += "━"
		} else {
			out += "─"
		}
	}
	return out
}

func (m model) streakLine() string {
	s := m.userdata.Streak
	line := streakStyle.Render(fmt.Sprintf("🔥 %d %s streak", s.Current, dayWord(s.Current)))
	line += dimStyle.Render(fmt.Sprintf("  ·  today %s / %d min",
		common.FormatMinutes(s.TodayMinutes), m.userdata.DailyGoal))
	if m.userdata.GoalMet() {
		line += heardStyle.Render("  ✓ goal met")
	}
	return line
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
