package list

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Catalog string `short:"c" help:"Catalog to list: bg, sb, nod or all." default:"all"`
	Filter  string `short:"f" help:"Filter: all, listened, unlistened or bookmarked." default:"all"`
	Chapter int    `long:"chapter" optional:"true" help:"Only lectures from this chapter." default:"0"`
	Canto   int    `long:"canto" optional:"true" help:"Only SB lectures from this canto." default:"0"`
	JSON    bool   `long:"json" help:"Output as JSON."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "list",
		Aliases:     []string{"ls"},
		Short:       "List lectures with engagement state",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			exitCode := Run(params, os.Stdout, os.Stderr)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdout, stderr *os.File) int {
	filter := catalog.Filter(params.Filter)
	if !filter.Valid() {
		fmt.Fprintf(stderr, "Error: unknown filter %q (want all, listened, unlistened or bookmarked)\n", params.Filter)
		return 1
	}

	lectures, err := catalog.ByName(params.Catalog)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	store := progress.New(common.ProgressPath())
	p := store.Get()

	lectures = filter.Apply(lectures, p)
	lectures = applyScopeFilters(lectures, params)

	if params.JSON {
		data, err := json.MarshalIndent(lectures, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	renderTable(stdout, lectures, p)
	return 0
}

func applyScopeFilters(lectures []catalog.Lecture, params *Params) []catalog.Lecture {
	if params.Chapter == 0 && params.Canto == 0 {
		return lectures
	}
	var out []catalog.Lecture
	for _, l := range lectures {
		if params.Canto != 0 && l.Canto != params.Canto {
			continue
		}
		if params.Chapter != 0 {
			ch, ok := l.HasChapter()
			if !ok || ch != params.Chapter {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

func renderTable(stdout *os.File, lectures []catalog.Lecture, p progress.UserProgress) {
	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)

	termWidth := terminalWidth()
	t.SetAllowedRowLength(termWidth)

	t.AppendHeader(table.Row{"ID", "Ref", "Title", "Location", "Date", "Heard", "Mark", "Note"})

	// Title gets the space left after the fixed columns.
	titleWidth := termWidth - (7 + 12 + 16 + 12 + 7 + 6 + 6 + 24)
	if titleWidth < 20 {
		titleWidth = 20
	}
	if titleWidth > 60 {
		titleWidth = 60
	}

	for _, l := range lectures {
		heard := ""
		if p.IsListened(l.ID) {
			heard = "✓"
		}
		mark := ""
		if p.IsBookmarked(l.ID) {
			mark = "⚑"
		}
		note := ""
		if p.NoteFor(l.ID) != "" {
			note = "✎"
		}
		t.AppendRow(table.Row{
			l.ID,
			l.Reference(),
			runewidth.Truncate(l.Title, titleWidth, "…"),
			l.Location,
			l.Date,
			heard,
			mark,
			note,
		})
	}

	t.Render()
	fmt.Fprintf(stdout, "%d lectures\n", len(lectures))
}
