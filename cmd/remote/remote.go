package remote

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/api"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "remote",
		Short: "Talk to the optional lecture API server",
		SubCmds: []*cobra.Command{
			ListCmd(),
			ShowCmd(),
			SummarizeCmd(),
			PushCmd(),
		},
	}.ToCobra()
}

type ListParams struct {
	URL string `long:"url" optional:"true" help:"API base URL (defaults to SADHANA_API_URL or localhost:4000)."`
}

func ListCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "list",
		Aliases:     []string{"ls"},
		Short:       "List lectures known to the server",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			if err := runList(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runList(params *ListParams, stdout *os.File) error {
	lectures, err := api.New(params.URL).FetchLectures()
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Ch", "Title", "Location", "Date", "Heard"})
	for _, l := range lectures {
		heard := ""
		if l.Listened {
			heard = "✓"
		}
		t.AppendRow(table.Row{l.ID, l.Chapter, l.Title, l.Location, l.Date, heard})
	}
	t.Render()
	return nil
}

type ShowParams struct {
	ID  int    `pos:"true" help:"Lecture id."`
	URL string `long:"url" optional:"true" help:"API base URL."`
}

func ShowCmd() *cobra.Command {
	return boa.CmdT[ShowParams]{
		Use:         "show",
		Short:       "Show one lecture from the server",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ShowParams, cmd *cobra.Command, args []string) {
			if err := runShow(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runShow(params *ShowParams, stdout *os.File) error {
	l, err := api.New(params.URL).FetchLecture(params.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d: %s\n", l.ID, l.Title)
	fmt.Fprintf(stdout, "Chapter %d, verses %s\n", l.Chapter, l.VerseRange)
	fmt.Fprintf(stdout, "%s, %s\n", l.Location, l.Date)
	if l.Summary != "" {
		fmt.Fprintf(stdout, "\n%s\n", l.Summary)
	}
	if l.Notes != "" {
		fmt.Fprintf(stdout, "\nNotes: %s\n", l.Notes)
	}
	return nil
}

type SummarizeParams struct {
	ID  int    `pos:"true" help:"Lecture id."`
	URL string `long:"url" optional:"true" help:"API base URL."`
}

func SummarizeCmd() *cobra.Command {
	return boa.CmdT[SummarizeParams]{
		Use:         "summarize",
		Short:       "Ask the server to summarize a lecture",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SummarizeParams, cmd *cobra.Command, args []string) {
			if err := runSummarize(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runSummarize(params *SummarizeParams, stdout *os.File) error {
	summary, err := api.New(params.URL).SummarizeLecture(params.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, summary)
	return nil
}

type PushParams struct {
	ID  int    `pos:"true" help:"Lecture id whose local state to push."`
	URL string `long:"url" optional:"true" help:"API base URL."`
}

func PushCmd() *cobra.Command {
	return boa.CmdT[PushParams]{
		Use:         "push",
		Short:       "Push local listened/bookmark/note state for a lecture to the server",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *PushParams, cmd *cobra.Command, args []string) {
			if err := runPush(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runPush(params *PushParams, stdout *os.File) error {
	store := progress.New(common.ProgressPath())
	p := store.Get()

	result, err := api.New(params.URL).UpdateLecture(params.ID, map[string]any{
		"listened":   p.IsListened(params.ID),
		"bookmarked": p.IsBookmarked(params.ID),
		"notes":      p.NoteFor(params.ID),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Pushed lecture %d: %s\n", params.ID, result.Message)
	return nil
}
