package note

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "note",
		Short: "Manage per-lecture notes",
		SubCmds: []*cobra.Command{
			SetCmd(),
			ShowCmd(),
			RmCmd(),
		},
	}.ToCobra()
}

type SetParams struct {
	ID    int    `pos:"true" help:"Lecture id."`
	Text  string `pos:"true" optional:"true" help:"Note text. Omit to read from stdin with --stdin."`
	Stdin bool   `long:"stdin" help:"Read the note text from stdin."`
}

func SetCmd() *cobra.Command {
	return boa.CmdT[SetParams]{
		Use:         "set",
		Short:       "Set the note for a lecture",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SetParams, cmd *cobra.Command, args []string) {
			if err := runSet(params, os.Stdout, os.Stdin); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runSet(params *SetParams, stdout *os.File, stdin io.Reader) error {
	lecture, err := catalog.Find(params.ID)
	if err != nil {
		return err
	}

	text := params.Text
	if params.Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	store := progress.New(common.ProgressPath())
	store.Update(progress.WithNote(params.ID, text))

	fmt.Fprintf(stdout, "Note saved for %s %q\n", lecture.Reference(), lecture.Title)
	return nil
}

type ShowParams struct {
	ID   int  `pos:"true" help:"Lecture id."`
	Copy bool `long:"copy" help:"Also copy the note to the system clipboard."`
}

func ShowCmd() *cobra.Command {
	return boa.CmdT[ShowParams]{
		Use:         "show",
		Short:       "Show the note for a lecture",
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
	lecture, err := catalog.Find(params.ID)
	if err != nil {
		return err
	}

	store := progress.New(common.ProgressPath())
	text := store.Get().NoteFor(params.ID)
	if text == "" {
		fmt.Fprintf(stdout, "No note for %s %q\n", lecture.Reference(), lecture.Title)
		return nil
	}

	fmt.Fprintln(stdout, text)

	if params.Copy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(stdout, "(copied to clipboard)")
	}
	return nil
}

type RmParams struct {
	ID int `pos:"true" help:"Lecture id."`
}

func RmCmd() *cobra.Command {
	return boa.CmdT[RmParams]{
		Use:         "rm",
		Short:       "Clear the note for a lecture",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *RmParams, cmd *cobra.Command, args []string) {
			if err := runRm(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func runRm(params *RmParams, stdout *os.File) error {
	lecture, err := catalog.Find(params.ID)
	if err != nil {
		return err
	}

	store := progress.New(common.ProgressPath())
	store.Update(progress.WithNote(params.ID, ""))

	fmt.Fprintf(stdout, "Note cleared for %s %q\n", lecture.Reference(), lecture.Title)
	return nil
}
