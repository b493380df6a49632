package mark

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/catalog"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
)

type Params struct {
	ID int `pos:"true" help:"Lecture id to toggle listened."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "mark",
		Short:       "Toggle a lecture's listened flag",
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
	lecture, err := catalog.Find(params.ID)
	if err != nil {
		return err
	}

	store := progress.New(common.ProgressPath())
	next := store.Update(progress.ToggleListened(params.ID))

	if next.IsListened(params.ID) {
		fmt.Fprintf(stdout, "Marked listened: %s %q\n", lecture.Reference(), lecture.Title)
	} else {
		fmt.Fprintf(stdout, "Marked unlistened: %s %q\n", lecture.Reference(), lecture.Title)
	}
	return nil
}
