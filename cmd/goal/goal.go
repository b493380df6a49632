package goal

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/nitaidas/sadhana/cmd/common"
	"github.com/nitaidas/sadhana/cmd/common/progress"
	"github.com/spf13/cobra"
)

type Params struct {
	Minutes int `pos:"true" optional:"true" help:"New daily goal in minutes. Omit to show the current goal." default:"0"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "goal",
		Short:       "Show or set the daily listening goal",
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

	if params.Minutes < 0 {
		return fmt.Errorf("goal must be a positive number of minutes, got %d", params.Minutes)
	}

	if params.Minutes == 0 {
		p := store.Get()
		fmt.Fprintf(stdout, "Daily goal: %d min (today: %s)\n",
			p.DailyGoal, common.FormatMinutes(p.Streak.TodayMinutes))
		if p.GoalMet() {
			fmt.Fprintln(stdout, "Goal met for today.")
		}
		return nil
	}

	next := store.Update(progress.WithDailyGoal(params.Minutes))
	fmt.Fprintf(stdout, "Daily goal set to %d min\n", next.DailyGoal)
	return nil
}
