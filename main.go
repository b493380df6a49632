package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/nitaidas/sadhana/cmd/bookmark"
	"github.com/nitaidas/sadhana/cmd/dashboard"
	"github.com/nitaidas/sadhana/cmd/goal"
	"github.com/nitaidas/sadhana/cmd/list"
	"github.com/nitaidas/sadhana/cmd/mark"
	"github.com/nitaidas/sadhana/cmd/note"
	"github.com/nitaidas/sadhana/cmd/play"
	"github.com/nitaidas/sadhana/cmd/remote"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "sadhana",
		Short:   "Personal spiritual lecture library and listening tracker",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			play.Cmd(),
			list.Cmd(),
			mark.Cmd(),
			bookmark.Cmd(),
			note.Cmd(),
			goal.Cmd(),
			dashboard.Cmd(),
			remote.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
