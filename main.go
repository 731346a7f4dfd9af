package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/morse"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "morse",
		Short:   "Text to Morse code and back, with audio playback",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			morse.EncodeCmd(),
			morse.DecodeCmd(),
			morse.PlayCmd(),
			morse.TableCmd(),
			morse.LiveCmd(),
			morse.ListenCmd(),
			morse.WatchCmd(),
			morse.ConfigCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
