package morse

import (
	"io"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morse/cmd/common"
	"github.com/gigurra/morse/cmd/morse/live"
	"github.com/gigurra/morse/cmd/morse/notify"
	"github.com/gigurra/morse/cmd/morse/speech"
	"github.com/gigurra/morse/cmd/morse/tone"
	"github.com/spf13/cobra"
)

type LiveParams struct {
	Decode bool   `short:"d" help:"Start in Morse to text mode." default:"false"`
	WPM    int    `short:"w" help:"Character speed in words per minute (0 = config)." default:"0"`
	FWPM   int    `help:"Farnsworth effective speed in words per minute (0 = config)." default:"0"`
	Driver string `optional:"true" help:"Audio driver: speaker, beep or bell (empty = config)."`
}

func LiveCmd() *cobra.Command {
	return boa.CmdT[LiveParams]{
		Use:   "live",
		Short: "Interactive converter that updates as you type",
		Long: `Convert as you type. Tab swaps direction, Ctrl+P plays the Morse, Ctrl+S stops,
Ctrl+Y copies the output, Ctrl+L appends speech input, Esc quits.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *LiveParams, cmd *cobra.Command, args []string) {
			if err := runLive(params); err != nil {
				fail("live", err)
			}
		},
	}.ToCobra()
}

func runLive(params *LiveParams) error {
	e, err := newEnv(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	// The TUI owns the terminal: it shows problems in its status line and
	// logs go to a file.
	e.notifier = notify.Desktop{Enabled: e.cfg.Notifications, Fallback: io.Discard}
	logOut := io.Discard
	if f, err := openLiveLog(); err == nil {
		defer f.Close()
		logOut = f
	}
	e.setupLogging(logOut)

	timing, err := e.timing(params.WPM, params.FWPM)
	if err != nil {
		return err
	}
	driver, err := e.driver(params.Driver)
	if err != nil {
		return err
	}

	player := tone.NewPlayer(driver)
	defer player.Stop()

	mode := live.ModeEncode
	if params.Decode {
		mode = live.ModeDecode
	}
	return live.Run(live.Deps{
		Player:   player,
		Fallback: tone.NewPlayer(tone.BellDriver{Out: e.stderr}),
		Timing:   timing,
		Speech:   speech.NewSession(speech.New(e.cfg.SpeechCommand)),
		Copy:     clipboardWriteAll,
		Notifier: e.notifier,
	}, mode)
}

func openLiveLog() (*os.File, error) {
	dir := common.CacheDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "live.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
